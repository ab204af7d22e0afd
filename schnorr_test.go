// Copyright (c) 2026 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package fhmqv

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSchnorrGroupValidation(t *testing.T) {
	// p = 23, q = 11, g = 4: 4 = 2^2 generates the quadratic residues.
	p, q, g := big.NewInt(23), big.NewInt(11), big.NewInt(4)

	group, err := NewSchnorrGroup(p, q, g)
	require.NoError(t, err)
	require.Equal(t, int64(22), group.Order().Int64())
	require.Equal(t, q.Int64(), group.SubgroupOrder().Int64())
	require.Equal(t, int64(10), group.MaxExponent().Int64())
	require.Equal(t, 1, group.ElementSize())

	_, err = NewSchnorrGroup(nil, q, g)
	require.Error(t, err, "missing modulus must be rejected")

	_, err = NewSchnorrGroup(p, big.NewInt(7), g)
	require.Error(t, err, "q not dividing p-1 must be rejected")

	_, err = NewSchnorrGroup(p, q, big.NewInt(5))
	require.Error(t, err, "generator of wrong order must be rejected")

	_, err = NewSchnorrGroup(p, q, big.NewInt(24))
	require.Error(t, err, "generator outside (1, p) must be rejected")
}

func TestSchnorrValidateLevels(t *testing.T) {
	group := Modp2048()
	p := new(big.Int).Add(group.Order(), one)

	pub := group.ExponentiateBase(big.NewInt(0x42))
	require.True(t, group.Validate(ValidatePartial, pub))
	require.True(t, group.Validate(ValidateFull, pub))

	// p-1 has order 2: inside the group, outside the subgroup.
	pm1 := new(big.Int).Sub(p, one)
	require.True(t, group.Validate(ValidatePartial, pm1))
	require.False(t, group.Validate(ValidateFull, pm1))

	require.False(t, group.Validate(ValidatePartial, one), "identity must be rejected")
	require.False(t, group.Validate(ValidatePartial, p), "p must be rejected")
	require.False(t, group.Validate(ValidatePartial, "bogus"), "foreign element must be rejected")
}

func TestSchnorrDecode(t *testing.T) {
	group := Modp2048()

	pub := group.ExponentiateBase(big.NewInt(0x42))
	decoded, err := group.Decode(group.Encode(pub))
	require.NoError(t, err)
	require.Zero(t, pub.(*big.Int).Cmp(decoded.(*big.Int)), "decode must invert encode")

	_, err = group.Decode([]byte{1, 2, 3})
	require.Error(t, err, "short encoding must be rejected")

	oob := make([]byte, group.ElementSize())
	for i := range oob {
		oob[i] = 0xff
	}
	_, err = group.Decode(oob)
	require.Error(t, err, "residue above the modulus must be rejected")
}
