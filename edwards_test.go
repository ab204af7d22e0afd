// Copyright (c) 2026 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package fhmqv

import (
	"math/big"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/require"
)

func TestEdwards25519ValidateLevels(t *testing.T) {
	group := Edwards25519()

	pub := group.ExponentiateBase(big.NewInt(0x42))
	require.True(t, group.Validate(ValidatePartial, pub))
	require.True(t, group.Validate(ValidateFull, pub))

	require.False(t, group.Validate(ValidatePartial, edwards25519.NewIdentityPoint()),
		"identity must be rejected")

	// The all-zero encoding is a well-formed point of order 4.
	torsion, err := group.Decode(make([]byte, 32))
	require.NoError(t, err)
	require.True(t, group.Validate(ValidatePartial, torsion))
	require.False(t, group.Validate(ValidateFull, torsion),
		"small-order point must fail full validation")

	// A subgroup point plus torsion decodes fine but is not torsion-free.
	mixed := group.Multiply(pub, torsion)
	require.True(t, group.Validate(ValidatePartial, mixed))
	require.False(t, group.Validate(ValidateFull, mixed),
		"mixed-order point must fail full validation")
}

func TestEdwards25519Decode(t *testing.T) {
	group := Edwards25519()

	pub := group.ExponentiateBase(big.NewInt(0x42))
	decoded, err := group.Decode(group.Encode(pub))
	require.NoError(t, err)
	require.Equal(t, 1, pub.(*edwards25519.Point).Equal(decoded.(*edwards25519.Point)),
		"decode must invert encode")

	noncanonical := make([]byte, 32)
	for i := range noncanonical {
		noncanonical[i] = 0xff
	}
	_, err = group.Decode(noncanonical)
	require.Error(t, err, "non-canonical encoding must be rejected")

	// y = p is a non-canonical encoding of the y = 0 point: it decodes to
	// the same point as the all-zero encoding but re-encodes differently.
	above := make([]byte, 32)
	above[0] = 0xed
	for i := 1; i < 31; i++ {
		above[i] = 0xff
	}
	above[31] = 0x7f
	_, err = group.Decode(above)
	require.Error(t, err, "above-prime encoding must be rejected")

	_, err = group.Decode([]byte{1, 2, 3})
	require.Error(t, err, "short encoding must be rejected")
}

func TestEdwards25519ScalarReduction(t *testing.T) {
	group := Edwards25519()

	// Exponents are taken modulo l, so k and k+l act identically.
	k := big.NewInt(0x42)
	shifted := new(big.Int).Add(k, group.SubgroupOrder())
	require.Equal(t, group.Encode(group.ExponentiateBase(k)), group.Encode(group.ExponentiateBase(shifted)))
}
