// Copyright (c) 2026 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package fhmqv

import (
	"crypto/elliptic"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCurveGroup(t *testing.T) {
	for _, curve := range []elliptic.Curve{elliptic.P224(), elliptic.P256(), elliptic.P384(), elliptic.P521()} {
		group, err := NewCurveGroup(curve)
		require.NoErrorf(t, err, "failed to create group for %q", curve.Params().Name)
		require.Equal(t, curve.Params().N, group.SubgroupOrder())
		require.Equal(t, 1+(curve.Params().BitSize+7)>>3, group.ElementSize())
	}

	// An unknown curve has no cofactor entry.
	bogus := &elliptic.CurveParams{Name: "bogus", P: big.NewInt(17), N: big.NewInt(19), BitSize: 5}
	_, err := NewCurveGroup(bogus)
	require.Error(t, err, "unknown curve must be rejected")
}

func TestCurveValidateAndDecode(t *testing.T) {
	group, err := NewCurveGroup(elliptic.P256())
	require.NoError(t, err)

	pub := group.ExponentiateBase(big.NewInt(0x42))
	require.True(t, group.Validate(ValidatePartial, pub))
	require.True(t, group.Validate(ValidateFull, pub))

	decoded, err := group.Decode(group.Encode(pub))
	require.NoError(t, err)
	require.True(t, group.Validate(ValidateFull, decoded))

	infinity := &curvePoint{x: big.NewInt(0), y: big.NewInt(0)}
	require.False(t, group.Validate(ValidatePartial, infinity), "point at infinity must be rejected")

	offCurve := &curvePoint{x: big.NewInt(1), y: big.NewInt(1)}
	require.False(t, group.Validate(ValidatePartial, offCurve), "off-curve point must be rejected")

	bad := make([]byte, group.ElementSize())
	bad[0] = 0xff
	_, err = group.Decode(bad)
	require.Error(t, err, "invalid compression prefix must be rejected")

	_, err = group.Decode([]byte{2, 3})
	require.Error(t, err, "short encoding must be rejected")
}
