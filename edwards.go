// Copyright (c) 2026 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package fhmqv

import (
	"bytes"
	"math/big"

	"filippo.io/edwards25519"
	"github.com/pkg/errors"
)

// edwards25519Order is the prime order l of the edwards25519 base point,
// 2^252 + 27742317777372353535851937790883648493.
var edwards25519Order, _ = new(big.Int).SetString(
	"1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed", 16)

// invEight is the inverse of the cofactor 8 modulo l. Used for the
// torsion-free check in Validate.
var invEight = func() *edwards25519.Scalar {
	var buf [32]byte
	buf[0] = 8
	eight, err := edwards25519.NewScalar().SetCanonicalBytes(buf[:])
	if err != nil {
		panic("fhmqv: " + err.Error())
	}
	return edwards25519.NewScalar().Invert(eight)
}()

// Edwards25519Group adapts the edwards25519 curve to the Group interface.
// Elements travel in the canonical 32-byte point encoding; Decode enforces
// canonicality, so every accepted encoding re-encodes to itself. Because
// the curve has cofactor 8, a canonical encoding may still carry a torsion
// component; such elements pass level-1 validation and fail level 3.
type Edwards25519Group struct{}

// Edwards25519 returns the Group over the edwards25519 curve.
func Edwards25519() *Edwards25519Group {
	return &Edwards25519Group{}
}

// scalar reduces k modulo l and converts it to an edwards25519 scalar.
func (g *Edwards25519Group) scalar(k *big.Int) *edwards25519.Scalar {
	r := new(big.Int).Mod(k, edwards25519Order)
	defer WipeInt(r)

	buf := make([]byte, 32)
	r.FillBytes(buf)
	defer WipeBytes(buf)
	// edwards25519 scalars are little-endian.
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	s, err := edwards25519.NewScalar().SetCanonicalBytes(buf)
	if err != nil {
		// r < l, so the encoding is always canonical.
		panic("fhmqv: " + err.Error())
	}
	return s
}

// Order returns 8*l, the number of points on the curve.
func (g *Edwards25519Group) Order() *big.Int {
	return new(big.Int).Lsh(edwards25519Order, 3)
}

// SubgroupOrder returns the base point order l.
func (g *Edwards25519Group) SubgroupOrder() *big.Int {
	return edwards25519Order
}

// MaxExponent returns l-1.
func (g *Edwards25519Group) MaxExponent() *big.Int {
	return new(big.Int).Sub(edwards25519Order, one)
}

// ElementSize returns 32.
func (g *Edwards25519Group) ElementSize() int {
	return 32
}

// ExponentiateBase returns k times the base point.
func (g *Edwards25519Group) ExponentiateBase(k *big.Int) Element {
	return new(edwards25519.Point).ScalarBaseMult(g.scalar(k))
}

// Exponentiate returns k times the point e.
func (g *Edwards25519Group) Exponentiate(e Element, k *big.Int) Element {
	return new(edwards25519.Point).ScalarMult(g.scalar(k), e.(*edwards25519.Point))
}

// Multiply returns the sum of the points a and b.
func (g *Edwards25519Group) Multiply(a, b Element) Element {
	return new(edwards25519.Point).Add(a.(*edwards25519.Point), b.(*edwards25519.Point))
}

// Encode returns the canonical 32-byte encoding of e.
func (g *Edwards25519Group) Encode(e Element) []byte {
	return e.(*edwards25519.Point).Bytes()
}

// Decode parses a canonical 32-byte point encoding. SetBytes accepts
// non-canonical encodings of valid points (field elements above the prime),
// so the input is checked against its re-encoding.
func (g *Edwards25519Group) Decode(b []byte) (Element, error) {
	p, err := new(edwards25519.Point).SetBytes(b)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode point")
	}
	if !bytes.Equal(p.Bytes(), b) {
		return nil, errors.New("non-canonical point encoding")
	}
	return p, nil
}

// Validate checks that e is not the identity; at level 3 it must also be
// free of torsion, i.e. lie in the prime-order subgroup.
func (g *Edwards25519Group) Validate(level int, e Element) bool {
	p, ok := e.(*edwards25519.Point)
	if !ok || p == nil {
		return false
	}
	if p.Equal(edwards25519.NewIdentityPoint()) == 1 {
		return false
	}
	if level < ValidateFull {
		return true
	}
	// p is torsion-free iff 8*(1/8 * p) == p: the cofactor multiply
	// annihilates the torsion component the scalar multiply leaves behind.
	t := new(edwards25519.Point).ScalarMult(invEight, p)
	t.MultByCofactor(t)
	return t.Equal(p) == 1
}
