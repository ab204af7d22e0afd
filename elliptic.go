// Copyright (c) 2026 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package fhmqv

import (
	"crypto/elliptic"
	"math/big"

	"github.com/pkg/errors"
)

// CurveGroup adapts a NIST curve from crypto/elliptic to the Group
// interface. The group operation is point addition and elements travel in
// the compressed point encoding of SEC 1 section 2.3.3.
type CurveGroup struct {
	curve elliptic.Curve
	h     *big.Int
	max   *big.Int
	size  int
}

// curvePoint is the element representation of a CurveGroup.
type curvePoint struct {
	x, y *big.Int
}

// cofactor returns the cofactor (number of points on the elliptic curve vs.
// number of elements in the cyclic group) of the elliptic curve.
func cofactor(curve elliptic.Curve) (*big.Int, error) {
	switch curve {
	case elliptic.P224():
		return one, nil
	case elliptic.P256():
		return one, nil
	case elliptic.P384():
		return one, nil
	case elliptic.P521():
		return one, nil
	default:
		return nil, errors.Errorf("failed to determine cofactor of curve %q", curve.Params().Name)
	}
}

// NewCurveGroup creates a Group over one of the NIST curves P-224, P-256,
// P-384 or P-521.
func NewCurveGroup(curve elliptic.Curve) (*CurveGroup, error) {
	h, err := cofactor(curve)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get cofactor")
	}
	params := curve.Params()
	return &CurveGroup{
		curve: curve,
		h:     h,
		max:   new(big.Int).Sub(params.N, one),
		size:  1 + (params.BitSize+7)>>3,
	}, nil
}

// Order returns the number of points on the curve.
func (g *CurveGroup) Order() *big.Int {
	return new(big.Int).Mul(g.curve.Params().N, g.h)
}

// SubgroupOrder returns the order of the base point.
func (g *CurveGroup) SubgroupOrder() *big.Int {
	return g.curve.Params().N
}

// MaxExponent returns N-1.
func (g *CurveGroup) MaxExponent() *big.Int {
	return g.max
}

// ElementSize returns the length of a compressed point.
func (g *CurveGroup) ElementSize() int {
	return g.size
}

// ExponentiateBase returns k times the base point.
func (g *CurveGroup) ExponentiateBase(k *big.Int) Element {
	x, y := g.curve.ScalarBaseMult(k.Bytes())
	return &curvePoint{x: x, y: y}
}

// Exponentiate returns k times the point e.
func (g *CurveGroup) Exponentiate(e Element, k *big.Int) Element {
	p := e.(*curvePoint)
	x, y := g.curve.ScalarMult(p.x, p.y, k.Bytes())
	return &curvePoint{x: x, y: y}
}

// Multiply returns the sum of the points a and b.
func (g *CurveGroup) Multiply(a, b Element) Element {
	pa, pb := a.(*curvePoint), b.(*curvePoint)
	x, y := g.curve.Add(pa.x, pa.y, pb.x, pb.y)
	return &curvePoint{x: x, y: y}
}

// Encode returns the compressed encoding of e.
func (g *CurveGroup) Encode(e Element) []byte {
	p := e.(*curvePoint)
	return elliptic.MarshalCompressed(g.curve, p.x, p.y)
}

// Decode parses a compressed point and rejects encodings that do not lie on
// the curve.
func (g *CurveGroup) Decode(b []byte) (Element, error) {
	if len(b) != g.size {
		return nil, errors.Errorf("invalid element length %d", len(b))
	}
	x, y := elliptic.UnmarshalCompressed(g.curve, b)
	if x == nil {
		return nil, errors.New("point not on curve")
	}
	return &curvePoint{x: x, y: y}, nil
}

// Validate checks that e is a point on the curve other than the point at
// infinity. At level 3 the point must additionally have order N, which for
// the cofactor-1 NIST curves is implied by being on the curve.
func (g *CurveGroup) Validate(level int, e Element) bool {
	p, ok := e.(*curvePoint)
	if !ok || p.x == nil || p.y == nil {
		return false
	}
	if p.x.Sign() == 0 && p.y.Sign() == 0 {
		return false
	}
	if !g.curve.IsOnCurve(p.x, p.y) {
		return false
	}
	if level >= ValidateFull && g.h.Cmp(one) != 0 {
		nx, ny := g.curve.ScalarMult(p.x, p.y, g.curve.Params().N.Bytes())
		if nx.Sign() != 0 || ny.Sign() != 0 {
			return false
		}
	}
	return true
}
