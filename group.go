// Copyright (c) 2026 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package fhmqv

import (
	"math/big"
)

var (
	one = big.NewInt(1)
)

// Validation levels for decoded group elements. The levels follow the usual
// tiering of public-key validation: level 1 only establishes that the
// element belongs to the ambient group, level 3 additionally establishes
// membership in the prime-order subgroup the protocol runs in.
const (
	// ValidatePartial checks that the element is a non-identity member of
	// the ambient group (a point on the curve, a residue in (1, p)).
	ValidatePartial = 1

	// ValidateFull additionally checks that the element lies in the
	// prime-order subgroup of order SubgroupOrder.
	ValidateFull = 3
)

// Element is an opaque group element. Elements are only ever produced by the
// Group that understands them, either through exponentiation or by decoding
// received bytes; they are never constructed directly and must not be passed
// between different Group implementations.
type Element interface{}

// Group describes the discrete-logarithm group an agreement runs over. All
// protocol arithmetic goes through this interface, so finite-field and
// elliptic-curve backends are interchangeable.
//
// Implementations must be immutable after construction and safe for
// concurrent use.
type Group interface {
	// Order returns the order of the ambient group the prime-order
	// subgroup is embedded in (p-1 for the multiplicative group of a
	// prime field, cofactor times SubgroupOrder for curves).
	Order() *big.Int

	// SubgroupOrder returns the order q of the prime-order subgroup. All
	// exponent arithmetic in the protocol is performed modulo this value.
	SubgroupOrder() *big.Int

	// MaxExponent returns the largest valid private exponent. Private
	// keys are sampled uniformly from [1, MaxExponent].
	MaxExponent() *big.Int

	// ElementSize returns the length in bytes of an encoded element.
	ElementSize() int

	// ExponentiateBase returns generator^k.
	ExponentiateBase(k *big.Int) Element

	// Exponentiate returns e^k (scalar multiplication on curves).
	Exponentiate(e Element, k *big.Int) Element

	// Multiply returns the group product of a and b (point addition on
	// curves).
	Multiply(a, b Element) Element

	// Encode returns the canonical fixed-width encoding of e. The result
	// is always ElementSize bytes long.
	Encode(e Element) []byte

	// Decode parses an encoded element. Decoding performs a level-1
	// membership check and fails on anything that is not a well-formed
	// member of the ambient group.
	Decode(b []byte) (Element, error)

	// Validate checks e at the given validation level and reports whether
	// it passed.
	Validate(level int, e Element) bool
}
