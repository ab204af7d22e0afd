// Copyright (c) 2026 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package fhmqv

import (
	"math/big"
	"sync"

	"github.com/pkg/errors"
)

// SchnorrGroup is a prime-order subgroup of the multiplicative group of a
// prime field: elements are residues modulo p, the subgroup has prime order
// q with q dividing p-1, and g generates it. Elements travel as fixed-width
// big-endian residues of byteLen(p) bytes.
type SchnorrGroup struct {
	p, q, g *big.Int
	max     *big.Int
	size    int
}

// NewSchnorrGroup creates a prime-field group from the modulus p, the
// subgroup order q and the subgroup generator g. The parameters are checked
// for consistency (q divides p-1, g generates a subgroup of order q), not
// for primality; use vetted parameters.
func NewSchnorrGroup(p, q, g *big.Int) (*SchnorrGroup, error) {
	if p == nil || q == nil || g == nil {
		return nil, errors.New("missing group parameter")
	}
	if p.Cmp(one) <= 0 || q.Cmp(one) <= 0 {
		return nil, errors.New("modulus and subgroup order must be greater than one")
	}
	if g.Cmp(one) <= 0 || g.Cmp(p) >= 0 {
		return nil, errors.Errorf("generator must lie in (1, p)")
	}

	pm1 := new(big.Int).Sub(p, one)
	if new(big.Int).Mod(pm1, q).Sign() != 0 {
		return nil, errors.New("subgroup order does not divide p-1")
	}
	if new(big.Int).Exp(g, q, p).Cmp(one) != 0 {
		return nil, errors.New("generator does not have order q")
	}

	return &SchnorrGroup{
		p:    new(big.Int).Set(p),
		q:    new(big.Int).Set(q),
		g:    new(big.Int).Set(g),
		max:  new(big.Int).Sub(q, one),
		size: (p.BitLen() + 7) >> 3,
	}, nil
}

var (
	modp2048Once  sync.Once
	modp2048Group *SchnorrGroup
)

// Modp2048 returns the Schnorr group over the 2048-bit MODP safe prime from
// RFC 3526 section 3. The subgroup is the group of quadratic residues of
// order q = (p-1)/2, generated by 4.
func Modp2048() *SchnorrGroup {
	modp2048Once.Do(func() {
		p, ok := new(big.Int).SetString(
			"FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74"+
				"020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437"+
				"4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED"+
				"EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF05"+
				"98DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB"+
				"9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B"+
				"E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF695581718"+
				"3995497CEA956AE515D2261898FA051015728E5A8AACAA68FFFFFFFFFFFFFFFF", 16)
		if !ok {
			panic("fhmqv: failed to parse RFC 3526 modulus")
		}
		q := new(big.Int).Sub(p, one)
		q.Rsh(q, 1)

		var err error
		modp2048Group, err = NewSchnorrGroup(p, q, big.NewInt(4))
		if err != nil {
			panic("fhmqv: " + err.Error())
		}
	})
	return modp2048Group
}

// Order returns p-1, the order of the multiplicative group mod p.
func (g *SchnorrGroup) Order() *big.Int {
	return new(big.Int).Sub(g.p, one)
}

// SubgroupOrder returns the subgroup order q.
func (g *SchnorrGroup) SubgroupOrder() *big.Int {
	return g.q
}

// MaxExponent returns q-1.
func (g *SchnorrGroup) MaxExponent() *big.Int {
	return g.max
}

// ElementSize returns the byte length of the modulus.
func (g *SchnorrGroup) ElementSize() int {
	return g.size
}

// ExponentiateBase returns g^k mod p.
func (g *SchnorrGroup) ExponentiateBase(k *big.Int) Element {
	return new(big.Int).Exp(g.g, k, g.p)
}

// Exponentiate returns e^k mod p.
func (g *SchnorrGroup) Exponentiate(e Element, k *big.Int) Element {
	return new(big.Int).Exp(e.(*big.Int), k, g.p)
}

// Multiply returns a*b mod p.
func (g *SchnorrGroup) Multiply(a, b Element) Element {
	r := new(big.Int).Mul(a.(*big.Int), b.(*big.Int))
	return r.Mod(r, g.p)
}

// Encode returns e as a fixed-width big-endian residue.
func (g *SchnorrGroup) Encode(e Element) []byte {
	buf := make([]byte, g.size)
	e.(*big.Int).FillBytes(buf)
	return buf
}

// Decode parses a fixed-width big-endian residue and rejects anything
// outside (1, p).
func (g *SchnorrGroup) Decode(b []byte) (Element, error) {
	if len(b) != g.size {
		return nil, errors.Errorf("invalid element length %d", len(b))
	}
	h := new(big.Int).SetBytes(b)
	if !g.Validate(ValidatePartial, h) {
		return nil, errors.New("element outside the group")
	}
	return h, nil
}

// Validate checks membership: level 1 requires 1 < h < p, level 3
// additionally requires h^q = 1 mod p.
func (g *SchnorrGroup) Validate(level int, e Element) bool {
	h, ok := e.(*big.Int)
	if !ok || h == nil {
		return false
	}
	if h.Cmp(one) <= 0 || h.Cmp(g.p) >= 0 {
		return false
	}
	if level < ValidateFull {
		return true
	}
	return new(big.Int).Exp(h, g.q, g.p).Cmp(one) == 0
}
