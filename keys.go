// Copyright (c) 2026 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package fhmqv

import (
	"io"
	"math/big"

	"github.com/pkg/errors"
)

var genMask = []byte{0xff, 0x1, 0x3, 0x7, 0xf, 0x1f, 0x3f, 0x7f}

// randomExponent samples a private exponent uniformly from
// [1, MaxExponent] by rejection and returns it as a fixed-width big-endian
// buffer of size bytes. The candidate comparison against the bound is done
// in constant time; only rejected candidates influence timing.
func randomExponent(g Group, rand io.Reader, size int) ([]byte, error) {
	max := g.MaxExponent()
	numBits := max.BitLen()
	bound := make(SubtleInt, SubtleIntSize(numBits))
	bound.SetBytes(max.Bytes())
	zero := make(SubtleInt, len(bound))

	// Fixed-width output; the bound may span fewer bytes than the
	// subgroup order, leaving zero padding at the front.
	priv := make([]byte, size)
	lead := size - (numBits+7)>>3
	tmp := make(SubtleInt, len(bound))
	defer tmp.SetZero()

	for {
		if _, err := io.ReadFull(rand, priv); err != nil {
			return nil, errors.Wrap(err, "failed to generate random data")
		}

		// We have to mask off any excess bits in the case that the
		// bound is not a whole number of bytes.
		for i := 0; i < lead; i++ {
			priv[i] = 0
		}
		priv[lead] &= genMask[numBits%8]

		tmp.SetBytes(priv[lead:])
		if zero.Less(tmp) == 1 && bound.Less(tmp) == 0 {
			return priv, nil
		}
	}
}

// GenerateStaticPrivateKey samples a long-term private exponent uniformly
// from [1, MaxExponent] using the given reader, which must return random
// data. The result is StaticPrivateKeyLength bytes long.
func (d *Domain) GenerateStaticPrivateKey(rand io.Reader) ([]byte, error) {
	return randomExponent(d.group, rand, d.StaticPrivateKeyLength())
}

// GenerateStaticPublicKey computes the encoded public element
// generator^priv for a private key produced by GenerateStaticPrivateKey.
// The result is StaticPublicKeyLength bytes long.
func (d *Domain) GenerateStaticPublicKey(priv []byte) ([]byte, error) {
	if len(priv) != d.StaticPrivateKeyLength() {
		return nil, errors.Errorf("invalid private key length %d", len(priv))
	}
	x := new(big.Int).SetBytes(priv)
	defer WipeInt(x)
	return d.group.Encode(d.group.ExponentiateBase(x)), nil
}

// An EphemeralKey is a single-use keypair generated fresh per agreement.
// The public element is computed once at generation time, so extracting it
// costs nothing. An EphemeralKey must never be used for more than one
// agreement.
type EphemeralKey struct {
	priv []byte
	pub  []byte
}

// GenerateEphemeralKey samples a fresh ephemeral keypair. The private
// exponent is drawn exactly as for static keys.
func (d *Domain) GenerateEphemeralKey(rand io.Reader) (*EphemeralKey, error) {
	priv, err := randomExponent(d.group, rand, d.StaticPrivateKeyLength())
	if err != nil {
		return nil, err
	}
	x := new(big.Int).SetBytes(priv)
	defer WipeInt(x)
	return &EphemeralKey{
		priv: priv,
		pub:  d.group.Encode(d.group.ExponentiateBase(x)),
	}, nil
}

// ParseEphemeralKey reconstructs an ephemeral keypair from its packed form
// as returned by Bytes. The public half is trusted, not recomputed.
func (d *Domain) ParseEphemeralKey(buf []byte) (*EphemeralKey, error) {
	if len(buf) != d.EphemeralPrivateKeyLength() {
		return nil, errors.Errorf("invalid ephemeral key length %d", len(buf))
	}
	n := d.StaticPrivateKeyLength()
	k := &EphemeralKey{
		priv: make([]byte, n),
		pub:  make([]byte, len(buf)-n),
	}
	copy(k.priv, buf[:n])
	copy(k.pub, buf[n:])
	return k, nil
}

// Public returns the encoded public element of the keypair.
func (k *EphemeralKey) Public() []byte {
	return k.pub
}

// Bytes returns the packed [exponent || element] form of the keypair,
// EphemeralPrivateKeyLength bytes long. The result contains the private
// exponent; treat it accordingly.
func (k *EphemeralKey) Bytes() []byte {
	buf := make([]byte, 0, len(k.priv)+len(k.pub))
	buf = append(buf, k.priv...)
	return append(buf, k.pub...)
}

// Wipe overrides the private exponent with zeros. The key is unusable
// afterwards.
func (k *EphemeralKey) Wipe() {
	WipeBytes(k.priv)
}

// BlindKey blinds the private exponent priv with a random blind value b and
// returns (priv+b, q-b) mod q. Raising an element to both halves and
// multiplying the results reproduces the element raised to priv.
func BlindKey(priv []byte, g Group, rand io.Reader) ([]byte, []byte, error) {
	q := g.SubgroupOrder()
	numBytes := (q.BitLen() + 7) >> 3
	n := make(SubtleInt, SubtleIntSize(8*numBytes))
	n.SetBytes(q.Bytes())

	if len(priv) > numBytes {
		return nil, nil, errors.New("invalid private key")
	}

	blindBytes, err := randomExponent(g, rand, numBytes)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to generate blind key")
	}
	defer WipeBytes(blindBytes)

	blind := make(SubtleInt, len(n))
	defer blind.SetZero()
	blind.SetBytes(blindBytes)

	privNew := make(SubtleInt, len(n))
	defer privNew.SetZero()
	privNew.SetBytes(priv)
	privNew.AddMod(privNew, blind, n)

	blind.Sub(n, blind)

	return privNew.Bytes()[:numBytes], blind.Bytes()[:numBytes], nil
}

// blindExponentiate computes e^k as e^(k+b) * e^(q-b) with a fresh random
// blind b, so the secret exponent never drives a single exponentiation.
// This only reproduces e^k if e lies in the order-q subgroup.
func blindExponentiate(g Group, e Element, k *big.Int, rand io.Reader) (Element, error) {
	buf := make([]byte, (g.SubgroupOrder().BitLen()+7)>>3)
	k.FillBytes(buf)
	defer WipeBytes(buf)

	blind, rev, err := BlindKey(buf, g, rand)
	if err != nil {
		return nil, errors.Wrap(err, "failed to blind exponent")
	}
	defer WipeBytes(blind)
	defer WipeBytes(rev)

	k1 := new(big.Int).SetBytes(blind)
	defer WipeInt(k1)
	k2 := new(big.Int).SetBytes(rev)
	defer WipeInt(k2)

	return g.Multiply(g.Exponentiate(e, k1), g.Exponentiate(e, k2)), nil
}

// WipeInt overrides the internal array of a big.Int with zeros.
func WipeInt(x *big.Int) {
	words := x.Bits()
	for i := range words {
		words[i] = 0
	}
}

// WipeBytes overrides the internal byte array with zeros.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
