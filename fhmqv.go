// Copyright (c) 2026 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package fhmqv

import (
	"hash"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// Role selects which side of the protocol a Domain plays. The role decides
// the operand order of every transcript hash and which challenge blends
// into the combined exponent, so both parties of an exchange must agree on
// who is who.
type Role int

const (
	// Initiator is the party contributing the ephemeral key X and the
	// static key A to the transcript (the paper calls it the client).
	Initiator Role = 1 + iota
	// Responder is the party contributing Y and B (the server).
	Responder
)

// ErrAgreementFailed is returned by Agree whenever a counterparty element
// fails to decode or validate. It deliberately carries no detail about the
// cause: distinguishing decode from validation failures would hand an
// active attacker an oracle on the group. Key material derived from a
// failed agreement must not be used, and the ephemeral key must not be
// reused for a retry.
var ErrAgreementFailed = errors.New("fhmqv: key agreement failed")

// Domain binds a group, a hash function and a fixed role into a protocol
// instance. A Domain is immutable and safe for concurrent use; it never
// retains key material across calls.
type Domain struct {
	role  Role
	group Group
	hash  func() hash.Hash
}

// NewDomain creates a protocol instance for the given role over the given
// group, using h (e.g. sha256.New) for all transcript hashing.
func NewDomain(role Role, group Group, h func() hash.Hash) (*Domain, error) {
	if role != Initiator && role != Responder {
		return nil, errors.Errorf("invalid role %d", role)
	}
	if group == nil {
		return nil, errors.New("missing group")
	}
	if h == nil {
		return nil, errors.New("missing hash function")
	}
	return &Domain{role: role, group: group, hash: h}, nil
}

// AgreedValueLength returns the length of the agreed value produced, the
// native digest size of the configured hash.
func (d *Domain) AgreedValueLength() int {
	return d.hash().Size()
}

// StaticPrivateKeyLength returns the length of static private keys in this
// domain, the byte count of the subgroup order.
func (d *Domain) StaticPrivateKeyLength() int {
	return (d.group.SubgroupOrder().BitLen() + 7) >> 3
}

// StaticPublicKeyLength returns the length of encoded static public keys in
// this domain.
func (d *Domain) StaticPublicKeyLength() int {
	return d.group.ElementSize()
}

// EphemeralPrivateKeyLength returns the length of the packed ephemeral
// keypair form produced by EphemeralKey.Bytes.
func (d *Domain) EphemeralPrivateKeyLength() int {
	return d.StaticPrivateKeyLength() + d.StaticPublicKeyLength()
}

// EphemeralPublicKeyLength returns the length of encoded ephemeral public
// keys in this domain.
func (d *Domain) EphemeralPublicKeyLength() int {
	return d.StaticPublicKeyLength()
}

// hashValues digests encode(sigma) || e1 || e2 || s1 || s2, skipping the
// element prefix when sigma is nil, and returns the first dlen bytes.
func (d *Domain) hashValues(sigma Element, e1, e2, s1, s2 []byte, dlen int) []byte {
	h := d.hash()
	if sigma != nil {
		h.Write(d.group.Encode(sigma))
	}
	h.Write(e1)
	h.Write(e2)
	h.Write(s1)
	h.Write(s2)
	sum := h.Sum(nil)
	if dlen > len(sum) {
		dlen = len(sum)
	}
	return sum[:dlen]
}

// challengeHash derives a challenge integer from the transcript. The digest
// is truncated to roughly half the bit length of the subgroup order and
// reduced modulo it.
func (d *Domain) challengeHash(e1, e2, s1, s2 []byte) *big.Int {
	q := d.group.SubgroupOrder()
	dlen := ((q.BitLen()+1)/2 + 7) / 8
	v := new(big.Int).SetBytes(d.hashValues(nil, e1, e2, s1, s2, dlen))
	return v.Mod(v, q)
}

// Agree derives the agreed value from the own private keys and the
// counterparty's encoded public keys. The counterparty's ephemeral public
// key is always validated at the full level; if its static public key has
// been validated before (e.g. when it was first cached), pass
// validateStaticOtherPub=false to save the subgroup check.
//
// On any decode or validation failure the result is (nil, ErrAgreementFailed)
// and no partial value is produced. The output is AgreedValueLength bytes.
func (d *Domain) Agree(staticPriv []byte, ephemeral *EphemeralKey, staticOtherPub, ephemeralOtherPub []byte, validateStaticOtherPub bool) ([]byte, error) {
	return d.agree(nil, staticPriv, ephemeral, staticOtherPub, ephemeralOtherPub, validateStaticOtherPub)
}

// BlindAgree is Agree with a blinded final exponentiation: the combined
// secret exponent is split into two random halves (see BlindKey) so that no
// single exponentiation is driven by it. The result is identical to Agree
// for subgroup-valid inputs. The reader must return random data.
func (d *Domain) BlindAgree(rand io.Reader, staticPriv []byte, ephemeral *EphemeralKey, staticOtherPub, ephemeralOtherPub []byte, validateStaticOtherPub bool) ([]byte, error) {
	if rand == nil {
		return nil, errors.New("missing random source")
	}
	return d.agree(rand, staticPriv, ephemeral, staticOtherPub, ephemeralOtherPub, validateStaticOtherPub)
}

func (d *Domain) agree(blindRand io.Reader, staticPriv []byte, ephemeral *EphemeralKey, staticOtherPub, ephemeralOtherPub []byte, validateStaticOtherPub bool) ([]byte, error) {
	g := d.group

	if len(staticPriv) != d.StaticPrivateKeyLength() {
		return nil, errors.Errorf("invalid static private key length %d", len(staticPriv))
	}
	if ephemeral == nil || len(ephemeral.priv) != d.StaticPrivateKeyLength() {
		return nil, errors.New("invalid ephemeral key")
	}

	// Recompute the own static public key; depending on the role it fills
	// either the A or the B slot of the transcript.
	own := new(big.Int).SetBytes(staticPriv)
	defer WipeInt(own)
	ownPub := g.Encode(g.ExponentiateBase(own))

	// Both parties relabel their local material into the same
	// (X, Y, A, B) tuple: X and A always belong to the Initiator, Y and B
	// to the Responder.
	var xx, yy, aa, bb []byte
	switch d.role {
	case Responder:
		xx, yy = ephemeralOtherPub, ephemeral.pub
		aa, bb = staticOtherPub, ownPub
	case Initiator:
		xx, yy = ephemeral.pub, ephemeralOtherPub
		aa, bb = ownPub, staticOtherPub
	default:
		return nil, ErrAgreementFailed
	}

	// Decode performs the level-1 membership check; the static key is
	// only raised to level 3 on request. The ephemeral key always gets
	// the full check: no caller ever pre-validates ephemeral keys.
	otherStatic, err := g.Decode(staticOtherPub)
	if err != nil {
		return nil, ErrAgreementFailed
	}
	staticLevel := ValidatePartial
	if validateStaticOtherPub {
		staticLevel = ValidateFull
	}
	if !g.Validate(staticLevel, otherStatic) {
		return nil, ErrAgreementFailed
	}

	otherEphemeral, err := g.Decode(ephemeralOtherPub)
	if err != nil {
		return nil, ErrAgreementFailed
	}
	if !g.Validate(ValidateFull, otherEphemeral) {
		return nil, ErrAgreementFailed
	}

	// The two challenges differ only by swapping the ephemeral slots.
	dc := d.challengeHash(xx, yy, aa, bb)
	ec := d.challengeHash(yy, xx, aa, bb)

	eph := new(big.Int).SetBytes(ephemeral.priv)
	defer WipeInt(eph)

	q := g.SubgroupOrder()
	s := new(big.Int)
	defer WipeInt(s)

	// Each side blends its own challenge into the combined exponent and
	// raises the counterparty's ephemeral-times-static-to-the-other-
	// challenge to it, so both land on the same element:
	//   Responder: sigma = (X * A^d)^(y + e*b)
	//   Initiator: sigma = (Y * B^e)^(x + d*a)
	var ch *big.Int
	switch d.role {
	case Responder:
		s.Mul(ec, own)
		ch = dc
	default:
		s.Mul(dc, own)
		ch = ec
	}
	s.Add(s, eph)
	s.Mod(s, q)

	t := g.Multiply(otherEphemeral, g.Exponentiate(otherStatic, ch))

	var sigma Element
	if blindRand == nil {
		sigma = g.Exponentiate(t, s)
	} else {
		sigma, err = blindExponentiate(g, t, s, blindRand)
		if err != nil {
			return nil, err
		}
	}

	return d.hashValues(sigma, xx, yy, aa, bb, d.AgreedValueLength()), nil
}
