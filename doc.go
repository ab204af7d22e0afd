// Copyright (c) 2026 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

// Package fhmqv implements the Fully Hashed MQV (FHMQV) authenticated
// key-agreement protocol over an abstract discrete-logarithm group.
//
// FHMQV is a two-party protocol of the MQV family. Each party holds a
// long-term static keypair and generates a fresh ephemeral keypair per
// exchange; after swapping public values both sides derive the same secret
// with implicit mutual authentication, so a man in the middle or an attacker
// holding a compromised static key cannot impersonate either party. Unlike
// plain MQV the challenge values are full hashes over the complete
// transcript of exchanged public keys, which is what makes the scheme
// provably secure in the Canetti-Krawczyk model.
//
// The algebraic group is supplied through the Group interface. Three
// backends ship with the package: a prime-field Schnorr subgroup
// (NewSchnorrGroup, Modp2048), the NIST curves from crypto/elliptic
// (NewCurveGroup), and the edwards25519 curve (Edwards25519).
//
// A Domain binds a group, a hash function and a fixed protocol role
// (Initiator or Responder). Domains are immutable and safe for concurrent
// use; Agree performs a complete agreement with no retained state. For
// callers worried about side channels on long-lived static keys, BlindAgree
// computes the same value with a blinded final exponentiation.
//
// Ephemeral keys are strictly single-use. Reusing one across two agreements
// voids forward secrecy and the resistance against key-compromise
// impersonation.
//
// Please see
// https://eprint.iacr.org/2009/408
// for more details.
package fhmqv
