// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package history computes the history commitment over an employee's
// payment ledger: a single 32-byte digest of the ordered per-payment
// commitments, which a submitted proof's claimed history commitment is
// compared against.
package history

import (
	"encoding/binary"

	"github.com/luxfi/crypto/hash/blake3"
)

const domain = "history:v1"

// Recompute derives the history commitment over an ordered sequence of
// per-payment commitments: H("history:v1" ‖ c0 ‖ c1 ‖ ...). An empty
// sequence yields the domain-separated hash of nothing, the canonical empty
// history.
func Recompute(commitments [][32]byte) [32]byte {
	buf := make([]byte, 0, len(commitments)*32)
	for _, c := range commitments {
		buf = append(buf, c[:]...)
	}
	digest := blake3.HashWithDomain(domain, buf)
	var out [32]byte
	copy(out[:], digest[:32])
	return out
}

// Append chains one new commitment onto a prior 32-byte value:
// next = H("history:v1" ‖ prior ‖ next_commitment). The result is a chained
// digest; it does not equal Recompute over the extended sequence (for
// example, Append(Recompute([c0]), c1) != Recompute([c0, c1])).
func Append(prior [32]byte, next [32]byte) [32]byte {
	buf := make([]byte, 0, 64)
	buf = append(buf, prior[:]...)
	buf = append(buf, next[:]...)
	digest := blake3.HashWithDomain(domain, buf)
	var out [32]byte
	copy(out[:], digest[:32])
	return out
}

// EncodeCount serializes a payment count as the little-endian uint32 used
// inside journal schemas, alongside the history commitment the count
// accompanies.
func EncodeCount(count uint32) [4]byte {
	var out [4]byte
	binary.LittleEndian.PutUint32(out[:], count)
	return out
}
