// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package groth16

import (
	"math/big"

	"github.com/luxfi/crypto/bn256"
)

// limbLen is the width of a single field-element limb in both the
// little-endian wire format and the curve library's big-endian Marshal form.
const limbLen = 32

// reverseBytes returns a reversed copy of b.
func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// leToBE transcodes a little-endian-limbed point encoding (every limbLen
// bytes is one coordinate, stored little-endian) into the big-endian
// concatenation the curve library's Unmarshal expects. The host chain's
// curve precompiles are little-endian (§9); the curve library underneath is
// big-endian, so every externally sourced coordinate is transcoded here at
// ingestion.
func leToBE(b []byte) []byte {
	out := make([]byte, len(b))
	for i := 0; i+limbLen <= len(b); i += limbLen {
		copy(out[i:i+limbLen], reverseBytes(b[i:i+limbLen]))
	}
	return out
}

// beToLE is leToBE's inverse; the transform is its own inverse since it only
// reverses each fixed-width limb.
func beToLE(b []byte) []byte {
	return leToBE(b)
}

// DecodeG1 parses a 64-byte little-endian x‖y G1 point encoding.
func DecodeG1(p [g1EncodedLen]byte) (*bn256.G1, error) {
	var g bn256.G1
	if _, err := g.Unmarshal(leToBE(p[:])); err != nil {
		return nil, ErrVerifierError
	}
	return &g, nil
}

// EncodeG1 serializes a G1 point back to the 64-byte little-endian x‖y form.
func EncodeG1(g *bn256.G1) [g1EncodedLen]byte {
	var out [g1EncodedLen]byte
	copy(out[:], beToLE(g.Marshal()))
	return out
}

// DecodeG2 parses a 128-byte little-endian x_c0‖x_c1‖y_c0‖y_c1 G2 point
// encoding. Callers are responsible for having already canonicalized Fp2
// component order (see receipt.Decode) — this function only transcodes
// endianness, it does not reorder components.
func DecodeG2(p [g2EncodedLen]byte) (*bn256.G2, error) {
	var g bn256.G2
	if _, err := g.Unmarshal(leToBE(p[:])); err != nil {
		return nil, ErrVerifierError
	}
	return &g, nil
}

// EncodeG2 serializes a G2 point back to the 128-byte little-endian form.
func EncodeG2(g *bn256.G2) [g2EncodedLen]byte {
	var out [g2EncodedLen]byte
	copy(out[:], beToLE(g.Marshal()))
	return out
}

// NegateG1 computes the negation of a G1 point P = (x, y), i.e. (x, -y mod p).
// The host's sum primitive requires a sign-byte-prefixed input
// (sign_byte=1 ‖ x ‖ y) to compute a negation via the point-sum primitive;
// here that is realized as a scalar multiplication by -1, which is the same
// curve operation under the hood.
func NegateG1(p [g1EncodedLen]byte) ([g1EncodedLen]byte, error) {
	g, err := DecodeG1(p)
	if err != nil {
		return [g1EncodedLen]byte{}, err
	}
	neg := new(bn256.G1)
	neg.ScalarMult(g, big.NewInt(-1))
	return EncodeG1(neg), nil
}

// identityG1 returns the little-endian encoding of the G1 identity element O,
// obtained as P + negate(P) for any non-identity P (the curve's generator).
func identityG1() [g1EncodedLen]byte {
	gen := new(bn256.G1).ScalarBaseMult(big.NewInt(1))
	neg := new(bn256.G1).ScalarMult(gen, big.NewInt(-1))
	sum := new(bn256.G1).Add(gen, neg)
	return EncodeG1(sum)
}
