// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package groth16 implements the Groth16-over-BN254 verification engine: it
// parses a verifying key and a proof into curve points in the host chain's
// little-endian convention, computes the public-input linear combination,
// and decides validity via a four-term pairing-product check.
package groth16

import "errors"

// G1 coordinate width in the little-endian wire encoding: x and y, 32 bytes each.
const g1EncodedLen = 64

// G2 coordinate width: x_c0, x_c1, y_c0, y_c1, 32 bytes each.
const g2EncodedLen = 128

// VerifyingKey is a per-circuit, immutable-post-registration Groth16
// verifying key. All coordinates are 32-byte unsigned integers in
// little-endian byte order, matching the host chain's curve precompiles.
type VerifyingKey struct {
	AlphaG1 [g1EncodedLen]byte // G1 point (x, y)
	BetaG2  [g2EncodedLen]byte // G2 point (x_c0, x_c1, y_c0, y_c1)
	GammaG2 [g2EncodedLen]byte
	DeltaG2 [g2EncodedLen]byte

	// IC is the ordered sequence of G1 input-commitment points.
	// len(IC) = n_public_inputs + 1.
	IC [][g1EncodedLen]byte

	// ControlRoot is an optional commitment to the allowed set of circuit
	// identities this key accepts. It is stored at registration but not
	// consulted during verification; VerifyControlRoot is the standalone
	// membership check for it.
	ControlRoot [32]byte
}

// Proof is a Groth16 proof (A, B, C) in the verifier's canonical point
// encoding: A, C are G1; B is G2 with Fp2 components already in [c0, c1]
// canonical order (receipt.Decode performs the swap from the prover's wire
// order before constructing a Proof).
type Proof struct {
	A [g1EncodedLen]byte
	B [g2EncodedLen]byte
	C [g1EncodedLen]byte
}

var (
	// ErrPublicInputMismatch is returned when |vk.IC| != len(publicInputs)+1.
	ErrPublicInputMismatch = errors.New("groth16: public input count does not match verifying key")
	// ErrVerifierError wraps any host-curve-primitive failure (malformed
	// point encodings, unmarshal failures) without revealing internals.
	ErrVerifierError = errors.New("groth16: verifier error")
)
