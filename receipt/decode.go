// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package receipt

import "github.com/luxfi/privapay/groth16"

// On-wire receipt layout: circuit_id(32) ‖ A(64) ‖ B(128) ‖ C(64) ‖ journal(n).
// The prover emits B's two Fp2 coordinates in [c1, c0] order; Decode
// canonicalizes to the verifier's [c0, c1] order before handing the proof to
// groth16.Verify. This swap is distinct from groth16's endianness transcoding
// and happens once, here, at ingestion.
const (
	circuitIDOff = 0
	proofAOff    = circuitIDOff + circuitIDLen
	proofBOff    = proofAOff + proofALen
	proofCOff    = proofBOff + proofBLen
	journalOff   = proofCOff + proofCLen
)

// fp2LimbLen is the width of a single Fp2 coefficient (c0 or c1) within a G2
// coordinate.
const fp2LimbLen = 32

// swapFp2Coordinate reorders one 64-byte G2 coordinate (x or y) from the
// prover's [c1, c0] wire order to the verifier's canonical [c0, c1] order.
func swapFp2Coordinate(coord []byte) [2 * fp2LimbLen]byte {
	var out [2 * fp2LimbLen]byte
	copy(out[:fp2LimbLen], coord[fp2LimbLen:2*fp2LimbLen]) // c0 <- second half
	copy(out[fp2LimbLen:], coord[:fp2LimbLen])             // c1 <- first half
	return out
}

// canonicalizeG2 swaps Fp2 component order for both the x and y coordinates
// of a 128-byte G2 point.
func canonicalizeG2(b [128]byte) [128]byte {
	var out [128]byte
	x := swapFp2Coordinate(b[0:64])
	y := swapFp2Coordinate(b[64:128])
	copy(out[0:64], x[:])
	copy(out[64:128], y[:])
	return out
}

// Decode parses receiptBytes into a Groth16 proof and the raw journal bytes,
// verifying the embedded circuit id matches expectedCircuitID.
//
// Steps (§4.1):
//  1. Structural decode: receiptBytes must be at least receiptHeaderLen,
//     else ErrMalformedReceipt.
//  2. circuit_id equality check against expectedCircuitID, else
//     ErrCircuitMismatch.
//  3. Canonicalize B's Fp2 component order.
//  4. Return the proof and the trailing journal bytes (possibly empty).
func Decode(receiptBytes []byte, expectedCircuitID [32]byte) (*groth16.Proof, []byte, error) {
	if len(receiptBytes) < receiptHeaderLen {
		return nil, nil, ErrMalformedReceipt
	}

	var circuitID [32]byte
	copy(circuitID[:], receiptBytes[circuitIDOff:circuitIDOff+circuitIDLen])
	if circuitID != expectedCircuitID {
		return nil, nil, ErrCircuitMismatch
	}

	var a [64]byte
	copy(a[:], receiptBytes[proofAOff:proofAOff+proofALen])

	var bRaw [128]byte
	copy(bRaw[:], receiptBytes[proofBOff:proofBOff+proofBLen])
	b := canonicalizeG2(bRaw)

	var c [64]byte
	copy(c[:], receiptBytes[proofCOff:proofCOff+proofCLen])

	journal := receiptBytes[journalOff:]

	return &groth16.Proof{A: a, B: b, C: c}, journal, nil
}
