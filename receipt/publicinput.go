// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package receipt

import "github.com/zeebo/blake3"

// DerivePublicInput computes the single Groth16 public input a wrapping
// circuit's journal digest is bound to: H("journal:v1" ‖ circuit_id ‖
// journal_bytes). The spec leaves the public-input vector's derivation from
// a structured journal abstract; this follows the convention real zkVM
// receipts use (binding the wrapping SNARK to a digest of the journal
// rather than to its individual structured fields), keeping groth16.Verify
// itself journal-shape-agnostic.
func DerivePublicInput(circuitID [32]byte, journalBytes []byte) [32]byte {
	h := blake3.New()
	h.Write([]byte("journal:v1"))
	h.Write(circuitID[:])
	h.Write(journalBytes)

	var out [32]byte
	digest := h.Digest()
	digest.Read(out[:])
	return out
}
