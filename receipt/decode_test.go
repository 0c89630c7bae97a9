// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package receipt

import "testing"

func buildReceiptBytes(circuitID [32]byte, a [64]byte, bProverOrder [128]byte, c [64]byte, journal []byte) []byte {
	out := make([]byte, 0, receiptHeaderLen+len(journal))
	out = append(out, circuitID[:]...)
	out = append(out, a[:]...)
	out = append(out, bProverOrder[:]...)
	out = append(out, c[:]...)
	out = append(out, journal...)
	return out
}

// TestDecode_G2ComponentSwap verifies that the prover's [c1, c0]-per-coordinate
// wire order is canonicalized to [c0, c1] during Decode.
func TestDecode_G2ComponentSwap(t *testing.T) {
	var circuitID [32]byte
	circuitID[0] = 0xAB

	var bProverOrder [128]byte
	// x coordinate: c1 then c0
	bProverOrder[0] = 0x11 // x.c1[0]
	bProverOrder[32] = 0x22 // x.c0[0]
	// y coordinate: c1 then c0
	bProverOrder[64] = 0x33 // y.c1[0]
	bProverOrder[96] = 0x44 // y.c0[0]

	receiptBytes := buildReceiptBytes(circuitID, [64]byte{}, bProverOrder, [64]byte{}, []byte{0xDE, 0xAD})

	proof, journal, err := Decode(receiptBytes, circuitID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// canonical order: x.c0 first, then x.c1; y.c0 then y.c1
	if proof.B[0] != 0x22 {
		t.Fatalf("expected x.c0 first byte 0x22, got %#x", proof.B[0])
	}
	if proof.B[32] != 0x11 {
		t.Fatalf("expected x.c1 first byte 0x11, got %#x", proof.B[32])
	}
	if proof.B[64] != 0x44 {
		t.Fatalf("expected y.c0 first byte 0x44, got %#x", proof.B[64])
	}
	if proof.B[96] != 0x33 {
		t.Fatalf("expected y.c1 first byte 0x33, got %#x", proof.B[96])
	}

	if len(journal) != 2 || journal[0] != 0xDE || journal[1] != 0xAD {
		t.Fatalf("unexpected journal bytes: %x", journal)
	}
}

func TestDecode_CircuitMismatch(t *testing.T) {
	var circuitID, wrongID [32]byte
	circuitID[0] = 1
	wrongID[0] = 2

	receiptBytes := buildReceiptBytes(circuitID, [64]byte{}, [128]byte{}, [64]byte{}, nil)

	_, _, err := Decode(receiptBytes, wrongID)
	if err != ErrCircuitMismatch {
		t.Fatalf("expected ErrCircuitMismatch, got %v", err)
	}
}

func TestDecode_MalformedReceiptTooShort(t *testing.T) {
	_, _, err := Decode(make([]byte, receiptHeaderLen-1), [32]byte{})
	if err != ErrMalformedReceipt {
		t.Fatalf("expected ErrMalformedReceipt, got %v", err)
	}
}

func TestDecode_EmptyJournalIsLegal(t *testing.T) {
	var circuitID [32]byte
	receiptBytes := buildReceiptBytes(circuitID, [64]byte{}, [128]byte{}, [64]byte{}, nil)

	_, journal, err := Decode(receiptBytes, circuitID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(journal) != 0 {
		t.Fatalf("expected empty journal, got %d bytes", len(journal))
	}
}
