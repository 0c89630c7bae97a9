// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package receipt

import (
	"bytes"
	"testing"
)

func TestJournalRoundTrip(t *testing.T) {
	cases := []*Journal{
		{
			Class:             INCOME_THRESHOLD,
			Threshold:         500000,
			Meets:             true,
			PaymentCount:      12,
			HistoryCommitment: [32]byte{1, 2, 3},
		},
		{
			Class:             INCOME_RANGE,
			Min:               400000,
			Max:               600000,
			InRange:           true,
			PaymentCount:      6,
			HistoryCommitment: [32]byte{4, 5, 6},
		},
		{
			Class:             AVERAGE_INCOME,
			Threshold:         450000,
			Meets:             false,
			PaymentCount:      24,
			HistoryCommitment: [32]byte{7},
		},
		{
			Class:             CREDIT_SCORE,
			CreditThreshold:   700,
			Meets:             true,
			PaymentCount:      3,
			HistoryCommitment: [32]byte{8},
		},
		{
			Class:             BALANCE,
			Balance:           1000000,
			Meets:             true,
			PaymentCount:      1,
			HistoryCommitment: [32]byte{9},
		},
		{
			Class:             PAYMENT,
			SalaryCommitment:  [32]byte{10},
			PaymentCommitment: [32]byte{11},
			AmountsMatch:      true,
		},
	}

	for _, want := range cases {
		encoded, err := EncodeJournal(want)
		if err != nil {
			t.Fatalf("class %s: EncodeJournal: %v", want.Class, err)
		}
		if len(encoded) != schemaLen(want.Class) {
			t.Fatalf("class %s: encoded length %d != schema length %d", want.Class, len(encoded), schemaLen(want.Class))
		}

		got, err := DecodeJournal(want.Class, encoded)
		if err != nil {
			t.Fatalf("class %s: DecodeJournal: %v", want.Class, err)
		}
		if *got != *want {
			t.Fatalf("class %s: round trip mismatch: got %+v, want %+v", want.Class, got, want)
		}

		reencoded, err := EncodeJournal(got)
		if err != nil {
			t.Fatalf("class %s: re-encode: %v", want.Class, err)
		}
		if !bytes.Equal(reencoded, encoded) {
			t.Fatalf("class %s: re-encoded bytes differ from original", want.Class)
		}
	}
}

func TestDecodeJournal_MalformedShortInput(t *testing.T) {
	_, err := DecodeJournal(INCOME_THRESHOLD, make([]byte, 10))
	if err != ErrMalformedJournal {
		t.Fatalf("expected ErrMalformedJournal, got %v", err)
	}
}

func TestDecodeJournal_UnknownClass(t *testing.T) {
	_, err := DecodeJournal(ProofClass(99), make([]byte, 100))
	if err != ErrUnknownProofClass {
		t.Fatalf("expected ErrUnknownProofClass, got %v", err)
	}
}

func TestDecodeJournal_ExtraTrailingBytesIgnored(t *testing.T) {
	want := &Journal{Class: PAYMENT, SalaryCommitment: [32]byte{1}, PaymentCommitment: [32]byte{2}, AmountsMatch: true}
	encoded, _ := EncodeJournal(want)
	padded := append(encoded, 0xFF, 0xFF, 0xFF)

	got, err := DecodeJournal(PAYMENT, padded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got != *want {
		t.Fatalf("trailing bytes should not affect decode: got %+v, want %+v", got, want)
	}
}
