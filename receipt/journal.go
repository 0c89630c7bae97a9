// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package receipt

import "encoding/binary"

// Journal is the decoded, typed form of a proof class's fixed-layout
// journal. Not every field is populated for every class; callers branch on
// Class to know which fields apply (mirroring the per-class journal schema
// table).
type Journal struct {
	Class ProofClass

	Threshold         uint64 // INCOME_THRESHOLD, AVERAGE_INCOME (8 bytes)
	CreditThreshold   uint32 // CREDIT_SCORE (4 bytes)
	Balance           uint64 // BALANCE (8 bytes)
	Min, Max          uint64 // INCOME_RANGE (8 bytes each)
	Meets             bool   // threshold/average/credit/balance classes
	InRange           bool   // INCOME_RANGE
	PaymentCount      uint32 // all classes except PAYMENT
	HistoryCommitment [32]byte

	SalaryCommitment  [32]byte // PAYMENT
	PaymentCommitment [32]byte // PAYMENT
	AmountsMatch      bool     // PAYMENT
}

// schemaLen returns the total byte length of class's journal schema, or 0
// for an unknown class.
func schemaLen(class ProofClass) int {
	switch class {
	case INCOME_THRESHOLD, AVERAGE_INCOME:
		return 8 + 1 + 4 + 32 // 45
	case INCOME_RANGE:
		return 8 + 8 + 1 + 4 + 32 // 53
	case CREDIT_SCORE:
		return 4 + 1 + 4 + 32 // 41
	case PAYMENT:
		return 32 + 32 + 1 // 65
	case BALANCE:
		// The journal table has no dedicated BALANCE row; by structural
		// analogy to INCOME_THRESHOLD (a scalar compared against a claimed
		// bound, with payment_count and history_commitment) BALANCE reuses
		// that 45-byte layout with Balance standing in for Threshold.
		return 8 + 1 + 4 + 32 // 45
	default:
		return 0
	}
}

func decodeBool(b byte) bool { return b != 0 }

func encodeBool(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// DecodeJournal parses journalBytes per class's fixed layout. A journal
// shorter than the schema's total length yields ErrMalformedJournal.
func DecodeJournal(class ProofClass, journalBytes []byte) (*Journal, error) {
	want := schemaLen(class)
	if want == 0 {
		return nil, ErrUnknownProofClass
	}
	if len(journalBytes) < want {
		return nil, ErrMalformedJournal
	}

	j := &Journal{Class: class}
	off := 0

	switch class {
	case INCOME_THRESHOLD, AVERAGE_INCOME:
		j.Threshold = binary.LittleEndian.Uint64(journalBytes[off : off+8])
		off += 8
		j.Meets = decodeBool(journalBytes[off])
		off++
		j.PaymentCount = binary.LittleEndian.Uint32(journalBytes[off : off+4])
		off += 4
		copy(j.HistoryCommitment[:], journalBytes[off:off+32])

	case INCOME_RANGE:
		j.Min = binary.LittleEndian.Uint64(journalBytes[off : off+8])
		off += 8
		j.Max = binary.LittleEndian.Uint64(journalBytes[off : off+8])
		off += 8
		j.InRange = decodeBool(journalBytes[off])
		off++
		j.PaymentCount = binary.LittleEndian.Uint32(journalBytes[off : off+4])
		off += 4
		copy(j.HistoryCommitment[:], journalBytes[off:off+32])

	case CREDIT_SCORE:
		j.CreditThreshold = binary.LittleEndian.Uint32(journalBytes[off : off+4])
		off += 4
		j.Meets = decodeBool(journalBytes[off])
		off++
		j.PaymentCount = binary.LittleEndian.Uint32(journalBytes[off : off+4])
		off += 4
		copy(j.HistoryCommitment[:], journalBytes[off:off+32])

	case BALANCE:
		j.Balance = binary.LittleEndian.Uint64(journalBytes[off : off+8])
		off += 8
		j.Meets = decodeBool(journalBytes[off])
		off++
		j.PaymentCount = binary.LittleEndian.Uint32(journalBytes[off : off+4])
		off += 4
		copy(j.HistoryCommitment[:], journalBytes[off:off+32])

	case PAYMENT:
		copy(j.SalaryCommitment[:], journalBytes[off:off+32])
		off += 32
		copy(j.PaymentCommitment[:], journalBytes[off:off+32])
		off += 32
		j.AmountsMatch = decodeBool(journalBytes[off])

	default:
		return nil, ErrUnknownProofClass
	}

	return j, nil
}

// EncodeJournal is the inverse of DecodeJournal; DecodeJournal(r.Class,
// EncodeJournal(r)) == r for every valid record r in every journal schema
// (bit-exact round trip).
func EncodeJournal(j *Journal) ([]byte, error) {
	want := schemaLen(j.Class)
	if want == 0 {
		return nil, ErrUnknownProofClass
	}
	out := make([]byte, want)
	off := 0

	switch j.Class {
	case INCOME_THRESHOLD, AVERAGE_INCOME:
		binary.LittleEndian.PutUint64(out[off:off+8], j.Threshold)
		off += 8
		out[off] = encodeBool(j.Meets)
		off++
		binary.LittleEndian.PutUint32(out[off:off+4], j.PaymentCount)
		off += 4
		copy(out[off:off+32], j.HistoryCommitment[:])

	case INCOME_RANGE:
		binary.LittleEndian.PutUint64(out[off:off+8], j.Min)
		off += 8
		binary.LittleEndian.PutUint64(out[off:off+8], j.Max)
		off += 8
		out[off] = encodeBool(j.InRange)
		off++
		binary.LittleEndian.PutUint32(out[off:off+4], j.PaymentCount)
		off += 4
		copy(out[off:off+32], j.HistoryCommitment[:])

	case CREDIT_SCORE:
		binary.LittleEndian.PutUint32(out[off:off+4], j.CreditThreshold)
		off += 4
		out[off] = encodeBool(j.Meets)
		off++
		binary.LittleEndian.PutUint32(out[off:off+4], j.PaymentCount)
		off += 4
		copy(out[off:off+32], j.HistoryCommitment[:])

	case BALANCE:
		binary.LittleEndian.PutUint64(out[off:off+8], j.Balance)
		off += 8
		out[off] = encodeBool(j.Meets)
		off++
		binary.LittleEndian.PutUint32(out[off:off+4], j.PaymentCount)
		off += 4
		copy(out[off:off+32], j.HistoryCommitment[:])

	case PAYMENT:
		copy(out[off:off+32], j.SalaryCommitment[:])
		off += 32
		copy(out[off:off+32], j.PaymentCommitment[:])
		off += 32
		out[off] = encodeBool(j.AmountsMatch)

	default:
		return nil, ErrUnknownProofClass
	}

	return out, nil
}
