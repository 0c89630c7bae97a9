// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package receipt decodes opaque zkVM receipts into typed Groth16 proofs and
// journals, and maintains the per-proof-class circuit-identity and
// verifying-key registration table.
package receipt

import "errors"

// ProofClass is the closed set of journal shapes the core understands.
type ProofClass uint8

const (
	PAYMENT ProofClass = iota
	INCOME_THRESHOLD
	INCOME_RANGE
	AVERAGE_INCOME
	CREDIT_SCORE
	BALANCE
)

func (c ProofClass) String() string {
	switch c {
	case PAYMENT:
		return "PAYMENT"
	case INCOME_THRESHOLD:
		return "INCOME_THRESHOLD"
	case INCOME_RANGE:
		return "INCOME_RANGE"
	case AVERAGE_INCOME:
		return "AVERAGE_INCOME"
	case CREDIT_SCORE:
		return "CREDIT_SCORE"
	case BALANCE:
		return "BALANCE"
	default:
		return "UNKNOWN"
	}
}

var (
	ErrMalformedReceipt    = errors.New("receipt: malformed receipt")
	ErrCircuitMismatch     = errors.New("receipt: circuit id does not match expected circuit")
	ErrMalformedJournal    = errors.New("receipt: malformed journal")
	ErrUnregisteredCircuit = errors.New("receipt: no circuit registered for proof class")
	ErrUnknownProofClass   = errors.New("receipt: unknown proof class")
)

// circuitIDLen is the width of the embedded circuit-identity digest in the
// on-wire receipt layout.
const circuitIDLen = 32

// Header sizes for the fixed prefix of an on-wire receipt: circuit id,
// then the Groth16 proof (A: 64 bytes G1, B: 128 bytes G2 in the prover's
// [c1,c0]-per-coordinate order, C: 64 bytes G1). Everything after the proof
// is the journal.
const (
	proofALen = 64
	proofBLen = 128
	proofCLen = 64

	receiptHeaderLen = circuitIDLen + proofALen + proofBLen + proofCLen
)
