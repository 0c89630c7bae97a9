// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package payroll implements the verification orchestrator, attestation
// store, and disclosure gate: the stateful core that ties the Groth16
// verifier and receipt decoder to a per-employee record of verified income
// and payment claims.
package payroll

import (
	"github.com/luxfi/geth/common"
	"github.com/luxfi/privapay/receipt"
)

// Params is the caller-claimed public parameter set accompanying a proof
// submission. Which fields apply depends on the proof class: Threshold for
// INCOME_THRESHOLD/AVERAGE_INCOME/CREDIT_SCORE/BALANCE, Min/Max for
// INCOME_RANGE.
type Params struct {
	Threshold uint64
	Min, Max  uint64
}

// validate checks params' shape against class, per the submission contract:
// threshold-family classes require nothing beyond the field being present
// (zero is a legal threshold); INCOME_RANGE requires Max strictly greater
// than Min.
func (p Params) validate(class receipt.ProofClass) error {
	switch class {
	case receipt.INCOME_THRESHOLD, receipt.AVERAGE_INCOME, receipt.CREDIT_SCORE, receipt.BALANCE:
		return nil
	case receipt.INCOME_RANGE:
		if p.Max <= p.Min {
			return ErrInvalidParams
		}
		return nil
	default:
		return ErrInvalidParams
	}
}

// PaymentRecord is one entry in an employee's append-only payment ledger.
// Only the commitment is retained by the core; the cleartext amount is
// never represented here (§1 Non-goals).
type PaymentRecord struct {
	Commitment [32]byte
}

// PendingProof is the transient record created when a receipt is admitted
// for verification and removed once its callback resolves. Keyed by
// ReceiptHash.
//
// ReceiptBytes is retained so the resolving call can re-derive the outcome
// itself from the same bytes SubmitProof admitted, instead of accepting a
// caller-supplied verdict — the receipt the employee submitted is the only
// thing anyone is allowed to have proved anything about (§8 property 4).
type PendingProof struct {
	Employee          common.Address
	ProofClass        receipt.ProofClass
	Params            Params
	HistoryCommitment [32]byte
	ReceiptHash       [32]byte
	ReceiptBytes      []byte
	ExpiresInDays     uint32
	SubmittedAt       uint64 // nanoseconds
}

// VerifiedAttestation is the persistent, per-employee, per-class record left
// behind by a successful verification callback. At most one entry exists per
// (employee, proof class) pair; invariant: ExpiresAt > VerifiedAt.
type VerifiedAttestation struct {
	ProofClass        receipt.ProofClass
	Params            Params
	ResultBit         bool
	PaymentCount      uint32
	HistoryCommitment [32]byte
	ReceiptHash       [32]byte
	VerifiedAt        uint64 // nanoseconds
	ExpiresAt         uint64 // nanoseconds

	// Mode records the VerificationMode in effect when this attestation was
	// produced, so a later transition to PRODUCTION can refuse to honor an
	// attestation that only ever passed a DEVELOPMENT-mode format check
	// (§9 open question, resolved in SPEC_FULL.md §5.3).
	Mode VerificationMode
}

// ClassFamily groups proof classes for disclosure-grant purposes: an
// employee grants a family, not an individual class, to a third party.
type ClassFamily string

const (
	FamilyIncomeAboveThreshold ClassFamily = "INCOME_ABOVE_THRESHOLD"
	FamilyIncomeRange          ClassFamily = "INCOME_RANGE"
	FamilyFullAudit            ClassFamily = "FULL_AUDIT"
)

// classesInFamily returns the proof classes a disclosure of family grants
// read access to.
func classesInFamily(family ClassFamily) []receipt.ProofClass {
	switch family {
	case FamilyIncomeAboveThreshold:
		return []receipt.ProofClass{receipt.INCOME_THRESHOLD, receipt.AVERAGE_INCOME, receipt.CREDIT_SCORE}
	case FamilyIncomeRange:
		return []receipt.ProofClass{receipt.INCOME_RANGE}
	case FamilyFullAudit:
		return []receipt.ProofClass{
			receipt.PAYMENT, receipt.INCOME_THRESHOLD, receipt.INCOME_RANGE,
			receipt.AVERAGE_INCOME, receipt.CREDIT_SCORE, receipt.BALANCE,
		}
	default:
		return nil
	}
}

// familyGrantsClass reports whether family grants read access to class.
func familyGrantsClass(family ClassFamily, class receipt.ProofClass) bool {
	for _, c := range classesInFamily(family) {
		if c == class {
			return true
		}
	}
	return false
}

// Disclosure is an employee-issued, time-bounded authorization letting
// Verifier query attestations of the given family over the granting
// employee.
type Disclosure struct {
	Verifier  common.Address
	Family    ClassFamily
	ExpiresAt uint64 // nanoseconds
	Active    bool
}

// VerificationMode selects how receipts are checked: PRODUCTION runs the
// full Groth16 pairing check; DEVELOPMENT substitutes a format-only check
// used solely during engineering bring-up (§6 Verification modes).
type VerificationMode uint8

const (
	ModeProduction VerificationMode = iota
	ModeDevelopment
)

func (m VerificationMode) String() string {
	if m == ModeDevelopment {
		return "DEVELOPMENT"
	}
	return "PRODUCTION"
}
