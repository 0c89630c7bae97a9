// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package payroll

import (
	"github.com/luxfi/privapay/groth16"
	"github.com/luxfi/privapay/receipt"
)

// DispatchVerification runs the actual proof check for a pending receipt
// (§4.3, §6 "Verifier collaborator"): given the receipt bytes admitted by
// SubmitProof and the pending record it produced, it decodes the receipt,
// runs the Groth16 (or DEVELOPMENT-mode) check, and maps the journal into
// the outcome. Comparing that outcome with the pending record's claims is
// left to OnVerify.
//
// This never touches Orchestrator state directly — OnVerify calls it and
// applies the result. It is exposed here as a plain method, rather than
// folded directly into OnVerify's body, so it can also be driven standalone
// in tests that only care about the decode-and-check behavior and not the
// pending-record bookkeeping.
func (o *Orchestrator) DispatchVerification(pending *PendingProof, receiptBytes []byte) (VerifyOutcome, error) {
	o.mu.RLock()
	mode := o.Mode
	o.mu.RUnlock()

	circuitID, vk, err := o.circuits.Lookup(pending.ProofClass)
	if err != nil {
		return VerifyOutcome{}, err
	}

	proof, journalBytes, err := receipt.Decode(receiptBytes, circuitID)
	if err != nil {
		return VerifyOutcome{}, err
	}

	journal, err := receipt.DecodeJournal(pending.ProofClass, journalBytes)
	if err != nil {
		return VerifyOutcome{}, err
	}

	outcome := journalToOutcome(pending.ProofClass, journal)

	if mode == ModeDevelopment {
		// Format-only check: the circuit digest matched and the journal was
		// long enough to decode; no cryptographic verification (§6
		// Verification modes, §9 open question on DEVELOPMENT-mode
		// whitelisting).
		outcome.Verified = true
		return outcome, nil
	}

	x := receipt.DerivePublicInput(circuitID, journalBytes)
	ok, err := groth16.Verify(vk, proof, [][32]byte{x})
	if err != nil {
		return VerifyOutcome{}, err
	}
	outcome.Verified = ok
	return outcome, nil
}

// journalToOutcome maps a decoded journal's fields into the outcome shape
// the orchestrator compares against a pending record's claims.
func journalToOutcome(class receipt.ProofClass, j *receipt.Journal) VerifyOutcome {
	switch class {
	case receipt.INCOME_THRESHOLD, receipt.AVERAGE_INCOME:
		return VerifyOutcome{
			Params:            Params{Threshold: j.Threshold},
			PaymentCount:      j.PaymentCount,
			HistoryCommitment: j.HistoryCommitment,
		}
	case receipt.INCOME_RANGE:
		return VerifyOutcome{
			Params:            Params{Min: j.Min, Max: j.Max},
			PaymentCount:      j.PaymentCount,
			HistoryCommitment: j.HistoryCommitment,
		}
	case receipt.CREDIT_SCORE:
		return VerifyOutcome{
			Params:            Params{Threshold: uint64(j.CreditThreshold)},
			PaymentCount:      j.PaymentCount,
			HistoryCommitment: j.HistoryCommitment,
		}
	case receipt.BALANCE:
		return VerifyOutcome{
			Params:            Params{Threshold: j.Balance},
			PaymentCount:      j.PaymentCount,
			HistoryCommitment: j.HistoryCommitment,
		}
	case receipt.PAYMENT:
		return VerifyOutcome{}
	default:
		return VerifyOutcome{}
	}
}
