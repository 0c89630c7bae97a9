// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package payroll

import (
	"sync"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/privapay/groth16"
	"github.com/luxfi/privapay/history"
	"github.com/luxfi/privapay/receipt"
)

// Orchestrator is the verification state machine: it admits receipts,
// tracks pending verifications keyed by receipt hash, and on a verifier
// callback records or discards a VerifiedAttestation. Mirrors the two-phase
// admit-now/complete-later split of a cross-chain bridge request, since both
// are "accept now, resolve via a later message" state machines.
type Orchestrator struct {
	mu sync.RWMutex

	Owner common.Address
	Mode  VerificationMode

	employees map[common.Address]bool
	ledger    map[common.Address][]PaymentRecord

	pending map[[32]byte]*PendingProof
	replay  map[[32]byte]bool

	attestations map[common.Address]map[receipt.ProofClass]*VerifiedAttestation

	disclosures   map[common.Address][]*Disclosure // keyed by employee
	auditorRoster map[common.Address]bool

	// developmentModeWhitelist names the proof classes still permitted to
	// be honored on a DEVELOPMENT-mode attestation after the contract has
	// moved to PRODUCTION (§9 open question, resolved in SPEC_FULL.md §5.3).
	developmentModeWhitelist map[receipt.ProofClass]bool

	circuits *receipt.Registry
}

// NewOrchestrator constructs an empty orchestrator owned by owner, with its
// circuit registry also gated to owner.
func NewOrchestrator(owner common.Address) *Orchestrator {
	return &Orchestrator{
		Owner:                    owner,
		Mode:                     ModeProduction,
		employees:                make(map[common.Address]bool),
		ledger:                   make(map[common.Address][]PaymentRecord),
		pending:                  make(map[[32]byte]*PendingProof),
		replay:                   make(map[[32]byte]bool),
		attestations:             make(map[common.Address]map[receipt.ProofClass]*VerifiedAttestation),
		disclosures:              make(map[common.Address][]*Disclosure),
		auditorRoster:            make(map[common.Address]bool),
		developmentModeWhitelist: make(map[receipt.ProofClass]bool),
		circuits:                 receipt.NewRegistry(owner),
	}
}

// RegisterEmployee admits addr as a registered employee. Owner-gated.
func (o *Orchestrator) RegisterEmployee(caller, addr common.Address) error {
	if caller != o.Owner {
		return ErrUnauthorized
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.employees[addr] = true
	return nil
}

// IsEmployee reports whether addr is a registered employee.
func (o *Orchestrator) IsEmployee(addr common.Address) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.employees[addr]
}

// RecordPayment appends a commitment to employee's payment ledger.
// Owner-gated: the ledger is populated by the payroll operator, not by
// employees themselves.
func (o *Orchestrator) RecordPayment(caller, employee common.Address, commitment [32]byte) error {
	if caller != o.Owner {
		return ErrUnauthorized
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ledger[employee] = append(o.ledger[employee], PaymentRecord{Commitment: commitment})
	return nil
}

// historyCommitment recomputes the current history commitment for employee
// from its payment ledger (§4.6). Caller must hold at least a read lock.
func (o *Orchestrator) historyCommitment(employee common.Address) [32]byte {
	records := o.ledger[employee]
	commitments := make([][32]byte, len(records))
	for i, r := range records {
		commitments[i] = r.Commitment
	}
	return history.Recompute(commitments)
}

// SetMode transitions the verification mode. Owner-gated; every transition
// is expected to be logged by the caller (contract.go), since the core
// itself has no logging surface of its own.
func (o *Orchestrator) SetMode(caller common.Address, mode VerificationMode) error {
	if caller != o.Owner {
		return ErrUnauthorized
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Mode = mode
	return nil
}

// SetDevelopmentModeWhitelist toggles whether class's attestations remain
// honorable by VerifyRequirement after a transition to PRODUCTION, even if
// they were produced while in DEVELOPMENT mode. Owner-gated.
func (o *Orchestrator) SetDevelopmentModeWhitelist(caller common.Address, class receipt.ProofClass, allowed bool) error {
	if caller != o.Owner {
		return ErrUnauthorized
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if allowed {
		o.developmentModeWhitelist[class] = true
	} else {
		delete(o.developmentModeWhitelist, class)
	}
	return nil
}

// RegisterCircuit binds proof class to (circuitID, vk). Owner-gated via the
// underlying receipt.Registry.
func (o *Orchestrator) RegisterCircuit(caller common.Address, class receipt.ProofClass, circuitID [32]byte, vk groth16.VerifyingKey) error {
	return o.circuits.Register(caller, class, circuitID, vk)
}

// SubmitProof is the employee-facing admission entrypoint (§4.4 steps 1-6).
// On success it returns the computed receipt hash; the pending proof is
// resolved by a later, separate OnVerify(receiptHash) call, which runs the
// verification itself.
func (o *Orchestrator) SubmitProof(
	caller common.Address,
	class receipt.ProofClass,
	params Params,
	receiptBytes []byte,
	claimedHistoryCommitment [32]byte,
	expiresInDays uint32,
	now uint64,
) ([32]byte, error) {
	if !o.IsEmployee(caller) {
		return [32]byte{}, ErrNotAnEmployee
	}
	if err := params.validate(class); err != nil {
		return [32]byte{}, err
	}

	receiptHash := ReceiptHash(receiptBytes)

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.replay[receiptHash] {
		return [32]byte{}, ErrReplayDetected
	}

	if o.historyCommitment(caller) != claimedHistoryCommitment {
		return [32]byte{}, ErrHistoryMismatch
	}

	// Replay-log insertion happens before the pending record so a
	// concurrent resubmission of the same bytes also fails (§5 ordering
	// guarantees).
	o.replay[receiptHash] = true

	o.pending[receiptHash] = &PendingProof{
		Employee:          caller,
		ProofClass:        class,
		Params:            params,
		HistoryCommitment: claimedHistoryCommitment,
		ReceiptHash:       receiptHash,
		ReceiptBytes:      receiptBytes,
		ExpiresInDays:     expiresInDays,
		SubmittedAt:       now,
	}

	return receiptHash, nil
}

// VerifyOutcome is the result of actually running verification against a
// pending proof's admitted receipt bytes: whether the Groth16 equation held
// (or the DEVELOPMENT-mode format check passed), plus the journal fields
// the orchestrator cross-checks against what was claimed at submission.
// It is produced exclusively by DispatchVerification — nothing in this
// package accepts a VerifyOutcome from outside that call, since a
// caller-supplied verdict is exactly the forgery §8 property 4 rules out.
type VerifyOutcome struct {
	Verified          bool
	Params            Params
	PaymentCount      uint32
	HistoryCommitment [32]byte
}

// OnVerify resolves the pending proof identified by receiptHash (§4.4
// callback, §5 suspension point). It re-derives the outcome itself by
// running DispatchVerification against the receipt bytes SubmitProof
// admitted — the caller only names which pending proof to resolve, it
// cannot supply or influence the verdict. It always removes the pending
// record. On success it replaces any existing attestation of the same
// class for the employee.
//
// Returns whether the proof verified; (false, nil) covers both "nothing was
// pending" (a stale or duplicate callback is informational, §4.4 "a stale
// pending entry is... safe to ignore when absent") and "verification ran
// but failed".
func (o *Orchestrator) OnVerify(receiptHash [32]byte, now uint64) (bool, error) {
	o.mu.Lock()
	p, ok := o.pending[receiptHash]
	if !ok {
		o.mu.Unlock()
		return false, nil
	}
	delete(o.pending, receiptHash)
	mode := o.Mode
	o.mu.Unlock()

	outcome, err := o.DispatchVerification(p, p.ReceiptBytes)
	if err != nil {
		return false, err
	}
	if !outcome.Verified {
		return false, nil
	}
	if outcome.Params != p.Params || outcome.HistoryCommitment != p.HistoryCommitment {
		return false, ErrClaimMismatch
	}

	attestation := &VerifiedAttestation{
		ProofClass:        p.ProofClass,
		Params:            outcome.Params,
		ResultBit:         true,
		PaymentCount:      outcome.PaymentCount,
		HistoryCommitment: outcome.HistoryCommitment,
		ReceiptHash:       receiptHash,
		VerifiedAt:        now,
		ExpiresAt:         now + uint64(p.ExpiresInDays)*86400*1_000_000_000,
		Mode:              mode,
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.attestations[p.Employee] == nil {
		o.attestations[p.Employee] = make(map[receipt.ProofClass]*VerifiedAttestation)
	}
	o.attestations[p.Employee][p.ProofClass] = attestation

	return true, nil
}

// ReceiptHash computes H("receipt:v1" ‖ receipt_bytes) (§3 Replay log).
func ReceiptHash(receiptBytes []byte) [32]byte {
	return domainHash("receipt:v1", receiptBytes)
}
