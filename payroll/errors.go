// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package payroll

import "errors"

// Error taxonomy: user-facing and stable. Each sentinel names one failure
// mode of the orchestration design. The orchestrator itself returns
// ErrNotAnEmployee, ErrUnauthorized, ErrReplayDetected, ErrHistoryMismatch,
// ErrInvalidParams and ErrClaimMismatch. Failures from decoding and
// verification inside OnVerify surface as the receipt and groth16 packages'
// own sentinels (for example receipt.ErrUnregisteredCircuit), not as the
// same-named values below.
var (
	ErrNotAnEmployee       = errors.New("payroll: caller is not a registered employee")
	ErrUnauthorized        = errors.New("payroll: caller is not authorized for this query")
	ErrReplayDetected      = errors.New("payroll: receipt already admitted")
	ErrHistoryMismatch     = errors.New("payroll: submitted history commitment does not match the ledger")
	ErrInvalidParams       = errors.New("payroll: claimed parameters are invalid for this proof class")
	ErrUnregisteredCircuit = errors.New("payroll: no circuit registered for proof class")
	ErrMalformedReceipt    = errors.New("payroll: malformed receipt")
	ErrMalformedJournal    = errors.New("payroll: malformed journal")
	ErrCircuitMismatch     = errors.New("payroll: circuit id does not match expected circuit")
	ErrPublicInputMismatch = errors.New("payroll: public input count does not match verifying key")
	ErrVerifierError       = errors.New("payroll: verifier error")
	ErrClaimMismatch       = errors.New("payroll: journal-recovered parameters do not match the claimed parameters")
)
