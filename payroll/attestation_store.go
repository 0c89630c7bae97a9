// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package payroll

import (
	"github.com/luxfi/geth/common"
	"github.com/luxfi/privapay/receipt"
)

// Get returns employee's current non-expired attestation of class, or
// (nil, false) if absent, expired, or no longer honorable (§4.5).
//
// A DEVELOPMENT-mode attestation stops being honored once the contract has
// moved to PRODUCTION, unless its class was explicitly whitelisted via
// SetDevelopmentModeWhitelist — a DEVELOPMENT attestation only ever passed
// a format-only check, and PRODUCTION mode implies that is no longer
// acceptable by default (§9 open question, resolved in SPEC_FULL.md §5.3).
func (o *Orchestrator) Get(employee common.Address, class receipt.ProofClass, now uint64) (*VerifiedAttestation, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	byClass := o.attestations[employee]
	if byClass == nil {
		return nil, false
	}
	a, ok := byClass[class]
	if !ok || now >= a.ExpiresAt {
		return nil, false
	}
	if a.Mode == ModeDevelopment && o.Mode == ModeProduction && !o.developmentModeWhitelist[class] {
		return nil, false
	}
	return a, true
}
