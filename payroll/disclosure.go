// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package payroll

import (
	"github.com/luxfi/geth/common"
	"github.com/luxfi/privapay/receipt"
)

// GrantDisclosure lets employee authorize verifier to query attestations of
// family over employee's own record, for durationNanos starting at now.
func (o *Orchestrator) GrantDisclosure(employee, verifier common.Address, family ClassFamily, now uint64, durationNanos uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.disclosures[employee] = append(o.disclosures[employee], &Disclosure{
		Verifier:  verifier,
		Family:    family,
		ExpiresAt: now + durationNanos,
		Active:    true,
	})
}

// RevokeDisclosures deactivates every disclosure employee has granted to
// verifier, regardless of family.
func (o *Orchestrator) RevokeDisclosures(employee, verifier common.Address) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, d := range o.disclosures[employee] {
		if d.Verifier == verifier {
			d.Active = false
		}
	}
}

// SetAuditor adds or removes addr from the administratively maintained
// auditor roster. Owner-gated.
func (o *Orchestrator) SetAuditor(caller, addr common.Address, enabled bool) error {
	if caller != o.Owner {
		return ErrUnauthorized
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if enabled {
		o.auditorRoster[addr] = true
	} else {
		delete(o.auditorRoster, addr)
	}
	return nil
}

// hasLiveDisclosure reports whether employee has an active, unexpired
// disclosure granting caller access to class, honoring FULL_AUDIT's extra
// auditor-roster requirement. Caller must hold at least a read lock.
func (o *Orchestrator) hasLiveDisclosure(employee, caller common.Address, class receipt.ProofClass, now uint64) bool {
	for _, d := range o.disclosures[employee] {
		if d.Verifier != caller || !d.Active || now >= d.ExpiresAt {
			continue
		}
		if !familyGrantsClass(d.Family, class) {
			continue
		}
		if d.Family == FamilyFullAudit && !o.auditorRoster[caller] {
			continue
		}
		return true
	}
	return false
}

// VerifyRequirement answers whether employee's attestation of class meets
// requiredThreshold, on behalf of caller (§4.5).
//
// Authorization: caller must be the contract owner, the employee itself, or
// hold a live, type-matching disclosure; otherwise ErrUnauthorized.
//
// For threshold-family classes (INCOME_THRESHOLD, AVERAGE_INCOME,
// CREDIT_SCORE, BALANCE), the check is attestation.Threshold >=
// requiredThreshold. For INCOME_RANGE, the check is attestation.Min <=
// requiredThreshold <= attestation.Max.
func (o *Orchestrator) VerifyRequirement(caller, employee common.Address, class receipt.ProofClass, requiredThreshold uint64, now uint64) (bool, error) {
	o.mu.RLock()
	authorized := caller == o.Owner || caller == employee || o.hasLiveDisclosure(employee, caller, class, now)
	o.mu.RUnlock()
	if !authorized {
		return false, ErrUnauthorized
	}

	a, ok := o.Get(employee, class, now)
	if !ok || !a.ResultBit {
		return false, nil
	}

	if class == receipt.INCOME_RANGE {
		return a.Params.Min <= requiredThreshold && requiredThreshold <= a.Params.Max, nil
	}
	return a.Params.Threshold >= requiredThreshold, nil
}
