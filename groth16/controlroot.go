// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package groth16

import "bytes"

// DefaultControlRoot and DefaultControlID are the slots for the zkVM's
// control-root and control-id constants: the set of recursion-circuit
// identities the wrapping Groth16 proof is allowed to have been produced
// over, and the single identity used when a circuit makes no further
// recursive calls. Both are zero-valued here, and nothing in this module
// reads them.
var (
	DefaultControlRoot = [32]byte{}
	DefaultControlID   = [32]byte{}
)

// VerifyControlRoot checks that receiptControlRoot is a member of
// allowedRoots. A circuit identity is really a member of a root set rather
// than a single fixed digest: the wrapping proof system recursively
// aggregates many possible recursion-circuit versions under one root, and
// a verifying key registered with a non-zero ControlRoot is asserting
// membership in that root, not equality with one fixed circuit id.
//
// Nothing in this module calls VerifyControlRoot: receipt.Decode and the
// payroll verification path check only circuit-id equality, whatever
// ControlRoot the registered verifying key carries.
func VerifyControlRoot(receiptControlRoot [32]byte, allowedRoots [][32]byte) bool {
	for _, root := range allowedRoots {
		if bytes.Equal(receiptControlRoot[:], root[:]) {
			return true
		}
	}
	return false
}
