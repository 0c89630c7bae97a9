// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package receipt

import (
	"errors"
	"sync"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/privapay/groth16"
)

// ErrNotOwner is returned when a caller other than the registry's owner
// attempts to register or replace a circuit binding.
var ErrNotOwner = errors.New("receipt: caller is not the registry owner")

// circuitBinding is the registered verifying key and circuit identity for one
// proof class.
type circuitBinding struct {
	circuitID [32]byte
	vk        groth16.VerifyingKey
}

// Registry maps each proof class to the verifying key its journal must
// verify under, and the circuit id its receipts must carry. Registration is
// owner-gated: only the configured owner address may register or replace a
// binding, mirroring how the core's other owner-gated tables are guarded.
type Registry struct {
	mu       sync.RWMutex
	owner    common.Address
	bindings map[ProofClass]circuitBinding
}

// NewRegistry constructs an empty registry whose registration calls are
// gated to owner.
func NewRegistry(owner common.Address) *Registry {
	return &Registry{
		owner:    owner,
		bindings: make(map[ProofClass]circuitBinding),
	}
}

// Register binds class to (circuitID, vk). Only caller == r.owner may call
// this; re-registering an already-bound class replaces the binding, since
// verifying keys are rotated by redeploying the owner-controlled registry
// entry rather than by an on-chain governance vote (out of scope here).
func (r *Registry) Register(caller common.Address, class ProofClass, circuitID [32]byte, vk groth16.VerifyingKey) error {
	if caller != r.owner {
		return ErrNotOwner
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[class] = circuitBinding{circuitID: circuitID, vk: vk}
	return nil
}

// Lookup returns the circuit id and verifying key registered for class, or
// ErrUnregisteredCircuit if no binding exists.
func (r *Registry) Lookup(class ProofClass) ([32]byte, *groth16.VerifyingKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[class]
	if !ok {
		return [32]byte{}, nil, ErrUnregisteredCircuit
	}
	vk := b.vk
	return b.circuitID, &vk, nil
}

// Owner returns the registry's owner address.
func (r *Registry) Owner() common.Address {
	return r.owner
}
