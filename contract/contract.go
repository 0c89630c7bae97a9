// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package contract defines the interfaces a stateful precompiled contract
// implements to be wired into the Lux EVM, and the state-access surface the
// EVM grants it while running.
package contract

import (
	"errors"
	"math/big"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/privapay/precompileconfig"
)

// ErrOutOfGas is returned by a precompile's Run method when suppliedGas is
// insufficient to cover RequiredGas.
var ErrOutOfGas = errors.New("out of gas")

// StateDB is the subset of EVM state access a precompile needs: persistent
// key/value storage scoped to its own address.
type StateDB interface {
	GetState(addr common.Address, key common.Hash) common.Hash
	SetState(addr common.Address, key, value common.Hash)
	GetBalance(addr common.Address) *big.Int
}

// ConfigurationBlockContext carries the block under which a precompile is
// being activated or reconfigured.
type ConfigurationBlockContext interface {
	Number() *big.Int
	Timestamp() uint64
}

// BlockContext carries the block under which a precompile Run executes.
type BlockContext interface {
	Number() *big.Int
	Timestamp() uint64
	BlockHash(num uint64) common.Hash
}

// ChainConfigReader is the minimal chain-identity surface a precompile may
// consult while running.
type ChainConfigReader interface {
	ChainID() *big.Int
}

// AccessibleState is the state and chain context available to a
// StatefulPrecompiledContract during Run: persistent storage, the current
// block, and a structured logger for emitting indexer-visible events.
type AccessibleState interface {
	GetStateDB() StateDB
	GetBlockContext() BlockContext
	GetChainConfig() ChainConfigReader
	// Log emits a structured event associated with the contract address,
	// named by topic, with a set of indexed and un-indexed data fields.
	Log(address common.Address, topic string, fields map[string]interface{})
}

// StatefulPrecompiledContract is a precompile that can read and write
// persistent EVM state, as opposed to a stateless precompile that is a pure
// function of its input.
type StatefulPrecompiledContract interface {
	// Address is the address at which the precompile is installed.
	Address() common.Address

	// RequiredGas returns the gas cost of invoking Run with this input,
	// computed without mutating state.
	RequiredGas(input []byte) uint64

	// Run executes the precompile. It must not mutate state when readOnly
	// is true.
	Run(
		accessibleState AccessibleState,
		caller common.Address,
		addr common.Address,
		input []byte,
		suppliedGas uint64,
		readOnly bool,
	) (ret []byte, remainingGas uint64, err error)
}

// Configurator prepares a precompile's config type and applies one-time
// state initialization when the precompile activates on-chain.
type Configurator interface {
	MakeConfig() precompileconfig.Config
	Configure(
		chainConfig precompileconfig.ChainConfig,
		cfg precompileconfig.Config,
		state StateDB,
		blockContext ConfigurationBlockContext,
	) error
}
