// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package precompileconfig defines the per-precompile configuration surface:
// each stateful precompile module contributes a Config that can be disabled
// or scheduled to activate at a chain-upgrade timestamp.
package precompileconfig

// ChainConfig is the subset of chain identity a precompile's Config.Verify
// may consult (fork schedule, chain id) without depending on the full geth
// chain config type.
type ChainConfig interface {
	ChainID() uint64
	IsTimestampForked(timestamp uint64, fork string) bool
}

// Config is implemented by every precompile module's configuration type.
// Activation/deactivation is timestamp-gated via Upgrade, matching how every
// other upgrade in the chain's fork schedule is expressed.
type Config interface {
	// Key identifies which precompile this config belongs to; must equal
	// the owning module's ConfigKey.
	Key() string

	// Timestamp is the activation time of this config, or nil if it
	// activates at genesis.
	Timestamp() *uint64

	// IsDisabled reports whether this config deactivates the precompile
	// instead of activating it.
	IsDisabled() bool

	// Equal reports whether cfg is the identical configuration.
	Equal(cfg Config) bool

	// Verify checks the config is well-formed given the chain it is
	// being applied to.
	Verify(chainConfig ChainConfig) error
}

// Upgrade is the common embeddable type giving a Config its activation
// timestamp and disable flag.
type Upgrade struct {
	BlockTimestamp *uint64 `json:"blockTimestamp,omitempty"`
	Disable        bool    `json:"disable,omitempty"`
}

// Timestamp returns the upgrade's activation time.
func (u *Upgrade) Timestamp() *uint64 {
	return u.BlockTimestamp
}

// Equal reports whether two upgrades activate identically.
func (u *Upgrade) Equal(other *Upgrade) bool {
	if u.Disable != other.Disable {
		return false
	}
	if (u.BlockTimestamp == nil) != (other.BlockTimestamp == nil) {
		return false
	}
	if u.BlockTimestamp == nil {
		return true
	}
	return *u.BlockTimestamp == *other.BlockTimestamp
}
