// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package payroll

import (
	"github.com/luxfi/geth/common"
	"github.com/luxfi/privapay/contract"
	"github.com/luxfi/privapay/modules"
	"github.com/luxfi/privapay/precompileconfig"
)

// ConfigKey identifies the payroll module's chain-config section.
const ConfigKey = "payrollConfig"

// Config is the payroll precompile's upgrade configuration: it carries the
// owner address the orchestrator is constructed with.
type Config struct {
	precompileconfig.Upgrade
	Owner common.Address `json:"owner"`
}

// Key returns the module's config key.
func (*Config) Key() string { return ConfigKey }

// IsDisabled reports whether this config deactivates the payroll precompile.
func (c *Config) IsDisabled() bool { return c.Disable }

// Verify checks the config for internal consistency; there is nothing
// beyond the embedded Upgrade fields to validate.
func (c *Config) Verify(precompileconfig.ChainConfig) error { return nil }

// Equal reports whether c equals other as a payroll Config.
func (c *Config) Equal(other precompileconfig.Config) bool {
	o, ok := other.(*Config)
	if !ok {
		return false
	}
	return c.Owner == o.Owner && c.Upgrade.Equal(&o.Upgrade)
}

type configurator struct{}

// MakeConfig returns a new, zero-valued Config for deserialization.
func (configurator) MakeConfig() precompileconfig.Config {
	return new(Config)
}

// Configure installs the orchestrator for this chain, owned by the address
// named in cfg.
func (configurator) Configure(
	chainConfig precompileconfig.ChainConfig,
	cfg precompileconfig.Config,
	state contract.StateDB,
	blockContext contract.ConfigurationBlockContext,
) error {
	payrollCfg, ok := cfg.(*Config)
	if !ok {
		return errInvalidConfig
	}
	Payroll.orchestrator = NewOrchestrator(payrollCfg.Owner)
	return nil
}

var errInvalidConfig = configError("payroll: invalid config type")

type configError string

func (e configError) Error() string { return string(e) }

// Module is the payroll precompile's registration descriptor.
var Module = modules.Module{
	ConfigKey:    ConfigKey,
	Address:      ContractAddress,
	Contract:     Payroll,
	Configurator: configurator{},
}

func init() {
	modules.RegisterModule(Module)
}
