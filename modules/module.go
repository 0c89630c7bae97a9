// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package modules

import (
	"github.com/luxfi/geth/common"
	"github.com/luxfi/privapay/contract"
)

// Module ties a stateful precompile's well-known config key and address to
// its contract implementation and its configurator.
type Module struct {
	ConfigKey    string
	Address      common.Address
	Contract     contract.StatefulPrecompiledContract
	Configurator contract.Configurator
}

// moduleArray implements sort.Interface, ordering modules by address so
// RegisteredModules iterates deterministically.
type moduleArray []Module

func (m moduleArray) Len() int      { return len(m) }
func (m moduleArray) Swap(i, j int) { m[i], m[j] = m[j], m[i] }
func (m moduleArray) Less(i, j int) bool {
	return bytesLess(m[i].Address.Bytes(), m[j].Address.Bytes())
}

func bytesLess(a, b []byte) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
