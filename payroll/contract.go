// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package payroll's contract.go wires Orchestrator into the
// StatefulPrecompiledContract surface: a selector-dispatched Run method over
// a fixed-width binary input encoding, following the same convention as the
// other precompiles in this repository.
package payroll

import (
	"encoding/binary"
	"errors"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/privapay/contract"
	"github.com/luxfi/privapay/groth16"
	"github.com/luxfi/privapay/receipt"
	"github.com/luxfi/privapay/registry"
)

var (
	// ContractAddress is the address of the payroll precompile (LP-4250),
	// drawn from the shared chain-wide address catalog.
	ContractAddress = common.HexToAddress(registry.PayrollCChain)

	// Payroll is the singleton precompile instance, wrapping a singleton
	// Orchestrator. Its owner is set at Configure time (see module.go).
	Payroll = &payrollPrecompile{}

	_ contract.StatefulPrecompiledContract = Payroll

	ErrInvalidInput     = errors.New("payroll: invalid input")
	ErrInvalidOperation = errors.New("payroll: invalid operation selector")
)

// Operation selectors (first byte of input).
const (
	OpRegisterEmployee            = 0x01
	OpRecordPayment               = 0x02
	OpSubmitProof                 = 0x10
	OpOnVerify                    = 0x11
	OpGetAttestation              = 0x20
	OpVerifyRequirement           = 0x21
	OpGrantDisclosure             = 0x30
	OpRevokeDisclosure            = 0x31
	OpSetAuditor                  = 0x32
	OpRegisterCircuit             = 0x40
	OpSetMode                     = 0x41
	OpSetDevelopmentModeWhitelist = 0x42
)

// Gas costs, roughly proportional to cryptographic work performed.
const (
	GasRegisterEmployee            = 20000
	GasRecordPayment               = 20000
	GasSubmitProof                 = 50000
	GasOnVerify                    = 150000
	GasGetAttestation              = 5000
	GasVerifyRequirement           = 8000
	GasGrantDisclosure             = 15000
	GasRevokeDisclosure            = 10000
	GasSetAuditor                  = 10000
	GasRegisterCircuit             = 100000
	GasSetMode                     = 10000
	GasSetDevelopmentModeWhitelist = 10000
)

type payrollPrecompile struct {
	orchestrator *Orchestrator
}

// Address returns the precompile address.
func (p *payrollPrecompile) Address() common.Address {
	return ContractAddress
}

// RequiredGas returns a fixed per-operation cost; none of these operations
// scale with input size beyond the already-bounded fixed-width encodings.
func (p *payrollPrecompile) RequiredGas(input []byte) uint64 {
	if len(input) < 1 {
		return 0
	}
	switch input[0] {
	case OpRegisterEmployee:
		return GasRegisterEmployee
	case OpRecordPayment:
		return GasRecordPayment
	case OpSubmitProof:
		return GasSubmitProof
	case OpOnVerify:
		return GasOnVerify
	case OpGetAttestation:
		return GasGetAttestation
	case OpVerifyRequirement:
		return GasVerifyRequirement
	case OpGrantDisclosure:
		return GasGrantDisclosure
	case OpRevokeDisclosure:
		return GasRevokeDisclosure
	case OpSetAuditor:
		return GasSetAuditor
	case OpRegisterCircuit:
		return GasRegisterCircuit
	case OpSetMode:
		return GasSetMode
	case OpSetDevelopmentModeWhitelist:
		return GasSetDevelopmentModeWhitelist
	default:
		return 0
	}
}

// Run dispatches one payroll operation.
func (p *payrollPrecompile) Run(
	accessibleState contract.AccessibleState,
	caller common.Address,
	addr common.Address,
	input []byte,
	suppliedGas uint64,
	readOnly bool,
) (ret []byte, remainingGas uint64, err error) {
	requiredGas := p.RequiredGas(input)
	if suppliedGas < requiredGas {
		return nil, 0, contract.ErrOutOfGas
	}
	remainingGas = suppliedGas - requiredGas

	if len(input) < 1 {
		return nil, remainingGas, ErrInvalidInput
	}
	op := input[0]
	data := input[1:]
	now := nowNanos(accessibleState)

	switch op {
	case OpRegisterEmployee:
		return p.runRegisterEmployee(accessibleState, caller, data, remainingGas)
	case OpRecordPayment:
		return p.runRecordPayment(accessibleState, caller, data, remainingGas)
	case OpSubmitProof:
		return p.runSubmitProof(accessibleState, caller, data, now, remainingGas)
	case OpOnVerify:
		return p.runOnVerify(accessibleState, data, now, remainingGas)
	case OpGetAttestation:
		return p.runGetAttestation(data, now, remainingGas)
	case OpVerifyRequirement:
		return p.runVerifyRequirement(caller, data, now, remainingGas)
	case OpGrantDisclosure:
		return p.runGrantDisclosure(accessibleState, caller, data, now, remainingGas)
	case OpRevokeDisclosure:
		return p.runRevokeDisclosure(accessibleState, caller, data, remainingGas)
	case OpSetAuditor:
		return p.runSetAuditor(accessibleState, caller, data, remainingGas)
	case OpRegisterCircuit:
		return p.runRegisterCircuit(accessibleState, caller, data, remainingGas)
	case OpSetMode:
		return p.runSetMode(accessibleState, caller, data, remainingGas)
	case OpSetDevelopmentModeWhitelist:
		return p.runSetDevelopmentModeWhitelist(accessibleState, caller, data, remainingGas)
	default:
		return nil, remainingGas, ErrInvalidOperation
	}
}

func nowNanos(accessibleState contract.AccessibleState) uint64 {
	return accessibleState.GetBlockContext().Timestamp() * 1_000_000_000
}

func encodeBool(b bool) []byte {
	if b {
		return []byte{1}
	}
	return []byte{0}
}

func (p *payrollPrecompile) runRegisterEmployee(state contract.AccessibleState, caller common.Address, data []byte, gas uint64) ([]byte, uint64, error) {
	if len(data) < 20 {
		return nil, gas, ErrInvalidInput
	}
	employee := common.BytesToAddress(data[:20])
	if err := p.orchestrator.RegisterEmployee(caller, employee); err != nil {
		return nil, gas, err
	}
	state.Log(ContractAddress, "EmployeeRegistered", map[string]interface{}{"employee": employee})
	return nil, gas, nil
}

func (p *payrollPrecompile) runRecordPayment(state contract.AccessibleState, caller common.Address, data []byte, gas uint64) ([]byte, uint64, error) {
	if len(data) < 52 {
		return nil, gas, ErrInvalidInput
	}
	employee := common.BytesToAddress(data[:20])
	var commitment [32]byte
	copy(commitment[:], data[20:52])
	if err := p.orchestrator.RecordPayment(caller, employee, commitment); err != nil {
		return nil, gas, err
	}
	state.Log(ContractAddress, "PaymentRecorded", map[string]interface{}{"employee": employee})
	return nil, gas, nil
}

// runSubmitProof input layout:
// class(1) ‖ threshold(8,BE) ‖ min(8,BE) ‖ max(8,BE) ‖ expiresInDays(4,BE) ‖
// historyCommitment(32) ‖ receiptLen(4,BE) ‖ receipt(receiptLen)
func (p *payrollPrecompile) runSubmitProof(state contract.AccessibleState, caller common.Address, data []byte, now uint64, gas uint64) ([]byte, uint64, error) {
	if len(data) < 1+8+8+8+4+32+4 {
		return nil, gas, ErrInvalidInput
	}
	off := 0
	class := receipt.ProofClass(data[off])
	off++
	threshold := binary.BigEndian.Uint64(data[off : off+8])
	off += 8
	min := binary.BigEndian.Uint64(data[off : off+8])
	off += 8
	max := binary.BigEndian.Uint64(data[off : off+8])
	off += 8
	expiresInDays := binary.BigEndian.Uint32(data[off : off+4])
	off += 4
	var historyCommitment [32]byte
	copy(historyCommitment[:], data[off:off+32])
	off += 32
	receiptLen := binary.BigEndian.Uint32(data[off : off+4])
	off += 4
	if uint32(len(data)-off) < receiptLen {
		return nil, gas, ErrInvalidInput
	}
	receiptBytes := data[off : off+int(receiptLen)]

	params := Params{Threshold: threshold, Min: min, Max: max}
	receiptHash, err := p.orchestrator.SubmitProof(caller, class, params, receiptBytes, historyCommitment, expiresInDays, now)
	if err != nil {
		return nil, gas, err
	}

	state.Log(ContractAddress, "ProofSubmitted", map[string]interface{}{
		"employee":    caller,
		"class":       class.String(),
		"receiptHash": receiptHash,
	})

	return receiptHash[:], gas, nil
}

// runOnVerify input layout: receiptHash(32).
//
// Resolves the pending proof admitted by a prior SubmitProof. The only
// thing a caller names is which pending receipt to resolve; the outcome is
// derived entirely by running DispatchVerification against the receipt
// bytes that call admitted, so nothing about the verdict is caller-supplied
// and there is nothing here for an unverified party to forge (§8 property
// 4). Callable by anyone — permissionless resolution is safe precisely
// because the verdict can't be influenced by who calls it. A stale or
// already-resolved receiptHash is not an error (§4.4 "safe to ignore when
// absent").
func (p *payrollPrecompile) runOnVerify(state contract.AccessibleState, data []byte, now uint64, gas uint64) ([]byte, uint64, error) {
	if len(data) < 32 {
		return nil, gas, ErrInvalidInput
	}
	var receiptHash [32]byte
	copy(receiptHash[:], data[:32])

	verified, err := p.orchestrator.OnVerify(receiptHash, now)
	if err != nil {
		return nil, gas, err
	}

	state.Log(ContractAddress, "VerifyCallback", map[string]interface{}{
		"receiptHash": receiptHash,
		"verified":    verified,
	})
	return encodeBool(verified), gas, nil
}

// runGetAttestation input layout: employee(20) ‖ class(1).
// Output: found(1) ‖ resultBit(1) ‖ threshold(8,BE) ‖ min(8,BE) ‖ max(8,BE) ‖
// paymentCount(4,BE) ‖ verifiedAt(8,BE) ‖ expiresAt(8,BE)
func (p *payrollPrecompile) runGetAttestation(data []byte, now uint64, gas uint64) ([]byte, uint64, error) {
	if len(data) < 21 {
		return nil, gas, ErrInvalidInput
	}
	employee := common.BytesToAddress(data[:20])
	class := receipt.ProofClass(data[20])

	a, ok := p.orchestrator.Get(employee, class, now)
	if !ok {
		out := make([]byte, 1+1+8+8+8+4+8+8)
		return out, gas, nil
	}

	out := make([]byte, 0, 1+1+8+8+8+4+8+8)
	out = append(out, 1)
	out = append(out, encodeBool(a.ResultBit)...)
	out = appendUint64(out, a.Params.Threshold)
	out = appendUint64(out, a.Params.Min)
	out = appendUint64(out, a.Params.Max)
	out = appendUint32(out, a.PaymentCount)
	out = appendUint64(out, a.VerifiedAt)
	out = appendUint64(out, a.ExpiresAt)
	return out, gas, nil
}

func (p *payrollPrecompile) runVerifyRequirement(caller common.Address, data []byte, now uint64, gas uint64) ([]byte, uint64, error) {
	if len(data) < 29 {
		return nil, gas, ErrInvalidInput
	}
	employee := common.BytesToAddress(data[:20])
	class := receipt.ProofClass(data[20])
	required := binary.BigEndian.Uint64(data[21:29])

	ok, err := p.orchestrator.VerifyRequirement(caller, employee, class, required, now)
	if err != nil {
		return nil, gas, err
	}
	return encodeBool(ok), gas, nil
}

func (p *payrollPrecompile) runGrantDisclosure(state contract.AccessibleState, caller common.Address, data []byte, now uint64, gas uint64) ([]byte, uint64, error) {
	if len(data) < 25 {
		return nil, gas, ErrInvalidInput
	}
	verifier := common.BytesToAddress(data[:20])
	family := classFamilyFromTag(data[20])
	durationDays := binary.BigEndian.Uint32(data[21:25])

	p.orchestrator.GrantDisclosure(caller, verifier, family, now, uint64(durationDays)*86400*1_000_000_000)
	state.Log(ContractAddress, "DisclosureGranted", map[string]interface{}{
		"employee": caller,
		"verifier": verifier,
		"family":   family,
	})
	return nil, gas, nil
}

func (p *payrollPrecompile) runRevokeDisclosure(state contract.AccessibleState, caller common.Address, data []byte, gas uint64) ([]byte, uint64, error) {
	if len(data) < 20 {
		return nil, gas, ErrInvalidInput
	}
	verifier := common.BytesToAddress(data[:20])
	p.orchestrator.RevokeDisclosures(caller, verifier)
	state.Log(ContractAddress, "DisclosureRevoked", map[string]interface{}{
		"employee": caller,
		"verifier": verifier,
	})
	return nil, gas, nil
}

func (p *payrollPrecompile) runSetAuditor(state contract.AccessibleState, caller common.Address, data []byte, gas uint64) ([]byte, uint64, error) {
	if len(data) < 21 {
		return nil, gas, ErrInvalidInput
	}
	addr := common.BytesToAddress(data[:20])
	enabled := data[20] != 0
	if err := p.orchestrator.SetAuditor(caller, addr, enabled); err != nil {
		return nil, gas, err
	}
	state.Log(ContractAddress, "AuditorRosterChanged", map[string]interface{}{"addr": addr, "enabled": enabled})
	return nil, gas, nil
}

// runRegisterCircuit input layout:
// class(1) ‖ circuitID(32) ‖ alphaG1(64) ‖ betaG2(128) ‖ gammaG2(128) ‖
// deltaG2(128) ‖ controlRoot(32) ‖ icCount(2,BE) ‖ ic(icCount * 64)
func (p *payrollPrecompile) runRegisterCircuit(state contract.AccessibleState, caller common.Address, data []byte, gas uint64) ([]byte, uint64, error) {
	const headerLen = 1 + 32 + 64 + 128 + 128 + 128 + 32 + 2
	if len(data) < headerLen {
		return nil, gas, ErrInvalidInput
	}
	off := 0
	class := receipt.ProofClass(data[off])
	off++
	var circuitID [32]byte
	copy(circuitID[:], data[off:off+32])
	off += 32

	var vk groth16.VerifyingKey
	copy(vk.AlphaG1[:], data[off:off+64])
	off += 64
	copy(vk.BetaG2[:], data[off:off+128])
	off += 128
	copy(vk.GammaG2[:], data[off:off+128])
	off += 128
	copy(vk.DeltaG2[:], data[off:off+128])
	off += 128
	copy(vk.ControlRoot[:], data[off:off+32])
	off += 32
	icCount := binary.BigEndian.Uint16(data[off : off+2])
	off += 2

	if len(data)-off < int(icCount)*64 {
		return nil, gas, ErrInvalidInput
	}
	vk.IC = make([][64]byte, icCount)
	for i := 0; i < int(icCount); i++ {
		copy(vk.IC[i][:], data[off:off+64])
		off += 64
	}

	if err := p.orchestrator.RegisterCircuit(caller, class, circuitID, vk); err != nil {
		return nil, gas, err
	}
	state.Log(ContractAddress, "CircuitRegistered", map[string]interface{}{"class": class.String(), "circuitID": circuitID})
	return nil, gas, nil
}

func (p *payrollPrecompile) runSetMode(state contract.AccessibleState, caller common.Address, data []byte, gas uint64) ([]byte, uint64, error) {
	if len(data) < 1 {
		return nil, gas, ErrInvalidInput
	}
	mode := VerificationMode(data[0])
	if err := p.orchestrator.SetMode(caller, mode); err != nil {
		return nil, gas, err
	}
	state.Log(ContractAddress, "ModeChanged", map[string]interface{}{"mode": mode.String()})
	return nil, gas, nil
}

// runSetDevelopmentModeWhitelist input layout: class(1) ‖ allowed(1).
func (p *payrollPrecompile) runSetDevelopmentModeWhitelist(state contract.AccessibleState, caller common.Address, data []byte, gas uint64) ([]byte, uint64, error) {
	if len(data) < 2 {
		return nil, gas, ErrInvalidInput
	}
	class := receipt.ProofClass(data[0])
	allowed := data[1] != 0
	if err := p.orchestrator.SetDevelopmentModeWhitelist(caller, class, allowed); err != nil {
		return nil, gas, err
	}
	state.Log(ContractAddress, "DevelopmentModeWhitelistChanged", map[string]interface{}{
		"class":   class.String(),
		"allowed": allowed,
	})
	return nil, gas, nil
}

func classFamilyFromTag(tag byte) ClassFamily {
	switch tag {
	case 0:
		return FamilyIncomeAboveThreshold
	case 1:
		return FamilyIncomeRange
	case 2:
		return FamilyFullAudit
	default:
		return ""
	}
}

func appendUint64(b []byte, v uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return append(b, buf[:]...)
}

func appendUint32(b []byte, v uint32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return append(b, buf[:]...)
}
