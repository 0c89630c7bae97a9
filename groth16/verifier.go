// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package groth16

import (
	"math/big"

	"github.com/luxfi/crypto/bn256"
)

// Verify decides whether proof is a valid Groth16 proof for (vk, publicInputs).
//
// Algorithm:
//  1. |vk.IC| must equal len(publicInputs)+1, else ErrPublicInputMismatch.
//  2. vk_x = vk.IC[0] + Σᵢ publicInputs[i] · vk.IC[i+1], in G1.
//  3. Pairing-product check: e(A,B) · e(-α,β) · e(-vk_x,γ) · e(-C,δ) = 1.
//  4. Return the pairing result; true iff the equation holds.
//
// Any host-curve-primitive failure (malformed point encodings) is reported
// as ErrVerifierError without revealing why decoding failed. Zero public
// inputs is legal; vk_x is then simply vk.IC[0].
func Verify(vk *VerifyingKey, proof *Proof, publicInputs [][32]byte) (bool, error) {
	if len(vk.IC) != len(publicInputs)+1 {
		return false, ErrPublicInputMismatch
	}

	a, err := DecodeG1(proof.A)
	if err != nil {
		return false, ErrVerifierError
	}
	b, err := DecodeG2(proof.B)
	if err != nil {
		return false, ErrVerifierError
	}
	c, err := DecodeG1(proof.C)
	if err != nil {
		return false, ErrVerifierError
	}
	alpha, err := DecodeG1(vk.AlphaG1)
	if err != nil {
		return false, ErrVerifierError
	}
	beta, err := DecodeG2(vk.BetaG2)
	if err != nil {
		return false, ErrVerifierError
	}
	gamma, err := DecodeG2(vk.GammaG2)
	if err != nil {
		return false, ErrVerifierError
	}
	delta, err := DecodeG2(vk.DeltaG2)
	if err != nil {
		return false, ErrVerifierError
	}

	ic := make([]*bn256.G1, len(vk.IC))
	for i, icBytes := range vk.IC {
		p, err := DecodeG1(icBytes)
		if err != nil {
			return false, ErrVerifierError
		}
		ic[i] = p
	}

	// vk_x = IC[0] + Σᵢ publicInputs[i] · IC[i+1]
	vkX := new(bn256.G1).ScalarMult(ic[0], big.NewInt(1))
	for i, x := range publicInputs {
		scalar := leScalarToBig(x)
		tmp := new(bn256.G1).ScalarMult(ic[i+1], scalar)
		vkX.Add(vkX, tmp)
	}

	negAlpha := new(bn256.G1).ScalarMult(alpha, big.NewInt(-1))
	negVkX := new(bn256.G1).ScalarMult(vkX, big.NewInt(-1))
	negC := new(bn256.G1).ScalarMult(c, big.NewInt(-1))

	g1Points := []*bn256.G1{a, negAlpha, negVkX, negC}
	g2Points := []*bn256.G2{b, beta, gamma, delta}

	return bn256.PairingCheck(g1Points, g2Points), nil
}

// leScalarToBig interprets a 32-byte little-endian field element as a
// big.Int, passed through as-is: public inputs are field elements, not
// integers to be reduced modulo anything during parsing (§9).
func leScalarToBig(x [32]byte) *big.Int {
	return new(big.Int).SetBytes(reverseBytes(x[:]))
}
