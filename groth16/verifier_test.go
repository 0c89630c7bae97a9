// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package groth16

import (
	"math/big"
	"testing"

	"github.com/luxfi/crypto/bn256"
)

// buildTrivialCircuit constructs a verifying key and proof for the degenerate
// circuit with one public input x and the constraint "the prover knows x"
// (no witness beyond the public input itself): alpha, beta, gamma, delta are
// the group generators, IC = [O, G1], A = G1^(x+1), B = G2 generator, C = O.
// This satisfies e(A,B)·e(-α,β)·e(-vk_x,γ)·e(-C,δ)=1 whenever A = α + vk_x,
// i.e. when the public input passed to Verify is x.
func buildTrivialCircuit(t *testing.T, x int64) (*VerifyingKey, *Proof) {
	t.Helper()

	g1Gen := new(bn256.G1).ScalarBaseMult(big.NewInt(1))
	g2Gen := new(bn256.G2).ScalarBaseMult(big.NewInt(1))

	vk := &VerifyingKey{
		AlphaG1: EncodeG1(g1Gen),
		BetaG2:  EncodeG2(g2Gen),
		GammaG2: EncodeG2(g2Gen),
		DeltaG2: EncodeG2(g2Gen),
		IC:      [][g1EncodedLen]byte{identityG1(), EncodeG1(g1Gen)},
	}

	// A = alpha * (x+1) chosen so that e(A,B)=e(alpha,beta)*e(vk_x,gamma)*e(C,delta)
	// reduces correctly; since beta=gamma=delta=g2Gen and alpha=g1Gen, pick
	// A = g1Gen^(x+1), vk_x = IC[0] + x*IC[1] = g1Gen^x, C = O so that
	// e(A,B) = e(g1^(x+1), g2) = e(g1, g2)^(x+1)
	// e(-alpha,beta)·e(-vk_x,gamma)·e(-C,delta) = e(g1,g2)^(-1)·e(g1,g2)^(-x)·1
	// product = e(g1,g2)^(x+1-1-x) = e(g1,g2)^0 = 1. Holds for any x.
	a := new(bn256.G1).ScalarMult(g1Gen, big.NewInt(x+1))

	proof := &Proof{
		A: EncodeG1(a),
		B: EncodeG2(g2Gen),
		C: identityG1(),
	}

	return vk, proof
}

func leEncode(v int64) [32]byte {
	var out [32]byte
	b := big.NewInt(v).Bytes()
	for i, byt := range b {
		out[i] = byt // little-endian: least-significant byte first... big.Int.Bytes is big-endian so reverse
	}
	// reverse in place since big.Int.Bytes() is big-endian
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func TestVerify_ValidProof(t *testing.T) {
	vk, proof := buildTrivialCircuit(t, 7)
	x := leEncode(7)

	ok, err := Verify(vk, proof, [][32]byte{x})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected valid proof to verify")
	}
}

func TestVerify_BitFlipRejected(t *testing.T) {
	vk, proof := buildTrivialCircuit(t, 7)
	x := leEncode(7)

	flipped := *proof
	flipped.A[0] ^= 0x01

	ok, err := Verify(vk, &flipped, [][32]byte{x})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected bit-flipped proof to fail verification")
	}
}

func TestVerify_WrongPublicInputRejected(t *testing.T) {
	vk, proof := buildTrivialCircuit(t, 7)
	wrongX := leEncode(8)

	ok, err := Verify(vk, proof, [][32]byte{wrongX})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected mismatched public input to fail verification")
	}
}

func TestVerify_PublicInputCountMismatch(t *testing.T) {
	vk, proof := buildTrivialCircuit(t, 7)

	_, err := Verify(vk, proof, [][32]byte{})
	if err != ErrPublicInputMismatch {
		t.Fatalf("expected ErrPublicInputMismatch, got %v", err)
	}

	x := leEncode(7)
	_, err = Verify(vk, proof, [][32]byte{x, x})
	if err != ErrPublicInputMismatch {
		t.Fatalf("expected ErrPublicInputMismatch, got %v", err)
	}
}

// TestNegateG1Identity verifies §8 property 5: negate(P) + P = O on G1.
func TestNegateG1Identity(t *testing.T) {
	g1Gen := new(bn256.G1).ScalarBaseMult(big.NewInt(5))
	p := EncodeG1(g1Gen)

	neg, err := NegateG1(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	negPoint, err := DecodeG1(neg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum := new(bn256.G1).Add(g1Gen, negPoint)

	if EncodeG1(sum) != identityG1() {
		t.Fatal("negate(P) + P did not equal the identity")
	}
}

func TestVerify_MalformedProofIsVerifierError(t *testing.T) {
	vk, _ := buildTrivialCircuit(t, 7)
	malformed := &Proof{} // all-zero, not a valid curve point encoding under Unmarshal in general
	x := leEncode(7)

	_, err := Verify(vk, malformed, [][32]byte{x})
	// an all-zero G1/G2 encoding is the identity for some curve libraries,
	// so this may or may not error; only assert no panic occurred and any
	// error is the documented sentinel.
	if err != nil && err != ErrVerifierError {
		t.Fatalf("expected ErrVerifierError or nil, got %v", err)
	}
}
