// Package publicrange implements the public range proof validator: it checks,
// in zero knowledge, that the value of an output note equals the value of an
// input note minus a publicly disclosed comparison amount.
//
// Verification is a pure predicate over the supplied proof and reference
// string. All intermediate state (transcript, scalar chain, accumulators) is
// local to one call, so concurrent verifications never observe each other.
package publicrange

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	bn256 "github.com/ethereum/go-ethereum/crypto/bn256/cloudflare"
	"github.com/pkg/errors"

	"github.com/charlie-g-cowan/AZTEC/bn128"
	"github.com/charlie-g-cowan/AZTEC/transcript"
	"github.com/charlie-g-cowan/AZTEC/types"
)

// ErrPairingMismatch is returned when the bilinear pairing product over the
// accumulated note relations is not the identity, meaning the range relation
// does not hold against the trusted setup.
var ErrPairingMismatch = errors.New("pairing product mismatch")

// ErrChallengeMismatch is returned when the recomputed Fiat-Shamir challenge
// disagrees with the challenge supplied in the proof.
var ErrChallengeMismatch = errors.New("challenge mismatch")

// NoteCount is the number of notes a public range proof carries: the input
// note at index 0 and the output note at index 1.
const NoteCount = 2

// Validator verifies public range proofs. The zero value is ready to use and
// holds no state between calls.
type Validator struct{}

// Validate runs the full verification sequence and returns nil iff the proof
// is accepted. Every failure is fatal and atomic; callers must not infer
// partial success from any rejection.
func (Validator) Validate(sender common.Address, crs *types.CRS, proof *types.Proof) error {
	if proof == nil {
		return errors.New("missing proof")
	}
	if len(proof.Notes) != NoteCount {
		return errors.Errorf("public range proof carries exactly %d notes, got %d", NoteCount, len(proof.Notes))
	}
	if err := validateProofScalar("challenge", proof.Challenge); err != nil {
		return err
	}
	if err := validateProofScalar("publicComparison", proof.PublicComparison); err != nil {
		return err
	}
	h, t2, err := crs.Validate()
	if err != nil {
		return err
	}

	for _, n := range proof.Notes {
		if err := n.Validate(); err != nil {
			return err
		}
	}

	tr := transcript.New(sender, proof.PublicComparison)
	for _, n := range proof.Notes {
		tr.AppendNote(n.Gamma, n.Sigma)
	}
	x := tr.MixingScalar()

	sigmaAcc, gammaAcc, err := accumulateBlindingFactors(tr, proof, h, x)
	if err != nil {
		return err
	}

	if !bn128.PairingCheck(
		[]*bn256.G1{sigmaAcc, gammaAcc},
		[]*bn256.G2{t2, bn128.G2Generator()},
	) {
		return errors.Wrap(ErrPairingMismatch, "note relations are inconsistent with the trusted setup")
	}

	if tr.Challenge().Cmp(proof.Challenge) != 0 {
		return errors.Wrap(ErrChallengeMismatch, "recomputed challenge does not match the supplied one")
	}
	return nil
}

// accumulateBlindingFactors recomputes the per-note blinding factor
// B_i = gamma_i^{k_i} * h^{a_i} * sigma_i^{-c_i}, appends each to the
// transcript, and returns the two running accumulators the pairing check
// consumes.
//
// Note 0 anchors the scalar chain with its own kBar; every later note's value
// scalar is forced to the previous one minus challenge*publicComparison,
// which is the algebraic statement value_out = value_in - publicComparison.
// Notes after the first are additionally mixed by successive powers of the
// mixing scalar so that one aggregated check covers all per-note relations.
func accumulateBlindingFactors(tr *transcript.Transcript, proof *types.Proof, h *bn256.G1, x *big.Int) (sigmaAcc, gammaAcc *bn256.G1, err error) {
	var (
		challenge  = proof.Challenge
		comparison = mulMod(challenge, proof.PublicComparison)

		u    = new(big.Int)  // unscaled value-scalar chain
		xPow = big.NewInt(1) // x^i for note index i
	)
	sigmaAcc = new(bn256.G1).ScalarBaseMult(big.NewInt(0))
	gammaAcc = new(bn256.G1).ScalarBaseMult(big.NewInt(0))

	for i, n := range proof.Notes {
		gamma, err := n.Gamma.G1()
		if err != nil {
			return nil, nil, err
		}
		sigma, err := n.Sigma.G1()
		if err != nil {
			return nil, nil, err
		}

		if i == 0 {
			u.Set(n.KBar)
		} else {
			u = subMod(u, comparison)
			xPow = mulMod(xPow, x)
		}
		k := mulMod(u, xPow)
		a := mulMod(n.ABar, xPow)
		c := mulMod(challenge, xPow)
		negC := subMod(new(big.Int), c)

		kGamma := new(bn256.G1).ScalarMult(gamma, k)
		aH := new(bn256.G1).ScalarMult(h, a)
		sigmaNegC := new(bn256.G1).ScalarMult(sigma, negC)

		b := new(bn256.G1).Add(kGamma, aH)
		b = new(bn256.G1).Add(b, sigmaNegC)

		sigmaAcc = new(bn256.G1).Add(sigmaAcc, sigmaNegC)
		gammaAcc = new(bn256.G1).Add(gammaAcc, new(bn256.G1).ScalarMult(gamma, c))

		tr.AppendBlindingFactor(b)
	}
	return sigmaAcc, gammaAcc, nil
}

func validateProofScalar(name string, s *big.Int) error {
	if s == nil || s.Sign() < 0 || s.Cmp(bn128.GroupOrder) >= 0 {
		return errors.Errorf("%s is not a scalar field element", name)
	}
	return nil
}

func mulMod(a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, bn128.GroupOrder)
}

func subMod(a, b *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, bn128.GroupOrder)
}
