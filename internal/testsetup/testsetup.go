// Package testsetup provides a throwaway trusted setup and an honest prover
// for the package tests. The setup secret is known here, which is exactly why
// nothing in this package may ever ship as library API.
package testsetup

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	bn256 "github.com/ethereum/go-ethereum/crypto/bn256/cloudflare"

	"github.com/charlie-g-cowan/AZTEC/bn128"
	"github.com/charlie-g-cowan/AZTEC/transcript"
	"github.com/charlie-g-cowan/AZTEC/types"
)

// Setup is a reference string together with its (test-only) secrets.
type Setup struct {
	// Tau is the setup secret: T2 = tau * g2.
	Tau *big.Int
	// H is the second G1 generator the notes commit against.
	H   *bn256.G1
	CRS *types.CRS
}

// Opening is the hidden content of a note: its value K and commitment
// randomness A.
type Opening struct {
	K int64
	A int64
}

// New derives a setup from the given secrets. Callers pick small odd numbers;
// the only requirements are tau not in {0, 1} and eta nonzero.
func New(tau, eta int64) *Setup {
	t := big.NewInt(tau)
	h := new(bn256.G1).ScalarBaseMult(big.NewInt(eta))
	t2 := new(bn256.G2).ScalarBaseMult(t)
	return &Setup{
		Tau: t,
		H:   h,
		CRS: &types.CRS{
			H:  bn128.PointFromG1(h),
			T2: G2Limbs(t2),
		},
	}
}

// G2Limbs splits a G2 element into the four wire limbs of a reference string.
func G2Limbs(g *bn256.G2) [4]*big.Int {
	m := g.Marshal()
	var limbs [4]*big.Int
	for i := range limbs {
		limbs[i] = new(big.Int).SetBytes(m[i*32 : (i+1)*32])
	}
	return limbs
}

// Commit builds the commitment pair for an opening:
//
//	sigma = a * (1 - k*tau)^-1 * h
//	gamma = tau * sigma
//
// which satisfies both the commitment equation sigma = k*gamma + a*h and the
// setup relation e(gamma, g2) = e(sigma, t2) a validator's pairing check
// enforces.
func (s *Setup) Commit(o Opening) (gamma, sigma *bn256.G1) {
	d := new(big.Int).Mul(big.NewInt(o.K), s.Tau)
	d.Sub(big.NewInt(1), d)
	d.Mod(d, bn128.GroupOrder)
	d.ModInverse(d, bn128.GroupOrder)
	d.Mul(d, big.NewInt(o.A))
	d.Mod(d, bn128.GroupOrder)

	sigma = new(bn256.G1).ScalarMult(s.H, d)
	gamma = new(bn256.G1).ScalarMult(sigma, s.Tau)
	return gamma, sigma
}

// CommitOffSetup builds a commitment pair that satisfies the commitment
// equation sigma = k*gamma + a*h but not the trusted-setup relation, so the
// resulting proof recomputes its challenge correctly and still fails the
// pairing check.
func (s *Setup) CommitOffSetup(o Opening, seed int64) (gamma, sigma *bn256.G1) {
	gamma = new(bn256.G1).ScalarBaseMult(big.NewInt(seed))
	kGamma := new(bn256.G1).ScalarMult(gamma, big.NewInt(o.K))
	aH := new(bn256.G1).ScalarMult(s.H, big.NewInt(o.A))
	sigma = new(bn256.G1).Add(kGamma, aH)
	return gamma, sigma
}

// Prove runs the honest prover: it commits to the openings, replays the
// validator's transcript to derive the challenge, and blinds the openings
// into the disclosed scalars. Consecutive openings must satisfy
// K[i+1] = K[i] - publicComparison or the resulting proof will not verify.
func (s *Setup) Prove(sender common.Address, publicComparison int64, openings []Opening) *types.Proof {
	gammas := make([]*bn256.G1, len(openings))
	sigmas := make([]*bn256.G1, len(openings))
	for i, o := range openings {
		gammas[i], sigmas[i] = s.Commit(o)
	}
	return s.ProveCommitted(sender, publicComparison, openings, gammas, sigmas)
}

// ProveCommitted blinds openings against pre-built commitment pairs.
func (s *Setup) ProveCommitted(sender common.Address, publicComparison int64, openings []Opening, gammas, sigmas []*bn256.G1) *types.Proof {
	n := len(openings)
	notes := make([]*types.Note, n)
	for i := range openings {
		notes[i] = &types.Note{
			Gamma: bn128.PointFromG1(gammas[i]),
			Sigma: bn128.PointFromG1(sigmas[i]),
		}
	}

	comparison := big.NewInt(publicComparison)
	tr := transcript.New(sender, comparison)
	for _, note := range notes {
		tr.AppendNote(note.Gamma, note.Sigma)
	}
	x := tr.MixingScalar()

	// Blinding randoms. The value random bk is shared across notes because
	// the verifier chains every kBar after the first from kBar[0]; the
	// randomness blinds ba are free per note. Fixed values keep the tests
	// reproducible.
	bk := big.NewInt(0x517cc1b727220a95)
	bas := make([]*big.Int, n)
	xPow := big.NewInt(1)
	for i := range openings {
		bas[i] = big.NewInt(0x2545f4914f6cdd1d + int64(i)*7919)
		bGamma := new(bn256.G1).ScalarMult(gammas[i], mulMod(bk, xPow))
		bH := new(bn256.G1).ScalarMult(s.H, mulMod(bas[i], xPow))
		tr.AppendBlindingFactor(new(bn256.G1).Add(bGamma, bH))
		xPow = mulMod(xPow, x)
	}
	challenge := tr.Challenge()

	for i, o := range openings {
		kBar := new(big.Int).Mul(challenge, big.NewInt(o.K))
		kBar.Add(kBar, bk)
		notes[i].KBar = kBar.Mod(kBar, bn128.GroupOrder)

		aBar := new(big.Int).Mul(challenge, big.NewInt(o.A))
		aBar.Add(aBar, bas[i])
		notes[i].ABar = aBar.Mod(aBar, bn128.GroupOrder)
	}

	return &types.Proof{
		Challenge:        challenge,
		PublicComparison: comparison,
		Notes:            notes,
	}
}

func mulMod(a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, bn128.GroupOrder)
}
