// Package transcript builds the Fiat-Shamir transcript a validator hashes to
// derive its challenge scalars. The byte layout is shared with cooperating
// validators, so word order and the fixed placeholder words must not change.
package transcript

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	bn256 "github.com/ethereum/go-ethereum/crypto/bn256/cloudflare"

	"github.com/charlie-g-cowan/AZTEC/bn128"
)

const wordSize = 32

// Transcript is an append-only buffer of 32-byte big-endian words. Each
// verification call owns exactly one instance; nothing is shared or reused
// across calls.
type Transcript struct {
	buf []byte
}

// New starts a transcript with the fixed header: the caller address, the
// disclosed comparison amount, and two zero words standing in for the public
// value and public owner fields of related proof types that share this
// layout. The placeholders carry no meaning here but keep the hash compatible
// with those validators.
func New(sender common.Address, publicComparison *big.Int) *Transcript {
	t := &Transcript{buf: make([]byte, 0, 8*wordSize)}
	t.buf = append(t.buf, common.LeftPadBytes(sender.Bytes(), wordSize)...)
	t.appendScalar(publicComparison)
	t.buf = append(t.buf, make([]byte, 2*wordSize)...)
	return t
}

// AppendNote appends a note's commitment pair as four coordinate words:
// gamma.x, gamma.y, sigma.x, sigma.y.
func (t *Transcript) AppendNote(gamma, sigma *bn128.Point) {
	t.appendScalar(gamma.X)
	t.appendScalar(gamma.Y)
	t.appendScalar(sigma.X)
	t.appendScalar(sigma.Y)
}

// AppendBlindingFactor appends a recomputed blinding factor after the note
// commitments, extending the buffer the challenge is recomputed from.
func (t *Transcript) AppendBlindingFactor(b *bn256.G1) {
	t.buf = append(t.buf, b.Marshal()...)
}

// MixingScalar hashes the transcript as appended so far. Called once after
// the note commitments, it yields the scalar that folds the per-note Schnorr
// relations into a single aggregated check.
func (t *Transcript) MixingScalar() *big.Int {
	return t.hash()
}

// Challenge hashes the full transcript, blinding factors included, yielding
// the recomputed Fiat-Shamir challenge.
func (t *Transcript) Challenge() *big.Int {
	return t.hash()
}

func (t *Transcript) hash() *big.Int {
	h := new(big.Int).SetBytes(crypto.Keccak256(t.buf))
	return h.Mod(h, bn128.GroupOrder)
}

func (t *Transcript) appendScalar(s *big.Int) {
	word := make([]byte, wordSize)
	s.FillBytes(word)
	t.buf = append(t.buf, word...)
}
