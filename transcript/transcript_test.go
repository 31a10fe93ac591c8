package transcript

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	bn256 "github.com/ethereum/go-ethereum/crypto/bn256/cloudflare"
	"github.com/stretchr/testify/require"

	"github.com/charlie-g-cowan/AZTEC/bn128"
)

var (
	sender = common.HexToAddress("0x1111111111111111111111111111111111111111")
	g      = bn128.NewPoint(big.NewInt(1), big.NewInt(2))
)

func build(sender common.Address, comparison int64, notes ...*bn128.Point) *Transcript {
	tr := New(sender, big.NewInt(comparison))
	for i := 0; i+1 < len(notes); i += 2 {
		tr.AppendNote(notes[i], notes[i+1])
	}
	return tr
}

func TestDeterministic(t *testing.T) {
	a := build(sender, 3, g, g)
	b := build(sender, 3, g, g)
	require.Equal(t, a.MixingScalar(), b.MixingScalar())

	bf := new(bn256.G1).ScalarBaseMult(big.NewInt(9))
	a.AppendBlindingFactor(bf)
	b.AppendBlindingFactor(bf)
	require.Equal(t, a.Challenge(), b.Challenge())
}

func TestChallengeCoversBlindingFactors(t *testing.T) {
	tr := build(sender, 3, g, g)
	x := tr.MixingScalar()

	tr.AppendBlindingFactor(new(bn256.G1).ScalarBaseMult(big.NewInt(9)))
	require.NotEqual(t, x, tr.Challenge())
}

func TestHeaderBindsSenderAndComparison(t *testing.T) {
	base := build(sender, 3, g, g)

	other := common.HexToAddress("0x2222222222222222222222222222222222222222")
	require.NotEqual(t, base.MixingScalar(), build(other, 3, g, g).MixingScalar())
	require.NotEqual(t, base.MixingScalar(), build(sender, 4, g, g).MixingScalar())
}

func TestNoteOrderMatters(t *testing.T) {
	p := bn128.PointFromG1(new(bn256.G1).ScalarBaseMult(big.NewInt(5)))
	ab := build(sender, 3, g, g, p, p)
	ba := build(sender, 3, p, p, g, g)
	require.NotEqual(t, ab.MixingScalar(), ba.MixingScalar())
}

func TestScalarsAreReduced(t *testing.T) {
	tr := build(sender, 3, g, g)
	require.Negative(t, tr.MixingScalar().Cmp(bn128.GroupOrder))
	require.GreaterOrEqual(t, tr.MixingScalar().Sign(), 0)
}
