package types

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlie-g-cowan/AZTEC/bn128"
)

// (1, 2) generates G1, so it doubles as a convenient on-curve fixture.
func validNote() *Note {
	return &Note{
		KBar:  big.NewInt(5),
		ABar:  big.NewInt(7),
		Gamma: bn128.NewPoint(big.NewInt(1), big.NewInt(2)),
		Sigma: bn128.NewPoint(big.NewInt(1), big.NewInt(2)),
	}
}

func TestNoteValidate(t *testing.T) {
	require.NoError(t, validNote().Validate())
}

func TestNoteValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(n *Note)
	}{
		{name: "missing kBar", mutate: func(n *Note) { n.KBar = nil }},
		{name: "kBar zero", mutate: func(n *Note) { n.KBar = big.NewInt(0) }},
		{name: "kBar one", mutate: func(n *Note) { n.KBar = big.NewInt(1) }},
		{name: "kBar at group order", mutate: func(n *Note) { n.KBar = new(big.Int).Set(bn128.GroupOrder) }},
		{name: "aBar one", mutate: func(n *Note) { n.ABar = big.NewInt(1) }},
		{name: "gamma off curve", mutate: func(n *Note) { n.Gamma = bn128.NewPoint(big.NewInt(1), big.NewInt(4)) }},
		{name: "gamma missing", mutate: func(n *Note) { n.Gamma = nil }},
		{name: "sigma off curve", mutate: func(n *Note) { n.Sigma = bn128.NewPoint(big.NewInt(2), big.NewInt(2)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := validNote()
			tt.mutate(n)
			require.ErrorIs(t, n.Validate(), ErrInvalidCommitment)
		})
	}

	var missing *Note
	require.ErrorIs(t, missing.Validate(), ErrInvalidCommitment)
}

func TestNoteValidateBoundaryScalar(t *testing.T) {
	n := validNote()
	n.KBar = big.NewInt(2)
	n.ABar = new(big.Int).Sub(bn128.GroupOrder, big.NewInt(1))
	require.NoError(t, n.Validate())
}
