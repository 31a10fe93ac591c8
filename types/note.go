// Package types holds the data model shared by the proof validators: notes,
// proofs and the common reference string, together with the commitment and
// setup validation rules every validator applies before touching group
// arithmetic.
package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/charlie-g-cowan/AZTEC/bn128"
)

// ErrInvalidCommitment is returned when a note's curve points or disclosed
// scalars fail validation.
var ErrInvalidCommitment = errors.New("invalid note commitment")

// scalars below this bound make the Schnorr relation trivially satisfiable
var minScalar = big.NewInt(2)

// Note is the unit a proof speaks about: a commitment pair on the curve and
// the two blinded scalars disclosed alongside it.
type Note struct {
	// KBar is the blinded value component.
	KBar *big.Int
	// ABar is the blinded randomness component.
	ABar *big.Int
	// Gamma is the value commitment base point.
	Gamma *bn128.Point
	// Sigma is the value commitment point.
	Sigma *bn128.Point
}

// Validate confirms the note is usable in group arithmetic: both points lie
// on the curve and both disclosed scalars are in [2, GroupOrder). It must be
// called before the note's points are fed to any group operation, since a
// crafted off-curve point breaks the soundness of later additions.
func (n *Note) Validate() error {
	if n == nil {
		return errors.Wrap(ErrInvalidCommitment, "nil note")
	}
	if err := validateScalar(n.KBar); err != nil {
		return errors.Wrap(ErrInvalidCommitment, "kBar "+err.Error())
	}
	if err := validateScalar(n.ABar); err != nil {
		return errors.Wrap(ErrInvalidCommitment, "aBar "+err.Error())
	}
	if !n.Gamma.OnCurve() {
		return errors.Wrap(ErrInvalidCommitment, "gamma is not on the curve")
	}
	if !n.Sigma.OnCurve() {
		return errors.Wrap(ErrInvalidCommitment, "sigma is not on the curve")
	}
	return nil
}

func validateScalar(s *big.Int) error {
	if s == nil {
		return errors.New("is missing")
	}
	if s.Cmp(minScalar) < 0 {
		return errors.New("is degenerate")
	}
	if s.Cmp(bn128.GroupOrder) >= 0 {
		return errors.New("exceeds the group order")
	}
	return nil
}

// Proof is an ordered note sequence plus the Fiat-Shamir challenge and the
// publicly disclosed comparison amount relating the note values. Owner
// identities and metadata are opaque pass-through data for the caller's
// bookkeeping; no validator interprets them.
type Proof struct {
	Challenge        *big.Int
	PublicComparison *big.Int
	Notes            []*Note
	InputOwners      []common.Address
	OutputOwners     []common.Address
	Metadata         []byte
}
