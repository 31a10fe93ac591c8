// Package aztec verifies zero-knowledge proofs attached to confidential
// asset note transfers. Each proof type in the family is identified by a
// 24-bit proof id and served by its own validator; the library routes a
// dispatch message to the registered validator and, on success, re-encodes
// the validated notes for the caller's bookkeeping.
package aztec

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/charlie-g-cowan/AZTEC/publicrange"
	"github.com/charlie-g-cowan/AZTEC/types"
)

// ProofID identifies a proof type: an epoch byte, a category byte and an id
// byte packed into the low 24 bits.
type ProofID uint32

// MakeProofID packs an epoch, category and id into a ProofID.
func MakeProofID(epoch, category, id uint8) ProofID {
	return ProofID(uint32(epoch)<<16 | uint32(category)<<8 | uint32(id))
}

// Proof categories. Balanced proofs conserve value across notes; mint and
// burn adjust total supply; utility proofs assert relations without moving
// value.
const (
	CategoryBalanced uint8 = 1
	CategoryMint     uint8 = 2
	CategoryBurn     uint8 = 3
	CategoryUtility  uint8 = 4
)

// PublicRangeProof is the proof id of the public range validator.
var PublicRangeProof = MakeProofID(1, CategoryUtility, 3)

// Validator is the contract every proof validator implements: a pure
// verification predicate over the caller identity, the common reference
// string and a decoded proof.
//
//go:generate mockgen -destination=mock/validator.go -package=mock . Validator
type Validator interface {
	Validate(sender common.Address, crs *types.CRS, proof *types.Proof) error
}

var validatorRegistry = map[ProofID]Validator{}
var registryLock = new(sync.RWMutex)

// RegisterValidator registers a validator for a proof id. Validators hold no
// per-call state, so a single instance serves all dispatches.
func RegisterValidator(id ProofID, v Validator) {
	registryLock.Lock()
	defer registryLock.Unlock()

	validatorRegistry[id] = v
}

// nolint // register supported proofs
func init() {
	RegisterValidator(PublicRangeProof, publicrange.Validator{})
}

// GetValidator returns the validator registered for a proof id.
func GetValidator(id ProofID) (Validator, error) {
	registryLock.RLock()
	defer registryLock.RUnlock()

	v, ok := validatorRegistry[id]
	if !ok {
		return nil, errors.Errorf("no validator registered for proof id %d", id)
	}
	return v, nil
}
