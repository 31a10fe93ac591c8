// Package encoding implements the binary contract between the external
// dispatcher and the proof validators. A dispatch message carries the caller
// identity, the common reference string and an opaque proof-data block; a
// success payload re-encodes the validated notes with their owner arrays and
// metadata, unchanged, for downstream bookkeeping.
package encoding

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/charlie-g-cowan/AZTEC/bn128"
	"github.com/charlie-g-cowan/AZTEC/types"
)

// ErrInvalidInput is returned when a dispatch message cannot be decoded.
var ErrInvalidInput = errors.New("invalid dispatch message")

// abi types. Note tuples are six words wide: kBar, aBar, gamma.x, gamma.y,
// sigma.x, sigma.y.
var (
	addressTy, _   = abi.NewType("address", "", nil)
	addressSlTy, _ = abi.NewType("address[]", "", nil)
	uint256Ty, _   = abi.NewType("uint256", "", nil)
	crsTy, _       = abi.NewType("uint256[6]", "", nil)
	notesTy, _     = abi.NewType("uint256[6][]", "", nil)
	bytesTy, _     = abi.NewType("bytes", "", nil)

	messageArgs = abi.Arguments{
		{Type: addressTy, Name: "sender"},
		{Type: crsTy, Name: "crs"},
		{Type: bytesTy, Name: "proofData"},
	}
	proofDataArgs = abi.Arguments{
		{Type: uint256Ty, Name: "challenge"},
		{Type: uint256Ty, Name: "publicComparison"},
		{Type: notesTy, Name: "notes"},
		{Type: addressSlTy, Name: "inputOwners"},
		{Type: addressSlTy, Name: "outputOwners"},
		{Type: bytesTy, Name: "metadata"},
	}
	outputArgs = abi.Arguments{
		{Type: notesTy, Name: "notes"},
		{Type: addressSlTy, Name: "inputOwners"},
		{Type: addressSlTy, Name: "outputOwners"},
		{Type: bytesTy, Name: "metadata"},
	}
)

// DecodeMessage decodes a dispatch message into the caller identity, the
// reference string and the proof. Decoding performs no cryptographic
// validation; the validator does that.
func DecodeMessage(msg []byte) (common.Address, *types.CRS, *types.Proof, error) {
	values, err := messageArgs.Unpack(msg)
	if err != nil {
		return common.Address{}, nil, nil, errors.Wrap(ErrInvalidInput, err.Error())
	}
	sender, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, nil, nil, errors.Wrap(ErrInvalidInput, "sender is not an address")
	}
	crsWords, ok := values[1].([6]*big.Int)
	if !ok {
		return common.Address{}, nil, nil, errors.Wrap(ErrInvalidInput, "reference string is not six words")
	}
	proofData, ok := values[2].([]byte)
	if !ok {
		return common.Address{}, nil, nil, errors.Wrap(ErrInvalidInput, "proof data is not a byte block")
	}

	crs := &types.CRS{
		H:  bn128.NewPoint(crsWords[0], crsWords[1]),
		T2: [4]*big.Int{crsWords[2], crsWords[3], crsWords[4], crsWords[5]},
	}
	proof, err := decodeProofData(proofData)
	if err != nil {
		return common.Address{}, nil, nil, err
	}
	return sender, crs, proof, nil
}

func decodeProofData(data []byte) (*types.Proof, error) {
	values, err := proofDataArgs.Unpack(data)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidInput, err.Error())
	}
	challenge, ok := values[0].(*big.Int)
	if !ok {
		return nil, errors.Wrap(ErrInvalidInput, "challenge is not a word")
	}
	publicComparison, ok := values[1].(*big.Int)
	if !ok {
		return nil, errors.Wrap(ErrInvalidInput, "publicComparison is not a word")
	}
	noteWordsList, ok := values[2].([][6]*big.Int)
	if !ok {
		return nil, errors.Wrap(ErrInvalidInput, "notes are not 6-word tuples")
	}
	inputOwners, ok := values[3].([]common.Address)
	if !ok {
		return nil, errors.Wrap(ErrInvalidInput, "input owners are not addresses")
	}
	outputOwners, ok := values[4].([]common.Address)
	if !ok {
		return nil, errors.Wrap(ErrInvalidInput, "output owners are not addresses")
	}
	metadata, ok := values[5].([]byte)
	if !ok {
		return nil, errors.Wrap(ErrInvalidInput, "metadata is not a byte block")
	}

	notes := make([]*types.Note, len(noteWordsList))
	for i, w := range noteWordsList {
		notes[i] = &types.Note{
			KBar:  w[0],
			ABar:  w[1],
			Gamma: bn128.NewPoint(w[2], w[3]),
			Sigma: bn128.NewPoint(w[4], w[5]),
		}
	}
	return &types.Proof{
		Challenge:        challenge,
		PublicComparison: publicComparison,
		Notes:            notes,
		InputOwners:      inputOwners,
		OutputOwners:     outputOwners,
		Metadata:         metadata,
	}, nil
}

// EncodeMessage packs a dispatch message. The library never calls it during
// verification; it exists for callers (and tests) standing in for the
// external dispatcher.
func EncodeMessage(sender common.Address, crs *types.CRS, proof *types.Proof) ([]byte, error) {
	proofData, err := proofDataArgs.Pack(
		proof.Challenge,
		proof.PublicComparison,
		flattenNotes(proof.Notes),
		proof.InputOwners,
		proof.OutputOwners,
		proof.Metadata,
	)
	if err != nil {
		return nil, err
	}
	crsWords := [6]*big.Int{crs.H.X, crs.H.Y, crs.T2[0], crs.T2[1], crs.T2[2], crs.T2[3]}
	return messageArgs.Pack(sender, crsWords, proofData)
}

// EncodeOutputs packs the success payload: the validated notes together with
// the owner arrays and metadata, exactly as received.
func EncodeOutputs(proof *types.Proof) ([]byte, error) {
	return outputArgs.Pack(
		flattenNotes(proof.Notes),
		proof.InputOwners,
		proof.OutputOwners,
		proof.Metadata,
	)
}

func flattenNotes(notes []*types.Note) [][6]*big.Int {
	out := make([][6]*big.Int, len(notes))
	for i, n := range notes {
		out[i] = [6]*big.Int{n.KBar, n.ABar, n.Gamma.X, n.Gamma.Y, n.Sigma.X, n.Sigma.Y}
	}
	return out
}
