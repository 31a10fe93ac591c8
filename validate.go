package aztec

import (
	"github.com/pkg/errors"

	"github.com/charlie-g-cowan/AZTEC/encoding"
)

// Validate decodes a dispatch message, routes it to the validator registered
// for the proof id, and returns the ABI-encoded success payload: the
// validated notes together with the untouched owner arrays and metadata.
//
// Verification is all-or-nothing. A non-nil error means the proof was
// rejected and no output exists; callers must not infer partial success from
// any rejection.
func Validate(id ProofID, message []byte) ([]byte, error) {
	v, err := GetValidator(id)
	if err != nil {
		return nil, err
	}
	sender, crs, proof, err := encoding.DecodeMessage(message)
	if err != nil {
		return nil, err
	}
	if err := v.Validate(sender, crs, proof); err != nil {
		return nil, errors.Wrapf(err, "proof id %d rejected", id)
	}
	return encoding.EncodeOutputs(proof)
}
