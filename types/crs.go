package types

import (
	"math/big"

	bn256 "github.com/ethereum/go-ethereum/crypto/bn256/cloudflare"
	"github.com/pkg/errors"

	"github.com/charlie-g-cowan/AZTEC/bn128"
)

// ErrMalformedCRS is returned when the trusted-setup point of a common
// reference string is the group identity or the canonical generator, both of
// which indicate a missing or misconfigured setup ceremony.
var ErrMalformedCRS = errors.New("malformed common reference string")

// CRS is the common reference string supplied with every verification call:
// the generator h and the trusted-setup point t2. It is supplied per call so
// different deployments can run against different setups.
type CRS struct {
	// H is the second-generator point in G1.
	H *bn128.Point
	// T2 holds the trusted-setup point's four base-field limbs, in the
	// pairing library's marshal order.
	T2 [4]*big.Int
}

// Validate checks the reference string's shape and returns its group
// elements. The degenerate-setup guard is deliberate: an identity or
// generator t2 would make the pairing check vacuous.
func (c *CRS) Validate() (h *bn256.G1, t2 *bn256.G2, err error) {
	if c == nil {
		return nil, nil, errors.Wrap(ErrMalformedCRS, "missing reference string")
	}
	if !c.H.OnCurve() {
		return nil, nil, errors.Wrap(ErrMalformedCRS, "h is not on the curve")
	}
	h, err = c.H.G1()
	if err != nil {
		return nil, nil, err
	}
	t2, err = bn128.G2FromLimbs(c.T2)
	if err != nil {
		return nil, nil, err
	}
	if bn128.IsDegenerateG2(t2) {
		return nil, nil, errors.Wrap(ErrMalformedCRS, "trusted setup point is degenerate")
	}
	return h, t2, nil
}
