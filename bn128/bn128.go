// Package bn128 wraps the alt_bn128 (BN254) primitives used by the proof
// validators: affine point checks over the base field, conversion into the
// pairing library's group types, and the bilinear pairing product check.
//
// Every operation either returns a well-formed group element or an explicit
// error; nothing downstream ever receives an unchecked point.
package bn128

import (
	"bytes"
	"math/big"

	bn256 "github.com/ethereum/go-ethereum/crypto/bn256/cloudflare"
	"github.com/pkg/errors"
)

// ErrGroupOperation is returned when an underlying curve primitive rejects its
// input (malformed point bytes, coordinates outside the base field).
var ErrGroupOperation = errors.New("bn128 group operation failed")

var (
	// GroupOrder is the prime order of the bn128 G1/G2 groups. All scalar
	// arithmetic in the validators is performed modulo this value.
	GroupOrder, _ = new(big.Int).SetString("21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)

	// FieldModulus is the prime modulus of the base field the curve is
	// defined over. Point coordinates live in [0, FieldModulus).
	FieldModulus, _ = new(big.Int).SetString("21888242871839275222246405745257275088696311157297823662689037894645226208583", 10)

	// curveB is the constant term of the curve equation y^2 = x^3 + 3.
	curveB = big.NewInt(3)
)

// read-only after init; safe to share between concurrent verifications
var (
	g2GeneratorBytes = new(bn256.G2).ScalarBaseMult(big.NewInt(1)).Marshal()
	g2IdentityBytes  = new(bn256.G2).ScalarBaseMult(big.NewInt(0)).Marshal()
)

// Point is an affine G1 point as it appears on the wire: two big-endian base
// field coordinates, not yet trusted to be on the curve.
type Point struct {
	X *big.Int
	Y *big.Int
}

// NewPoint builds a wire-level point from its affine coordinates.
func NewPoint(x, y *big.Int) *Point {
	return &Point{X: x, Y: y}
}

// OnCurve reports whether the point satisfies y^2 = x^3 + 3 with both
// coordinates inside the base field. The neutral element (0, 0) does not
// satisfy the equation and is therefore rejected here as well.
func (p *Point) OnCurve() bool {
	if p == nil || p.X == nil || p.Y == nil {
		return false
	}
	if p.X.Sign() < 0 || p.X.Cmp(FieldModulus) >= 0 {
		return false
	}
	if p.Y.Sign() < 0 || p.Y.Cmp(FieldModulus) >= 0 {
		return false
	}
	lhs := new(big.Int).Mul(p.Y, p.Y)
	lhs.Mod(lhs, FieldModulus)
	rhs := new(big.Int).Mul(p.X, p.X)
	rhs.Mul(rhs, p.X)
	rhs.Add(rhs, curveB)
	rhs.Mod(rhs, FieldModulus)
	return lhs.Cmp(rhs) == 0
}

// G1 converts the point into the pairing library's representation. The
// library re-validates the encoding, so a point that slipped past OnCurve
// still cannot reach group arithmetic.
func (p *Point) G1() (*bn256.G1, error) {
	if p == nil || p.X == nil || p.Y == nil {
		return nil, errors.Wrap(ErrGroupOperation, "nil point")
	}
	if p.X.Sign() < 0 || p.X.Cmp(FieldModulus) >= 0 || p.Y.Sign() < 0 || p.Y.Cmp(FieldModulus) >= 0 {
		return nil, errors.Wrap(ErrGroupOperation, "point coordinate outside base field")
	}
	buf := make([]byte, 64)
	p.X.FillBytes(buf[:32])
	p.Y.FillBytes(buf[32:])
	g := new(bn256.G1)
	if _, err := g.Unmarshal(buf); err != nil {
		return nil, errors.Wrap(ErrGroupOperation, err.Error())
	}
	return g, nil
}

// PointFromG1 converts a group element back to affine wire coordinates.
func PointFromG1(g *bn256.G1) *Point {
	m := g.Marshal()
	return &Point{
		X: new(big.Int).SetBytes(m[:32]),
		Y: new(big.Int).SetBytes(m[32:]),
	}
}

// G2FromLimbs builds a G2 element from its four base-field limbs, given in
// the pairing library's marshal order: x imaginary, x real, y imaginary,
// y real. The encoding check rejects off-curve and out-of-field input.
func G2FromLimbs(limbs [4]*big.Int) (*bn256.G2, error) {
	buf := make([]byte, 128)
	for i, l := range limbs {
		if l == nil || l.Sign() < 0 || l.Cmp(FieldModulus) >= 0 {
			return nil, errors.Wrap(ErrGroupOperation, "twist point limb outside base field")
		}
		l.FillBytes(buf[i*32 : (i+1)*32])
	}
	g := new(bn256.G2)
	if _, err := g.Unmarshal(buf); err != nil {
		return nil, errors.Wrap(ErrGroupOperation, err.Error())
	}
	return g, nil
}

// IsDegenerateG2 reports whether a trusted-setup point is unusable: the group
// identity or the canonical G2 generator, both of which indicate a missing or
// misconfigured setup ceremony.
func IsDegenerateG2(g *bn256.G2) bool {
	m := g.Marshal()
	return bytes.Equal(m, g2IdentityBytes) || bytes.Equal(m, g2GeneratorBytes)
}

// G2Generator returns a fresh copy of the canonical G2 generator.
func G2Generator() *bn256.G2 {
	return new(bn256.G2).ScalarBaseMult(big.NewInt(1))
}

// PairingCheck evaluates the product of pairings over the supplied points and
// reports whether it equals the identity of the target group.
func PairingCheck(a []*bn256.G1, b []*bn256.G2) bool {
	return bn256.PairingCheck(a, b)
}
