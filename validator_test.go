package aztec

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/charlie-g-cowan/AZTEC/encoding"
	"github.com/charlie-g-cowan/AZTEC/internal/testsetup"
	"github.com/charlie-g-cowan/AZTEC/mock"
	"github.com/charlie-g-cowan/AZTEC/publicrange"
	"github.com/charlie-g-cowan/AZTEC/types"
)

var testSender = common.HexToAddress("0x2222AAbbccDD9876543210FedCBa111122223333")

func testMessage(t *testing.T) (*types.Proof, []byte) {
	t.Helper()
	setup := testsetup.New(43, 17)
	proof := setup.Prove(testSender, 3, []testsetup.Opening{{K: 5, A: 7}, {K: 2, A: 11}})
	msg, err := encoding.EncodeMessage(testSender, setup.CRS, proof)
	require.NoError(t, err)
	return proof, msg
}

func TestValidatePublicRangeMessage(t *testing.T) {
	proof, msg := testMessage(t)

	payload, err := Validate(PublicRangeProof, msg)
	require.NoError(t, err)

	want, err := encoding.EncodeOutputs(proof)
	require.NoError(t, err)
	require.Equal(t, want, payload)
}

func TestValidateRejectsTamperedMessage(t *testing.T) {
	setup := testsetup.New(43, 17)
	proof := setup.Prove(testSender, 3, []testsetup.Opening{{K: 5, A: 7}, {K: 2, A: 11}})
	proof.Notes[0].KBar = big.NewInt(1)
	msg, err := encoding.EncodeMessage(testSender, setup.CRS, proof)
	require.NoError(t, err)

	payload, err := Validate(PublicRangeProof, msg)
	require.Nil(t, payload)
	require.ErrorIs(t, err, types.ErrInvalidCommitment)
}

func TestValidateRejectsUndecodableMessage(t *testing.T) {
	payload, err := Validate(PublicRangeProof, []byte("not a dispatch message"))
	require.Nil(t, payload)
	require.ErrorIs(t, err, encoding.ErrInvalidInput)
}

func TestValidateUnknownProofID(t *testing.T) {
	_, msg := testMessage(t)
	_, err := Validate(MakeProofID(1, CategoryBalanced, 1), msg)
	require.Error(t, err)
}

func TestValidateDispatchesToRegisteredValidator(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := MakeProofID(9, CategoryUtility, 9)
	v := mock.NewMockValidator(ctrl)
	RegisterValidator(id, v)

	_, msg := testMessage(t)

	rejection := errors.New("rejected by proof-specific rules")
	v.EXPECT().Validate(testSender, gomock.Any(), gomock.Any()).Return(rejection)
	_, err := Validate(id, msg)
	require.ErrorIs(t, err, rejection)

	v.EXPECT().Validate(testSender, gomock.Any(), gomock.Any()).Return(nil)
	payload, err := Validate(id, msg)
	require.NoError(t, err)
	require.NotEmpty(t, payload)
}

func TestGetValidator(t *testing.T) {
	v, err := GetValidator(PublicRangeProof)
	require.NoError(t, err)
	require.IsType(t, publicrange.Validator{}, v)

	_, err = GetValidator(MakeProofID(0, 0, 0))
	require.Error(t, err)
}

func TestMakeProofID(t *testing.T) {
	require.Equal(t, ProofID(66563), MakeProofID(1, CategoryUtility, 3))
	require.Equal(t, PublicRangeProof, MakeProofID(1, 4, 3))
}
