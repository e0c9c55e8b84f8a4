// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package chain

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/crypto/sr25519"
	"github.com/ChainSafe/argon-client/lib/keyring"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/lib/metadata/metadatatest"
	"github.com/ChainSafe/argon-client/pkg/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MortalEra(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		period  uint64
		current uint64
		era     Era
		encoded []byte
	}{
		"period 64": {
			period:  64,
			current: 42,
			era:     Era{Period: 64, Phase: 42},
			encoded: []byte{0xa5, 0x02},
		},
		"quantized phase": {
			period:  32768,
			current: 20000,
			era:     Era{Period: 32768, Phase: 20000},
			encoded: []byte{0x4e, 0x9c},
		},
		"period rounded up": {
			period:  50,
			current: 100,
			era:     Era{Period: 64, Phase: 36},
			encoded: []byte{0x45, 0x02},
		},
		"minimum period": {
			period:  1,
			current: 5,
			era:     Era{Period: 4, Phase: 1},
			encoded: []byte{0x11, 0x00},
		},
		"maximum period": {
			period:  1 << 20,
			current: 70000,
			era:     Era{Period: 65536, Phase: 4464},
			encoded: []byte{0x7f, 0x11},
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			era := MortalEra(testCase.period, testCase.current)
			assert.Equal(t, testCase.era, era)

			encoded, err := scale.Marshal(era)
			require.NoError(t, err)
			assert.Equal(t, testCase.encoded, encoded)

			var decoded Era
			err = scale.Unmarshal(encoded, &decoded)
			require.NoError(t, err)
			assert.Equal(t, era, decoded)
		})
	}
}

func Test_Era(t *testing.T) {
	t.Parallel()

	immortal := ImmortalEra()
	assert.True(t, immortal.IsImmortal())
	assert.Equal(t, "immortal", immortal.String())
	assert.Equal(t, uint64(0), immortal.Birth(1000))
	encoded, err := scale.Marshal(immortal)
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, encoded)

	mortal := MortalEra(64, 1000)
	assert.False(t, mortal.IsImmortal())
	assert.Equal(t, "mortal(period 64, phase 40)", mortal.String())
	assert.Equal(t, uint64(1000), mortal.Birth(1000))
	assert.Equal(t, uint64(1000), mortal.Birth(1010))
	assert.Equal(t, uint64(1064), mortal.Death(1010))

	var decoded Era
	err = scale.Unmarshal([]byte{0x00}, &decoded)
	require.NoError(t, err)
	assert.True(t, decoded.IsImmortal())

	err = scale.Unmarshal([]byte{0x41, 0x00}, &decoded)
	assert.ErrorIs(t, err, ErrInvalidEra)
}

type shortSigner struct{}

func (shortSigner) AccountID() [32]byte { return [32]byte{} }

func (shortSigner) Sign([]byte) ([]byte, error) { return []byte{1}, nil }

type failingSigner struct{}

func (failingSigner) AccountID() [32]byte { return [32]byte{} }

var errLocked = errors.New("locked")

func (failingSigner) Sign([]byte) ([]byte, error) { return nil, errLocked }

func testSignParams() SignParams {
	return SignParams{
		Nonce:              3,
		Era:                MortalEra(64, 42),
		SpecVersion:        100,
		TransactionVersion: 1,
		GenesisHash:        common.Hash{1},
		CheckpointHash:     common.Hash{2},
	}
}

func Test_SigningPayload(t *testing.T) {
	t.Parallel()

	callData := []byte{metadatatest.SystemIndex, 0, 0x0c, 1, 2, 3}
	genesis := common.Hash{1}
	checkpoint := common.Hash{2}
	metadataHash := common.Hash{3}

	testCases := map[string]struct {
		params     func() SignParams
		extra      []byte
		additional []byte
	}{
		"mortal": {
			params: testSignParams,
			extra:  []byte{0xa5, 0x02, 0x0c, 0x00, 0x00},
			additional: common.Concat([]byte{100, 0, 0, 0}, []byte{1, 0, 0, 0},
				genesis[:], checkpoint[:], []byte{0}),
		},
		"immortal with tip": {
			params: func() SignParams {
				params := testSignParams()
				params.Era = ImmortalEra()
				params.Tip = scale.Uint128FromUint64(1)
				return params
			},
			extra: []byte{0x00, 0x0c, 0x04, 0x00},
			additional: common.Concat([]byte{100, 0, 0, 0}, []byte{1, 0, 0, 0},
				genesis[:], genesis[:], []byte{0}),
		},
		"metadata hash": {
			params: func() SignParams {
				params := testSignParams()
				params.MetadataHash = &metadataHash
				return params
			},
			extra: []byte{0xa5, 0x02, 0x0c, 0x00, 0x01},
			additional: common.Concat([]byte{100, 0, 0, 0}, []byte{1, 0, 0, 0},
				genesis[:], checkpoint[:], []byte{1}, metadataHash[:]),
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			md := metadatatest.Argon(metadata.V15)
			payload, extra, err := SigningPayload(md, callData, testCase.params())
			require.NoError(t, err)
			assert.Equal(t, testCase.extra, extra)
			assert.Equal(t, common.Concat(callData, testCase.extra, testCase.additional), payload)
		})
	}
}

func Test_SigningPayload_hashed(t *testing.T) {
	t.Parallel()

	md := metadatatest.Argon(metadata.V15)
	callData := common.Concat([]byte{metadatatest.SystemIndex, 0, 0x01, 0x04}, bytes.Repeat([]byte{7}, 256))

	payload, extra, err := SigningPayload(md, callData, testSignParams())
	require.NoError(t, err)

	_, additional, err := encodeSignedExtensions(md, testSignParams())
	require.NoError(t, err)
	expected := common.MustBlake2bHash(common.Concat(callData, extra, additional))
	assert.Equal(t, expected.ToBytes(), payload)
}

func Test_SigningPayload_extensions(t *testing.T) {
	t.Parallel()

	t.Run("zero sized unknown extension", func(t *testing.T) {
		t.Parallel()

		md := metadatatest.Argon(metadata.V15)
		expectedPayload, _, err := SigningPayload(md, []byte{0, 0}, testSignParams())
		require.NoError(t, err)

		first := md.Extrinsic.SignedExtensions[0]
		md.Extrinsic.SignedExtensions = append(md.Extrinsic.SignedExtensions, metadata.SignedExtension{
			Identifier:       "CheckNothing",
			Type:             first.Type,
			AdditionalSigned: first.AdditionalSigned,
		})

		payload, _, err := SigningPayload(md, []byte{0, 0}, testSignParams())
		require.NoError(t, err)
		assert.Equal(t, expectedPayload, payload)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()

		md := metadatatest.Argon(metadata.V15)
		specVersion := md.Extrinsic.SignedExtensions[1]
		md.Extrinsic.SignedExtensions = append(md.Extrinsic.SignedExtensions, metadata.SignedExtension{
			Identifier:       "CheckSomething",
			Type:             specVersion.Type,
			AdditionalSigned: specVersion.AdditionalSigned,
		})

		_, _, err := SigningPayload(md, []byte{0, 0}, testSignParams())
		assert.ErrorIs(t, err, ErrUnsupportedExtension)
		assert.EqualError(t, err, "unsupported signed extension: CheckSomething")
	})

	t.Run("skip check if feeless wrapping the payment extension", func(t *testing.T) {
		t.Parallel()

		md := metadatatest.Argon(metadata.V15)
		params := testSignParams()
		params.Tip = scale.Uint128FromUint64(1)
		expectedPayload, expectedExtra, err := SigningPayload(md, []byte{0, 0}, params)
		require.NoError(t, err)

		wrapFeeless(t, md, "ChargeTransactionPayment", "")

		payload, extra, err := SigningPayload(md, []byte{0, 0}, params)
		require.NoError(t, err)
		assert.Equal(t, expectedExtra, extra)
		assert.Equal(t, expectedPayload, payload)
	})

	t.Run("skip check if feeless wrapping an unknown extension", func(t *testing.T) {
		t.Parallel()

		md := metadatatest.Argon(metadata.V15)
		wrapFeeless(t, md, "ChargeTransactionPayment", "ChargeSomething")

		_, _, err := SigningPayload(md, []byte{0, 0}, testSignParams())
		assert.ErrorIs(t, err, ErrUnsupportedExtension)
		assert.EqualError(t, err, "unsupported signed extension: SkipCheckIfFeeless")
	})
}

// wrapFeeless replaces the signed extension identified by wrapped with
// a SkipCheckIfFeeless extension wrapping it. A non empty renamed gives
// the wrapped type another name.
func wrapFeeless(t *testing.T, md *metadata.Metadata, wrapped, renamed string) {
	t.Helper()

	types := append([]metadata.PortableType(nil), md.Types.Types()...)
	add := func(typ metadata.Type) metadata.TypeID {
		id := metadata.TypeID(len(types))
		types = append(types, metadata.PortableType{ID: id, Type: typ})
		return id
	}

	extensions := append([]metadata.SignedExtension(nil), md.Extrinsic.SignedExtensions...)
	for i, extension := range extensions {
		if extension.Identifier != wrapped {
			continue
		}

		inner := extension.Type
		if renamed != "" {
			innerType, err := md.Types.Type(inner)
			require.NoError(t, err)
			renamedType := *innerType
			renamedType.Path = []string{"pallet_example", renamed}
			inner = add(renamedType)
		}

		extensions[i].Identifier = "SkipCheckIfFeeless"
		extensions[i].Type = add(metadata.Type{
			Path: []string{"pallet_skip_feeless_payment", "SkipCheckIfFeeless"},
			Params: []metadata.TypeParameter{
				{Name: "T"},
				metadatatest.Param("S", inner),
			},
			Definition: metadata.TypeDef{
				Kind:   metadata.KindComposite,
				Fields: []metadata.Field{metadatatest.Unnamed(inner)},
			},
		})
		md.Types = metadata.NewRegistry(types)
		md.Extrinsic.SignedExtensions = extensions
		return
	}
	t.Fatalf("no %s signed extension", wrapped)
}

func Test_BuildSigned(t *testing.T) {
	t.Parallel()

	md := metadatatest.Argon(metadata.V15)
	signer := keyring.MustDevSigner("alice")
	accountID := signer.AccountID()
	callData := []byte{metadatatest.SystemIndex, 0, 0x0c, 1, 2, 3}
	params := testSignParams()

	extrinsic, err := BuildSigned(md, callData, signer, params)
	require.NoError(t, err)

	require.Len(t, extrinsic, 112)
	assert.Equal(t, []byte{0xb9, 0x01}, extrinsic[:2])

	body := extrinsic[2:]
	assert.Equal(t, byte(0x84), body[0])
	assert.Equal(t, byte(0), body[1])
	assert.Equal(t, accountID[:], body[2:34])
	assert.Equal(t, byte(1), body[34])
	assert.Equal(t, []byte{0xa5, 0x02, 0x0c, 0x00, 0x00}, body[99:104])
	assert.Equal(t, callData, body[104:])

	payload, _, err := SigningPayload(md, callData, params)
	require.NoError(t, err)
	publicKey, err := sr25519.NewPublicKey(accountID[:])
	require.NoError(t, err)
	ok, err := publicKey.Verify(payload, body[35:99])
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, common.MustBlake2bHash(extrinsic), ExtrinsicHash(extrinsic))
}

func Test_BuildSigned_errors(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		signer     keyring.Signer
		version    uint8
		errWrapped error
		errMessage string
	}{
		"unsupported extrinsic version": {
			signer:     keyring.MustDevSigner("bob"),
			version:    5,
			errWrapped: metadata.ErrUnsupportedVersion,
		},
		"signer error": {
			signer:     failingSigner{},
			version:    4,
			errWrapped: errLocked,
			errMessage: "signing extrinsic: locked",
		},
		"short signature": {
			signer:     shortSigner{},
			version:    4,
			errWrapped: ErrSignatureLength,
			errMessage: "signature must be 64 bytes: 1 bytes",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			md := metadatatest.Argon(metadata.V15)
			md.Extrinsic.Version = testCase.version

			extrinsic, err := BuildSigned(md, []byte{0, 0}, testCase.signer, testSignParams())
			assert.Nil(t, extrinsic)
			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errMessage != "" {
				assert.EqualError(t, err, testCase.errMessage)
			}
		})
	}
}

func Test_BuildUnsigned(t *testing.T) {
	t.Parallel()

	extrinsic := BuildUnsigned([]byte{metadatatest.TimestampIndex, 0, 0x0b, 0x00, 0xa0, 0x72, 0x4e, 0x18, 0x09})
	assert.Equal(t, []byte{0x28, 0x04, metadatatest.TimestampIndex, 0, 0x0b, 0x00, 0xa0, 0x72, 0x4e, 0x18, 0x09},
		extrinsic)
}
