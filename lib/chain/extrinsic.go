// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package chain

import (
	"fmt"

	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/keyring"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

const (
	extrinsicVersion = 4
	signedBit        = 0x80

	// Signing payloads longer than this are hashed before signing.
	maxUnhashedPayload = 256

	signatureLength = 64

	multiAddressID        = 0
	multiSignatureSr25519 = 1
)

// SignParams are the values of the signed extensions of an extrinsic.
type SignParams struct {
	Nonce              uint64
	Tip                scale.Uint128
	Era                Era
	SpecVersion        uint32
	TransactionVersion uint32
	GenesisHash        common.Hash
	// CheckpointHash is the hash of the block the mortal era starts at.
	// It is ignored for the immortal era.
	CheckpointHash common.Hash
	// MetadataHash enables the CheckMetadataHash extension when set.
	MetadataHash *common.Hash
}

// signedExtension produces the extra data included in the extrinsic and
// the additional data only included in the signing payload.
type signedExtension func(params SignParams) (extra, additional []byte, err error)

func noExtension(SignParams) (extra, additional []byte, err error) {
	return nil, nil, nil
}

func chargeTip(params SignParams) (extra, additional []byte, err error) {
	extra, err = scale.EncodeCompact(params.Tip.Big())
	return extra, nil, err
}

var signedExtensions = map[string]signedExtension{
	"CheckNonZeroSender": noExtension,
	"CheckWeight":        noExtension,
	"CheckSpecVersion": func(params SignParams) (extra, additional []byte, err error) {
		additional, err = scale.Marshal(params.SpecVersion)
		return nil, additional, err
	},
	"CheckTxVersion": func(params SignParams) (extra, additional []byte, err error) {
		additional, err = scale.Marshal(params.TransactionVersion)
		return nil, additional, err
	},
	"CheckGenesis": func(params SignParams) (extra, additional []byte, err error) {
		return nil, params.GenesisHash.ToBytes(), nil
	},
	"CheckMortality": checkMortality,
	"CheckEra":       checkMortality,
	"CheckNonce": func(params SignParams) (extra, additional []byte, err error) {
		return scale.EncodeCompactUint(params.Nonce), nil, nil
	},
	"ChargeTransactionPayment": chargeTip,
	"ChargeAssetTxPayment": func(params SignParams) (extra, additional []byte, err error) {
		extra, err = scale.EncodeCompact(params.Tip.Big())
		// no asset id
		return append(extra, 0), nil, err
	},
	"CheckMetadataHash": func(params SignParams) (extra, additional []byte, err error) {
		if params.MetadataHash == nil {
			return []byte{0}, []byte{0}, nil
		}
		return []byte{1}, append([]byte{1}, params.MetadataHash.ToBytes()...), nil
	},
}

func checkMortality(params SignParams) (extra, additional []byte, err error) {
	extra, err = params.Era.MarshalSCALE()
	if params.Era.IsImmortal() {
		return extra, params.GenesisHash.ToBytes(), err
	}
	return extra, params.CheckpointHash.ToBytes(), err
}

// encodeSignedExtensions returns the extra and additional data of the
// signed extensions listed by the runtime metadata, in order.
func encodeSignedExtensions(md *metadata.Metadata, params SignParams) (extra, additional []byte, err error) {
	for _, extension := range md.Extrinsic.SignedExtensions {
		encode, ok := extensionEncoder(md.Types, extension)
		if !ok {
			if isZeroSized(md.Types, extension.Type, 0) &&
				isZeroSized(md.Types, extension.AdditionalSigned, 0) {
				continue
			}
			return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedExtension, extension.Identifier)
		}

		extensionExtra, extensionAdditional, err := encode(params)
		if err != nil {
			return nil, nil, fmt.Errorf("encoding %s: %w", extension.Identifier, err)
		}
		extra = append(extra, extensionExtra...)
		additional = append(additional, extensionAdditional...)
	}
	return extra, additional, nil
}

const skipCheckIfFeeless = "SkipCheckIfFeeless"

// extensionEncoder returns the encoder of the signed extension.
// SkipCheckIfFeeless encodes as the extension it wraps.
func extensionEncoder(registry *metadata.Registry, extension metadata.SignedExtension) (signedExtension, bool) {
	identifier := extension.Identifier
	if identifier == skipCheckIfFeeless {
		identifier = wrappedExtension(registry, extension.Type)
	}
	encode, ok := signedExtensions[identifier]
	return encode, ok
}

// wrappedExtension returns the name of the extension wrapped by the
// extension type id, which is the type of its single field.
func wrappedExtension(registry *metadata.Registry, id metadata.TypeID) string {
	t, err := registry.Type(id)
	if err != nil || t.Definition.Kind != metadata.KindComposite || len(t.Definition.Fields) != 1 {
		return ""
	}
	inner, err := registry.Type(t.Definition.Fields[0].Type)
	if err != nil || len(inner.Path) == 0 {
		return ""
	}
	return inner.Path[len(inner.Path)-1]
}

// isZeroSized returns true if values of the type encode to no bytes.
func isZeroSized(registry *metadata.Registry, id metadata.TypeID, depth int) bool {
	const maxDepth = 16
	if depth > maxDepth {
		return false
	}

	t, err := registry.Type(id)
	if err != nil {
		return false
	}

	switch t.Definition.Kind {
	case metadata.KindComposite:
		for _, field := range t.Definition.Fields {
			if !isZeroSized(registry, field.Type, depth+1) {
				return false
			}
		}
		return true
	case metadata.KindTuple:
		for _, elem := range t.Definition.Tuple {
			if !isZeroSized(registry, elem, depth+1) {
				return false
			}
		}
		return true
	case metadata.KindArray:
		return t.Definition.Len == 0 || isZeroSized(registry, t.Definition.Elem, depth+1)
	default:
		return false
	}
}

// SigningPayload returns the payload signed for the call data and
// the sign parameters given. Payloads longer than 256 bytes are
// replaced by their blake2b-256 hash.
func SigningPayload(md *metadata.Metadata, callData []byte, params SignParams) (payload, extra []byte, err error) {
	extra, additional, err := encodeSignedExtensions(md, params)
	if err != nil {
		return nil, nil, err
	}

	payload = common.Concat(callData, extra, additional)
	if len(payload) > maxUnhashedPayload {
		hash, err := common.Blake2bHash(payload)
		if err != nil {
			return nil, nil, err
		}
		payload = hash.ToBytes()
	}
	return payload, extra, nil
}

// BuildSigned returns the SCALE encoded signed extrinsic of the call data,
// signed by the signer with a sr25519 MultiSignature.
func BuildSigned(md *metadata.Metadata, callData []byte, signer keyring.Signer,
	params SignParams) ([]byte, error) {
	if md.Extrinsic.Version != extrinsicVersion {
		return nil, fmt.Errorf("%w: extrinsic version %d", metadata.ErrUnsupportedVersion, md.Extrinsic.Version)
	}

	payload, extra, err := SigningPayload(md, callData, params)
	if err != nil {
		return nil, err
	}

	signature, err := signer.Sign(payload)
	if err != nil {
		return nil, fmt.Errorf("signing extrinsic: %w", err)
	}
	if len(signature) != signatureLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrSignatureLength, len(signature))
	}

	accountID := signer.AccountID()
	body := common.Concat(
		[]byte{signedBit | extrinsicVersion},
		[]byte{multiAddressID}, accountID[:],
		[]byte{multiSignatureSr25519}, signature,
		extra,
		callData,
	)
	return withLength(body), nil
}

// BuildUnsigned returns the SCALE encoded unsigned extrinsic of the call data.
func BuildUnsigned(callData []byte) []byte {
	return withLength(common.Concat([]byte{extrinsicVersion}, callData))
}

func withLength(body []byte) []byte {
	return common.Concat(scale.EncodeCompactUint(uint64(len(body))), body)
}

// ExtrinsicHash returns the hash of the SCALE encoded extrinsic,
// as returned by author_submitExtrinsic.
func ExtrinsicHash(extrinsic []byte) common.Hash {
	return common.MustBlake2bHash(extrinsic)
}
