// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ChainSafe/argon-client/lib/common"
)

var (
	ErrInvalidBlockNumber = errors.New("invalid block number")
	ErrUnknownTxStatus    = errors.New("unknown transaction status")
)

// BlockNumber is a block number as sent by the node, which
// is either a 0x prefixed hex string or a JSON number.
type BlockNumber uint32

// UnmarshalJSON decodes a hex string or number.
func (b *BlockNumber) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n uint32
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidBlockNumber, string(data))
		}
		*b = BlockNumber(n)
		return nil
	}

	n, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 32)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidBlockNumber, s)
	}
	*b = BlockNumber(n)
	return nil
}

// MarshalJSON encodes the block number as a hex string.
func (b BlockNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + strconv.FormatUint(uint64(b), 16))
}

// Digest holds the hex encoded digest items of a header.
type Digest struct {
	Logs []string `json:"logs"`
}

// Header is a block header.
type Header struct {
	ParentHash     common.Hash `json:"parentHash"`
	Number         BlockNumber `json:"number"`
	StateRoot      common.Hash `json:"stateRoot"`
	ExtrinsicsRoot common.Hash `json:"extrinsicsRoot"`
	Digest         Digest      `json:"digest"`
}

// Hash returns the blake2b-256 hash of the SCALE encoded header.
func (h *Header) Hash() (common.Hash, error) {
	encoded, err := h.Encode()
	if err != nil {
		return common.Hash{}, err
	}
	return common.Blake2bHash(encoded)
}

// Block is a block with hex encoded extrinsics.
type Block struct {
	Header     Header   `json:"header"`
	Extrinsics []string `json:"extrinsics"`
}

// SignedBlock is a block with its justifications.
type SignedBlock struct {
	Block          Block           `json:"block"`
	Justifications json.RawMessage `json:"justifications"`
}

// APIVersion is a runtime API identifier with its version.
type APIVersion struct {
	ID      string
	Version uint32
}

// UnmarshalJSON decodes the [id, version] pair sent by the node.
func (a *APIVersion) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("api version: expected 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &a.ID); err != nil {
		return fmt.Errorf("api version id: %w", err)
	}
	if err := json.Unmarshal(pair[1], &a.Version); err != nil {
		return fmt.Errorf("api version: %w", err)
	}
	return nil
}

// MarshalJSON encodes the api version as an [id, version] pair.
func (a APIVersion) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{a.ID, a.Version})
}

// RuntimeVersion is the runtime version returned by state_getRuntimeVersion.
type RuntimeVersion struct {
	SpecName           string       `json:"specName"`
	ImplName           string       `json:"implName"`
	AuthoringVersion   uint32       `json:"authoringVersion"`
	SpecVersion        uint32       `json:"specVersion"`
	ImplVersion        uint32       `json:"implVersion"`
	APIs               []APIVersion `json:"apis"`
	TransactionVersion uint32       `json:"transactionVersion"`
	StateVersion       uint8        `json:"stateVersion"`
}

// Properties are the chain properties returned by system_properties.
// Token fields are kept raw since nodes send either a single value
// or a list of values.
type Properties struct {
	SS58Format    *uint16         `json:"ss58Format,omitempty"`
	TokenDecimals json.RawMessage `json:"tokenDecimals,omitempty"`
	TokenSymbol   json.RawMessage `json:"tokenSymbol,omitempty"`
}

// TxStatusKind is the kind of a transaction status notification.
type TxStatusKind string

// Transaction status kinds.
const (
	TxFuture          TxStatusKind = "future"
	TxReady           TxStatusKind = "ready"
	TxBroadcast       TxStatusKind = "broadcast"
	TxInBlock         TxStatusKind = "inBlock"
	TxRetracted       TxStatusKind = "retracted"
	TxFinalityTimeout TxStatusKind = "finalityTimeout"
	TxFinalized       TxStatusKind = "finalized"
	TxUsurped         TxStatusKind = "usurped"
	TxDropped         TxStatusKind = "dropped"
	TxInvalid         TxStatusKind = "invalid"
)

// TxStatus is a notification of author_submitAndWatchExtrinsic.
type TxStatus struct {
	Kind TxStatusKind
	// Block is set for inBlock, retracted, finalityTimeout and finalized.
	// For usurped it is the hash of the replacing extrinsic.
	Block common.Hash
	// Peers is set for broadcast.
	Peers []string
}

// IsFinal returns true if no further status follows.
func (s TxStatus) IsFinal() bool {
	switch s.Kind {
	case TxFinalized, TxFinalityTimeout, TxUsurped, TxDropped, TxInvalid:
		return true
	default:
		return false
	}
}

// UnmarshalJSON decodes a status sent either as a string
// or as an object with a single key.
func (s *TxStatus) UnmarshalJSON(data []byte) error {
	var kind string
	if err := json.Unmarshal(data, &kind); err == nil {
		switch TxStatusKind(kind) {
		case TxFuture, TxReady, TxDropped, TxInvalid:
			*s = TxStatus{Kind: TxStatusKind(kind)}
			return nil
		default:
			return fmt.Errorf("%w: %s", ErrUnknownTxStatus, kind)
		}
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(data, &object); err != nil {
		return fmt.Errorf("decoding transaction status: %w", err)
	}
	if len(object) != 1 {
		return fmt.Errorf("%w: %s", ErrUnknownTxStatus, string(data))
	}

	for key, value := range object {
		status := TxStatus{Kind: TxStatusKind(key)}
		switch status.Kind {
		case TxBroadcast:
			if err := json.Unmarshal(value, &status.Peers); err != nil {
				return fmt.Errorf("decoding broadcast peers: %w", err)
			}
		case TxInBlock, TxRetracted, TxFinalityTimeout, TxFinalized, TxUsurped:
			if err := json.Unmarshal(value, &status.Block); err != nil {
				return fmt.Errorf("decoding %s hash: %w", key, err)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownTxStatus, key)
		}
		*s = status
	}
	return nil
}

// StorageChangeSet is the result of state_queryStorageAt.
type StorageChangeSet struct {
	Block   common.Hash  `json:"block"`
	Changes [][2]*string `json:"changes"`
}
