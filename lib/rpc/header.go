// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"bytes"
	"fmt"

	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

// Encode returns the SCALE encoding of the header.
func (h *Header) Encode() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.Write(h.ParentHash[:])
	buffer.Write(scale.EncodeCompactUint(uint64(h.Number)))
	buffer.Write(h.StateRoot[:])
	buffer.Write(h.ExtrinsicsRoot[:])

	buffer.Write(scale.EncodeCompactUint(uint64(len(h.Digest.Logs))))
	for i, item := range h.Digest.Logs {
		encoded, err := common.HexToBytes(item)
		if err != nil {
			return nil, fmt.Errorf("digest item %d: %w", i, err)
		}
		buffer.Write(encoded)
	}
	return buffer.Bytes(), nil
}
