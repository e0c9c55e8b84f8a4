// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import "github.com/ChainSafe/argon-client/lib/chain"

const timestampPallet = "Timestamp"

// TimestampTx builds Timestamp calls.
type TimestampTx struct{}

// Set sets the block timestamp in milliseconds. It is an inherent.
func (TimestampTx) Set(now uint64) *chain.Payload {
	return chain.NewPayload(timestampPallet, "set", struct{ Now uint }{uint(now)},
		"set(now:Compact<u64>)")
}

// TimestampStorage addresses Timestamp storage.
type TimestampStorage struct{}

// Now is the timestamp of the current block in milliseconds.
func (TimestampStorage) Now() *chain.StorageAddress[uint64] {
	return chain.NewStorageAddress[uint64](timestampPallet, "Now", nil, "Now[]->u64")
}

func (TimestampStorage) DidUpdate() *chain.StorageAddress[bool] {
	return chain.NewStorageAddress[bool](timestampPallet, "DidUpdate", nil, "DidUpdate[]->bool")
}

// TimestampConstants addresses Timestamp constants.
type TimestampConstants struct{}

func (TimestampConstants) MinimumPeriod() *chain.ConstantAddress[uint64] {
	return chain.NewConstantAddress[uint64](timestampPallet, "MinimumPeriod", "MinimumPeriod:u64")
}

func timestampBindings() []chain.Binding {
	return []chain.Binding{
		TimestampTx{}.Set(0),
		TimestampStorage{}.Now(),
		TimestampStorage{}.DidUpdate(),
		TimestampConstants{}.MinimumPeriod(),
	}
}
