// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common

// StoragePrefix returns twox128(pallet) ++ twox128(entry), the prefix
// shared by every key of a pallet storage entry.
func StoragePrefix(pallet, entry string) []byte {
	return Concat(
		MustTwox128Hash([]byte(pallet)),
		MustTwox128Hash([]byte(entry)),
	)
}

var (
	// CodeKey is the key where runtime code is stored in the trie
	CodeKey = []byte(":code")

	// SystemAccountPrefix is the prefix of the System.Account map.
	SystemAccountPrefix = MustHexToBytes("0x26aa394eea5630e07c48ae0c9558cef7b99d880ec681799c0cf30e8886371da9")

	// SystemEventsKey is the key of the System.Events storage value.
	SystemEventsKey = MustHexToBytes("0x26aa394eea5630e07c48ae0c9558cef780d41e5e16056765bc8461851072c9d7")
)
