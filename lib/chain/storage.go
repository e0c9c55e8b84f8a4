// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package chain

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

// StorageAddress addresses a storage entry, or with fewer keys than
// hashers, the root of an iteration over a storage map. V is the type
// of the stored value.
type StorageAddress[V any] struct {
	Pallet  string
	Entry   string
	Hashers []metadata.StorageHasher
	Keys    []any
	// Hash is the static signature hash, nil if not validated.
	Hash *common.Hash
}

// NewStorageAddress returns a storage address whose static hash is
// the hash of the storage signature given.
func NewStorageAddress[V any](pallet, entry string, hashers []metadata.StorageHasher,
	signature string, keys ...any) *StorageAddress[V] {
	return &StorageAddress[V]{
		Pallet:  pallet,
		Entry:   entry,
		Hashers: hashers,
		Keys:    keys,
		Hash:    hashPtr(signature),
	}
}

// Unvalidated returns a copy of the address which skips validation.
func (a *StorageAddress[V]) Unvalidated() *StorageAddress[V] {
	unvalidated := *a
	unvalidated.Hash = nil
	return &unvalidated
}

func (a *StorageAddress[V]) String() string {
	return KindStorage + " " + a.Pallet + "." + a.Entry
}

// PalletName returns the pallet of the storage entry.
func (a *StorageAddress[V]) PalletName() string { return a.Pallet }

// EntryName returns the name of the storage entry.
func (a *StorageAddress[V]) EntryName() string { return a.Entry }

// IsComplete returns true if the address has a key for each hasher
// and so addresses a single value.
func (a *StorageAddress[V]) IsComplete() bool {
	return len(a.Keys) == len(a.Hashers)
}

// Validate checks the hashers and the signature hash of the address
// against the runtime metadata.
func (a *StorageAddress[V]) Validate(md *metadata.Metadata) error {
	if a.Hash == nil {
		return nil
	}

	_, entry, err := md.StorageEntry(a.Pallet, a.Entry)
	if err != nil {
		return fmt.Errorf("%s %s.%s: %w", KindStorage, a.Pallet, a.Entry, err)
	}

	if !equalHashers(a.Hashers, entry.Type.Hashers) {
		return fmt.Errorf("%w: %s.%s: static %v, runtime %v",
			ErrHasherMismatch, a.Pallet, a.Entry, a.Hashers, entry.Type.Hashers)
	}

	hash, err := md.StorageHash(a.Pallet, a.Entry)
	return checkHash(KindStorage, a.Pallet, a.Entry, a.Hash, hash, err)
}

func equalHashers(a, b []metadata.StorageHasher) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Key returns the full storage key. It fails if a key is
// missing for any hasher.
func (a *StorageAddress[V]) Key() ([]byte, error) {
	if len(a.Keys) != len(a.Hashers) {
		return nil, fmt.Errorf("%w: %s.%s takes %d keys, got %d",
			ErrKeyCount, a.Pallet, a.Entry, len(a.Hashers), len(a.Keys))
	}
	return a.PartialKey()
}

// PartialKey returns the storage key made of the keys given so far,
// which is the prefix of all keys under the address.
func (a *StorageAddress[V]) PartialKey() ([]byte, error) {
	if len(a.Keys) > len(a.Hashers) {
		return nil, fmt.Errorf("%w: %s.%s takes at most %d keys, got %d",
			ErrKeyCount, a.Pallet, a.Entry, len(a.Hashers), len(a.Keys))
	}

	key := common.StoragePrefix(a.Pallet, a.Entry)
	for i, value := range a.Keys {
		encoded, err := scale.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encoding key %d of %s.%s: %w", i, a.Pallet, a.Entry, err)
		}
		hashed, err := HashKey(a.Hashers[i], encoded)
		if err != nil {
			return nil, err
		}
		key = append(key, hashed...)
	}
	return key, nil
}

// Decode decodes a raw storage value.
func (a *StorageAddress[V]) Decode(data []byte) (value V, err error) {
	err = scale.Unmarshal(data, &value)
	if err != nil {
		return value, fmt.Errorf("decoding %s.%s value: %w", a.Pallet, a.Entry, err)
	}
	return value, nil
}

// StorageKeyPart is one hashed key of a storage key.
type StorageKeyPart struct {
	Hasher metadata.StorageHasher
	// Hashed is the hasher output, including the raw key
	// for concat hashers.
	Hashed []byte
	// Raw is the SCALE encoded key, only set for concat hashers.
	Raw []byte
	// Value is the dynamically decoded key, only set for concat hashers.
	Value any
}

// Decode decodes the raw key of a concat hasher into dst.
func (p StorageKeyPart) Decode(dst any) error {
	if !p.Hasher.IsConcat() {
		return fmt.Errorf("%w: %s hasher does not keep the key", ErrStorageKey, p.Hasher)
	}
	return scale.Unmarshal(p.Raw, dst)
}

// DecodeKey splits a full storage key under the address into its
// hashed keys. Keys of concat hashers are recovered using the key
// types of the runtime metadata.
func (a *StorageAddress[V]) DecodeKey(md *metadata.Metadata, full []byte) ([]StorageKeyPart, error) {
	prefix := common.StoragePrefix(a.Pallet, a.Entry)
	if !bytes.HasPrefix(full, prefix) {
		return nil, fmt.Errorf("%w: key does not start with the %s.%s prefix",
			ErrStorageKey, a.Pallet, a.Entry)
	}

	keyTypes, hashers, err := md.StorageKeyTypes(a.Pallet, a.Entry)
	if err != nil {
		return nil, err
	}

	reader := bytes.NewReader(full[len(prefix):])
	parts := make([]StorageKeyPart, len(hashers))
	for i, hasher := range hashers {
		part, err := decodeKeyPart(md, hasher, keyTypes[i], reader)
		if err != nil {
			return nil, fmt.Errorf("key %d of %s.%s: %w", i, a.Pallet, a.Entry, err)
		}
		parts[i] = part
	}

	if reader.Len() > 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrStorageKey, reader.Len())
	}
	return parts, nil
}

func decodeKeyPart(md *metadata.Metadata, hasher metadata.StorageHasher,
	keyType metadata.TypeID, reader *bytes.Reader) (part StorageKeyPart, err error) {
	part.Hasher = hasher

	hashLength := hasherOutputLength(hasher)
	hashed := make([]byte, hashLength)
	_, err = io.ReadFull(reader, hashed)
	if err != nil {
		return part, fmt.Errorf("%w: reading %s hash: %v", ErrStorageKey, hasher, err)
	}

	if !hasher.IsConcat() {
		part.Hashed = hashed
		return part, nil
	}

	start := reader.Size() - int64(reader.Len())
	part.Value, err = md.Types.DecodeValue(keyType, reader)
	if err != nil {
		return part, fmt.Errorf("decoding key value: %w", err)
	}
	end := reader.Size() - int64(reader.Len())

	part.Raw = make([]byte, end-start)
	if _, err = reader.ReadAt(part.Raw, start); err != nil && end > start {
		return part, err
	}
	part.Hashed = append(hashed, part.Raw...)
	return part, nil
}

// hasherOutputLength returns the length of the hash, without the
// raw key for concat hashers.
func hasherOutputLength(hasher metadata.StorageHasher) int {
	switch hasher {
	case metadata.Blake2_128, metadata.Twox128, metadata.Blake2_128Concat:
		return 16
	case metadata.Blake2_256, metadata.Twox256:
		return 32
	case metadata.Twox64Concat:
		return 8
	default:
		return 0
	}
}

// HashKey applies the storage hasher to an encoded key.
func HashKey(hasher metadata.StorageHasher, encoded []byte) ([]byte, error) {
	switch hasher {
	case metadata.Blake2_128:
		return common.Blake2b128(encoded)
	case metadata.Blake2_256:
		hash, err := common.Blake2bHash(encoded)
		return hash.ToBytes(), err
	case metadata.Blake2_128Concat:
		hash, err := common.Blake2b128(encoded)
		return append(hash, encoded...), err
	case metadata.Twox128:
		return common.Twox128Hash(encoded)
	case metadata.Twox256:
		hash, err := common.Twox256(encoded)
		return hash.ToBytes(), err
	case metadata.Twox64Concat:
		hash, err := common.Twox64(encoded)
		return append(hash, encoded...), err
	case metadata.Identity:
		return encoded, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrStorageKey, hasher)
	}
}
