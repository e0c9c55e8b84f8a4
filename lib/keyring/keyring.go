// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/crypto/sr25519"
)

// Signer signs extrinsic payloads on behalf of an account.
type Signer interface {
	// AccountID returns the 32 byte account id of the signer.
	AccountID() [32]byte
	// Sign returns the 64 byte sr25519 signature of the payload.
	Sign(payload []byte) ([]byte, error)
}

var ErrUnknownDevAccount = errors.New("unknown development account")

// private keys generated using `subkey inspect //Name`
var devSeeds = map[string]string{
	"alice":   "0xe5be9a5092b81bca64be81d212e7f2f9eba183bb7a90954f7b76361f6edb5c0a",
	"bob":     "0x398f0c28f98885e046333d4a41c19cee4c37368a9832c6502f6cfd182e2aef89",
	"charlie": "0xbc1ede780f784bb6991a585e4f6e61522c14e1cae6ad0895fb57b9a205a8f938",
	"dave":    "0x868020ae0687dda7d57565093a69090211449845a7e11453612800b663307246",
	"eve":     "0x786ad0e2df456fe43dd1f91ebca22e235bc162e0bb8d53c633e8c85b2af68b7a",
	"ferdie":  "0x42438b7883391c05512a938e36c2df0131e088b3756d6aa7a755fbff19d2f842",
}

// DevNames returns the names of the development accounts, in a stable order.
func DevNames() []string {
	return []string{"Alice", "Bob", "Charlie", "Dave", "Eve", "Ferdie"}
}

// KeypairSigner signs with an in-memory sr25519 keypair.
type KeypairSigner struct {
	keypair *sr25519.Keypair
}

// NewKeypairSigner returns a signer for the given keypair.
func NewKeypairSigner(keypair *sr25519.Keypair) *KeypairSigner {
	return &KeypairSigner{keypair: keypair}
}

// AccountID returns the public key of the keypair.
func (s *KeypairSigner) AccountID() [32]byte {
	return s.keypair.AccountID()
}

// Sign signs the payload with the keypair.
func (s *KeypairSigner) Sign(payload []byte) ([]byte, error) {
	return s.keypair.Sign(payload)
}

// Keypair returns the underlying keypair.
func (s *KeypairSigner) Keypair() *sr25519.Keypair {
	return s.keypair
}

// DevSigner returns the signer of a well known development account
// such as Alice or Bob. The name is case insensitive and may be
// given as a //Name secret URI.
func DevSigner(name string) (*KeypairSigner, error) {
	key := strings.ToLower(strings.TrimPrefix(name, "//"))
	seedHex, ok := devSeeds[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDevAccount, name)
	}

	keypair, err := sr25519.NewKeypairFromSeed(common.MustHexToBytes(seedHex))
	if err != nil {
		return nil, fmt.Errorf("creating keypair for %s: %w", name, err)
	}
	return NewKeypairSigner(keypair), nil
}

// MustDevSigner panics if DevSigner fails.
func MustDevSigner(name string) *KeypairSigner {
	signer, err := DevSigner(name)
	if err != nil {
		panic(err)
	}
	return signer
}

// Address returns the SS58 address of the signer account.
func Address(signer Signer, ss58Prefix uint16) (string, error) {
	return common.EncodeSS58(signer.AccountID(), ss58Prefix)
}
