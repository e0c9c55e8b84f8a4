// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/crypto/sr25519"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	bip39 "github.com/cosmos/go-bip39"
)

var ErrEmptyURI = errors.New("secret uri is empty")

// URISigner signs using a secret URI of the form
// `<mnemonic or 0x seed>[//hard/soft][///password]`.
// Derivation is delegated to the substrate keyring implementation.
type URISigner struct {
	uri       string
	accountID [32]byte
}

// NewURISigner parses the secret URI and returns a signer for it.
func NewURISigner(uri string, ss58Prefix uint16) (*URISigner, error) {
	if uri == "" {
		return nil, ErrEmptyURI
	}

	pair, err := signature.KeyringPairFromSecret(uri, ss58Prefix)
	if err != nil {
		return nil, fmt.Errorf("parsing secret uri: %w", err)
	}

	var accountID [32]byte
	copy(accountID[:], pair.PublicKey)
	return &URISigner{uri: uri, accountID: accountID}, nil
}

// AccountID returns the public key derived from the uri.
func (s *URISigner) AccountID() [32]byte {
	return s.accountID
}

// Sign signs the payload with the key derived from the uri.
func (s *URISigner) Sign(payload []byte) ([]byte, error) {
	return signature.Sign(payload, s.uri)
}

// NewSignerFromURI returns the simplest signer able to serve the uri:
// development names and plain seeds or mnemonics are handled in memory,
// anything with a derivation path goes through URISigner.
func NewSignerFromURI(uri string, ss58Prefix uint16) (Signer, error) {
	uri = strings.TrimSpace(uri)
	switch {
	case uri == "":
		return nil, ErrEmptyURI
	case strings.HasPrefix(uri, "//") && !strings.Contains(uri[2:], "/"):
		if signer, err := DevSigner(uri); err == nil {
			return signer, nil
		}
	case strings.HasPrefix(uri, "0x") && !strings.Contains(uri, "/"):
		seed, err := common.HexToBytes(uri)
		if err != nil {
			return nil, err
		}
		keypair, err := sr25519.NewKeypairFromSeed(seed)
		if err != nil {
			return nil, err
		}
		return NewKeypairSigner(keypair), nil
	case !strings.Contains(uri, "/") && bip39.IsMnemonicValid(uri):
		keypair, err := sr25519.NewKeypairFromMnemonic(uri, "")
		if err != nil {
			return nil, err
		}
		return NewKeypairSigner(keypair), nil
	}

	return NewURISigner(uri, ss58Prefix)
}
