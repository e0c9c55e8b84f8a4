// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package sr25519

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/crypto"

	sr25519 "github.com/ChainSafe/go-schnorrkel"
	bip39 "github.com/cosmos/go-bip39"
	"github.com/gtank/merlin"
)

var _ crypto.Keypair = (*Keypair)(nil)

const (
	// PublicKeyLength is the expected public key length for sr25519.
	PublicKeyLength = 32
	// SeedLength is the expected seed length for sr25519.
	SeedLength = 32
	// SignatureLength is the expected signature length for sr25519.
	SignatureLength = 64

	mnemonicEntropyBits = 128
)

// SigningContext is the context for signatures used or created with substrate
var SigningContext = []byte("substrate")

var (
	ErrSeedLength      = errors.New("seed is not 32 bytes long")
	ErrPublicKeyLength = errors.New("public key is not 32 bytes long")
	ErrSignatureLength = errors.New("invalid signature length")
)

// Keypair is a sr25519 public-private keypair
type Keypair struct {
	public  *PublicKey
	private *sr25519.SecretKey
}

// PublicKey holds reference to a sr25519.PublicKey
type PublicKey struct {
	key *sr25519.PublicKey
}

// NewKeypairFromSeed returns a new sr25519 Keypair given a 32 byte mini secret seed.
func NewKeypairFromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != SeedLength {
		return nil, fmt.Errorf("cannot generate key from seed: %w", ErrSeedLength)
	}

	buf := [SeedLength]byte{}
	copy(buf[:], seed)
	msc, err := sr25519.NewMiniSecretKeyFromRaw(buf)
	if err != nil {
		return nil, fmt.Errorf("creating mini secret key: %w", err)
	}

	return newKeypair(msc), nil
}

// NewKeypairFromMnemonic returns a new Keypair using the given bip39 mnemonic and password,
// following the substrate seed derivation.
func NewKeypairFromMnemonic(mnemonic, password string) (*Keypair, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.New("invalid bip39 mnemonic")
	}

	msc, err := sr25519.MiniSecretKeyFromMnemonic(mnemonic, password)
	if err != nil {
		return nil, fmt.Errorf("deriving mini secret key from mnemonic: %w", err)
	}

	return newKeypair(msc), nil
}

// GenerateKeypair returns a new sr25519 keypair created from a random
// 12 word mnemonic, returned alongside so it can be backed up.
func GenerateKeypair() (kp *Keypair, mnemonic string, err error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		return nil, "", fmt.Errorf("generating entropy: %w", err)
	}

	mnemonic, err = bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, "", fmt.Errorf("generating mnemonic: %w", err)
	}

	kp, err = NewKeypairFromMnemonic(mnemonic, "")
	if err != nil {
		return nil, "", err
	}
	return kp, mnemonic, nil
}

func newKeypair(msc *sr25519.MiniSecretKey) *Keypair {
	return &Keypair{
		public:  &PublicKey{key: msc.Public()},
		private: msc.ExpandEd25519(),
	}
}

// Type returns Sr25519Type
func (*Keypair) Type() crypto.KeyType {
	return crypto.Sr25519Type
}

// Sign uses the keypair to sign the message using the sr25519 signature algorithm
func (kp *Keypair) Sign(msg []byte) ([]byte, error) {
	return kp.SignTranscript(sr25519.NewSigningContext(SigningContext, msg))
}

// SignTranscript signs the transcript. The transcript is consumed and
// must be rebuilt identically to verify the signature.
func (kp *Keypair) SignTranscript(t *merlin.Transcript) ([]byte, error) {
	sig, err := kp.private.Sign(t)
	if err != nil {
		return nil, err
	}
	enc := sig.Encode()
	return enc[:], nil
}

// Public returns the public key corresponding to this keypair
func (kp *Keypair) Public() crypto.PublicKey {
	return kp.public
}

// PublicKey returns the concrete sr25519 public key of this keypair.
func (kp *Keypair) PublicKey() *PublicKey {
	return kp.public
}

// AccountID returns the 32 byte account id, which is the raw public key.
func (kp *Keypair) AccountID() [32]byte {
	return kp.public.key.Encode()
}

// NewPublicKey returns a sr25519 public key from 32 byte input
func NewPublicKey(in []byte) (*PublicKey, error) {
	if len(in) != PublicKeyLength {
		return nil, fmt.Errorf("%w: got %d bytes", ErrPublicKeyLength, len(in))
	}

	buf := [PublicKeyLength]byte{}
	copy(buf[:], in)
	key, err := sr25519.NewPublicKey(buf)
	if err != nil {
		return nil, fmt.Errorf("decoding public key: %w", err)
	}
	return &PublicKey{key: key}, nil
}

// Verify verifies that the public key signed the given message.
func (k *PublicKey) Verify(msg, sig []byte) (bool, error) {
	return k.VerifyTranscript(sr25519.NewSigningContext(SigningContext, msg), sig)
}

// VerifyTranscript verifies that the public key signed the transcript.
func (k *PublicKey) VerifyTranscript(t *merlin.Transcript, sig []byte) (bool, error) {
	if len(sig) != SignatureLength {
		return false, fmt.Errorf("%w: got %d bytes", ErrSignatureLength, len(sig))
	}

	b := [SignatureLength]byte{}
	copy(b[:], sig)

	s := &sr25519.Signature{}
	err := s.Decode(b)
	if err != nil {
		return false, err
	}

	return k.key.Verify(s, t)
}

// Encode returns the 32-byte encoding of the public key
func (k *PublicKey) Encode() []byte {
	enc := k.key.Encode()
	return enc[:]
}

// Hex returns the public key as a '0x' prefixed hex string
func (k *PublicKey) Hex() string {
	return common.BytesToHex(k.Encode())
}

// Address returns the SS58 address of the public key for the given network prefix.
func (k *PublicKey) Address(ss58Prefix uint16) (string, error) {
	return common.EncodeSS58(k.key.Encode(), ss58Prefix)
}
