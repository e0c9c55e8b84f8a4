// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package client

import (
	"context"
	"fmt"

	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/keyring"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

const defaultMortalityPeriod = 64

// TxOption is a functional option to sign a transaction.
type TxOption func(s *txSettings)

type txSettings struct {
	tip       scale.Uint128
	nonce     *uint64
	mortality uint64
	immortal  bool
}

// WithTip sets the tip paid to the block author.
func WithTip(tip scale.Uint128) TxOption {
	return func(s *txSettings) {
		s.tip = tip
	}
}

// WithNonce sets the nonce instead of asking the node
// for the next nonce of the signer.
func WithNonce(nonce uint64) TxOption {
	return func(s *txSettings) {
		s.nonce = &nonce
	}
}

// WithMortality sets the number of blocks the transaction is valid for,
// starting at the last finalized block.
func WithMortality(period uint64) TxOption {
	return func(s *txSettings) {
		s.mortality = period
	}
}

// Immortal makes the transaction valid forever.
func Immortal() TxOption {
	return func(s *txSettings) {
		s.immortal = true
	}
}

// SignedTx is a signed extrinsic ready to be submitted.
type SignedTx struct {
	Extrinsic []byte
	Hash      common.Hash
	Nonce     uint64
	Era       chain.Era
}

// Tx signs and submits transactions.
type Tx struct {
	client *Client
}

// Sign validates the call payload against the runtime metadata and
// signs it with the signer. The metadata is reloaded first if the
// runtime was upgraded.
func (t *Tx) Sign(ctx context.Context, payload *chain.Payload, signer keyring.Signer,
	options ...TxOption) (*SignedTx, error) {
	settings := txSettings{mortality: t.client.config.MortalityPeriod}
	for _, option := range options {
		option(&settings)
	}
	if settings.mortality == 0 {
		settings.mortality = defaultMortalityPeriod
	}

	err := t.client.reloadOnUpgrade(ctx)
	if err != nil {
		return nil, err
	}

	t.client.mutex.RLock()
	md := t.client.metadata
	version := t.client.runtimeVersion
	t.client.mutex.RUnlock()

	err = payload.Validate(md)
	if err != nil {
		return nil, err
	}

	callData, err := payload.EncodeCallData(md)
	if err != nil {
		return nil, err
	}

	params := chain.SignParams{
		Tip:                settings.tip,
		SpecVersion:        version.SpecVersion,
		TransactionVersion: version.TransactionVersion,
		GenesisHash:        t.client.genesisHash,
	}

	params.Nonce, err = t.nonce(ctx, signer, settings)
	if err != nil {
		return nil, err
	}

	params.Era, params.CheckpointHash, err = t.era(ctx, settings)
	if err != nil {
		return nil, err
	}

	extrinsic, err := chain.BuildSigned(md, callData, signer, params)
	if err != nil {
		return nil, fmt.Errorf("building %s extrinsic: %w", payload, err)
	}

	tx := &SignedTx{
		Extrinsic: extrinsic,
		Hash:      chain.ExtrinsicHash(extrinsic),
		Nonce:     params.Nonce,
		Era:       params.Era,
	}
	logger.Debugf("signed %s with nonce %d and era %s: %s", payload, tx.Nonce, tx.Era, tx.Hash)
	return tx, nil
}

func (t *Tx) nonce(ctx context.Context, signer keyring.Signer, settings txSettings) (uint64, error) {
	if settings.nonce != nil {
		return *settings.nonce, nil
	}

	address, err := common.EncodeSS58(signer.AccountID(), t.client.config.SS58Prefix)
	if err != nil {
		return 0, fmt.Errorf("encoding signer address: %w", err)
	}

	nonce, err := t.client.api.AccountNextIndex(ctx, address)
	if err != nil {
		return 0, fmt.Errorf("getting next nonce of %s: %w", address, err)
	}
	return nonce, nil
}

// era returns the era of the transaction with the hash of the block it
// starts at. Mortal eras start at the last finalized block.
func (t *Tx) era(ctx context.Context, settings txSettings) (era chain.Era, checkpoint common.Hash, err error) {
	if settings.immortal {
		return chain.ImmortalEra(), t.client.genesisHash, nil
	}

	finalized, err := t.client.api.GetFinalizedHead(ctx)
	if err != nil {
		return era, checkpoint, fmt.Errorf("getting finalized head: %w", err)
	}

	header, err := t.client.api.GetHeader(ctx, &finalized)
	if err != nil {
		return era, checkpoint, fmt.Errorf("getting finalized header: %w", err)
	}

	return chain.MortalEra(settings.mortality, uint64(header.Number)), finalized, nil
}

// Submit submits the signed transaction and returns its hash.
func (t *Tx) Submit(ctx context.Context, tx *SignedTx) (common.Hash, error) {
	hash, err := t.client.api.SubmitExtrinsic(ctx, tx.Extrinsic)
	if err != nil {
		return hash, fmt.Errorf("submitting extrinsic %s: %w", tx.Hash, err)
	}
	return hash, nil
}

// SubmitAndWatch submits the signed transaction and returns
// its progress in the transaction pool and in blocks.
func (t *Tx) SubmitAndWatch(ctx context.Context, tx *SignedTx) (*TxProgress, error) {
	subscription, err := t.client.api.SubmitAndWatchExtrinsic(ctx, tx.Extrinsic)
	if err != nil {
		return nil, fmt.Errorf("submitting extrinsic %s: %w", tx.Hash, err)
	}
	return newTxProgress(t.client, tx.Hash, subscription), nil
}

// SignAndSubmit signs the call payload and submits it.
func (t *Tx) SignAndSubmit(ctx context.Context, payload *chain.Payload, signer keyring.Signer,
	options ...TxOption) (common.Hash, error) {
	tx, err := t.Sign(ctx, payload, signer, options...)
	if err != nil {
		return common.Hash{}, err
	}
	return t.Submit(ctx, tx)
}

// SignAndSubmitAndWatch signs the call payload, submits it and
// returns its progress.
func (t *Tx) SignAndSubmitAndWatch(ctx context.Context, payload *chain.Payload, signer keyring.Signer,
	options ...TxOption) (*TxProgress, error) {
	tx, err := t.Sign(ctx, payload, signer, options...)
	if err != nil {
		return nil, err
	}
	return t.SubmitAndWatch(ctx, tx)
}

// CallData returns the encoded call of the payload using the
// current runtime metadata.
func (t *Tx) CallData(payload *chain.Payload) ([]byte, error) {
	md := t.client.Metadata()
	err := payload.Validate(md)
	if err != nil {
		return nil, err
	}
	return payload.EncodeCallData(md)
}

// reloadOnUpgrade reloads the runtime metadata if the spec
// version of the best block differs from the one in use.
func (c *Client) reloadOnUpgrade(ctx context.Context) error {
	version, err := c.api.GetRuntimeVersion(ctx, nil)
	if err != nil {
		return fmt.Errorf("getting runtime version: %w", err)
	}

	current := c.RuntimeVersion()
	if version.SpecVersion == current.SpecVersion && version.SpecName == current.SpecName {
		return nil
	}

	logger.Infof("runtime upgraded from %s version %d to %s version %d, reloading metadata",
		current.SpecName, current.SpecVersion, version.SpecName, version.SpecVersion)
	return c.loadRuntime(ctx)
}
