// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/lib/rpc"
)

// TxProgress follows the status of a submitted transaction.
type TxProgress struct {
	client        *Client
	extrinsicHash common.Hash
	subscription  Subscription
	done          bool
}

func newTxProgress(client *Client, extrinsicHash common.Hash, subscription Subscription) *TxProgress {
	return &TxProgress{
		client:        client,
		extrinsicHash: extrinsicHash,
		subscription:  subscription,
	}
}

// ExtrinsicHash returns the hash of the watched extrinsic.
func (p *TxProgress) ExtrinsicHash() common.Hash {
	return p.extrinsicHash
}

// Next returns the next status of the transaction. Once a final
// status is returned, the subscription is ended and further calls
// return ErrTxProgressDone.
func (p *TxProgress) Next(ctx context.Context) (status rpc.TxStatus, err error) {
	if p.done {
		return status, ErrTxProgressDone
	}

	select {
	case <-ctx.Done():
		return status, ctx.Err()
	case raw, ok := <-p.subscription.Notifications():
		if !ok {
			p.done = true
			return status, fmt.Errorf("watching extrinsic %s: %w", p.extrinsicHash, subscriptionError(p.subscription))
		}

		err = json.Unmarshal(raw, &status)
		if err != nil {
			return status, fmt.Errorf("decoding status of extrinsic %s: %w", p.extrinsicHash, err)
		}
		logger.Debugf("extrinsic %s status: %s", p.extrinsicHash, status.Kind)

		if status.IsFinal() {
			p.close()
		}
		return status, nil
	}
}

// WaitForInBlock waits for the transaction to be included in a block
// and returns the inclusion details.
func (p *TxProgress) WaitForInBlock(ctx context.Context) (*TxInBlock, error) {
	return p.waitFor(ctx, rpc.TxInBlock)
}

// WaitForFinalized waits for the block including the transaction
// to be finalized and returns the inclusion details.
func (p *TxProgress) WaitForFinalized(ctx context.Context) (*TxInBlock, error) {
	return p.waitFor(ctx, rpc.TxFinalized)
}

func (p *TxProgress) waitFor(ctx context.Context, kind rpc.TxStatusKind) (*TxInBlock, error) {
	for {
		status, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}

		switch status.Kind {
		case rpc.TxInBlock:
			if kind == rpc.TxInBlock {
				return p.inBlock(ctx, status.Block)
			}
		case rpc.TxFinalized:
			return p.inBlock(ctx, status.Block)
		case rpc.TxDropped:
			return nil, fmt.Errorf("%w: %s", ErrTxDropped, p.extrinsicHash)
		case rpc.TxInvalid:
			return nil, fmt.Errorf("%w: %s", ErrTxInvalid, p.extrinsicHash)
		case rpc.TxUsurped:
			return nil, fmt.Errorf("%w: %s by %s", ErrTxUsurped, p.extrinsicHash, status.Block)
		case rpc.TxFinalityTimeout:
			return nil, fmt.Errorf("%w: %s in block %s", ErrTxFinalityTimeout, p.extrinsicHash, status.Block)
		}
	}
}

// Close ends the subscription.
func (p *TxProgress) Close() error {
	if p.done {
		return nil
	}
	p.done = true
	return p.subscription.Unsubscribe()
}

func (p *TxProgress) close() {
	err := p.Close()
	if err != nil {
		logger.Debugf("unwatching extrinsic %s: %s", p.extrinsicHash, err)
	}
}

func (p *TxProgress) inBlock(ctx context.Context, blockHash common.Hash) (*TxInBlock, error) {
	block, err := p.client.api.GetBlock(ctx, &blockHash)
	if err != nil {
		return nil, fmt.Errorf("getting block %s: %w", blockHash, err)
	}

	index := -1
	for i, encoded := range block.Block.Extrinsics {
		extrinsic, err := common.HexToBytes(encoded)
		if err != nil {
			return nil, fmt.Errorf("decoding extrinsic %d of block %s: %w", i, blockHash, err)
		}
		if chain.ExtrinsicHash(extrinsic) == p.extrinsicHash {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, fmt.Errorf("%w: %s in %s", ErrTxNotInBlock, p.extrinsicHash, blockHash)
	}

	records, err := p.client.Events(ctx, &blockHash)
	if err != nil {
		return nil, err
	}

	var events []chain.EventRecord
	for _, record := range records {
		if record.Phase.Kind == chain.PhaseApplyExtrinsic &&
			record.Phase.ExtrinsicIndex == uint32(index) {
			events = append(events, record)
		}
	}

	return &TxInBlock{
		BlockHash:      blockHash,
		ExtrinsicHash:  p.extrinsicHash,
		ExtrinsicIndex: uint32(index),
		Events:         events,
		metadata:       p.client.Metadata(),
	}, nil
}

// TxInBlock is a transaction included in a block.
type TxInBlock struct {
	BlockHash      common.Hash
	ExtrinsicHash  common.Hash
	ExtrinsicIndex uint32
	// Events are the events emitted by the transaction.
	Events []chain.EventRecord

	metadata *metadata.Metadata
}

// Success returns nil if the transaction succeeded. If it failed, it
// returns the *chain.DispatchError of its System.ExtrinsicFailed event.
func (t *TxInBlock) Success() error {
	for _, record := range t.Events {
		if !record.Is("System", "ExtrinsicFailed") {
			continue
		}

		dispatchError, err := chain.DecodeDispatchError(t.metadata, record.Fields)
		if err != nil {
			return fmt.Errorf("decoding dispatch error of extrinsic %s: %w", t.ExtrinsicHash, err)
		}
		return dispatchError
	}
	return nil
}

// FindEvent decodes the first event of the transaction matching the
// pallet and name of event into event, and returns false if none matches.
func (t *TxInBlock) FindEvent(event chain.Event) (found bool, err error) {
	for _, record := range t.Events {
		if !record.Is(event.PalletName(), event.EventName()) {
			continue
		}
		return true, record.As(event)
	}
	return false, nil
}

// HasEvent returns true if the transaction emitted the event.
func (t *TxInBlock) HasEvent(pallet, name string) bool {
	for _, record := range t.Events {
		if record.Is(pallet, name) {
			return true
		}
	}
	return false
}
