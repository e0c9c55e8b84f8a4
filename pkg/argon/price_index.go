// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import "github.com/ChainSafe/argon-client/lib/chain"

const priceIndexPallet = "PriceIndex"

// PriceIndex module errors.
const (
	PriceIndexErrorNotAuthorizedOperator         = "NotAuthorizedOperator"
	PriceIndexErrorMissingValue                  = "MissingValue"
	PriceIndexErrorPricesTooOld                  = "PricesTooOld"
	PriceIndexErrorMaxPriceChangePerTickExceeded = "MaxPriceChangePerTickExceeded"
)

// PriceIndex are the prices submitted by the price oracle at a tick.
type PriceIndex struct {
	BtcUsdPrice         FixedU128
	ArgonUsdPrice       FixedU128
	ArgonUsdTargetPrice FixedU128
	Tick                Tick
}

type priceIndexEvent struct{}

func (priceIndexEvent) PalletName() string { return priceIndexPallet }

// PriceIndexNewIndex is emitted when the oracle submits prices.
type PriceIndexNewIndex struct {
	priceIndexEvent
}

func (PriceIndexNewIndex) EventName() string { return "NewIndex" }

type PriceIndexOperatorChanged struct {
	priceIndexEvent
	OperatorID AccountID
}

func (PriceIndexOperatorChanged) EventName() string { return "OperatorChanged" }

func registerPriceIndexEvents(r *chain.EventRegistry) {
	r.Register("NewIndex()",
		func() chain.Event { return &PriceIndexNewIndex{} })
	r.Register("OperatorChanged(operator_id:AccountId32)",
		func() chain.Event { return &PriceIndexOperatorChanged{} })
}

// PriceIndexTx builds PriceIndex calls.
type PriceIndexTx struct{}

// Submit submits the prices. Only the oracle operator may submit.
func (PriceIndexTx) Submit(index PriceIndex) *chain.Payload {
	return chain.NewPayload(priceIndexPallet, "submit", struct{ Index PriceIndex }{index},
		"submit(index:PriceIndex)")
}

func (PriceIndexTx) SetOperator(id AccountID) *chain.Payload {
	return chain.NewPayload(priceIndexPallet, "set_operator", struct{ AccountID AccountID }{id},
		"set_operator(account_id:AccountId32)")
}

// PriceIndexStorage addresses PriceIndex storage.
type PriceIndexStorage struct{}

// Current is the last accepted price index.
func (PriceIndexStorage) Current() *chain.StorageAddress[PriceIndex] {
	return chain.NewStorageAddress[PriceIndex](priceIndexPallet, "Current", nil, "Current[]->PriceIndex")
}

func (PriceIndexStorage) Operator() *chain.StorageAddress[AccountID] {
	return chain.NewStorageAddress[AccountID](priceIndexPallet, "Operator", nil, "Operator[]->AccountId32")
}

// PriceIndexConstants addresses PriceIndex constants.
type PriceIndexConstants struct{}

func (PriceIndexConstants) MaxDowntimeTicksBeforeReset() *chain.ConstantAddress[Tick] {
	return chain.NewConstantAddress[Tick](priceIndexPallet, "MaxDowntimeTicksBeforeReset",
		"MaxDowntimeTicksBeforeReset:u64")
}

// MaxPriceAgeInTicks is the age after which prices are ignored.
func (PriceIndexConstants) MaxPriceAgeInTicks() *chain.ConstantAddress[Tick] {
	return chain.NewConstantAddress[Tick](priceIndexPallet, "MaxPriceAgeInTicks", "MaxPriceAgeInTicks:u64")
}

func (PriceIndexConstants) MaxArgonChangePerTickAwayFromTarget() *chain.ConstantAddress[FixedU128] {
	return chain.NewConstantAddress[FixedU128](priceIndexPallet, "MaxArgonChangePerTickAwayFromTarget",
		"MaxArgonChangePerTickAwayFromTarget:FixedU128")
}

func (PriceIndexConstants) MaxArgonTargetChangePerTick() *chain.ConstantAddress[FixedU128] {
	return chain.NewConstantAddress[FixedU128](priceIndexPallet, "MaxArgonTargetChangePerTick",
		"MaxArgonTargetChangePerTick:FixedU128")
}

func priceIndexBindings() []chain.Binding {
	tx, storage, constants := PriceIndexTx{}, PriceIndexStorage{}, PriceIndexConstants{}
	return []chain.Binding{
		tx.Submit(PriceIndex{}),
		tx.SetOperator(AccountID{}),
		storage.Current(),
		storage.Operator(),
		constants.MaxDowntimeTicksBeforeReset(),
		constants.MaxPriceAgeInTicks(),
		constants.MaxArgonChangePerTickAwayFromTarget(),
		constants.MaxArgonTargetChangePerTick(),
	}
}
