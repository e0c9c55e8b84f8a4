// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import "github.com/ChainSafe/argon-client/lib/chain"

const transactionPaymentPallet = "TransactionPayment"

// TransactionFeePaid is emitted when a signed transaction pays its fee.
type TransactionFeePaid struct {
	Who       AccountID
	ActualFee Balance
	Tip       Balance
}

func (TransactionFeePaid) PalletName() string { return transactionPaymentPallet }
func (TransactionFeePaid) EventName() string  { return "TransactionFeePaid" }

func registerTransactionPaymentEvents(r *chain.EventRegistry) {
	r.Register("TransactionFeePaid(who:AccountId32,actual_fee:u128,tip:u128)",
		func() chain.Event { return &TransactionFeePaid{} })
}

// TransactionPaymentStorage addresses TransactionPayment storage.
type TransactionPaymentStorage struct{}

// NextFeeMultiplier scales the weight fee of the next block.
func (TransactionPaymentStorage) NextFeeMultiplier() *chain.StorageAddress[FixedU128] {
	return chain.NewStorageAddress[FixedU128](transactionPaymentPallet, "NextFeeMultiplier", nil,
		"NextFeeMultiplier[]->FixedU128")
}

// TransactionPaymentConstants addresses TransactionPayment constants.
type TransactionPaymentConstants struct{}

func (TransactionPaymentConstants) OperationalFeeMultiplier() *chain.ConstantAddress[uint8] {
	return chain.NewConstantAddress[uint8](transactionPaymentPallet, "OperationalFeeMultiplier",
		"OperationalFeeMultiplier:u8")
}

func transactionPaymentBindings() []chain.Binding {
	return []chain.Binding{
		TransactionPaymentStorage{}.NextFeeMultiplier(),
		TransactionPaymentConstants{}.OperationalFeeMultiplier(),
	}
}
