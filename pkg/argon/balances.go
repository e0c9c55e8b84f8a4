// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import (
	"math/big"

	"github.com/ChainSafe/argon-client/lib/chain"
)

// Names of the two balances pallet instances.
const (
	ArgonBalancesPallet  = "ArgonBalances"
	UlixeeBalancesPallet = "UlixeeBalances"
)

// Balances module errors.
const (
	BalancesErrorVestingBalance          = "VestingBalance"
	BalancesErrorLiquidityRestrictions   = "LiquidityRestrictions"
	BalancesErrorInsufficientBalance     = "InsufficientBalance"
	BalancesErrorExistentialDeposit      = "ExistentialDeposit"
	BalancesErrorExpendability           = "Expendability"
	BalancesErrorExistingVestingSchedule = "ExistingVestingSchedule"
	BalancesErrorDeadAccount             = "DeadAccount"
	BalancesErrorTooManyReserves         = "TooManyReserves"
	BalancesErrorTooManyHolds            = "TooManyHolds"
	BalancesErrorTooManyFreezes          = "TooManyFreezes"
	BalancesErrorIssuanceDeactivated     = "IssuanceDeactivated"
	BalancesErrorDeltaZero               = "DeltaZero"
)

// BalancesInstance selects one of the balances pallet instances.
type BalancesInstance interface {
	palletName() string
}

// Argons is the ArgonBalances instance.
type Argons struct{}

func (Argons) palletName() string { return ArgonBalancesPallet }

// Ulixees is the UlixeeBalances instance.
type Ulixees struct{}

func (Ulixees) palletName() string { return UlixeeBalancesPallet }

func balancesPallet[I BalancesInstance]() string {
	var instance I
	return instance.palletName()
}

// BalanceLock is a lock on the balance of an account.
type BalanceLock struct {
	ID      [8]byte
	Amount  Balance
	Reasons uint8
}

// ReserveData is a named reserve of an account.
type ReserveData struct {
	ID     [8]byte
	Amount Balance
}

// IDAmount is a hold or a freeze of an account. The id is the
// encoded runtime reason: the pallet index then the reason index.
type IDAmount struct {
	ID     [2]byte
	Amount Balance
}

// AdjustmentDirection tells whether the total issuance is increased
// or decreased.
type AdjustmentDirection uint8

// Adjustment directions.
const (
	AdjustmentIncrease AdjustmentDirection = iota
	AdjustmentDecrease
)

type balancesEvent[I BalancesInstance] struct{}

func (balancesEvent[I]) PalletName() string { return balancesPallet[I]() }

// BalancesEndowed is emitted when an account is created with some
// free balance.
type BalancesEndowed[I BalancesInstance] struct {
	balancesEvent[I]
	Account     AccountID
	FreeBalance Balance
}

func (BalancesEndowed[I]) EventName() string { return "Endowed" }

type BalancesDustLost[I BalancesInstance] struct {
	balancesEvent[I]
	Account AccountID
	Amount  Balance
}

func (BalancesDustLost[I]) EventName() string { return "DustLost" }

// BalancesTransfer is emitted when a transfer succeeds.
type BalancesTransfer[I BalancesInstance] struct {
	balancesEvent[I]
	From   AccountID
	To     AccountID
	Amount Balance
}

func (BalancesTransfer[I]) EventName() string { return "Transfer" }

type BalancesBalanceSet[I BalancesInstance] struct {
	balancesEvent[I]
	Who  AccountID
	Free Balance
}

func (BalancesBalanceSet[I]) EventName() string { return "BalanceSet" }

type BalancesReserved[I BalancesInstance] struct {
	balancesEvent[I]
	Who    AccountID
	Amount Balance
}

func (BalancesReserved[I]) EventName() string { return "Reserved" }

type BalancesUnreserved[I BalancesInstance] struct {
	balancesEvent[I]
	Who    AccountID
	Amount Balance
}

func (BalancesUnreserved[I]) EventName() string { return "Unreserved" }

// BalancesDeposit is emitted when an amount is deposited into an
// account, such as a fee refund or a reward.
type BalancesDeposit[I BalancesInstance] struct {
	balancesEvent[I]
	Who    AccountID
	Amount Balance
}

func (BalancesDeposit[I]) EventName() string { return "Deposit" }

type BalancesWithdraw[I BalancesInstance] struct {
	balancesEvent[I]
	Who    AccountID
	Amount Balance
}

func (BalancesWithdraw[I]) EventName() string { return "Withdraw" }

type BalancesSlashed[I BalancesInstance] struct {
	balancesEvent[I]
	Who    AccountID
	Amount Balance
}

func (BalancesSlashed[I]) EventName() string { return "Slashed" }

type BalancesMinted[I BalancesInstance] struct {
	balancesEvent[I]
	Who    AccountID
	Amount Balance
}

func (BalancesMinted[I]) EventName() string { return "Minted" }

type BalancesBurned[I BalancesInstance] struct {
	balancesEvent[I]
	Who    AccountID
	Amount Balance
}

func (BalancesBurned[I]) EventName() string { return "Burned" }

type BalancesFrozen[I BalancesInstance] struct {
	balancesEvent[I]
	Who    AccountID
	Amount Balance
}

func (BalancesFrozen[I]) EventName() string { return "Frozen" }

type BalancesThawed[I BalancesInstance] struct {
	balancesEvent[I]
	Who    AccountID
	Amount Balance
}

func (BalancesThawed[I]) EventName() string { return "Thawed" }

// Events of the argon currency.
type (
	ArgonEndowed  = BalancesEndowed[Argons]
	ArgonTransfer = BalancesTransfer[Argons]
	ArgonDeposit  = BalancesDeposit[Argons]
	ArgonWithdraw = BalancesWithdraw[Argons]
)

// Events of the ulixee currency.
type (
	UlixeeEndowed  = BalancesEndowed[Ulixees]
	UlixeeTransfer = BalancesTransfer[Ulixees]
	UlixeeDeposit  = BalancesDeposit[Ulixees]
	UlixeeWithdraw = BalancesWithdraw[Ulixees]
)

func registerBalancesEvents[I BalancesInstance](r *chain.EventRegistry) {
	r.Register("Endowed(account:AccountId32,free_balance:u128)",
		func() chain.Event { return &BalancesEndowed[I]{} })
	r.Register("DustLost(account:AccountId32,amount:u128)",
		func() chain.Event { return &BalancesDustLost[I]{} })
	r.Register("Transfer(from:AccountId32,to:AccountId32,amount:u128)",
		func() chain.Event { return &BalancesTransfer[I]{} })
	r.Register("BalanceSet(who:AccountId32,free:u128)",
		func() chain.Event { return &BalancesBalanceSet[I]{} })
	r.Register("Reserved(who:AccountId32,amount:u128)",
		func() chain.Event { return &BalancesReserved[I]{} })
	r.Register("Unreserved(who:AccountId32,amount:u128)",
		func() chain.Event { return &BalancesUnreserved[I]{} })
	r.Register("Deposit(who:AccountId32,amount:u128)",
		func() chain.Event { return &BalancesDeposit[I]{} })
	r.Register("Withdraw(who:AccountId32,amount:u128)",
		func() chain.Event { return &BalancesWithdraw[I]{} })
	r.Register("Slashed(who:AccountId32,amount:u128)",
		func() chain.Event { return &BalancesSlashed[I]{} })
	r.Register("Minted(who:AccountId32,amount:u128)",
		func() chain.Event { return &BalancesMinted[I]{} })
	r.Register("Burned(who:AccountId32,amount:u128)",
		func() chain.Event { return &BalancesBurned[I]{} })
	r.Register("Frozen(who:AccountId32,amount:u128)",
		func() chain.Event { return &BalancesFrozen[I]{} })
	r.Register("Thawed(who:AccountId32,amount:u128)",
		func() chain.Event { return &BalancesThawed[I]{} })
}

// BalancesTx builds the calls of a balances instance.
type BalancesTx[I BalancesInstance] struct{}

type transferArgs struct {
	Dest  MultiAddress
	Value *big.Int
}

// TransferAllowDeath transfers the value to dest. The sender account
// may be reaped if its balance drops below the existential deposit.
func (BalancesTx[I]) TransferAllowDeath(dest AccountID, value Balance) *chain.Payload {
	return chain.NewPayload(balancesPallet[I](), "transfer_allow_death", transferArgs{Address(dest), value.Big()},
		"transfer_allow_death(dest:MultiAddress<AccountId32,()>,value:Compact<u128>)")
}

// ForceTransfer transfers from source to dest. It requires the root origin.
func (BalancesTx[I]) ForceTransfer(source, dest AccountID, value Balance) *chain.Payload {
	args := struct {
		Source MultiAddress
		Dest   MultiAddress
		Value  *big.Int
	}{Address(source), Address(dest), value.Big()}
	return chain.NewPayload(balancesPallet[I](), "force_transfer", args,
		"force_transfer(source:MultiAddress<AccountId32,()>,dest:MultiAddress<AccountId32,()>,value:Compact<u128>)")
}

// TransferKeepAlive transfers the value to dest, failing if the sender
// account would be reaped.
func (BalancesTx[I]) TransferKeepAlive(dest AccountID, value Balance) *chain.Payload {
	return chain.NewPayload(balancesPallet[I](), "transfer_keep_alive", transferArgs{Address(dest), value.Big()},
		"transfer_keep_alive(dest:MultiAddress<AccountId32,()>,value:Compact<u128>)")
}

// TransferAll transfers the whole transferable balance to dest.
func (BalancesTx[I]) TransferAll(dest AccountID, keepAlive bool) *chain.Payload {
	args := struct {
		Dest      MultiAddress
		KeepAlive bool
	}{Address(dest), keepAlive}
	return chain.NewPayload(balancesPallet[I](), "transfer_all", args,
		"transfer_all(dest:MultiAddress<AccountId32,()>,keep_alive:bool)")
}

func (BalancesTx[I]) ForceUnreserve(who AccountID, amount Balance) *chain.Payload {
	args := struct {
		Who    MultiAddress
		Amount Balance
	}{Address(who), amount}
	return chain.NewPayload(balancesPallet[I](), "force_unreserve", args,
		"force_unreserve(who:MultiAddress<AccountId32,()>,amount:u128)")
}

func (BalancesTx[I]) UpgradeAccounts(who []AccountID) *chain.Payload {
	return chain.NewPayload(balancesPallet[I](), "upgrade_accounts", struct{ Who []AccountID }{who},
		"upgrade_accounts(who:Vec<AccountId32>)")
}

func (BalancesTx[I]) ForceSetBalance(who AccountID, newFree Balance) *chain.Payload {
	args := struct {
		Who     MultiAddress
		NewFree *big.Int
	}{Address(who), newFree.Big()}
	return chain.NewPayload(balancesPallet[I](), "force_set_balance", args,
		"force_set_balance(who:MultiAddress<AccountId32,()>,new_free:Compact<u128>)")
}

func (BalancesTx[I]) ForceAdjustTotalIssuance(direction AdjustmentDirection, delta Balance) *chain.Payload {
	args := struct {
		Direction AdjustmentDirection
		Delta     *big.Int
	}{direction, delta.Big()}
	return chain.NewPayload(balancesPallet[I](), "force_adjust_total_issuance", args,
		"force_adjust_total_issuance(direction:AdjustmentDirection,delta:Compact<u128>)")
}

// Burn burns the value from the sender account.
func (BalancesTx[I]) Burn(value Balance, keepAlive bool) *chain.Payload {
	args := struct {
		Value     *big.Int
		KeepAlive bool
	}{value.Big(), keepAlive}
	return chain.NewPayload(balancesPallet[I](), "burn", args,
		"burn(value:Compact<u128>,keep_alive:bool)")
}

// BalancesStorage addresses the storage of a balances instance.
type BalancesStorage[I BalancesInstance] struct{}

const (
	balancesAccountSignature  = "Account[Blake2_128Concat(AccountId32)]->AccountData<u128>"
	balancesLocksSignature    = "Locks[Blake2_128Concat(AccountId32)]->WeakBoundedVec<BalanceLock<u128>>"
	balancesReservesSignature = "Reserves[Blake2_128Concat(AccountId32)]->BoundedVec<ReserveData<[u8;8],u128>>"
	balancesHoldsSignature    = "Holds[Blake2_128Concat(AccountId32)]->BoundedVec<IdAmount<RuntimeHoldReason,u128>>"
	balancesFreezesSignature  = "Freezes[Blake2_128Concat(AccountId32)]->" +
		"BoundedVec<IdAmount<RuntimeFreezeReason,u128>>"
)

// TotalIssuance is the total units issued.
func (BalancesStorage[I]) TotalIssuance() *chain.StorageAddress[Balance] {
	return chain.NewStorageAddress[Balance](balancesPallet[I](), "TotalIssuance", nil, "TotalIssuance[]->u128")
}

func (BalancesStorage[I]) InactiveIssuance() *chain.StorageAddress[Balance] {
	return chain.NewStorageAddress[Balance](balancesPallet[I](), "InactiveIssuance", nil,
		"InactiveIssuance[]->u128")
}

// Account is the balance of the account.
func (BalancesStorage[I]) Account(id AccountID) *chain.StorageAddress[AccountData] {
	return chain.NewStorageAddress[AccountData](balancesPallet[I](), "Account", blake2Concat,
		balancesAccountSignature, id)
}

func (BalancesStorage[I]) AccountIter() *chain.StorageAddress[AccountData] {
	return chain.NewStorageAddress[AccountData](balancesPallet[I](), "Account", blake2Concat,
		balancesAccountSignature)
}

func (BalancesStorage[I]) Locks(id AccountID) *chain.StorageAddress[[]BalanceLock] {
	return chain.NewStorageAddress[[]BalanceLock](balancesPallet[I](), "Locks", blake2Concat,
		balancesLocksSignature, id)
}

func (BalancesStorage[I]) LocksIter() *chain.StorageAddress[[]BalanceLock] {
	return chain.NewStorageAddress[[]BalanceLock](balancesPallet[I](), "Locks", blake2Concat,
		balancesLocksSignature)
}

func (BalancesStorage[I]) Reserves(id AccountID) *chain.StorageAddress[[]ReserveData] {
	return chain.NewStorageAddress[[]ReserveData](balancesPallet[I](), "Reserves", blake2Concat,
		balancesReservesSignature, id)
}

func (BalancesStorage[I]) ReservesIter() *chain.StorageAddress[[]ReserveData] {
	return chain.NewStorageAddress[[]ReserveData](balancesPallet[I](), "Reserves", blake2Concat,
		balancesReservesSignature)
}

// Holds are the balance holds of the account, such as vault or bond funds.
func (BalancesStorage[I]) Holds(id AccountID) *chain.StorageAddress[[]IDAmount] {
	return chain.NewStorageAddress[[]IDAmount](balancesPallet[I](), "Holds", blake2Concat,
		balancesHoldsSignature, id)
}

func (BalancesStorage[I]) HoldsIter() *chain.StorageAddress[[]IDAmount] {
	return chain.NewStorageAddress[[]IDAmount](balancesPallet[I](), "Holds", blake2Concat,
		balancesHoldsSignature)
}

func (BalancesStorage[I]) Freezes(id AccountID) *chain.StorageAddress[[]IDAmount] {
	return chain.NewStorageAddress[[]IDAmount](balancesPallet[I](), "Freezes", blake2Concat,
		balancesFreezesSignature, id)
}

func (BalancesStorage[I]) FreezesIter() *chain.StorageAddress[[]IDAmount] {
	return chain.NewStorageAddress[[]IDAmount](balancesPallet[I](), "Freezes", blake2Concat,
		balancesFreezesSignature)
}

// BalancesConstants addresses the constants of a balances instance.
type BalancesConstants[I BalancesInstance] struct{}

// ExistentialDeposit is the minimum balance an account must keep to exist.
func (BalancesConstants[I]) ExistentialDeposit() *chain.ConstantAddress[Balance] {
	return chain.NewConstantAddress[Balance](balancesPallet[I](), "ExistentialDeposit",
		"ExistentialDeposit:u128")
}

func (BalancesConstants[I]) MaxLocks() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](balancesPallet[I](), "MaxLocks", "MaxLocks:u32")
}

func (BalancesConstants[I]) MaxReserves() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](balancesPallet[I](), "MaxReserves", "MaxReserves:u32")
}

func (BalancesConstants[I]) MaxFreezes() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](balancesPallet[I](), "MaxFreezes", "MaxFreezes:u32")
}

func balancesBindings[I BalancesInstance]() []chain.Binding {
	tx, storage, constants := BalancesTx[I]{}, BalancesStorage[I]{}, BalancesConstants[I]{}
	return []chain.Binding{
		tx.TransferAllowDeath(AccountID{}, Balance{}),
		tx.ForceTransfer(AccountID{}, AccountID{}, Balance{}),
		tx.TransferKeepAlive(AccountID{}, Balance{}),
		tx.TransferAll(AccountID{}, false),
		tx.ForceUnreserve(AccountID{}, Balance{}),
		tx.UpgradeAccounts(nil),
		tx.ForceSetBalance(AccountID{}, Balance{}),
		tx.ForceAdjustTotalIssuance(AdjustmentIncrease, Balance{}),
		tx.Burn(Balance{}, false),
		storage.TotalIssuance(),
		storage.InactiveIssuance(),
		storage.AccountIter(),
		storage.LocksIter(),
		storage.ReservesIter(),
		storage.HoldsIter(),
		storage.FreezesIter(),
		constants.ExistentialDeposit(),
		constants.MaxLocks(),
		constants.MaxReserves(),
		constants.MaxFreezes(),
	}
}
