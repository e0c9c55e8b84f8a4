// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/keyring"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/lib/metadata/metadatatest"
	"github.com/ChainSafe/argon-client/pkg/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Bindings_compatible(t *testing.T) {
	t.Parallel()

	md := metadatatest.Argon(metadata.V15)
	for _, binding := range Bindings() {
		err := binding.Validate(md)
		if err == nil {
			continue
		}
		assert.ErrorIsf(t, err, metadata.ErrNotFound, "binding %s", binding)
		assert.Falsef(t, errors.Is(err, chain.ErrIncompatible), "binding %s is incompatible", binding)
		assert.Falsef(t, errors.Is(err, chain.ErrHasherMismatch), "binding %s hashers mismatch", binding)
	}
}

func Test_Bindings_presentInRuntime(t *testing.T) {
	t.Parallel()

	md := metadatatest.Argon(metadata.V15)
	alice := AccountID(keyring.MustDevSigner("alice").AccountID())

	testCases := map[string]chain.Binding{
		"remark":                    Tx().System().Remark(nil),
		"timestamp set":             Tx().Timestamp().Set(0),
		"as multi threshold 1":      Tx().Multisig().AsMultiThreshold1(nil, nil),
		"transfer allow death":      Tx().ArgonBalances().TransferAllowDeath(alice, Balance{}),
		"transfer keep alive":       Tx().ArgonBalances().TransferKeepAlive(alice, Balance{}),
		"transfer all":              Tx().ArgonBalances().TransferAll(alice, true),
		"sudo":                      Tx().Sudo().Sudo(nil),
		"sudo unchecked weight":     Tx().Sudo().SudoUncheckedWeight(nil, Weight{}),
		"set key":                   Tx().Sudo().SetKey(alice),
		"system account":            Storage().System().Account(alice),
		"system number":             Storage().System().Number(),
		"total issuance":            Storage().ArgonBalances().TotalIssuance(),
		"balances account":          Storage().ArgonBalances().Account(alice),
		"sudo key":                  Storage().Sudo().Key(),
		"existential deposit":       Constants().ArgonBalances().ExistentialDeposit(),
		"max locks":                 Constants().ArgonBalances().MaxLocks(),
		"ss58 prefix":               Constants().System().SS58Prefix(),
		"core version":              Apis().Core().Version(),
		"account nonce":             Apis().AccountNonce().AccountNonce(alice),
		"vote minimum":              Apis().BlockSeal().VoteMinimum(),
		"compute difficulty":        Apis().BlockSeal().ComputeDifficulty(),
		"proxy":                     Tx().Proxy().Proxy(alice, nil, nil),
		"add proxy":                 Tx().Proxy().AddProxy(alice, ProxyTypeAny, 0),
		"remove proxies":            Tx().Proxy().RemoveProxies(),
		"create pure":               Tx().Proxy().CreatePure(ProxyTypeAny, 0, 0),
		"proxies":                   Storage().Proxy().Proxies(alice),
		"max proxies":               Constants().Proxy().MaxProxies(),
		"bid":                       Tx().MiningSlot().Bid(nil, RewardDestination{}),
		"active miners by index":    Storage().MiningSlot().ActiveMinersByIndex(0),
		"active miners count":       Storage().MiningSlot().ActiveMinersCount(),
		"is next slot bidding open": Storage().MiningSlot().IsNextSlotBiddingOpen(),
		"max miners":                Constants().MiningSlot().MaxMiners(),
		"vault create":              Tx().Vaults().Create(VaultConfig{}),
		"vault modify funding":      Tx().Vaults().ModifyFunding(0, Balance{}, Balance{}, FixedU128{}),
		"vault modify terms":        Tx().Vaults().ModifyTerms(0, VaultTerms{}),
		"vault close":               Tx().Vaults().Close(0),
		"next vault id":             Storage().Vaults().NextVaultID(),
		"vaults by id":              Storage().Vaults().VaultsByID(0),
		"minimum bond amount":       Constants().Vaults().MinimumBondAmount(),
		"bond bitcoin":              Tx().Bonds().BondBitcoin(0, 0, CompressedBitcoinPubkey{}),
		"next bond id":              Storage().Bonds().NextBondID(),
		"bonds by id":               Storage().Bonds().BondsByID(0),
		"notebook submit":           Tx().Notebook().Submit(nil),
		"block notebooks":           Storage().Notebook().BlockNotebooks(),
		"changed accounts root":     Storage().Notebook().NotebookChangedAccountsRootByNotary(0, 0),
	}

	for name, binding := range testCases {
		name, binding := name, binding
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.NoError(t, binding.Validate(md))
		})
	}
}

func Test_Events_presentInRuntime(t *testing.T) {
	t.Parallel()

	md := metadatatest.Argon(metadata.V15)

	testCases := []struct {
		pallet string
		name   string
	}{
		{pallet: ArgonBalancesPallet, name: "Endowed"},
		{pallet: ArgonBalancesPallet, name: "Transfer"},
		{pallet: ArgonBalancesPallet, name: "Deposit"},
		{pallet: ArgonBalancesPallet, name: "Withdraw"},
		{pallet: "Sudo", name: "Sudid"},
		{pallet: "Sudo", name: "KeyChanged"},
		{pallet: "Multisig", name: "NewMultisig"},
		{pallet: "Proxy", name: "ProxyExecuted"},
		{pallet: "Proxy", name: "ProxyAdded"},
		{pallet: "MiningSlot", name: "SlotBidderAdded"},
		{pallet: "Vaults", name: "VaultCreated"},
		{pallet: "Vaults", name: "VaultClosed"},
		{pallet: "Bonds", name: "BondCreated"},
		{pallet: "Bonds", name: "BondCompleted"},
		{pallet: "Notebook", name: "NotebookSubmitted"},
		{pallet: "Notebook", name: "NotebookAuditFailure"},
	}

	for _, testCase := range testCases {
		descriptor, ok := Events.Lookup(testCase.pallet, testCase.name)
		require.Truef(t, ok, "%s.%s is not registered", testCase.pallet, testCase.name)
		assert.NoError(t, descriptor.Validate(md))
	}
}

func Test_Events_bothBalancesInstances(t *testing.T) {
	t.Parallel()

	argon, ok := Events.Lookup(ArgonBalancesPallet, "Transfer")
	require.True(t, ok)
	ulixee, ok := Events.Lookup(UlixeeBalancesPallet, "Transfer")
	require.True(t, ok)

	assert.IsType(t, &ArgonTransfer{}, argon.New())
	assert.IsType(t, &UlixeeTransfer{}, ulixee.New())
	assert.Equal(t, UlixeeBalancesPallet, ulixee.New().PalletName())
}

func Test_Payload_EncodeCallData(t *testing.T) {
	t.Parallel()

	md := metadatatest.Argon(metadata.V15)
	alice := AccountID(keyring.MustDevSigner("alice").AccountID())

	miningBid := ProxyTypeMiningBid
	pubkey := CompressedBitcoinPubkey{2}
	transferCallData := common.Concat(
		[]byte{metadatatest.BalancesIndex, 3, 0},
		alice[:],
		[]byte{0xa1, 0x0f},
	)

	testCases := map[string]struct {
		payload  *chain.Payload
		callData []byte
	}{
		"remark": {
			payload:  Tx().System().Remark([]byte{1, 2, 3}),
			callData: []byte{metadatatest.SystemIndex, 0, 0x0c, 1, 2, 3},
		},
		"transfer keep alive": {
			payload:  Tx().ArgonBalances().TransferKeepAlive(alice, scale.Uint128FromUint64(1000)),
			callData: transferCallData,
		},
		"transfer all": {
			payload:  Tx().ArgonBalances().TransferAll(alice, true),
			callData: common.Concat([]byte{metadatatest.BalancesIndex, 4, 0}, alice[:], []byte{1}),
		},
		"sudo of transfer": {
			payload: Tx().Sudo().Sudo(
				Tx().ArgonBalances().TransferKeepAlive(alice, scale.Uint128FromUint64(1000))),
			callData: common.Concat([]byte{metadatatest.SudoIndex, 0}, transferCallData),
		},
		"timestamp set": {
			payload:  Tx().Timestamp().Set(1),
			callData: []byte{metadatatest.TimestampIndex, 0, 0x04},
		},
		"proxy of transfer": {
			payload: Tx().Proxy().Proxy(alice, nil,
				Tx().ArgonBalances().TransferKeepAlive(alice, scale.Uint128FromUint64(1000))),
			callData: common.Concat([]byte{metadatatest.ProxyIndex, 0, 0}, alice[:], []byte{0}, transferCallData),
		},
		"proxy of sudo of transfer with forced proxy type": {
			payload: Tx().Proxy().Proxy(alice, &miningBid, Tx().Sudo().Sudo(
				Tx().ArgonBalances().TransferKeepAlive(alice, scale.Uint128FromUint64(1000)))),
			callData: common.Concat(
				[]byte{metadatatest.ProxyIndex, 0, 0}, alice[:], []byte{1, byte(ProxyTypeMiningBid)},
				[]byte{metadatatest.SudoIndex, 0}, transferCallData),
		},
		"add proxy": {
			payload: Tx().Proxy().AddProxy(alice, ProxyTypeMiningBid, 10),
			callData: common.Concat([]byte{metadatatest.ProxyIndex, 1, 0}, alice[:],
				[]byte{byte(ProxyTypeMiningBid), 10, 0, 0, 0}),
		},
		"mining slot bid": {
			payload: Tx().MiningSlot().Bid(&MiningSlotBid{VaultID: 1, Amount: scale.Uint128FromUint64(1000)},
				RewardDestination{Account: &alice}),
			callData: common.Concat([]byte{metadatatest.MiningSlotIndex, 0, 1, 1, 0, 0, 0},
				scale.Uint128FromUint64(1000).Bytes(), []byte{1}, alice[:]),
		},
		"mining slot bid without bond": {
			payload:  Tx().MiningSlot().Bid(nil, RewardDestination{}),
			callData: []byte{metadatatest.MiningSlotIndex, 0, 0, 0},
		},
		"vault close": {
			payload:  Tx().Vaults().Close(7),
			callData: []byte{metadatatest.VaultsIndex, 3, 7, 0, 0, 0},
		},
		"bond bitcoin": {
			payload: Tx().Bonds().BondBitcoin(1, 100_000, pubkey),
			callData: common.Concat([]byte{metadatatest.BondsIndex, 1, 1, 0, 0, 0},
				[]byte{0xa0, 0x86, 0x01, 0, 0, 0, 0, 0}, pubkey[:]),
		},
		"notebook submit": {
			payload: Tx().Notebook().Submit([]SignedNotebookHeader{
				{Header: []byte{1, 2}, Signature: [64]byte{9}},
			}),
			callData: common.Concat([]byte{metadatatest.NotebookIndex, 0, 0x04, 0x08, 1, 2, 9}, make([]byte, 63)),
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			require.NoError(t, testCase.payload.Validate(md))
			callData, err := testCase.payload.EncodeCallData(md)
			require.NoError(t, err)
			assert.Equal(t, testCase.callData, callData)
		})
	}
}

func Test_Events_Decode(t *testing.T) {
	t.Parallel()

	alice := AccountID(keyring.MustDevSigner("alice").AccountID())
	bob := AccountID(keyring.MustDevSigner("bob").AccountID())

	testCases := map[string]struct {
		record chain.EventRecord
		event  chain.Event
		errIs  error
	}{
		"argon transfer": {
			record: chain.EventRecord{
				Pallet: ArgonBalancesPallet,
				Name:   "Transfer",
				Fields: common.Concat(alice[:], bob[:], scale.Uint128FromUint64(1000).Bytes()),
			},
			event: &ArgonTransfer{From: alice, To: bob, Amount: scale.Uint128FromUint64(1000)},
		},
		"sudid ok": {
			record: chain.EventRecord{Pallet: "Sudo", Name: "Sudid", Fields: []byte{0}},
			event:  &Sudid{},
		},
		"key changed without old key": {
			record: chain.EventRecord{
				Pallet: "Sudo",
				Name:   "KeyChanged",
				Fields: common.Concat([]byte{0}, alice[:]),
			},
			event: &SudoKeyChanged{New: alice},
		},
		"unknown event": {
			record: chain.EventRecord{Pallet: "Sudo", Name: "Unknown"},
			errIs:  chain.ErrUnknownEvent,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			event, err := Events.Decode(testCase.record)
			if testCase.errIs != nil {
				assert.ErrorIs(t, err, testCase.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.event, event)
		})
	}
}

func Test_Constants_Decode(t *testing.T) {
	t.Parallel()

	md := metadatatest.Argon(metadata.V15)

	existentialDeposit, err := Constants().ArgonBalances().ExistentialDeposit().Decode(md)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(500), existentialDeposit.Big())

	prefix, err := Constants().System().SS58Prefix().Decode(md)
	require.NoError(t, err)
	assert.Equal(t, SS58Prefix, prefix)
}

func Test_IsModuleError(t *testing.T) {
	t.Parallel()

	md := metadatatest.Argon(metadata.V15)
	raw := []byte{3, metadatatest.BalancesIndex, 2, 0, 0, 0}
	dispatchError, err := chain.DecodeDispatchError(md, raw)
	require.NoError(t, err)

	assert.True(t, IsModuleError(dispatchError, ArgonBalancesPallet, BalancesErrorInsufficientBalance))
	assert.False(t, IsModuleError(dispatchError, ArgonBalancesPallet, BalancesErrorDeadAccount))
	assert.False(t, IsModuleError(errors.New("other"), ArgonBalancesPallet, BalancesErrorInsufficientBalance))
}
