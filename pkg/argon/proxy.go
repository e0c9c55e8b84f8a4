// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import (
	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/common"
)

const proxyPallet = "Proxy"

// Proxy module errors.
const (
	ProxyErrorTooMany      = "TooMany"
	ProxyErrorNotFound     = "NotFound"
	ProxyErrorNotProxy     = "NotProxy"
	ProxyErrorUnproxyable  = "Unproxyable"
	ProxyErrorDuplicate    = "Duplicate"
	ProxyErrorNoPermission = "NoPermission"
	ProxyErrorUnannounced  = "Unannounced"
	ProxyErrorNoSelfProxy  = "NoSelfProxy"
)

// ProxyType restricts the calls a proxy may make.
type ProxyType uint8

// Proxy types.
const (
	ProxyTypeAny ProxyType = iota
	ProxyTypeNonTransfer
	ProxyTypePriceIndex
	ProxyTypeMiningBid
	ProxyTypeBitcoinCosign
)

func (p ProxyType) String() string {
	switch p {
	case ProxyTypeAny:
		return "Any"
	case ProxyTypeNonTransfer:
		return "NonTransfer"
	case ProxyTypePriceIndex:
		return "PriceIndex"
	case ProxyTypeMiningBid:
		return "MiningBid"
	case ProxyTypeBitcoinCosign:
		return "BitcoinCosign"
	default:
		return "Unknown"
	}
}

// ProxyDefinition is a delegate allowed to act for an account.
type ProxyDefinition struct {
	Delegate  AccountID
	ProxyType ProxyType
	Delay     BlockNumber
}

// Proxies are the delegates of an account with the deposit held for them.
type Proxies struct {
	Definitions []ProxyDefinition
	Deposit     Balance
}

// Announcement is a call announced by a delayed proxy.
type Announcement struct {
	Real     AccountID
	CallHash common.Hash
	Height   BlockNumber
}

// Announcements are the pending announcements of a proxy with the
// deposit held for them.
type Announcements struct {
	Announcements []Announcement
	Deposit       Balance
}

type proxyEvent struct{}

func (proxyEvent) PalletName() string { return proxyPallet }

// ProxyExecuted is emitted with the result of a proxied call.
type ProxyExecuted struct {
	proxyEvent
	Result DispatchResult
}

func (ProxyExecuted) EventName() string { return "ProxyExecuted" }

type ProxyPureCreated struct {
	proxyEvent
	Pure                AccountID
	Who                 AccountID
	ProxyType           ProxyType
	DisambiguationIndex uint16
}

func (ProxyPureCreated) EventName() string { return "PureCreated" }

type ProxyAnnounced struct {
	proxyEvent
	Real     AccountID
	Proxy    AccountID
	CallHash common.Hash
}

func (ProxyAnnounced) EventName() string { return "Announced" }

type ProxyAdded struct {
	proxyEvent
	Delegator AccountID
	Delegatee AccountID
	ProxyType ProxyType
	Delay     BlockNumber
}

func (ProxyAdded) EventName() string { return "ProxyAdded" }

type ProxyRemoved struct {
	proxyEvent
	Delegator AccountID
	Delegatee AccountID
	ProxyType ProxyType
	Delay     BlockNumber
}

func (ProxyRemoved) EventName() string { return "ProxyRemoved" }

func registerProxyEvents(r *chain.EventRegistry) {
	r.Register("ProxyExecuted(result:Result<(),DispatchError>)",
		func() chain.Event { return &ProxyExecuted{} })
	r.Register("PureCreated(pure:AccountId32,who:AccountId32,proxy_type:ProxyType,disambiguation_index:u16)",
		func() chain.Event { return &ProxyPureCreated{} })
	r.Register("Announced(real:AccountId32,proxy:AccountId32,call_hash:H256)",
		func() chain.Event { return &ProxyAnnounced{} })
	r.Register("ProxyAdded(delegator:AccountId32,delegatee:AccountId32,proxy_type:ProxyType,delay:u32)",
		func() chain.Event { return &ProxyAdded{} })
	r.Register("ProxyRemoved(delegator:AccountId32,delegatee:AccountId32,proxy_type:ProxyType,delay:u32)",
		func() chain.Event { return &ProxyRemoved{} })
}

// ProxyTx builds Proxy calls.
type ProxyTx struct{}

// Proxy dispatches the call as the real account. A nil proxy type
// lets the runtime pick any matching proxy definition.
func (ProxyTx) Proxy(real AccountID, forceProxyType *ProxyType, call *chain.Payload) *chain.Payload {
	args := struct {
		Real           MultiAddress
		ForceProxyType *ProxyType
		Call           chain.RuntimeCall
	}{Address(real), forceProxyType, Call(call)}
	return chain.NewPayload(proxyPallet, "proxy", args,
		"proxy(real:MultiAddress<AccountId32,()>,force_proxy_type:Option<ProxyType>,call:RuntimeCall)")
}

type proxyDelegateArgs struct {
	Delegate  MultiAddress
	ProxyType ProxyType
	Delay     BlockNumber
}

// AddProxy registers the delegate as a proxy of the sender.
func (ProxyTx) AddProxy(delegate AccountID, proxyType ProxyType, delay BlockNumber) *chain.Payload {
	return chain.NewPayload(proxyPallet, "add_proxy", proxyDelegateArgs{Address(delegate), proxyType, delay},
		"add_proxy(delegate:MultiAddress<AccountId32,()>,proxy_type:ProxyType,delay:u32)")
}

func (ProxyTx) RemoveProxy(delegate AccountID, proxyType ProxyType, delay BlockNumber) *chain.Payload {
	return chain.NewPayload(proxyPallet, "remove_proxy", proxyDelegateArgs{Address(delegate), proxyType, delay},
		"remove_proxy(delegate:MultiAddress<AccountId32,()>,proxy_type:ProxyType,delay:u32)")
}

func (ProxyTx) RemoveProxies() *chain.Payload {
	return chain.NewPayload(proxyPallet, "remove_proxies", nil, "remove_proxies()")
}

// CreatePure spawns a keyless account with the sender as its proxy.
func (ProxyTx) CreatePure(proxyType ProxyType, delay BlockNumber, index uint16) *chain.Payload {
	args := struct {
		ProxyType ProxyType
		Delay     BlockNumber
		Index     uint16
	}{proxyType, delay, index}
	return chain.NewPayload(proxyPallet, "create_pure", args,
		"create_pure(proxy_type:ProxyType,delay:u32,index:u16)")
}

func (ProxyTx) KillPure(spawner AccountID, proxyType ProxyType, index uint16,
	height BlockNumber, extIndex uint32) *chain.Payload {
	args := struct {
		Spawner   MultiAddress
		ProxyType ProxyType
		Index     uint16
		Height    uint
		ExtIndex  uint
	}{Address(spawner), proxyType, index, uint(height), uint(extIndex)}
	return chain.NewPayload(proxyPallet, "kill_pure", args,
		"kill_pure(spawner:MultiAddress<AccountId32,()>,proxy_type:ProxyType,index:u16,"+
			"height:Compact<u32>,ext_index:Compact<u32>)")
}

func (ProxyTx) Announce(real AccountID, callHash common.Hash) *chain.Payload {
	args := struct {
		Real     MultiAddress
		CallHash common.Hash
	}{Address(real), callHash}
	return chain.NewPayload(proxyPallet, "announce", args,
		"announce(real:MultiAddress<AccountId32,()>,call_hash:H256)")
}

func (ProxyTx) RemoveAnnouncement(real AccountID, callHash common.Hash) *chain.Payload {
	args := struct {
		Real     MultiAddress
		CallHash common.Hash
	}{Address(real), callHash}
	return chain.NewPayload(proxyPallet, "remove_announcement", args,
		"remove_announcement(real:MultiAddress<AccountId32,()>,call_hash:H256)")
}

func (ProxyTx) RejectAnnouncement(delegate AccountID, callHash common.Hash) *chain.Payload {
	args := struct {
		Delegate MultiAddress
		CallHash common.Hash
	}{Address(delegate), callHash}
	return chain.NewPayload(proxyPallet, "reject_announcement", args,
		"reject_announcement(delegate:MultiAddress<AccountId32,()>,call_hash:H256)")
}

func (ProxyTx) ProxyAnnounced(delegate, real AccountID, forceProxyType *ProxyType,
	call *chain.Payload) *chain.Payload {
	args := struct {
		Delegate       MultiAddress
		Real           MultiAddress
		ForceProxyType *ProxyType
		Call           chain.RuntimeCall
	}{Address(delegate), Address(real), forceProxyType, Call(call)}
	return chain.NewPayload(proxyPallet, "proxy_announced", args,
		"proxy_announced(delegate:MultiAddress<AccountId32,()>,real:MultiAddress<AccountId32,()>,"+
			"force_proxy_type:Option<ProxyType>,call:RuntimeCall)")
}

// ProxyStorage addresses Proxy storage.
type ProxyStorage struct{}

const (
	proxiesSignature = "Proxies[Twox64Concat(AccountId32)]->" +
		"(BoundedVec<ProxyDefinition<AccountId32,ProxyType,u32>>,u128)"
	announcementsSignature = "Announcements[Twox64Concat(AccountId32)]->" +
		"(BoundedVec<Announcement<AccountId32,H256,u32>>,u128)"
)

// Proxies are the proxy definitions of the delegator.
func (ProxyStorage) Proxies(delegator AccountID) *chain.StorageAddress[Proxies] {
	return chain.NewStorageAddress[Proxies](proxyPallet, "Proxies", twox64Concat, proxiesSignature, delegator)
}

func (ProxyStorage) ProxiesIter() *chain.StorageAddress[Proxies] {
	return chain.NewStorageAddress[Proxies](proxyPallet, "Proxies", twox64Concat, proxiesSignature)
}

func (ProxyStorage) Announcements(delegate AccountID) *chain.StorageAddress[Announcements] {
	return chain.NewStorageAddress[Announcements](proxyPallet, "Announcements", twox64Concat,
		announcementsSignature, delegate)
}

func (ProxyStorage) AnnouncementsIter() *chain.StorageAddress[Announcements] {
	return chain.NewStorageAddress[Announcements](proxyPallet, "Announcements", twox64Concat,
		announcementsSignature)
}

// ProxyConstants addresses Proxy constants.
type ProxyConstants struct{}

func (ProxyConstants) ProxyDepositBase() *chain.ConstantAddress[Balance] {
	return chain.NewConstantAddress[Balance](proxyPallet, "ProxyDepositBase", "ProxyDepositBase:u128")
}

func (ProxyConstants) ProxyDepositFactor() *chain.ConstantAddress[Balance] {
	return chain.NewConstantAddress[Balance](proxyPallet, "ProxyDepositFactor", "ProxyDepositFactor:u128")
}

func (ProxyConstants) MaxProxies() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](proxyPallet, "MaxProxies", "MaxProxies:u32")
}

func (ProxyConstants) MaxPending() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](proxyPallet, "MaxPending", "MaxPending:u32")
}

func (ProxyConstants) AnnouncementDepositBase() *chain.ConstantAddress[Balance] {
	return chain.NewConstantAddress[Balance](proxyPallet, "AnnouncementDepositBase",
		"AnnouncementDepositBase:u128")
}

func (ProxyConstants) AnnouncementDepositFactor() *chain.ConstantAddress[Balance] {
	return chain.NewConstantAddress[Balance](proxyPallet, "AnnouncementDepositFactor",
		"AnnouncementDepositFactor:u128")
}

func proxyBindings() []chain.Binding {
	tx, storage, constants := ProxyTx{}, ProxyStorage{}, ProxyConstants{}
	return []chain.Binding{
		tx.Proxy(AccountID{}, nil, nil),
		tx.AddProxy(AccountID{}, ProxyTypeAny, 0),
		tx.RemoveProxy(AccountID{}, ProxyTypeAny, 0),
		tx.RemoveProxies(),
		tx.CreatePure(ProxyTypeAny, 0, 0),
		tx.KillPure(AccountID{}, ProxyTypeAny, 0, 0, 0),
		tx.Announce(AccountID{}, common.Hash{}),
		tx.RemoveAnnouncement(AccountID{}, common.Hash{}),
		tx.RejectAnnouncement(AccountID{}, common.Hash{}),
		tx.ProxyAnnounced(AccountID{}, AccountID{}, nil, nil),
		storage.ProxiesIter(),
		storage.AnnouncementsIter(),
		constants.ProxyDepositBase(),
		constants.ProxyDepositFactor(),
		constants.MaxProxies(),
		constants.MaxPending(),
		constants.AnnouncementDepositBase(),
		constants.AnnouncementDepositFactor(),
	}
}
