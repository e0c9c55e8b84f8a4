// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import "github.com/ChainSafe/argon-client/lib/chain"

const sudoPallet = "Sudo"

// SudoErrorRequireSudo is returned when the sender is not the sudo key.
const SudoErrorRequireSudo = "RequireSudo"

type sudoEvent struct{}

func (sudoEvent) PalletName() string { return sudoPallet }

// Sudid is emitted with the result of a call dispatched by the sudo key.
type Sudid struct {
	sudoEvent
	SudoResult DispatchResult
}

func (Sudid) EventName() string { return "Sudid" }

// SudoKeyChanged is emitted when the sudo key changes. Old is nil
// when no key was set.
type SudoKeyChanged struct {
	sudoEvent
	Old *AccountID
	New AccountID
}

func (SudoKeyChanged) EventName() string { return "KeyChanged" }

type SudoKeyRemoved struct {
	sudoEvent
}

func (SudoKeyRemoved) EventName() string { return "KeyRemoved" }

type SudoAsDone struct {
	sudoEvent
	SudoResult DispatchResult
}

func (SudoAsDone) EventName() string { return "SudoAsDone" }

func registerSudoEvents(r *chain.EventRegistry) {
	r.Register("Sudid(sudo_result:Result<(),DispatchError>)",
		func() chain.Event { return &Sudid{} })
	r.Register("KeyChanged(old:Option<AccountId32>,new:AccountId32)",
		func() chain.Event { return &SudoKeyChanged{} })
	r.Register("KeyRemoved()",
		func() chain.Event { return &SudoKeyRemoved{} })
	r.Register("SudoAsDone(sudo_result:Result<(),DispatchError>)",
		func() chain.Event { return &SudoAsDone{} })
}

// SudoTx builds Sudo calls. They must be signed by the sudo key.
type SudoTx struct{}

// Sudo dispatches the call with the root origin.
func (SudoTx) Sudo(call *chain.Payload) *chain.Payload {
	return chain.NewPayload(sudoPallet, "sudo", struct{ Call chain.RuntimeCall }{Call(call)},
		"sudo(call:RuntimeCall)")
}

// SudoUncheckedWeight dispatches the call with the root origin and
// the weight given instead of the weight of the call.
func (SudoTx) SudoUncheckedWeight(call *chain.Payload, weight Weight) *chain.Payload {
	args := struct {
		Call   chain.RuntimeCall
		Weight Weight
	}{Call(call), weight}
	return chain.NewPayload(sudoPallet, "sudo_unchecked_weight", args,
		"sudo_unchecked_weight(call:RuntimeCall,weight:Weight)")
}

// SetKey sets the sudo key.
func (SudoTx) SetKey(key AccountID) *chain.Payload {
	return chain.NewPayload(sudoPallet, "set_key", struct{ New MultiAddress }{Address(key)},
		"set_key(new:MultiAddress<AccountId32,()>)")
}

// SudoAs dispatches the call with the signed origin of who.
func (SudoTx) SudoAs(who AccountID, call *chain.Payload) *chain.Payload {
	args := struct {
		Who  MultiAddress
		Call chain.RuntimeCall
	}{Address(who), Call(call)}
	return chain.NewPayload(sudoPallet, "sudo_as", args,
		"sudo_as(who:MultiAddress<AccountId32,()>,call:RuntimeCall)")
}

// RemoveKey permanently removes the sudo key.
func (SudoTx) RemoveKey() *chain.Payload {
	return chain.NewPayload(sudoPallet, "remove_key", nil, "remove_key()")
}

// SudoStorage addresses Sudo storage.
type SudoStorage struct{}

// Key is the sudo key.
func (SudoStorage) Key() *chain.StorageAddress[AccountID] {
	return chain.NewStorageAddress[AccountID](sudoPallet, "Key", nil, "Key[]->AccountId32")
}

func sudoBindings() []chain.Binding {
	tx := SudoTx{}
	return []chain.Binding{
		tx.Sudo(nil),
		tx.SudoUncheckedWeight(nil, Weight{}),
		tx.SetKey(AccountID{}),
		tx.SudoAs(AccountID{}, nil),
		tx.RemoveKey(),
		SudoStorage{}.Key(),
	}
}
