// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package chain

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

// Payload is a call of a pallet with its arguments. Args is a struct
// whose exported fields are the SCALE encoded call arguments in order,
// or nil for a call without arguments.
type Payload struct {
	Pallet string
	Call   string
	Args   any
	// Hash is the static signature hash, nil if not validated.
	Hash *common.Hash
}

// NewPayload returns a payload whose static hash is the hash of the
// call signature given.
func NewPayload(pallet, call string, args any, signature string) *Payload {
	return &Payload{
		Pallet: pallet,
		Call:   call,
		Args:   args,
		Hash:   hashPtr(signature),
	}
}

// Unvalidated returns a copy of the payload which skips validation.
func (p *Payload) Unvalidated() *Payload {
	unvalidated := *p
	unvalidated.Hash = nil
	return &unvalidated
}

func (p *Payload) String() string {
	return KindCall + " " + p.Pallet + "." + p.Call
}

// Validate checks the payload against the runtime metadata.
func (p *Payload) Validate(md *metadata.Metadata) error {
	hash, err := md.CallHash(p.Pallet, p.Call)
	return checkHash(KindCall, p.Pallet, p.Call, p.Hash, hash, err)
}

// EncodeCallData encodes the pallet index, the call index and the
// arguments. Indices are taken from the runtime metadata, and nested
// runtime calls are encoded recursively.
func (p *Payload) EncodeCallData(md *metadata.Metadata) ([]byte, error) {
	pallet, variant, err := md.Call(p.Pallet, p.Call)
	if err != nil {
		return nil, err
	}

	callData := []byte{pallet.Index, variant.Index}
	if p.Args == nil {
		return callData, nil
	}

	args, err := resolveCalls(md, p.Args)
	if err != nil {
		return nil, fmt.Errorf("call %s.%s: %w", p.Pallet, p.Call, err)
	}

	encodedArgs, err := scale.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encoding arguments of %s.%s: %w", p.Pallet, p.Call, err)
	}
	return append(callData, encodedArgs...), nil
}

// RuntimeCall is a call passed as an argument to another call,
// such as the call dispatched by Sudo, Proxy or Multisig.
type RuntimeCall struct {
	Payload *Payload
	encoded []byte
}

// NewRuntimeCall wraps the payload as a call argument.
func NewRuntimeCall(payload *Payload) RuntimeCall {
	return RuntimeCall{Payload: payload}
}

// MarshalSCALE returns the call data resolved by EncodeCallData.
func (c RuntimeCall) MarshalSCALE() ([]byte, error) {
	if c.encoded == nil {
		if c.Payload == nil {
			return nil, fmt.Errorf("%w: nil payload", ErrUnresolvedCall)
		}
		return nil, fmt.Errorf("%w: %s.%s", ErrUnresolvedCall, c.Payload.Pallet, c.Payload.Call)
	}
	return c.encoded, nil
}

var runtimeCallType = reflect.TypeOf(RuntimeCall{})

// resolveCalls returns a copy of args where every nested RuntimeCall
// carries its encoded call data. The args given are left untouched.
func resolveCalls(md *metadata.Metadata, args any) (any, error) {
	t := reflect.TypeOf(args)
	if !containsCall(t) {
		return args, nil
	}

	copied := reflect.New(t).Elem()
	copied.Set(reflect.ValueOf(args))
	err := resolveValue(md, copied)
	if err != nil {
		return nil, err
	}
	return copied.Interface(), nil
}

func resolveValue(md *metadata.Metadata, v reflect.Value) error {
	if v.Type() == runtimeCallType {
		call := v.Interface().(RuntimeCall)
		if call.Payload == nil {
			return fmt.Errorf("%w: nil payload", ErrUnresolvedCall)
		}
		encoded, err := call.Payload.EncodeCallData(md)
		if err != nil {
			return err
		}
		call.encoded = encoded
		v.Set(reflect.ValueOf(call))
		return nil
	}

	if !containsCall(v.Type()) {
		return nil
	}

	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !v.Type().Field(i).IsExported() {
				continue
			}
			err := resolveValue(md, v.Field(i))
			if err != nil {
				return err
			}
		}
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			err := resolveValue(md, v.Index(i))
			if err != nil {
				return err
			}
		}
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		copied := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(copied, v)
		v.Set(copied)
		for i := 0; i < v.Len(); i++ {
			err := resolveValue(md, v.Index(i))
			if err != nil {
				return err
			}
		}
	case reflect.Ptr:
		if v.IsNil() {
			return nil
		}
		copied := reflect.New(v.Type().Elem())
		copied.Elem().Set(v.Elem())
		v.Set(copied)
		return resolveValue(md, v.Elem())
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		inner := v.Elem()
		copied := reflect.New(inner.Type()).Elem()
		copied.Set(inner)
		err := resolveValue(md, copied)
		if err != nil {
			return err
		}
		v.Set(copied)
	}
	return nil
}

var callTypes sync.Map // reflect.Type -> bool

// containsCall returns true if values of the type may hold a RuntimeCall.
// Interfaces are assumed to possibly hold one.
func containsCall(t reflect.Type) bool {
	if cached, ok := callTypes.Load(t); ok {
		return cached.(bool)
	}
	contains := typeContainsCall(t, map[reflect.Type]bool{})
	callTypes.Store(t, contains)
	return contains
}

func typeContainsCall(t reflect.Type, visiting map[reflect.Type]bool) bool {
	if t == runtimeCallType {
		return true
	}
	if visiting[t] {
		return false
	}
	visiting[t] = true

	switch t.Kind() {
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if field.IsExported() && typeContainsCall(field.Type, visiting) {
				return true
			}
		}
	case reflect.Array, reflect.Slice, reflect.Ptr:
		return typeContainsCall(t.Elem(), visiting)
	case reflect.Interface:
		return true
	}
	return false
}
