// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package chain

import (
	"fmt"

	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

// RuntimeAPIPayload is a runtime API call returning a value of type O.
type RuntimeAPIPayload[O any] struct {
	Trait  string
	Method string
	Args   []any
	// Hash is the static signature hash, nil if not validated.
	Hash *common.Hash
}

// NewRuntimeAPIPayload returns a runtime API payload whose static hash
// is the hash of the runtime API signature given.
func NewRuntimeAPIPayload[O any](trait, method, signature string, args ...any) *RuntimeAPIPayload[O] {
	return &RuntimeAPIPayload[O]{
		Trait:  trait,
		Method: method,
		Args:   args,
		Hash:   hashPtr(signature),
	}
}

// Unvalidated returns a copy of the payload which skips validation.
func (p *RuntimeAPIPayload[O]) Unvalidated() *RuntimeAPIPayload[O] {
	unvalidated := *p
	unvalidated.Hash = nil
	return &unvalidated
}

func (p *RuntimeAPIPayload[O]) String() string {
	return KindRuntimeAPI + " " + p.Trait + "." + p.Method
}

// MethodName returns the name passed to state_call.
func (p *RuntimeAPIPayload[O]) MethodName() string {
	return p.Trait + "_" + p.Method
}

// Validate checks the runtime API method against the runtime metadata.
func (p *RuntimeAPIPayload[O]) Validate(md *metadata.Metadata) error {
	hash, err := md.RuntimeAPIHash(p.Trait, p.Method)
	return checkHash(KindRuntimeAPI, p.Trait, p.Method, p.Hash, hash, err)
}

// EncodeArgs returns the concatenated SCALE encoding of the arguments.
func (p *RuntimeAPIPayload[O]) EncodeArgs() ([]byte, error) {
	var encoded []byte
	for i, arg := range p.Args {
		encodedArg, err := scale.Marshal(arg)
		if err != nil {
			return nil, fmt.Errorf("encoding argument %d of %s: %w", i, p.MethodName(), err)
		}
		encoded = append(encoded, encodedArg...)
	}
	return encoded, nil
}

// DecodeOutput decodes the SCALE encoded result of the call.
func (p *RuntimeAPIPayload[O]) DecodeOutput(data []byte) (output O, err error) {
	err = scale.Unmarshal(data, &output)
	if err != nil {
		return output, fmt.Errorf("decoding %s output: %w", p.MethodName(), err)
	}
	return output, nil
}
