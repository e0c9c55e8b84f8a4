// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package client

import (
	"context"
	"fmt"

	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/common"
)

// RuntimeAPIQuery is a runtime API payload of any output type,
// such as a *chain.RuntimeAPIPayload.
type RuntimeAPIQuery interface {
	chain.Binding
	MethodName() string
	EncodeArgs() ([]byte, error)
}

// RuntimeAPI calls runtime APIs of the node.
type RuntimeAPI struct {
	client *Client
}

// Call calls the runtime API at the block given, or at the best
// block if at is nil, and decodes its output into out.
func (r *RuntimeAPI) Call(ctx context.Context, payload RuntimeAPIQuery, at *common.Hash, out any) error {
	err := payload.Validate(r.client.Metadata())
	if err != nil {
		return err
	}

	args, err := payload.EncodeArgs()
	if err != nil {
		return err
	}

	result, err := r.client.api.StateCall(ctx, payload.MethodName(), args, at)
	if err != nil {
		return fmt.Errorf("calling %s: %w", payload, err)
	}

	err = decodeValue(result, out)
	if err != nil {
		return fmt.Errorf("decoding %s output: %w", payload, err)
	}
	return nil
}

// CallRuntimeAPI calls the typed runtime API payload and returns its output.
func CallRuntimeAPI[O any](ctx context.Context, runtimeAPI *RuntimeAPI,
	payload *chain.RuntimeAPIPayload[O], at *common.Hash) (output O, err error) {
	err = runtimeAPI.Call(ctx, payload, at, &output)
	return output, err
}
