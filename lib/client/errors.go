// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package client

import "errors"

var (
	ErrNoDefault          = errors.New("storage entry has no default value")
	ErrStopIteration      = errors.New("stop iteration")
	ErrSubscriptionClosed = errors.New("subscription closed")
	ErrTxDropped          = errors.New("transaction dropped")
	ErrTxInvalid          = errors.New("transaction invalid")
	ErrTxUsurped          = errors.New("transaction usurped")
	ErrTxFinalityTimeout  = errors.New("transaction finality timeout")
	ErrTxNotInBlock       = errors.New("transaction not found in block")
	ErrTxProgressDone     = errors.New("transaction progress is done")
)
