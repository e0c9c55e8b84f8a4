// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type httpTransport struct {
	endpoint string
	client   *http.Client
}

func (t *httpTransport) call(ctx context.Context, req request) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("cannot create HTTP request: %w", err)
	}

	const contentType = "application/json"
	httpRequest.Header.Set("Content-Type", contentType)
	httpRequest.Header.Set("Accept", contentType)

	httpResponse, err := t.client.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("cannot do HTTP request: %w", err)
	}

	data, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		_ = httpResponse.Body.Close()
		return nil, fmt.Errorf("cannot read HTTP response body: %w", err)
	}

	err = httpResponse.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("cannot close HTTP response body: %w", err)
	}

	var resp response
	err = json.Unmarshal(data, &resp)
	if err != nil {
		if httpResponse.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: %d: %s", ErrHTTPStatus, httpResponse.StatusCode, string(data))
		}
		return nil, fmt.Errorf("cannot decode response: %s: %w", string(data), err)
	}

	return resultOf(&resp)
}

func (t *httpTransport) close() error {
	t.client.CloseIdleConnections()
	return nil
}
