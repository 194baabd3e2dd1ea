// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/apex/log"
)

// hit performs exactly one request and returns the response body. Any
// failure, including a non-2xx status, comes back as a *TransportError.
func (be *BackendRemote) hit(ctx context.Context, op, method, url string, body []byte) (bytes.Buffer, error) {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, rdr)
	if err != nil {
		return bytes.Buffer{}, transportError(op, method, url, 0, fmt.Errorf("failed to create request: %w", err))
	}
	if body != nil {
		req.Header.Set("Content-type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if be.token != "" {
		req.Header.Set("Authorization", "Bearer "+be.token)
	}

	log.Debugf("%s %s", method, url)
	resp, err := be.client.Do(req)
	if err != nil {
		return bytes.Buffer{}, transportError(op, method, url, 0, err)
	}
	defer resp.Body.Close()

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return bytes.Buffer{}, transportError(op, method, url, resp.StatusCode, fmt.Errorf("failed to read response: %w", err))
	}
	log.Debugf("%s %s -> %d (%d bytes)", method, url, resp.StatusCode, doc.Len())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return bytes.Buffer{}, transportError(op, method, url, resp.StatusCode, ErrUnexpectedStatus)
	}

	return doc, nil
}
