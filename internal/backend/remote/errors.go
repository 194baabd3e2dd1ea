// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors. Every failure returned by BackendRemote is a
// *TransportError and matches ErrTransport.
var (
	ErrTransport        = errors.New("transport error")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrURLNotSupported  = errors.New("URL not supported")
)

// TransportError carries the context of a failed call.
type TransportError struct {
	Op     string
	Method string
	URL    string
	Status int
	Err    error
}

func transportError(op, method, url string, status int, err error) *TransportError {
	return &TransportError{Op: op, Method: method, URL: url, Status: status, Err: err}
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s %s: %d %s: %v", e.Op, e.Method, e.URL, e.Status, http.StatusText(e.Status), e.Err)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Status == http.StatusNotFound
}
