// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/apex/log"
	"github.com/hashicorp/go-cleanhttp"

	"github.com/staranto/todoctl/internal/backend"
	"github.com/staranto/todoctl/internal/dto"
	"github.com/staranto/todoctl/internal/item"
)

const (
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"
	DefaultLimit   = 10

	collectionPath = "todos"
	contentType    = "application/json; charset=UTF-8"
)

// BackendRemote is a backend.Source talking to a jsonplaceholder-compatible
// REST API.
type BackendRemote struct {
	BaseURL string
	Limit   int
	token   string
	client  *http.Client
}

var _ backend.Source = (*BackendRemote)(nil)

// Option customizes a BackendRemote.
type Option func(*BackendRemote) error

// WithBaseURL points the backend at a different API root.
func WithBaseURL(base string) Option {
	return func(be *BackendRemote) error {
		if base == "" {
			return nil
		}
		u, err := url.Parse(base)
		if err != nil {
			return fmt.Errorf("invalid base URL %q: %w", base, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid base URL %q: %w", base, ErrURLNotSupported)
		}
		be.BaseURL = strings.TrimRight(base, "/")
		return nil
	}
}

// WithHTTPClient replaces the default pooled client.
func WithHTTPClient(c *http.Client) Option {
	return func(be *BackendRemote) error {
		if c != nil {
			be.client = c
		}
		return nil
	}
}

// WithLimit sets how many items List keeps. Values <= 0 keep everything.
func WithLimit(n int) Option {
	return func(be *BackendRemote) error {
		be.Limit = n
		return nil
	}
}

// WithToken sends a bearer token with every request.
func WithToken(token string) Option {
	return func(be *BackendRemote) error {
		be.token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
		return nil
	}
}

// NewBackendRemote builds a BackendRemote. With no options it talks to the
// public jsonplaceholder service and keeps the first ten items.
func NewBackendRemote(opts ...Option) (*BackendRemote, error) {
	be := &BackendRemote{
		BaseURL: DefaultBaseURL,
		Limit:   DefaultLimit,
		client:  cleanhttp.DefaultPooledClient(),
	}
	for _, opt := range opts {
		if err := opt(be); err != nil {
			return nil, err
		}
	}
	log.Debugf("NewBackendRemote: %v", be)
	return be, nil
}

func (be *BackendRemote) List(ctx context.Context) ([]item.Item, error) {
	u := be.collectionURL()
	doc, err := be.hit(ctx, "list", http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	items, err := dto.ListFromAPI(doc.Bytes())
	if err != nil {
		return nil, transportError("list", http.MethodGet, u, 0, err)
	}
	if be.Limit > 0 && len(items) > be.Limit {
		items = items[:be.Limit]
	}
	return items, nil
}

func (be *BackendRemote) Get(ctx context.Context, id string) (*item.Item, error) {
	u := be.itemURL(id)
	doc, err := be.hit(ctx, "get", http.MethodGet, u, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	it, err := dto.FromAPI(doc.Bytes())
	if err != nil {
		return nil, transportError("get", http.MethodGet, u, 0, err)
	}
	return &it, nil
}

func (be *BackendRemote) Create(ctx context.Context, it item.Item) (item.Item, error) {
	u := be.collectionURL()
	body, err := dto.ToAPI(it)
	if err != nil {
		return item.Item{}, fmt.Errorf("failed to marshal item: %w", err)
	}

	doc, err := be.hit(ctx, "create", http.MethodPost, u, body)
	if err != nil {
		return item.Item{}, err
	}

	created, err := dto.FromAPI(doc.Bytes())
	if err != nil {
		return item.Item{}, transportError("create", http.MethodPost, u, 0, err)
	}
	return created, nil
}

func (be *BackendRemote) Delete(ctx context.Context, id string) error {
	_, err := be.hit(ctx, "delete", http.MethodDelete, be.itemURL(id), nil)
	return err
}

func (be *BackendRemote) Complete(ctx context.Context, id string) error {
	_, err := be.hit(ctx, "complete", http.MethodPut, be.itemURL(id), dto.CompletePatch())
	return err
}

func (be *BackendRemote) String() string {
	token := ""
	if be.token != "" {
		token = "********"
	}
	return fmt.Sprintf("BackendRemote: {BaseURL:%s Limit:%d Token:%s}", be.BaseURL, be.Limit, token)
}

func (be *BackendRemote) collectionURL() string {
	return be.BaseURL + "/" + collectionPath
}

func (be *BackendRemote) itemURL(id string) string {
	return be.collectionURL() + "/" + url.PathEscape(id)
}
