// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package backend

import (
	"context"

	"github.com/staranto/todoctl/internal/item"
)

// Source is the authoritative todo collection. Each method is a single call
// against the backing store and errors are returned to the caller unchanged.
type Source interface {
	// List returns the collection, truncated to the source's limit.
	List(ctx context.Context) ([]item.Item, error)
	// Get returns the item with id, or nil when it does not exist.
	Get(ctx context.Context, id string) (*item.Item, error)
	Create(ctx context.Context, it item.Item) (item.Item, error)
	Delete(ctx context.Context, id string) error
	// Complete marks the item done. There is no way back to incomplete.
	Complete(ctx context.Context, id string) error
	String() string
}
