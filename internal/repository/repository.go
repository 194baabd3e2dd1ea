// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package repository is the thin facade the use cases talk to. It forwards
// every call to a backend.Source unchanged.
package repository

import (
	"context"

	"github.com/staranto/todoctl/internal/backend"
	"github.com/staranto/todoctl/internal/item"
)

type Repository struct {
	source backend.Source
}

func New(source backend.Source) *Repository {
	return &Repository{source: source}
}

func (r *Repository) List(ctx context.Context) ([]item.Item, error) {
	return r.source.List(ctx)
}

// Get returns nil and no error when the item does not exist.
func (r *Repository) Get(ctx context.Context, id string) (*item.Item, error) {
	return r.source.Get(ctx, id)
}

func (r *Repository) Create(ctx context.Context, it item.Item) (item.Item, error) {
	return r.source.Create(ctx, it)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.source.Delete(ctx, id)
}

func (r *Repository) Complete(ctx context.Context, id string) error {
	return r.source.Complete(ctx, id)
}

func (r *Repository) String() string {
	return "Repository: {" + r.source.String() + "}"
}
