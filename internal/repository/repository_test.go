// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/todoctl/internal/item"
)

type recorder struct {
	calls []string
	err   error
}

func (r *recorder) List(context.Context) ([]item.Item, error) {
	r.calls = append(r.calls, "list")
	return []item.Item{{ID: "1", Title: "buy milk"}}, r.err
}

func (r *recorder) Get(_ context.Context, id string) (*item.Item, error) {
	r.calls = append(r.calls, "get "+id)
	return nil, r.err
}

func (r *recorder) Create(_ context.Context, it item.Item) (item.Item, error) {
	r.calls = append(r.calls, "create "+it.Title)
	it.ID = "42"
	return it, r.err
}

func (r *recorder) Delete(_ context.Context, id string) error {
	r.calls = append(r.calls, "delete "+id)
	return r.err
}

func (r *recorder) Complete(_ context.Context, id string) error {
	r.calls = append(r.calls, "complete "+id)
	return r.err
}

func (r *recorder) String() string { return "recorder" }

func TestRepository_Forwards(t *testing.T) {
	src := &recorder{}
	repo := New(src)
	ctx := context.Background()

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	got, err := repo.Get(ctx, "7")
	require.NoError(t, err)
	assert.Nil(t, got)

	created, err := repo.Create(ctx, item.Item{ID: "tmp", Title: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "42", created.ID)

	require.NoError(t, repo.Delete(ctx, "1"))
	require.NoError(t, repo.Complete(ctx, "2"))

	assert.Equal(t, []string{"list", "get 7", "create abc", "delete 1", "complete 2"}, src.calls)
	assert.Equal(t, "Repository: {recorder}", repo.String())
}

func TestRepository_ErrorsUnchanged(t *testing.T) {
	boom := errors.New("boom")
	repo := New(&recorder{err: boom})
	ctx := context.Background()

	_, err := repo.List(ctx)
	assert.Same(t, boom, err)
	_, err = repo.Create(ctx, item.Item{Title: "abc"})
	assert.Same(t, boom, err)
	assert.Same(t, boom, repo.Delete(ctx, "1"))
	assert.Same(t, boom, repo.Complete(ctx, "1"))
}
