// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package usecase

import (
	"context"

	"github.com/apex/log"

	"github.com/staranto/todoctl/internal/item"
)

// Repository is the subset of repository.Repository the use cases need.
type Repository interface {
	List(ctx context.Context) ([]item.Item, error)
	Get(ctx context.Context, id string) (*item.Item, error)
	Create(ctx context.Context, it item.Item) (item.Item, error)
	Delete(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
}

type ListItems struct{ repo Repository }

func (uc ListItems) Execute(ctx context.Context) ([]item.Item, error) {
	return uc.repo.List(ctx)
}

type GetItem struct{ repo Repository }

// Execute returns nil and no error when id does not exist.
func (uc GetItem) Execute(ctx context.Context, id string) (*item.Item, error) {
	return uc.repo.Get(ctx, id)
}

type CreateItem struct{ repo Repository }

// Execute validates c and sends the resulting item. A *item.ValidationError
// is returned without any remote call.
func (uc CreateItem) Execute(ctx context.Context, c item.Candidate) (item.Item, error) {
	it, err := item.Validate(c)
	if err != nil {
		return item.Item{}, err
	}
	return uc.Send(ctx, it)
}

// Send creates an already validated item.
func (uc CreateItem) Send(ctx context.Context, it item.Item) (item.Item, error) {
	log.Debugf("CreateItem: %+v", it)
	return uc.repo.Create(ctx, it)
}

type DeleteItem struct{ repo Repository }

func (uc DeleteItem) Execute(ctx context.Context, id string) error {
	log.Debugf("DeleteItem: %s", id)
	return uc.repo.Delete(ctx, id)
}

type CompleteItem struct{ repo Repository }

func (uc CompleteItem) Execute(ctx context.Context, id string) error {
	log.Debugf("CompleteItem: %s", id)
	return uc.repo.Complete(ctx, id)
}

// Set bundles the use cases built over one repository.
type Set struct {
	List     ListItems
	Get      GetItem
	Create   CreateItem
	Delete   DeleteItem
	Complete CompleteItem
}

func NewSet(repo Repository) Set {
	return Set{
		List:     ListItems{repo: repo},
		Get:      GetItem{repo: repo},
		Create:   CreateItem{repo: repo},
		Delete:   DeleteItem{repo: repo},
		Complete: CompleteItem{repo: repo},
	}
}
