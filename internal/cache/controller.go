// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/apex/log"

	"github.com/staranto/todoctl/internal/item"
	"github.com/staranto/todoctl/internal/usecase"
)

var (
	ErrNotFound   = errors.New("item not in collection")
	ErrExists     = errors.New("item already in collection")
	ErrSettled    = errors.New("mutation already settled")
	ErrSuperseded = errors.New("refresh superseded")
)

// Controller owns the cached collection and serializes every edit to it.
type Controller struct {
	uc    usecase.Set
	retry Retry

	mu      sync.Mutex
	coll    *Collection
	gen     uint64
	cancel  context.CancelFunc
	subs    map[int]func(Event)
	nextSub int
}

type Option func(*Controller)

// WithRetry replaces DefaultRetry.
func WithRetry(r Retry) Option {
	return func(c *Controller) { c.retry = r }
}

// WithItems seeds the collection.
func WithItems(items []item.Item) Option {
	return func(c *Controller) { c.coll.reset(items) }
}

func NewController(uc usecase.Set, opts ...Option) *Controller {
	c := &Controller{
		uc:    uc,
		retry: DefaultRetry,
		coll:  NewCollection(nil),
		subs:  map[int]func(Event){},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe registers fn for every event and returns a func that removes it.
// fn runs on the goroutine that made the change, after the controller's lock
// is released.
func (c *Controller) Subscribe(fn func(Event)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Controller) Items() []item.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.coll.Snapshot()
}

func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.coll.Len()
}

func (c *Controller) Find(id string) (item.Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.coll.Find(id)
}

// Seed replaces the collection without any remote call.
func (c *Controller) Seed(items []item.Item) {
	c.mu.Lock()
	c.coll.reset(items)
	notify := c.eventLocked(EventRefresh, nil, nil)
	c.mu.Unlock()
	notify()
}

// Refresh reloads the collection from the remote list. A refresh that is
// cancelled, or overtaken by a Begin or a newer refresh, leaves the
// collection alone and returns ErrSuperseded.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.cancelRefreshLocked()
	rctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	gen := c.gen
	c.mu.Unlock()
	defer cancel()

	items, err := c.uc.List.Execute(rctx)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		log.Debugf("refresh %d superseded", gen)
		return ErrSuperseded
	}
	c.cancel = nil
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("failed to refresh: %w", err)
	}
	c.coll.reset(items)
	notify := c.eventLocked(EventRefresh, nil, nil)
	c.mu.Unlock()

	notify()
	return nil
}

// CancelRefresh stops any in-flight refresh.
func (c *Controller) CancelRefresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelRefreshLocked()
}

func (c *Controller) cancelRefreshLocked() {
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// BeginCreate validates cand and appends the resulting placeholder. A
// validation failure leaves the collection untouched.
func (c *Controller) BeginCreate(cand item.Candidate) (*Mutation, error) {
	it, err := item.Validate(cand)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.coll.Index(it.ID) >= 0 {
		c.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", it.ID, ErrExists)
	}
	c.cancelRefreshLocked()
	c.coll.Append(it)
	m := &Mutation{Kind: KindCreate, ID: it.ID, Item: it}
	notify := c.eventLocked(EventBegin, m, nil)
	c.mu.Unlock()

	notify()
	return m, nil
}

// BeginDelete removes id, remembering where it was.
func (c *Controller) BeginDelete(id string) (*Mutation, error) {
	c.mu.Lock()
	if c.coll.Index(id) < 0 {
		c.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	c.cancelRefreshLocked()
	removed, pos, _ := c.coll.Remove(id)
	m := &Mutation{Kind: KindDelete, ID: id, Item: removed, pos: pos}
	notify := c.eventLocked(EventBegin, m, nil)
	c.mu.Unlock()

	notify()
	return m, nil
}

// BeginComplete marks id completed, remembering the previous flag.
func (c *Controller) BeginComplete(id string) (*Mutation, error) {
	c.mu.Lock()
	it, ok := c.coll.Find(id)
	if !ok {
		c.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	c.cancelRefreshLocked()
	m := &Mutation{Kind: KindComplete, ID: id, Item: it, prevCompleted: it.Completed}
	it.Completed = true
	c.coll.Replace(id, it)
	notify := c.eventLocked(EventBegin, m, nil)
	c.mu.Unlock()

	notify()
	return m, nil
}

// Commit settles m as successful. For a create the placeholder is replaced
// in place by result; if a refresh dropped the placeholder meanwhile, result
// is appended unless already present.
func (c *Controller) Commit(m *Mutation, result item.Item) error {
	c.mu.Lock()
	if m.settled {
		c.mu.Unlock()
		return fmt.Errorf("%s: %w", m, ErrSettled)
	}
	m.settled = true

	if m.Kind == KindCreate {
		m.Result = result
		if !c.coll.Replace(m.ID, result) && c.coll.Index(result.ID) < 0 {
			c.coll.Append(result)
		}
	}
	notify := c.eventLocked(EventCommit, m, nil)
	c.mu.Unlock()

	log.Debugf("commit %s", m)
	notify()
	return nil
}

// Abort settles m as failed and undoes its Begin.
func (c *Controller) Abort(m *Mutation, cause error) error {
	c.mu.Lock()
	if m.settled {
		c.mu.Unlock()
		return fmt.Errorf("%s: %w", m, ErrSettled)
	}
	m.settled = true
	m.Err = cause

	switch m.Kind {
	case KindCreate:
		c.coll.Remove(m.ID)
	case KindDelete:
		if c.coll.Index(m.ID) < 0 {
			c.coll.Insert(m.pos, m.Item)
		}
	case KindComplete:
		if it, ok := c.coll.Find(m.ID); ok {
			it.Completed = m.prevCompleted
			c.coll.Replace(m.ID, it)
		}
	}
	notify := c.eventLocked(EventAbort, m, cause)
	c.mu.Unlock()

	log.WithError(cause).Warnf("abort %s", m)
	notify()
	return nil
}

// Run performs m's remote call with retries and settles it. The returned
// error is the remote failure that caused the abort, if any.
func (c *Controller) Run(ctx context.Context, m *Mutation) error {
	var created item.Item
	err := c.retry.Do(ctx, m.String(), func(ctx context.Context) error {
		var err error
		switch m.Kind {
		case KindCreate:
			created, err = c.uc.Create.Send(ctx, m.Item)
		case KindDelete:
			err = c.uc.Delete.Execute(ctx, m.ID)
		case KindComplete:
			err = c.uc.Complete.Execute(ctx, m.ID)
		default:
			err = fmt.Errorf("unknown mutation kind %d", m.Kind)
		}
		return err
	})
	if err != nil {
		if aerr := c.Abort(m, err); aerr != nil {
			return aerr
		}
		return err
	}
	return c.Commit(m, created)
}

// Create begins and runs a create, returning the server's record.
func (c *Controller) Create(ctx context.Context, cand item.Candidate) (item.Item, error) {
	m, err := c.BeginCreate(cand)
	if err != nil {
		return item.Item{}, err
	}
	if err := c.Run(ctx, m); err != nil {
		return item.Item{}, err
	}
	return m.Result, nil
}

func (c *Controller) Delete(ctx context.Context, id string) error {
	m, err := c.BeginDelete(id)
	if err != nil {
		return err
	}
	return c.Run(ctx, m)
}

func (c *Controller) Complete(ctx context.Context, id string) error {
	m, err := c.BeginComplete(id)
	if err != nil {
		return err
	}
	return c.Run(ctx, m)
}

// eventLocked captures an event and the current subscribers. The returned
// func delivers it and must be called without c.mu held.
func (c *Controller) eventLocked(kind EventKind, m *Mutation, err error) func() {
	ev := Event{Kind: kind, Mutation: m, Items: c.coll.Snapshot(), Err: err}
	subs := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return func() {
		for _, fn := range subs {
			fn(ev)
		}
	}
}
