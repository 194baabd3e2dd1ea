// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package cache

import (
	"github.com/staranto/todoctl/internal/item"
)

// Collection is an ordered list of items keyed by ID. It is not safe for
// concurrent use; the Controller guards its own Collection.
type Collection struct {
	items []item.Item
}

// NewCollection returns a Collection holding a copy of items.
func NewCollection(items []item.Item) *Collection {
	c := &Collection{}
	c.reset(items)
	return c
}

func (c *Collection) reset(items []item.Item) {
	c.items = append(make([]item.Item, 0, len(items)), items...)
}

// Items returns a copy of the collection in order.
func (c *Collection) Items() []item.Item {
	return append([]item.Item(nil), c.items...)
}

// Snapshot is Items, never nil.
func (c *Collection) Snapshot() []item.Item {
	return append(make([]item.Item, 0, len(c.items)), c.items...)
}

func (c *Collection) Len() int { return len(c.items) }

// Index returns the position of id, or -1.
func (c *Collection) Index(id string) int {
	for i, it := range c.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (c *Collection) Find(id string) (item.Item, bool) {
	if i := c.Index(id); i >= 0 {
		return c.items[i], true
	}
	return item.Item{}, false
}

// Insert places it at pos. Positions past either end are clamped.
func (c *Collection) Insert(pos int, it item.Item) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(c.items) {
		pos = len(c.items)
	}
	c.items = append(c.items, item.Item{})
	copy(c.items[pos+1:], c.items[pos:])
	c.items[pos] = it
}

func (c *Collection) Append(it item.Item) {
	c.items = append(c.items, it)
}

// Replace swaps the item keyed by id for it, keeping its position.
func (c *Collection) Replace(id string, it item.Item) bool {
	i := c.Index(id)
	if i < 0 {
		return false
	}
	c.items[i] = it
	return true
}

// Remove deletes id and reports the removed item and where it was.
func (c *Collection) Remove(id string) (item.Item, int, bool) {
	i := c.Index(id)
	if i < 0 {
		return item.Item{}, -1, false
	}
	it := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	return it, i, true
}
