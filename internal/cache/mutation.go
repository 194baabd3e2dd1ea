// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package cache

import (
	"fmt"

	"github.com/staranto/todoctl/internal/item"
)

type Kind int

const (
	KindCreate Kind = iota
	KindDelete
	KindComplete
)

func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "create"
	case KindDelete:
		return "delete"
	case KindComplete:
		return "complete"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Mutation is one optimistic edit. It is created by a Begin call and settled
// by exactly one Commit or Abort.
type Mutation struct {
	Kind Kind
	// ID is the item the mutation targets. For a create it is the
	// placeholder's ID.
	ID string
	// Item is the placeholder for a create and the removed item for a
	// delete.
	Item item.Item
	// Result is the server's record once a create commits.
	Result item.Item
	// Err is the cause of an abort.
	Err error

	pos           int
	prevCompleted bool
	settled       bool
}

func (m *Mutation) String() string {
	return fmt.Sprintf("%s %s", m.Kind, m.ID)
}

// Settled reports whether Commit or Abort has run.
func (m *Mutation) Settled() bool { return m.settled }

type EventKind int

const (
	EventBegin EventKind = iota
	EventCommit
	EventAbort
	EventRefresh
)

func (k EventKind) String() string {
	return [...]string{"begin", "commit", "abort", "refresh"}[k]
}

// Event is delivered to subscribers after each change to the collection.
// Items is a copy taken when the change was made. Mutation is nil for
// refreshes.
type Event struct {
	Kind     EventKind
	Mutation *Mutation
	Items    []item.Item
	Err      error
}
