// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
// no-cloc

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/staranto/todoctl/internal/item"
)

func ids(items []item.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestCollection(t *testing.T) {
	c := NewCollection([]item.Item{{ID: "1"}, {ID: "2"}, {ID: "3"}})

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 1, c.Index("2"))
	assert.Equal(t, -1, c.Index("9"))

	removed, pos, ok := c.Remove("2")
	assert.True(t, ok)
	assert.Equal(t, "2", removed.ID)
	assert.Equal(t, 1, pos)
	assert.Equal(t, []string{"1", "3"}, ids(c.Items()))

	_, _, ok = c.Remove("2")
	assert.False(t, ok)

	c.Insert(pos, removed)
	assert.Equal(t, []string{"1", "2", "3"}, ids(c.Items()))

	assert.True(t, c.Replace("3", item.Item{ID: "30", Title: "new"}))
	assert.False(t, c.Replace("3", item.Item{ID: "x"}))
	it, ok := c.Find("30")
	assert.True(t, ok)
	assert.Equal(t, "new", it.Title)
	assert.Equal(t, []string{"1", "2", "30"}, ids(c.Items()))
}

func TestCollection_InsertClamps(t *testing.T) {
	tests := []struct {
		name string
		pos  int
		want []string
	}{
		{"negative", -5, []string{"x", "1", "2"}},
		{"middle", 1, []string{"1", "x", "2"}},
		{"end", 2, []string{"1", "2", "x"}},
		{"past end", 10, []string{"1", "2", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollection([]item.Item{{ID: "1"}, {ID: "2"}})
			c.Insert(tt.pos, item.Item{ID: "x"})
			assert.Equal(t, tt.want, ids(c.Items()))
		})
	}
}

func TestCollection_CopiesAreIndependent(t *testing.T) {
	src := []item.Item{{ID: "1", Title: "buy milk"}}
	c := NewCollection(src)
	src[0].Title = "changed"

	got := c.Items()
	got[0].Title = "also changed"

	it, _ := c.Find("1")
	assert.Equal(t, "buy milk", it.Title)

	assert.Nil(t, NewCollection(nil).Items())
	assert.NotNil(t, NewCollection(nil).Snapshot())
}
