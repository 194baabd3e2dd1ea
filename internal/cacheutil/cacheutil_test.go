// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/todoctl/internal/item"
)

func TestDirAndEnabled(t *testing.T) {
	tests := []struct {
		name        string
		cache       string
		dir         string
		wantEnabled bool
	}{
		{name: "default", cache: "", wantEnabled: true},
		{name: "disabled with 0", cache: "0", wantEnabled: false},
		{name: "disabled with false", cache: "false", wantEnabled: false},
		{name: "explicit dir", cache: "1", dir: "/tmp/todoctl-test", wantEnabled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TODOCTL_CACHE", tt.cache)
			t.Setenv("TODOCTL_CACHE_DIR", tt.dir)

			assert.Equal(t, tt.wantEnabled, Enabled())
			s, ok := Default()
			assert.Equal(t, tt.wantEnabled, ok)
			if tt.dir != "" {
				require.NotNil(t, s)
				assert.Equal(t, tt.dir, s.Base)
			}
		})
	}
}

func TestEnsureBaseDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "cache")
	t.Setenv("TODOCTL_CACHE", "")
	t.Setenv("TODOCTL_CACHE_DIR", base)

	got, ok, err := EnsureBaseDir()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, base, got)
	assert.DirExists(t, base)
}

func TestStore_ReadWrite(t *testing.T) {
	s := &Store{Base: t.TempDir()}

	_, ok := s.Read("things", "key")
	assert.False(t, ok)

	require.NoError(t, s.Write("things", "key", []byte(" data \n")))
	e, ok := s.Read("things", "key")
	require.True(t, ok)
	assert.Equal(t, "data", string(e.Data))
	assert.Equal(t, "key", e.Key)
	assert.Equal(t, encodeKey("key"), filepath.Base(e.Path))
}

func TestStore_Purge(t *testing.T) {
	s := &Store{Base: t.TempDir()}
	require.NoError(t, s.Write("k", "old", []byte("1")))
	require.NoError(t, s.Write("k", "new", []byte("2")))

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(s.Path("k", "old"), old, old))

	n, err := s.Purge(0)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.Purge(24)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, ok := s.Read("k", "old")
	assert.False(t, ok)
	_, ok = s.Read("k", "new")
	assert.True(t, ok)
}

func TestSnapshot(t *testing.T) {
	s := &Store{Base: t.TempDir()}
	const url = "https://jsonplaceholder.typicode.com"
	items := []item.Item{{ID: "1", Title: "buy milk"}, {ID: "2", Title: "walk dog", Completed: true}}

	_, ok := s.LoadSnapshot(url)
	assert.False(t, ok)

	require.NoError(t, s.SaveSnapshot(url, items))
	snap, ok := s.LoadSnapshot(url)
	require.True(t, ok)
	assert.Equal(t, url, snap.BaseURL)
	assert.Equal(t, items, snap.Items)
	assert.WithinDuration(t, time.Now(), snap.SavedAt, time.Minute)

	_, ok = s.LoadSnapshot("http://localhost:8080")
	assert.False(t, ok, "snapshots are kept per base URL")

	require.NoError(t, s.SaveSnapshot(url, nil))
	snap, ok = s.LoadSnapshot(url)
	require.True(t, ok)
	assert.Empty(t, snap.Items)
}

func TestSnapshot_Corrupt(t *testing.T) {
	s := &Store{Base: t.TempDir()}
	require.NoError(t, s.Write(snapshotKind, "u", []byte("{not json")))

	_, ok := s.LoadSnapshot("u")
	assert.False(t, ok)
}
