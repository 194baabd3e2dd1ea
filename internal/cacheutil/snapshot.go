// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/apex/log"

	"github.com/staranto/todoctl/internal/item"
)

const snapshotKind = "snapshots"

// Snapshot is the last settled collection seen for one API.
type Snapshot struct {
	BaseURL string      `json:"baseUrl"`
	SavedAt time.Time   `json:"savedAt"`
	Items   []item.Item `json:"items"`
}

// SaveSnapshot records items as the collection last seen at baseURL.
func (s *Store) SaveSnapshot(baseURL string, items []item.Item) error {
	if items == nil {
		items = []item.Item{}
	}
	b, err := json.Marshal(Snapshot{BaseURL: baseURL, SavedAt: time.Now().UTC(), Items: items})
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return s.Write(snapshotKind, baseURL, b)
}

// LoadSnapshot returns the snapshot for baseURL. An unreadable snapshot is
// treated as missing.
func (s *Store) LoadSnapshot(baseURL string) (*Snapshot, bool) {
	e, ok := s.Read(snapshotKind, baseURL)
	if !ok {
		return nil, false
	}
	var snap Snapshot
	if err := json.Unmarshal(e.Data, &snap); err != nil {
		log.WithError(err).Warnf("ignoring corrupt snapshot %s", e.Path)
		return nil, false
	}
	if snap.BaseURL != baseURL {
		return nil, false
	}
	return &snap, true
}
