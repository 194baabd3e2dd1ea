// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"
)

// Entry represents a cached artifact on disk.
// Key is the clear-text key; EncodedKey is the hashed filename.
type Entry struct {
	Key        string
	EncodedKey string
	Path       string
	Data       []byte
	ModTime    time.Time
}

// Store is a directory of md5-named files grouped by kind.
type Store struct {
	Base string
}

// Dir resolves the base cache directory.
// Precedence:
//  1. TODOCTL_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/todoctl
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("TODOCTL_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "todoctl"), true
	}
	return "", false
}

// Enabled returns true unless TODOCTL_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("TODOCTL_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// Default returns the Store at Dir, or false when caching is disabled.
func Default() (*Store, bool) {
	if !Enabled() {
		return nil, false
	}
	base, ok := Dir()
	if !ok {
		return nil, false
	}
	return &Store{Base: base}, true
}

// EnsureBaseDir creates the base cache directory if caching is enabled and
// a base path can be resolved. Returns the path, whether it is usable, and an
// error if creation failed.
func EnsureBaseDir() (string, bool, error) {
	s, ok := Default()
	if !ok {
		return "", false, nil
	}
	if err := os.MkdirAll(s.Base, 0o755); err != nil { //nolint:mnd
		return s.Base, false, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	return s.Base, true, nil
}

// Path returns where the entry for kind and clearKey lives.
func (s *Store) Path(kind, clearKey string) string {
	return filepath.Join(s.Base, kind, encodeKey(clearKey))
}

func (s *Store) Read(kind, clearKey string) (*Entry, bool) {
	p := s.Path(kind, clearKey)
	fi, err := os.Stat(p)
	if err != nil || fi.IsDir() {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		log.WithError(err).Warnf("failed to read cache file %s", p)
		return nil, false
	}
	return &Entry{
		Key:        clearKey,
		EncodedKey: encodeKey(clearKey),
		Path:       p,
		Data:       bytes.TrimSpace(b),
		ModTime:    fi.ModTime(),
	}, true
}

// Write stores data for the given key beneath kind. Creates directories as
// needed.
func (s *Store) Write(kind, clearKey string, data []byte) error {
	p := s.Path(kind, clearKey)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(p, data, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("wrote cache file %s for %s", p, clearKey)
	return nil
}

// Purge removes files older than the provided number of hours and returns
// how many were removed. If hours <= 0 it is a no-op.
func (s *Store) Purge(hours int) (int, error) {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return 0, nil
	}
	maxAge := time.Duration(hours) * time.Hour
	removed := 0
	err := filepath.Walk(s.Base, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || time.Since(info.ModTime()) <= maxAge {
			return nil
		}
		if err := os.Remove(path); err != nil {
			log.WithError(err).Warnf("failed to remove cache file %s", path)
			return nil
		}
		log.Debugf("removed cache file %s", path)
		removed++
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("failed to purge cache: %w", err)
	}
	return removed, nil
}

// encodeKey hashes k with MD5 and returns the hex string.
func encodeKey(k string) string {
	h := md5.New()
	_, _ = h.Write([]byte(k))
	return hex.EncodeToString(h.Sum(nil))
}
