// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package app is the composition root. New builds every layer explicitly,
// from the remote source up to the cache controller, and hands the result to
// the commands and the terminal UI.
package app

import (
	"context"
	"net/http"

	"github.com/apex/log"

	"github.com/staranto/todoctl/internal/backend/remote"
	"github.com/staranto/todoctl/internal/cache"
	"github.com/staranto/todoctl/internal/cacheutil"
	"github.com/staranto/todoctl/internal/item"
	"github.com/staranto/todoctl/internal/repository"
	"github.com/staranto/todoctl/internal/usecase"
)

// Settings are the inputs New needs. Zero values select defaults.
type Settings struct {
	BaseURL    string
	Token      string
	Limit      int
	HTTPClient *http.Client
	// Retry defaults to cache.DefaultRetry when nil.
	Retry *cache.Retry
	// Snapshots, when set, receives the collection after every refresh and
	// settled mutation.
	Snapshots *cacheutil.Store
}

type App struct {
	Settings   Settings
	Source     *remote.BackendRemote
	Repository *repository.Repository
	UseCases   usecase.Set
	Controller *cache.Controller
}

func New(cfg Settings) (*App, error) {
	limit := cfg.Limit
	if limit == 0 {
		limit = remote.DefaultLimit
	}

	src, err := remote.NewBackendRemote(
		remote.WithBaseURL(cfg.BaseURL),
		remote.WithHTTPClient(cfg.HTTPClient),
		remote.WithLimit(limit),
		remote.WithToken(cfg.Token),
	)
	if err != nil {
		return nil, err
	}

	retry := cache.DefaultRetry
	if cfg.Retry != nil {
		retry = *cfg.Retry
	}

	repo := repository.New(src)
	uc := usecase.NewSet(repo)
	a := &App{
		Settings:   cfg,
		Source:     src,
		Repository: repo,
		UseCases:   uc,
		Controller: cache.NewController(uc, cache.WithRetry(retry)),
	}

	if cfg.Snapshots != nil {
		a.Controller.Subscribe(func(ev cache.Event) {
			if ev.Kind == cache.EventCommit || ev.Kind == cache.EventAbort {
				a.save(ev.Items)
			}
		})
	}

	log.Debugf("app: %v", repo)
	return a, nil
}

// BaseURL is the API root actually in use.
func (a *App) BaseURL() string {
	return a.Source.BaseURL
}

// Load refreshes the controller from the remote list and saves a snapshot.
func (a *App) Load(ctx context.Context) error {
	if err := a.Controller.Refresh(ctx); err != nil {
		return err
	}
	a.save(a.Controller.Items())
	return nil
}

// Seed fills the controller from the saved snapshot, if any, and reports
// whether it did.
func (a *App) Seed() bool {
	snap, ok := a.Snapshot()
	if !ok {
		return false
	}
	a.Controller.Seed(snap.Items)
	return true
}

// Snapshot returns the saved snapshot for this API.
func (a *App) Snapshot() (*cacheutil.Snapshot, bool) {
	if a.Settings.Snapshots == nil {
		return nil, false
	}
	return a.Settings.Snapshots.LoadSnapshot(a.BaseURL())
}

func (a *App) save(items []item.Item) {
	if a.Settings.Snapshots == nil {
		return
	}
	if err := a.Settings.Snapshots.SaveSnapshot(a.BaseURL(), items); err != nil {
		log.WithError(err).Warn("failed to save snapshot")
	}
}
