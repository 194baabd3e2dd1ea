// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package ui

import (
	"context"
	"errors"
	"os"

	"github.com/apex/log"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/staranto/todoctl/internal/app"
)

var ErrNotTerminal = errors.New("tui needs an interactive terminal")

// Run shows the list until the user quits. The saved snapshot, if any, is
// shown while the first refresh is in flight.
func Run(ctx context.Context, a *app.App, opts ...Option) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}
	if w, h, err := term.GetSize(fd); err == nil {
		opts = append([]Option{WithSize(w, h)}, opts...)
	}

	if a.Seed() {
		log.Debugf("seeded %d items from snapshot", a.Controller.Len())
	}

	p := tea.NewProgram(NewModel(ctx, a, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
