// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package meta carries the per-invocation values every command can reach
// through its Metadata.
package meta

import (
	"context"

	"github.com/staranto/todoctl/internal/config"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	// StartingDir is the working directory at startup. export resolves
	// relative destinations against it.
	StartingDir string
}
