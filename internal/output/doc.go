// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output sorts and renders item rows as a text table, JSON, YAML or
// the raw API document.
package output
