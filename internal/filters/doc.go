// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package filters implements --filter: key, operator and target triples
// matched against each item row.
package filters
