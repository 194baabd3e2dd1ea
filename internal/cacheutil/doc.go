// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cacheutil keeps small files under the user's cache directory. Its
// main use is the per-API snapshot of the last settled collection, which
// seeds the terminal UI and is the baseline for diff.
package cacheutil
