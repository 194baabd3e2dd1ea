// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package mockapi serves an in-memory, jsonplaceholder-compatible todo API
// for offline use and tests. Failures can be injected to exercise rollback.
package mockapi
