// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package item defines the todo Item, the unvalidated Candidate it is built
// from, and the validator that turns one into the other.
package item
