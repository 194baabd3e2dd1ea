// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache holds the in-memory todo collection and the controller that
// applies mutations to it optimistically.
//
// Every mutation goes through three phases. Begin edits the collection
// immediately and records what is needed to undo the edit. Run performs the
// remote call, retrying transport failures, and then settles the mutation
// with exactly one of Commit (reconcile with the server's answer) or Abort
// (roll the edit back). Observers registered with Subscribe see every phase.
package cache
