// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package ui is the interactive todo list. Edits are applied to the cache
// controller as soon as a key is pressed and the remote call runs as a
// Bubble Tea command, so the list never waits on the network.
package ui
