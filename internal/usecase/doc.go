// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package usecase holds one type per user-facing operation. Each Execute
// wraps exactly one repository call; CreateItem validates its candidate
// first so a bad title never reaches the network.
package usecase
