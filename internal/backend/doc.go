// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

// Package backend declares the Source contract for the authoritative todo
// collection. The remote subpackage implements it over HTTP.
package backend
