// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package attrs parses the --attrs flag into the ordered list of item keys
// to show, rename, hide or transform.
package attrs
