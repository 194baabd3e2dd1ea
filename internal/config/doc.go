// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package config loads todoctl.yaml or todoctl.toml and exposes dotted-key
// getters with optional defaults and a command namespace.
package config
