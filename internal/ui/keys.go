// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add      key.Binding
	Complete key.Binding
	Delete   key.Binding
	Refresh  key.Binding
	Quit     key.Binding
	Submit   key.Binding
	Cancel   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Complete: key.NewBinding(key.WithKeys(" ", "c"), key.WithHelp("space/c", "complete")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit:   key.NewBinding(key.WithKeys("enter")),
		Cancel:   key.NewBinding(key.WithKeys("esc")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Add, k.Complete, k.Delete, k.Refresh}
}
