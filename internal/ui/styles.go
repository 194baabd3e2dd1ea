// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package ui

import "github.com/charmbracelet/lipgloss"

const (
	boxChecked   = "☑"
	boxUnchecked = "☐"
)

type styles struct {
	title    lipgloss.Style
	success  lipgloss.Style
	pending  lipgloss.Style
	accent   lipgloss.Style
	muted    lipgloss.Style
	err      lipgloss.Style
	selected lipgloss.Style
	done     lipgloss.Style
	help     lipgloss.Style
	panel    lipgloss.Style
	form     lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{
			title: plain, success: plain, pending: plain, accent: plain,
			muted: plain, err: plain, selected: plain, done: plain, help: plain,
			panel: plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
			form:  plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
		}
	}
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		muted:    lipgloss.NewStyle().Faint(true),
		err:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
		help:     lipgloss.NewStyle().Faint(true),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1),
		form: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1),
	}
}
