// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/staranto/todoctl/internal/app"
	"github.com/staranto/todoctl/internal/cache"
	"github.com/staranto/todoctl/internal/item"
)

// listItem adapts item.Item to bubbles/list.Item.
type listItem struct {
	it item.Item
}

func (i listItem) Title() string       { return i.it.Title }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.it.Title }

// itemDelegate renders one item per line.
type itemDelegate struct {
	styles styles
}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	row, ok := li.(listItem)
	if !ok {
		return
	}
	it := row.it

	box := d.styles.muted.Render(boxUnchecked)
	text := it.Title
	if it.Completed {
		box = d.styles.success.Render(boxChecked)
		text = d.styles.done.Render(text)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = d.styles.selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s %s\n", prefix, box, text, d.styles.muted.Render("#"+it.ID))
}

// Messages produced by the async commands.
type (
	settledMsg struct {
		mutation *cache.Mutation
		err      error
	}
	refreshedMsg struct {
		err error
	}
)

// Model is the Bubble Tea model for the todo list.
type Model struct {
	ctx    context.Context
	app    *app.App
	keys   keyMap
	styles styles

	list   list.Model
	input  textinput.Model
	adding bool
	addErr string

	status    string
	statusErr bool
	inflight  int
	loading   bool
	width     int
	height    int
}

// Option customizes a Model.
type Option func(*Model)

// WithColor turns styling on or off.
func WithColor(color bool) Option {
	return func(m *Model) { m.styles = newStyles(color) }
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(m *Model) { m.width, m.height = width, height }
}

// NewModel returns a Model showing a's controller.
func NewModel(ctx context.Context, a *app.App, opts ...Option) Model {
	m := Model{
		ctx:    ctx,
		app:    a,
		keys:   newKeyMap(),
		styles: newStyles(true),
		width:  80,
		height: 24,
	}
	for _, opt := range opts {
		opt(&m)
	}

	l := list.New(nil, itemDelegate{styles: m.styles}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = m.styles.title
	l.Styles.HelpStyle = m.styles.help
	l.Styles.PaginationStyle = m.styles.help
	l.FilterInput.Prompt = "/ "
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = m.keys.help
	l.AdditionalFullHelpKeys = m.keys.help
	m.list = l

	m.input = textinput.New()
	m.input.Prompt = "> "
	m.input.Placeholder = "New item title..."
	m.input.CharLimit = item.MaxTitleLen * 4 //nolint:mnd

	m.resize()
	m.sync()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case settledMsg:
		m.inflight--
		if msg.err != nil {
			m.setError(fmt.Errorf("%s %s failed: %w", msg.mutation.Kind, msg.mutation.ID, msg.err))
		} else {
			m.setStatus(settledText(msg.mutation))
		}
		cmd := m.sync()
		return m, cmd

	case refreshedMsg:
		m.loading = false
		switch {
		case errors.Is(msg.err, cache.ErrSuperseded):
			log.Debug("refresh superseded by an edit")
		case msg.err != nil:
			m.setError(msg.err)
		default:
			m.setStatus(fmt.Sprintf("loaded %d items", m.app.Controller.Len()))
		}
		cmd := m.sync()
		return m, cmd

	case tea.KeyMsg:
		if m.adding {
			return m.updateForm(msg)
		}
		if m.list.FilterState() != list.Filtering {
			if next, cmd, handled := m.handleKey(msg); handled {
				return next, cmd
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.updateKeys()
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.app.Controller.CancelRefresh()
		return m, tea.Quit, true

	case key.Matches(msg, m.keys.Add):
		m.adding = true
		m.addErr = ""
		m.input.SetValue("")
		m.resize()
		cmd := m.input.Focus()
		return m, cmd, true

	case key.Matches(msg, m.keys.Complete):
		sel, ok := m.selected()
		if !ok || sel.Completed {
			return m, nil, true
		}
		mu, err := m.app.Controller.BeginComplete(sel.ID)
		return m.started(mu, err)

	case key.Matches(msg, m.keys.Delete):
		sel, ok := m.selected()
		if !ok {
			return m, nil, true
		}
		mu, err := m.app.Controller.BeginDelete(sel.ID)
		return m.started(mu, err)

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.refresh()
		return m, cmd, true
	}
	return m, nil, false
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeForm()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		cand := item.New(strings.TrimSpace(m.input.Value()))
		mu, err := m.app.Controller.BeginCreate(cand)
		if err != nil {
			// Stay in the form so the title can be fixed.
			m.addErr = err.Error()
			return m, nil
		}
		m.closeForm()
		next, cmd, _ := m.started(mu, nil)
		return next, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// started shows the optimistic state of a begun mutation and returns the
// command that runs it.
func (m Model) started(mu *cache.Mutation, err error) (tea.Model, tea.Cmd, bool) {
	if err != nil {
		m.setError(err)
		return m, nil, true
	}
	m.inflight++
	m.status = ""
	cmd := tea.Batch(m.sync(), m.run(mu))
	return m, cmd, true
}

func (m Model) run(mu *cache.Mutation) tea.Cmd {
	ctx, ctrl := m.ctx, m.app.Controller
	return func() tea.Msg {
		return settledMsg{mutation: mu, err: ctrl.Run(ctx, mu)}
	}
}

func (m *Model) refresh() tea.Cmd {
	m.loading = true
	ctx, a := m.ctx, m.app
	return func() tea.Msg {
		return refreshedMsg{err: a.Load(ctx)}
	}
}

func (m *Model) closeForm() {
	m.adding = false
	m.addErr = ""
	m.input.SetValue("")
	m.input.Blur()
	m.resize()
}

// sync copies the controller's collection into the list.
func (m *Model) sync() tea.Cmd {
	items := m.app.Controller.Items()
	lis := make([]list.Item, 0, len(items))
	done := 0
	for _, it := range items {
		lis = append(lis, listItem{it})
		if it.Completed {
			done++
		}
	}

	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		m.styles.title.Render("Todos"),
		m.styles.success.Render("✔"), done,
		m.styles.pending.Render("•"), len(items)-done,
		m.styles.accent.Render("Total"), len(items),
	)
	cmd := m.list.SetItems(lis)
	m.updateKeys()
	return cmd
}

// updateKeys disables complete on items that are already completed.
func (m *Model) updateKeys() {
	sel, ok := m.selected()
	m.keys.Complete.SetEnabled(ok && !sel.Completed)
	m.keys.Delete.SetEnabled(ok)
}

func (m Model) selected() (item.Item, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return item.Item{}, false
	}
	return li.it, true
}

func (m *Model) resize() {
	h := m.height - 4 //nolint:mnd
	if m.adding {
		h -= 4 //nolint:mnd
	}
	m.list.SetSize(m.width-4, max(h, 1)) //nolint:mnd
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(err error) {
	m.status, m.statusErr = err.Error(), true
}

func settledText(mu *cache.Mutation) string {
	switch mu.Kind {
	case cache.KindCreate:
		return fmt.Sprintf("created %s %q", mu.Result.ID, mu.Result.Title)
	case cache.KindDelete:
		return "deleted " + mu.ID
	case cache.KindComplete:
		return "completed " + mu.ID
	}
	return mu.String()
}

func (m Model) View() string {
	content := m.list.View()

	if m.adding {
		title := "Add new item"
		if m.addErr != "" {
			title += "  " + m.styles.err.Render(m.addErr)
		}
		content += "\n" + m.styles.form.Render(title+"\n"+m.input.View())
	}

	var status []string
	if m.loading {
		status = append(status, m.styles.muted.Render("refreshing..."))
	}
	if m.inflight > 0 {
		status = append(status, m.styles.pending.Render(fmt.Sprintf("%d syncing", m.inflight)))
	}
	if m.status != "" {
		style := m.styles.success
		if m.statusErr {
			style = m.styles.err
		}
		status = append(status, style.Render(m.status))
	}
	if len(status) > 0 {
		content += "\n" + strings.Join(status, "  ")
	}

	return m.styles.panel.Render(lipgloss.NewStyle().MaxWidth(m.width - 2).Render(content))
}

// Status is the current status line text and whether it reports an error.
func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}
