package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/barrage-tui/barrage/internal/prefab"
	"github.com/barrage-tui/barrage/internal/storage"
)

// BrowserKeyMap defines the key bindings for the prefab browser.
type BrowserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Select, k.Quit},
	}
}

// DefaultBrowserKeyMap returns default key bindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "preview"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BrowserModel is the Bubble Tea model listing registered prefabs.
type BrowserModel struct {
	prefabs []prefab.Info
	store   *storage.Store
	table   table.Model
	help    help.Model
	keys    BrowserKeyMap

	width  int
	height int

	selected string
	quitting bool
}

// NewBrowserModel creates the prefab browser.
// store may be nil; when present, run counts are shown per prefab.
func NewBrowserModel(store *storage.Store, width, height int) BrowserModel {
	m := BrowserModel{
		prefabs: prefab.List(),
		store:   store,
		keys:    DefaultBrowserKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	return m
}

// createTable creates the prefab table sized to the window.
func (m *BrowserModel) createTable() table.Model {
	descWidth := m.width - 44
	if descWidth < 16 {
		descWidth = 16
	}
	columns := []table.Column{
		{Title: "ID", Width: 16},
		{Title: "Title", Width: 18},
		{Title: "Description", Width: descWidth},
		{Title: "Runs", Width: 5},
	}

	height := m.height - 6
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	rows := make([]table.Row, len(m.prefabs))
	for i, info := range m.prefabs {
		rows[i] = table.Row{info.ID, info.Title, info.Description, m.runCount(info.ID)}
	}
	t.SetRows(rows)

	return t
}

// runCount formats the recorded run count for a prefab.
func (m *BrowserModel) runCount(id string) string {
	if m.store == nil {
		return "-"
	}
	stats, err := m.store.GetRunStats(id)
	if err != nil || stats.Runs == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", stats.Runs)
}

// Selected returns the chosen prefab ID, empty if none.
func (m BrowserModel) Selected() string { return m.selected }

// IsQuitting reports whether the user asked to leave.
func (m BrowserModel) IsQuitting() bool { return m.quitting }

// Init initializes the browser.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			row := m.table.SelectedRow()
			if row != nil {
				m.selected = row[0]
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m BrowserModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Render("PATTERNS")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.table.View(),
		m.help.View(m.keys),
	)
}
