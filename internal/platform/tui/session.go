package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/barrage-tui/barrage/internal/config"
	"github.com/barrage-tui/barrage/internal/prefab"
	"github.com/barrage-tui/barrage/internal/storage"
)

// SessionModel manages the workbench flow: browser -> previewer -> browser.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store  *storage.Store
	cfg    config.PreviewConfig
	width  int
	height int

	browser   BrowserModel
	previewer PreviewerModel
	inPreview bool
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg config.PreviewConfig, width, height int) SessionModel {
	return SessionModel{
		store:   store,
		cfg:     cfg,
		width:   width,
		height:  height,
		browser: NewBrowserModel(store, width, height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.browser.Init()
}

// Update routes messages to the active child model and handles
// transitions between them. Child quit signals are translated here: the
// session owns the program lifetime.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	if m.inPreview {
		return m.updatePreviewer(msg)
	}
	return m.updateBrowser(msg)
}

func (m SessionModel) updateBrowser(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.browser.Update(msg)
	if browser, ok := next.(BrowserModel); ok {
		m.browser = browser
	}

	if m.browser.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if id := m.browser.Selected(); id != "" {
		p, err := prefab.Build(id)
		if err != nil {
			// Unbuildable entry: stay in the browser.
			m.browser = NewBrowserModel(m.store, m.width, m.height)
			return m, nil
		}
		m.previewer = NewPreviewerModel(id, p, m.cfg, m.store, m.width, m.height)
		m.inPreview = true
		return m, m.previewer.Init()
	}

	return m, cmd
}

func (m SessionModel) updatePreviewer(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.previewer.Update(msg)
	if previewer, ok := next.(PreviewerModel); ok {
		m.previewer = previewer
	}

	if m.previewer.GoingBack() {
		m.inPreview = false
		m.browser = NewBrowserModel(m.store, m.width, m.height)
		return m, m.browser.Init()
	}

	return m, cmd
}

// View renders the active child.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inPreview {
		return m.previewer.View()
	}
	return m.browser.View()
}
