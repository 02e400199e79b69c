package tui

import (
	"fmt"
	"math"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/barrage-tui/barrage/internal/config"
	"github.com/barrage-tui/barrage/internal/geom"
	"github.com/barrage-tui/barrage/internal/pattern"
	"github.com/barrage-tui/barrage/internal/screen"
	"github.com/barrage-tui/barrage/internal/sim"
	"github.com/barrage-tui/barrage/internal/storage"
)

// World-to-cell scale. Terminal cells are roughly twice as tall as wide,
// so the vertical scale is halved to keep rings round.
const (
	cellsPerUnitX = 0.15
	cellsPerUnitY = 0.075
)

// The aim target orbits the emitter so aimed patterns stay in motion.
const (
	targetOrbitRadius = 60.0
	targetOrbitSpeed  = 0.4 // radians per second
)

var (
	hudStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))
)

// PreviewerModel is the Bubble Tea model that plays a pattern in the
// terminal.
type PreviewerModel struct {
	name    string
	pattern pattern.Pattern
	cfg     config.PreviewConfig
	store   *storage.Store

	world *sim.World
	scr   *screen.Screen

	width  int
	height int

	paused    bool
	quitting  bool
	goingBack bool
	runSaved  bool
}

// NewPreviewerModel creates a previewer for the given pattern.
// store may be nil; when present, the session's stats are recorded on exit.
func NewPreviewerModel(name string, p pattern.Pattern, cfg config.PreviewConfig, store *storage.Store, width, height int) PreviewerModel {
	cfg.Normalize()

	m := PreviewerModel{
		name:    name,
		pattern: p,
		cfg:     cfg,
		store:   store,
		width:   width,
		height:  height,
	}
	m.scr = screen.New(width, m.fieldHeight())
	m.world = sim.NewWorld(p, geom.V(0, 0), m.worldBounds(), cfg.World.MaxLifetime)
	return m
}

// fieldHeight returns the playfield height, leaving a row for the HUD.
func (m PreviewerModel) fieldHeight() int {
	h := m.height
	if m.cfg.Render.ShowHUD {
		h--
	}
	if h < 3 {
		h = 3
	}
	return h
}

// worldBounds derives the cull region from the visible area plus margin.
func (m PreviewerModel) worldBounds() sim.Bounds {
	halfW := float64(m.width) / 2 / cellsPerUnitX
	halfH := float64(m.fieldHeight()) / 2 / cellsPerUnitY
	return sim.Bounds{
		Min: geom.V(-halfW, -halfH),
		Max: geom.V(halfW, halfH),
	}.Grow(m.cfg.World.Margin)
}

// Init starts the tick loop.
func (m PreviewerModel) Init() tea.Cmd {
	return tickCmd(m.cfg.Playback.TickRate)
}

// Update handles messages and advances the simulation.
func (m PreviewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scr.Resize(m.width, m.fieldHeight())
		m.world.SetBounds(m.worldBounds())
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// GoingBack reports whether the user left the previewer without quitting
// the whole program. Used by the session model.
func (m PreviewerModel) GoingBack() bool { return m.goingBack }

func (m PreviewerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.saveRun()
		m.quitting = true
		return m, tea.Quit

	case "esc", "b":
		m.saveRun()
		m.goingBack = true
		return m, tea.Quit

	case " ", "p":
		m.paused = !m.paused

	case "r":
		m.world.Reset()
		m.runSaved = false

	case "+", "=":
		m.cfg.Playback.TimeScale = math.Min(m.cfg.Playback.TimeScale*2, 8)

	case "-", "_":
		m.cfg.Playback.TimeScale = math.Max(m.cfg.Playback.TimeScale/2, 0.125)

	case "h":
		m.cfg.Render.ShowHUD = !m.cfg.Render.ShowHUD
		m.scr.Resize(m.width, m.fieldHeight())
		m.world.SetBounds(m.worldBounds())

	case "t":
		m.cfg.Render.ShowTrails = !m.cfg.Render.ShowTrails
	}

	return m, nil
}

func (m PreviewerModel) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		dt := m.cfg.Playback.TimeScale / float64(m.cfg.Playback.TickRate)

		angle := m.world.Elapsed() * targetOrbitSpeed
		m.world.SetTarget(geom.V(
			targetOrbitRadius*math.Cos(angle),
			targetOrbitRadius*math.Sin(angle),
		))

		m.world.Step(dt)
	}
	return m, tickCmd(m.cfg.Playback.TickRate)
}

// saveRun records the session stats once.
func (m *PreviewerModel) saveRun() {
	if m.store == nil || m.runSaved || m.name == "" {
		return
	}
	//nolint:errcheck // Best-effort save, exit continues regardless
	m.store.RecordRun(m.name, m.world.Elapsed(), m.world.Spawned())
	m.runSaved = true
}

// toCell maps a world position to a screen cell.
func (m PreviewerModel) toCell(p geom.Vec2) (int, int) {
	cx := float64(m.scr.Width()) / 2
	cy := float64(m.scr.Height()) / 2
	x := int(math.Round(cx + p.X*cellsPerUnitX))
	y := int(math.Round(cy - p.Y*cellsPerUnitY))
	return x, y
}

// glyphFor picks the bullet glyph by age so older bullets fade visually.
func (m PreviewerModel) glyphFor(age float64) rune {
	glyphs := []rune(m.cfg.Render.BulletGlyphs)
	if len(glyphs) == 0 {
		return '*'
	}
	idx := int(age * 2)
	if idx >= len(glyphs) {
		idx = len(glyphs) - 1
	}
	return glyphs[idx]
}

// render draws the world into the screen buffer.
func (m PreviewerModel) render() {
	if !m.cfg.Render.ShowTrails {
		m.scr.Clear()
	}

	for _, b := range m.world.Bullets() {
		x, y := m.toCell(b.Pos)
		m.scr.Set(x, y, m.glyphFor(b.Age))
	}

	// Emitter over bullets
	ex, ey := m.toCell(geom.V(0, 0))
	for _, r := range m.cfg.Render.EmitterGlyph {
		m.scr.Set(ex, ey, r)
		break
	}

	m.scr.DrawBorder()
}

// hud renders the status line.
func (m PreviewerModel) hud() string {
	status := fmt.Sprintf("%s  t=%.1fs  spawned %d  live %d  x%.2g",
		m.name, m.world.Elapsed(), m.world.Spawned(), m.world.Live(),
		m.cfg.Playback.TimeScale)
	line := hudStyle.Render(status)
	if m.paused {
		line += " " + pausedStyle.Render("PAUSED")
	}
	return line
}

// View renders the current frame.
func (m PreviewerModel) View() string {
	if m.quitting {
		return ""
	}

	m.render()
	field := fieldStyle.Render(m.scr.String())

	if !m.cfg.Render.ShowHUD {
		return field
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.hud(), field)
}

// RunPreview starts a standalone previewer program.
func RunPreview(name string, p pattern.Pattern, cfg config.PreviewConfig, store *storage.Store, width, height int) error {
	model := NewPreviewerModel(name, p, cfg, store, width, height)

	prog := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := prog.Run()
	return err
}
