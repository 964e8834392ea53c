package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-cafe/internal/config"
	"github.com/vovakirdan/tui-cafe/internal/core"
	"github.com/vovakirdan/tui-cafe/internal/physics"
	"github.com/vovakirdan/tui-cafe/internal/registry"
	"github.com/vovakirdan/tui-cafe/internal/storage"
)

// Model is the Bubble Tea model for running a scene. Frames arrive at the
// render rate; the scene advances at the fixed physics timestep.
type Model struct {
	scene      registry.Scene
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	stepper    *physics.Stepper
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	state      core.SceneState
	lastTick   time.Time
	steps      uint64
	embedded   bool // running inside a session; back does not quit the program
	quitting   bool
	backToMenu bool
	scoreSaved bool // whether the score has been saved for the current game over
}

// NewModel creates a new Bubble Tea model for the given scene. store and
// logger may be nil.
func NewModel(scene registry.Scene, store *storage.Store, cfg core.RuntimeConfig, phys config.Physics, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	stepper := physics.NewStepper(phys.Timestep)
	stepper.MaxElapsed = phys.MaxFrame

	return Model{
		scene:      scene,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		stepper:    stepper,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init resets the scene and starts the frame loop.
func (m Model) Init() tea.Cmd {
	m.scene.Reset(m.config)
	m.logger.Debug("scene started", "scene", m.scene.ID(), "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey collects actions until the next step consumes them.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.backToMenu = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize changes the terminal size only. World units do not depend
// on it, so the scene keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick feeds the wall time since the previous frame to the stepper.
// Pending input goes to the first step of the frame only.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	var elapsed float64
	if !m.lastTick.IsZero() {
		elapsed = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now

	frame := m.inputFrame.Clone()
	ran := m.stepper.Advance(elapsed, func(float64) {
		res := m.scene.Step(frame)
		m.state = res.State
		frame.Clear()
	})
	if ran > 0 {
		m.steps += uint64(ran)
		m.inputFrame.Clear()
	}

	switch {
	case m.state.GameOver && !m.scoreSaved:
		m.saveScore()
		m.scoreSaved = true
	case !m.state.GameOver:
		m.scoreSaved = false
	}

	return m, tickCmd(m.config.TickRate)
}

func (m Model) saveScore() {
	if m.store == nil || m.state.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.scene.ID(), m.state.Score); err != nil {
		m.logger.Warn("could not save score", "scene", m.scene.ID(), "error", err)
		return
	}
	m.logger.Info("score saved", "scene", m.scene.ID(), "score", m.state.Score, "steps", m.steps)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.scene.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".cafe", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.scene.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.scene.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the scene state after the latest step.
func (m Model) State() core.SceneState {
	return m.state
}

// Steps returns the number of fixed steps run so far.
func (m Model) Steps() uint64 {
	return m.steps
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for one scene. Returns true if the
// user asked to go back to the menu rather than quit.
func Run(scene registry.Scene, store *storage.Store, cfg core.RuntimeConfig, phys config.Physics, logger *log.Logger) (backToMenu bool, err error) {
	p := tea.NewProgram(
		NewModel(scene, store, cfg, phys, logger),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
