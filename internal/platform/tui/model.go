package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dots/internal/games/dots/core"
	"github.com/vovakirdan/tui-dots/internal/match"
	"github.com/vovakirdan/tui-dots/internal/storage"
)

// AppConfig holds everything a terminal session needs.
type AppConfig struct {
	Rules    core.Rules
	Store    *storage.Store  // Optional, can be nil
	Logger   *log.Logger     // Optional, can be nil
	Registry *match.Registry // Optional, tracks live games
	Seed     uint64          // 0 picks a clock seed per game
	Theme    Theme
	Width    int
	Height   int
	Start    *MenuItem // skip the menu and start this mode
}

var reasonText = map[core.Reason]string{
	core.ReasonNotAdjacent:     "dots must touch",
	core.ReasonColorMismatch:   "colors don't match",
	core.ReasonDuplicate:       "dot already in path",
	core.ReasonBudgetExhausted: "no moves left",
	core.ReasonPaused:          "paused",
	core.ReasonNotPlaying:      "not now",
	core.ReasonEmptyInventory:  "none left",
	core.ReasonOutOfBounds:     "off the board",
	core.ReasonTooShort:        "connect at least two dots",
}

// GameModel plays one mode through a match.Runner. Keys become events
// on the runner's queue; the view renders the last published snapshot.
type GameModel struct {
	runner   *match.Runner
	sub      *match.Subscriber
	cancel   context.CancelFunc
	registry *match.Registry

	item       MenuItem
	snap       core.Snapshot
	cursor     core.Pos
	selecting  bool
	pending    int // select events sent but not yet echoed
	cancelling bool
	status     string

	theme      Theme
	keys       GameKeyMap
	help       help.Model
	width      int
	height     int
	quitting   bool
	backToMenu bool
}

// NewGameModel starts a runner for item and subscribes to it.
func NewGameModel(cfg AppConfig, item MenuItem, sessionID match.SessionID) GameModel {
	var src core.Source
	if cfg.Seed != 0 {
		src = core.NewXorshift(cfg.Seed)
	}
	rc := match.RunnerConfig{Rules: cfg.Rules, Source: src, Logger: cfg.Logger}
	if cfg.Store != nil {
		rc.Saver = cfg.Store
		rc.Scores = cfg.Store
	}
	runner := match.NewRunner(rc)

	sub := match.NewSubscriber(sessionID, 0)
	runner.Subscribe(sub)
	if cfg.Registry != nil {
		cfg.Registry.Register(sessionID, runner)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go runner.Run(ctx) //nolint:errcheck // ends with ctx.Err() when the model stops
	runner.Send(core.StartMode{Mode: item.Mode, Rule: item.Rule})

	h := help.New()
	h.Width = cfg.Width

	return GameModel{
		runner:   runner,
		sub:      sub,
		cancel:   cancel,
		registry: cfg.Registry,
		item:     item,
		theme:    cfg.Theme,
		keys:     DefaultGameKeyMap(),
		help:     h,
		width:    cfg.Width,
		height:   cfg.Height,
	}
}

// Init waits for the first update.
func (m GameModel) Init() tea.Cmd {
	return waitForUpdate(m.sub)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case UpdateMsg:
		if msg.MatchID != m.runner.ID() {
			// Read from an earlier game's subscriber; our own wait is still pending.
			return m, nil
		}
		m.applyUpdate(match.Update(msg))
		return m, waitForUpdate(m.sub)

	case runnerStoppedMsg:
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *GameModel) applyUpdate(u match.Update) {
	m.snap = u.Snapshot
	if m.cursor.Row >= m.snap.Size || m.cursor.Col >= m.snap.Size {
		m.cursor = core.P(m.snap.Size/2, m.snap.Size/2)
	}

	switch u.Event {
	case "select_start", "select_extend", "select_end":
		if m.pending > 0 {
			m.pending--
		}
	}
	switch {
	case u.Event == "select_start" && u.Effect.Accepted():
		m.selecting = true
	case m.pending == 0:
		m.selecting = len(m.snap.Selection) > 0
	}

	switch {
	case u.Event == "tick" || u.Event == "subscribe":
	case u.Event == "select_end" && m.cancelling:
		m.cancelling = false
		m.status = ""
	case !u.Effect.Accepted():
		m.status = reasonText[u.Effect.Reason]
	case u.Effect.Match != nil:
		res := u.Effect.Match
		m.status = fmt.Sprintf("+%d", res.Points)
		if res.Kind != core.MatchPlain {
			m.status += fmt.Sprintf(" %s x%d", res.Kind, res.Multiplier)
		}
	case u.Event != "select_extend" && u.Event != "select_start":
		m.status = ""
	}
	if u.Effect.BotPoints > 0 {
		m.status = strings.TrimSpace(fmt.Sprintf("%s  bot +%d", m.status, u.Effect.BotPoints))
	}
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stop()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Back):
		if m.selecting {
			m.cancelPath()
			return m, nil
		}
		m.send(core.ExitToMenu{})
		m.stop()
		m.backToMenu = true

	case key.Matches(msg, m.keys.Pause):
		if m.snap.Paused {
			m.send(core.Resume{})
		} else {
			m.send(core.Pause{})
		}

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)

	case key.Matches(msg, m.keys.Select):
		if m.selecting {
			m.endPath()
		} else {
			m.startPath()
		}

	case key.Matches(msg, m.keys.Confirm):
		m.confirm()

	case key.Matches(msg, m.keys.NextLevel):
		m.send(core.NextLevel{})
	case key.Matches(msg, m.keys.NewGame):
		m.selecting = false
		m.send(core.NewGame{})

	case key.Matches(msg, m.keys.Bomb):
		m.selecting = false
		m.send(core.UsePowerUp{Kind: core.PowerBomb})
	case key.Matches(msg, m.keys.Shuffle):
		m.selecting = false
		m.send(core.UsePowerUp{Kind: core.PowerShuffle})
	case key.Matches(msg, m.keys.Moves):
		m.send(core.UsePowerUp{Kind: core.PowerExtraMoves})
	}
	return m, nil
}

func (m *GameModel) send(ev core.Event) {
	switch ev.(type) {
	case core.SelectStart, core.SelectExtend, core.SelectEnd:
		m.pending++
	}
	m.runner.Send(ev)
}

func (m *GameModel) moveCursor(dr, dc int) {
	if m.snap.Size == 0 {
		return
	}
	next := core.P(m.cursor.Row+dr, m.cursor.Col+dc)
	if next.Row < 0 || next.Col < 0 || next.Row >= m.snap.Size || next.Col >= m.snap.Size {
		return
	}
	m.cursor = next
	if m.selecting {
		m.send(core.SelectExtend{Row: next.Row, Col: next.Col})
	}
}

func (m *GameModel) startPath() {
	m.selecting = true
	m.send(core.SelectStart{Row: m.cursor.Row, Col: m.cursor.Col})
}

func (m *GameModel) endPath() {
	m.selecting = false
	m.send(core.SelectEnd{})
}

// cancelPath drops the selection without spending a move: a one-dot
// path resolves to nothing.
func (m *GameModel) cancelPath() {
	first := m.cursor
	if len(m.snap.Selection) > 0 {
		first = m.snap.Selection[0]
	}
	m.cancelling = true
	m.send(core.SelectStart{Row: first.Row, Col: first.Col})
	m.endPath()
}

// confirm finishes a path, or moves on from a level or round screen.
func (m *GameModel) confirm() {
	if m.selecting {
		m.endPath()
		return
	}
	switch m.snap.Phase {
	case core.PhaseLevelComplete.String():
		m.send(core.NextLevel{})
	case core.PhaseGameOver.String():
		if m.snap.MatchOver {
			m.send(core.NewGame{})
		} else {
			m.send(core.NextLevel{})
		}
	case core.PhaseWon.String():
		m.send(core.NewGame{})
	}
}

// stop ends the runner and the subscription.
func (m *GameModel) stop() {
	if m.registry != nil {
		m.registry.Unregister(m.sub.ID())
	}
	m.runner.Unsubscribe(m.sub.ID())
	m.sub.Close()
	m.cancel()
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	showCursor := m.snap.Phase == core.PhasePlaying.String() && !m.snap.Paused
	board := RenderBoard(m.snap, m.cursor, showCursor, m.theme)
	if banner := Banner(m.snap, m.theme); banner != "" {
		board = lipgloss.JoinVertical(lipgloss.Center, board, banner)
	}

	parts := []string{RenderHUD(m.snap, m.item.Title, m.theme), board}
	if m.status != "" {
		parts = append(parts, m.theme.HUDWarning.Render(m.status))
	}
	parts = append(parts, m.help.View(m.keys))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Snapshot returns the last state received from the runner.
func (m GameModel) Snapshot() core.Snapshot {
	return m.snap
}

// Selecting reports whether a path is being drawn.
func (m GameModel) Selecting() bool {
	return m.selecting
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a local terminal session.
func Run(cfg AppConfig) error {
	model := NewSessionModel(cfg, "local")

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
