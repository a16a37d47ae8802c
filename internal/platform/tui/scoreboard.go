package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dots/internal/games/dots/core"
	"github.com/vovakirdan/tui-dots/internal/storage"
)

const maxScores = 100

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextMode: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next mode")),
		PrevMode: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev mode")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardView is what a mode's page lists.
type boardView int

const (
	viewTopScores boardView = iota // best scores with level reached
	viewDaily                      // today's daily results with stars
	viewMatches                    // recent versus matches with outcome
)

func viewFor(mode core.Mode) boardView {
	switch {
	case mode == core.ModeDaily:
		return viewDaily
	case mode.Versus():
		return viewMatches
	default:
		return viewTopScores
	}
}

// ScoreboardModel pages through per-mode records.
type ScoreboardModel struct {
	modes      []core.Mode
	modeCursor int
	store      *storage.Store
	today      string
	rows       []table.Row
	stats      *storage.ModeStats
	table      table.Model
	theme      Theme
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a scoreboard opened on the first mode.
func NewScoreboardModel(store *storage.Store, width, height int, theme Theme) ScoreboardModel {
	m := ScoreboardModel{
		modes:  core.AllModes(),
		store:  store,
		today:  time.Now().Format(time.DateOnly),
		theme:  theme,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.load()
	return m
}

// Mode returns the mode being shown.
func (m ScoreboardModel) Mode() core.Mode {
	return m.modes[m.modeCursor]
}

// Rows returns the table rows of the current page.
func (m ScoreboardModel) Rows() []table.Row {
	return m.rows
}

func columnsFor(v boardView) []table.Column {
	switch v {
	case viewDaily:
		return []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 8},
			{Title: "Level", Width: 6},
			{Title: "Stars", Width: 6},
			{Title: "Time", Width: 6},
		}
	case viewMatches:
		return []table.Column{
			{Title: "Played", Width: 13},
			{Title: "You", Width: 7},
			{Title: "Bot", Width: 7},
			{Title: "Result", Width: 7},
			{Title: "How", Width: 12},
		}
	default:
		return []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 8},
			{Title: "Level", Width: 6},
			{Title: "Date", Width: 13},
		}
	}
}

// load reads the current mode's page from the store and rebuilds the table.
func (m *ScoreboardModel) load() {
	mode := m.Mode()
	m.rows, m.stats = nil, nil
	if m.store != nil {
		m.rows = m.fetchRows(mode)
		if stats, err := m.store.GetModeStats(mode.String()); err == nil {
			m.stats = stats
		}
	}

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

	m.table = table.New(
		table.WithColumns(columnsFor(viewFor(mode))),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
		table.WithStyles(s),
	)
}

func (m *ScoreboardModel) fetchRows(mode core.Mode) []table.Row {
	var rows []table.Row
	switch viewFor(mode) {
	case viewDaily:
		entries, err := m.store.DailyResults(m.today, maxScores)
		if err != nil {
			return nil
		}
		for i, e := range entries {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprint(e.Score),
				fmt.Sprint(e.Level),
				starString(e.Stars),
				e.CreatedAt.Format("15:04"),
			})
		}
	case viewMatches:
		results, err := m.store.RecentMatches(mode.String(), maxScores)
		if err != nil {
			return nil
		}
		for _, r := range results {
			how := r.EndReason
			if r.Rule == core.RuleRounds.String() {
				how = fmt.Sprintf("rounds %d-%d", r.PlayerRounds, r.BotRounds)
			}
			rows = append(rows, table.Row{
				r.FinishedAt.Format("Jan 02 15:04"),
				fmt.Sprint(r.Score),
				fmt.Sprint(r.BotScore),
				outcome(r.Winner),
				how,
			})
		}
	default:
		scores, err := m.store.TopScores(mode.String(), maxScores)
		if err != nil {
			return nil
		}
		for i, s := range scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprint(s.Score),
				fmt.Sprint(s.Level),
				s.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	}
	return rows
}

func starString(n int) string {
	n = min(max(n, 0), 3)
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}

func outcome(winner string) string {
	switch winner {
	case core.SidePlayer.String():
		return "won"
	case core.SideBot.String():
		return "lost"
	case core.SideDraw.String():
		return "draw"
	default:
		return "-"
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, m.keys.NextMode):
			m.modeCursor = (m.modeCursor + 1) % len(m.modes)
			m.load()
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.modeCursor = (m.modeCursor + len(m.modes) - 1) % len(m.modes)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(m.theme.MenuTitle.Render("  S C O R E S  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	boxed := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	body := m.table.View()
	if len(m.rows) == 0 {
		body = m.theme.MenuDescription.Render(m.emptyText())
	}
	b.WriteString(centerText(boxed.Render(body), m.width))
	b.WriteString("\n")

	if line := m.statsLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.HUDValue.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.HUDControls.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs lists every mode with the current one highlighted, collapsing to
// "< Mode >" on narrow terminals.
func (m ScoreboardModel) tabs() string {
	names := make([]string, len(m.modes))
	for i, mode := range m.modes {
		if i == m.modeCursor {
			names[i] = m.theme.MenuItemActive.Render(mode.Title())
		} else {
			names[i] = m.theme.MenuItemNormal.Render(mode.Title())
		}
	}
	line := strings.Join(names, "  ")
	if m.width > 0 && lipgloss.Width(line) > m.width-4 {
		return m.theme.MenuItemActive.Render("< " + m.Mode().Title() + " >")
	}
	return line
}

func (m ScoreboardModel) emptyText() string {
	switch viewFor(m.Mode()) {
	case viewDaily:
		return fmt.Sprintf("No daily results for %s yet.", m.today)
	case viewMatches:
		return "No matches played yet."
	default:
		return "No scores recorded yet.\nFinish a game to set a high score!"
	}
}

// statsLine summarizes played games for the current mode.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	line := fmt.Sprintf("Games %d  |  Best %d  |  Avg %.0f", m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore)
	if m.Mode().Versus() {
		line += fmt.Sprintf("  |  W/L/D %d/%d/%d", m.stats.Wins, m.stats.Losses, m.stats.Draws)
	}
	return line
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
