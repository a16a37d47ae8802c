package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dots/internal/games/dots/core"
)

// glyph returns the styled symbol for one tile.
func glyph(t *core.Tile, theme Theme) string {
	if t == nil {
		return theme.Empty.Render("·")
	}
	style := theme.Dots[t.Color]
	if t.Rainbow {
		style = theme.Rainbow
	}

	var sym string
	switch {
	case theme.Letters:
		sym = string(t.Color.Char())
		if t.Special() {
			sym = strings.ToLower(sym)
		}
	case t.Bomb:
		sym = "✹"
	case t.Lightning:
		sym = "ϟ"
	case t.Gem:
		sym = "◆"
	case t.Rainbow:
		sym = "★"
	default:
		sym = "●"
	}
	return style.Render(sym)
}

// RenderBoard draws the grid. Selected cells are highlighted and the
// cursor cell is bracketed.
func RenderBoard(snap core.Snapshot, cursor core.Pos, showCursor bool, theme Theme) string {
	if snap.Size == 0 {
		return ""
	}
	selected := make(map[core.Pos]int, len(snap.Selection))
	for i, p := range snap.Selection {
		selected[p] = i + 1
	}

	var b strings.Builder
	for r, row := range snap.Grid {
		if r > 0 {
			b.WriteString("\n")
		}
		for c, t := range row {
			p := core.P(r, c)
			left, right := " ", " "
			if showCursor && p == cursor {
				left, right = theme.Cursor.Render("["), theme.Cursor.Render("]")
			}
			cell := glyph(t, theme)
			if _, ok := selected[p]; ok {
				cell = theme.Selected.Render(cell)
			}
			b.WriteString(left + cell + right)
		}
	}
	return theme.BoardEdge.Render(b.String())
}

// RenderHUD draws the status lines above the board.
func RenderHUD(snap core.Snapshot, title string, theme Theme) string {
	sep := theme.HUDSeparator.Render("  │  ")
	val := func(label string, v any) string {
		return theme.HUDControls.Render(label+" ") + theme.HUDValue.Render(fmt.Sprint(v))
	}

	heading := theme.HUDTitle.Render("DOTS · " + title)
	if snap.Opponent != "" {
		heading += theme.HUDControls.Render("  vs ") + theme.HUDValue.Render(snap.Opponent)
	}

	mode, _ := core.ParseMode(snap.Mode)
	var line []string
	if mode.Versus() {
		line = append(line,
			val("You", snap.Score),
			val("Bot", snap.BotScore),
			val("Bot lvl", snap.BotLevel),
		)
	} else {
		line = append(line, val("Score", snap.Score), val("Best", snap.HighScore))
	}
	line = append(line, val("Moves", snap.Moves), val("Level", snap.Level), val("Combo", snap.Combo))

	var extra []string
	switch {
	case mode == core.ModePvP && snap.Rule == core.RuleRounds.String():
		extra = append(extra, val("Round", snap.Round),
			val("Rounds", fmt.Sprintf("%d-%d", snap.PlayerRounds, snap.BotRounds)))
	case mode == core.ModePvP:
		extra = append(extra, val("Race", snap.Rule))
	case mode == core.ModePvPTimed:
		extra = append(extra, timer(theme, "Time", snap.MatchTimeLeft), val("Tier", snap.SpeedTier))
	case mode == core.ModeSpeed:
		extra = append(extra, timer(theme, "Move", snap.MoveTimeLeft), val("Tier", snap.SpeedTier))
	}

	targets := make([]string, 0, len(snap.Targets))
	for _, tv := range snap.Targets {
		c, _ := core.ParseColor(tv.Color)
		mark := theme.Dots[c].Render(string(c.Char()))
		targets = append(targets, fmt.Sprintf("%s %d/%d", mark, tv.Collected, tv.Required))
	}

	power := strings.Join([]string{
		val("x Bomb", snap.PowerUps.Bomb),
		val("s Shuffle", snap.PowerUps.Shuffle),
		val("m +Moves", snap.PowerUps.ExtraMoves),
	}, sep)

	lines := []string{heading, strings.Join(line, sep)}
	if len(extra) > 0 {
		lines = append(lines, strings.Join(extra, sep))
	}
	if len(targets) > 0 {
		lines = append(lines, theme.HUDControls.Render("Targets ")+strings.Join(targets, "  "))
	}
	lines = append(lines, power)
	return strings.Join(lines, "\n")
}

func timer(theme Theme, label string, secs float64) string {
	style := theme.HUDValue
	if secs < 3 {
		style = theme.HUDWarning
	}
	return theme.HUDControls.Render(label+" ") + style.Render(fmt.Sprintf("%.1fs", secs))
}

var endReasonText = map[string]string{
	"out_of_moves":   "Out of moves",
	"out_of_time":    "Too slow!",
	"match_time":     "Time is up",
	"round_over":     "Round over",
	"rounds_decided": "Match decided",
	"score_race":     "Score race finished",
	"level_race":     "Level race finished",
	"all_levels":     "Every level cleared",
}

var resultText = map[string]string{
	"player": "You win!",
	"bot":    "Bot wins",
	"draw":   "Draw",
}

// Banner returns the overlay for non-playing phases, or "" while playing.
func Banner(snap core.Snapshot, theme Theme) string {
	var title string
	var body []string

	switch {
	case snap.Paused:
		title = "Paused"
		body = append(body, "p: resume   esc: menu")
	case snap.Phase == core.PhaseMatchmaking.String():
		if snap.SearchLeft > 0 {
			title = "Finding an opponent..."
			body = append(body, fmt.Sprintf("%.0fs", snap.SearchLeft))
		} else {
			title = fmt.Sprintf("%s found!", snap.Opponent)
			body = append(body, fmt.Sprintf("Starting in %.0f", snap.CountdownLeft))
		}
	case snap.Phase == core.PhaseLevelComplete.String():
		title = fmt.Sprintf("Level %d complete", snap.Level)
		body = append(body, strings.Repeat("★", snap.Stars)+strings.Repeat("☆", 3-snap.Stars))
		if snap.Rule != core.RuleLevel.String() {
			body = append(body, "enter: next level")
		}
	case snap.Phase == core.PhaseWon.String():
		title = "You cleared every level!"
		body = append(body, fmt.Sprintf("Final score %d", snap.Score), "r: new game   esc: menu")
	case snap.Phase == core.PhaseGameOver.String():
		title = endReasonText[snap.Reason]
		if title == "" {
			title = "Game over"
		}
		if r, ok := resultText[snap.Result]; ok {
			body = append(body, r)
		}
		body = append(body, fmt.Sprintf("Score %d", snap.Score))
		if snap.MatchOver {
			body = append(body, "r: new game   esc: menu")
		} else {
			body = append(body, "enter: next round")
		}
	default:
		return ""
	}

	content := theme.OverlayTitle.Render(title)
	for _, line := range body {
		content += "\n" + theme.OverlayText.Render(line)
	}
	return theme.OverlayBorder.Render(lipgloss.JoinVertical(lipgloss.Center, content))
}
