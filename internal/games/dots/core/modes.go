package core

import "strings"

// Mode selects the win condition and timers of a session.
type Mode uint8

const (
	ModeClassic Mode = iota
	ModeDaily
	ModePvP
	ModePvPTimed
	ModeSpeed
)

// String returns the string representation of a mode.
func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "classic"
	case ModeDaily:
		return "daily"
	case ModePvP:
		return "pvp"
	case ModePvPTimed:
		return "pvp_timed"
	case ModeSpeed:
		return "speed"
	default:
		return "unknown"
	}
}

// Title returns the display name of a mode.
func (m Mode) Title() string {
	switch m {
	case ModeClassic:
		return "Classic"
	case ModeDaily:
		return "Daily"
	case ModePvP:
		return "PvP"
	case ModePvPTimed:
		return "PvP (Timed)"
	case ModeSpeed:
		return "Speed"
	default:
		return "Unknown"
	}
}

// Versus reports whether the mode has a bot opponent.
func (m Mode) Versus() bool {
	return m == ModePvP || m == ModePvPTimed
}

// AllModes returns every mode in menu order.
func AllModes() []Mode {
	return []Mode{ModeClassic, ModeDaily, ModePvP, ModePvPTimed, ModeSpeed}
}

// ParseMode converts a name to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "_")) {
	case "classic":
		return ModeClassic, true
	case "daily":
		return ModeDaily, true
	case "pvp", "versus":
		return ModePvP, true
	case "pvp_timed", "timed":
		return ModePvPTimed, true
	case "speed":
		return ModeSpeed, true
	default:
		return ModeClassic, false
	}
}

// Rule is the win condition of an untimed PvP match.
type Rule uint8

const (
	RuleRounds Rule = iota // no explicit rule: rounds decided at zero moves
	RuleLevel              // first to a target level
	RuleScore              // first to a target score
)

// String returns the string representation of a rule.
func (r Rule) String() string {
	switch r {
	case RuleRounds:
		return "rounds"
	case RuleLevel:
		return "level"
	case RuleScore:
		return "score"
	default:
		return "unknown"
	}
}

// ParseRule converts a name to a Rule. The empty string means rounds.
func ParseRule(s string) (Rule, bool) {
	switch strings.ToLower(s) {
	case "", "rounds", "none":
		return RuleRounds, true
	case "level":
		return RuleLevel, true
	case "score":
		return RuleScore, true
	default:
		return RuleRounds, false
	}
}

// Phase is the session state machine position.
type Phase uint8

const (
	PhaseSelectingMode Phase = iota
	PhaseMatchmaking
	PhasePlaying
	PhaseLevelComplete
	PhaseGameOver
	PhaseWon
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseSelectingMode:
		return "selecting_mode"
	case PhaseMatchmaking:
		return "matchmaking"
	case PhasePlaying:
		return "playing"
	case PhaseLevelComplete:
		return "level_complete"
	case PhaseGameOver:
		return "game_over"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends play.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseWon
}

// EndReason explains a terminal phase.
type EndReason uint8

const (
	EndNone EndReason = iota
	EndOutOfMoves
	EndOutOfTime
	EndMatchTime
	EndRoundOver
	EndRoundsDecided
	EndScoreRace
	EndLevelRace
	EndAllLevels
)

// String returns the string representation of an end reason.
func (r EndReason) String() string {
	switch r {
	case EndNone:
		return "none"
	case EndOutOfMoves:
		return "out_of_moves"
	case EndOutOfTime:
		return "out_of_time"
	case EndMatchTime:
		return "match_time"
	case EndRoundOver:
		return "round_over"
	case EndRoundsDecided:
		return "rounds_decided"
	case EndScoreRace:
		return "score_race"
	case EndLevelRace:
		return "level_race"
	case EndAllLevels:
		return "all_levels"
	default:
		return "unknown"
	}
}

// Opponents is the pool of display names for the bot.
var Opponents = []string{
	"Luca", "Giulia", "Marco", "Chiara", "Sofia", "Elena",
	"Hugo", "Chloe", "Louis", "Camille", "Pierre", "Amelie",
	"Theo", "Antoine", "Julia", "Peter", "Lukas", "Marta",
	"Pablo", "Miguel", "Joao", "Ines", "Tomas", "Zofia",
}

// PickOpponent draws a display name from names.
func PickOpponent(names []string, src Source) string {
	if len(names) == 0 {
		return "Bot"
	}
	return names[intn(src, len(names))]
}
