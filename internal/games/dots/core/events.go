package core

import "time"

// Event is an input to Session.Apply. Human gestures, timer ticks and
// menu actions are all events so they share one ordering.
type Event interface {
	event()
}

// StartMode configures a session and leaves the mode menu. PvP modes go
// through matchmaking first.
type StartMode struct {
	Mode     Mode
	Rule     Rule
	Date     time.Time // daily boards; zero means today
	Opponent string    // empty picks a random name
}

// SelectStart begins a new selection at a cell.
type SelectStart struct{ Row, Col int }

// SelectExtend adds a cell to the selection (or backtracks).
type SelectExtend struct{ Row, Col int }

// SelectEnd commits the selection.
type SelectEnd struct{}

// UsePowerUp spends one power-up.
type UsePowerUp struct{ Kind PowerUp }

// Pause freezes timers and drops the selection.
type Pause struct{}

// Resume unfreezes a paused session.
type Resume struct{}

// NextLevel advances after a completed level, or starts the next PvP round.
type NextLevel struct{}

// NewGame restarts the current mode from scratch.
type NewGame struct{}

// ExitToMenu returns to mode selection.
type ExitToMenu struct{}

// Tick advances session time by DT.
type Tick struct{ DT time.Duration }

func (StartMode) event()    {}
func (SelectStart) event()  {}
func (SelectExtend) event() {}
func (SelectEnd) event()    {}
func (UsePowerUp) event()   {}
func (Pause) event()        {}
func (Resume) event()       {}
func (NextLevel) event()    {}
func (NewGame) event()      {}
func (ExitToMenu) event()   {}
func (Tick) event()         {}

// EventName returns a short label for logs.
func EventName(ev Event) string {
	switch ev.(type) {
	case StartMode:
		return "start_mode"
	case SelectStart:
		return "select_start"
	case SelectExtend:
		return "select_extend"
	case SelectEnd:
		return "select_end"
	case UsePowerUp:
		return "use_power_up"
	case Pause:
		return "pause"
	case Resume:
		return "resume"
	case NextLevel:
		return "next_level"
	case NewGame:
		return "new_game"
	case ExitToMenu:
		return "exit_to_menu"
	case Tick:
		return "tick"
	default:
		return "unknown"
	}
}

// Effect reports what an event did. Reason is ReasonNone when the event
// was applied.
type Effect struct {
	Reason    Reason
	Extend    ExtendResult
	Match     *Resolution // human path resolution
	BotChain  Path        // chain the bot claimed this tick
	BotPoints int
	Ended     bool // the session became terminal on this event
}

// Accepted reports whether the event changed anything.
func (e Effect) Accepted() bool {
	return e.Reason == ReasonNone
}
