package web

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-dots/internal/games/dots/core"
	"github.com/vovakirdan/tui-dots/internal/match"
)

// ClientMessage is one gesture sent over /ws/play.
//
//	{"type":"start_mode","mode":"pvp","rule":"score"}
//	{"type":"select_start","row":1,"col":2}
//	{"type":"power_up","kind":"bomb"}
type ClientMessage struct {
	Type     string `json:"type"`
	Mode     string `json:"mode,omitempty"`
	Rule     string `json:"rule,omitempty"`
	Date     string `json:"date,omitempty"` // YYYY-MM-DD, daily only
	Opponent string `json:"opponent,omitempty"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Kind     string `json:"kind,omitempty"`
}

// Event converts the message into an engine event.
func (m ClientMessage) Event() (core.Event, error) {
	switch m.Type {
	case "start_mode":
		mode, ok := core.ParseMode(m.Mode)
		if !ok {
			return nil, fmt.Errorf("unknown mode %q", m.Mode)
		}
		ev := core.StartMode{Mode: mode, Opponent: m.Opponent}
		if m.Rule != "" {
			rule, ok := core.ParseRule(m.Rule)
			if !ok {
				return nil, fmt.Errorf("unknown rule %q", m.Rule)
			}
			ev.Rule = rule
		}
		if m.Date != "" {
			d, err := time.Parse(time.DateOnly, m.Date)
			if err != nil {
				return nil, fmt.Errorf("bad date %q: %w", m.Date, err)
			}
			ev.Date = d
		}
		return ev, nil
	case "select_start":
		return core.SelectStart{Row: m.Row, Col: m.Col}, nil
	case "select_extend":
		return core.SelectExtend{Row: m.Row, Col: m.Col}, nil
	case "select_end":
		return core.SelectEnd{}, nil
	case "power_up":
		kind, ok := core.ParsePowerUp(m.Kind)
		if !ok {
			return nil, fmt.Errorf("unknown power-up %q", m.Kind)
		}
		return core.UsePowerUp{Kind: kind}, nil
	case "pause":
		return core.Pause{}, nil
	case "resume":
		return core.Resume{}, nil
	case "next_level":
		return core.NextLevel{}, nil
	case "new_game":
		return core.NewGame{}, nil
	case "exit_to_menu":
		return core.ExitToMenu{}, nil
	default:
		return nil, fmt.Errorf("unknown message type %q", m.Type)
	}
}

// ServerMessage is pushed to the client after every applied event.
type ServerMessage struct {
	Event     string         `json:"event"`
	Accepted  bool           `json:"accepted"`
	Reason    string         `json:"reason,omitempty"`
	MatchKind string         `json:"match_kind,omitempty"`
	Points    int            `json:"points,omitempty"`
	BotPoints int            `json:"bot_points,omitempty"`
	Ended     bool           `json:"ended,omitempty"`
	Error     string         `json:"error,omitempty"`
	Snapshot  *core.Snapshot `json:"snapshot,omitempty"`
}

func newServerMessage(u match.Update) ServerMessage {
	snap := u.Snapshot
	msg := ServerMessage{
		Event:     u.Event,
		Accepted:  u.Effect.Accepted(),
		BotPoints: u.Effect.BotPoints,
		Ended:     u.Effect.Ended,
		Snapshot:  &snap,
	}
	if !msg.Accepted {
		msg.Reason = u.Effect.Reason.String()
	}
	if res := u.Effect.Match; res != nil {
		msg.MatchKind = res.Kind.String()
		msg.Points = res.Points
	}
	return msg
}
