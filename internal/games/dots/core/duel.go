package core

import "sync/atomic"

// Side identifies a match participant or outcome.
type Side int32

const (
	SideNone Side = iota
	SidePlayer
	SideBot
	SideDraw
)

// String returns the string representation of a side.
func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideBot:
		return "bot"
	case SideDraw:
		return "draw"
	default:
		return "none"
	}
}

// DecideWinner compares two scores. Equal scores are a draw.
func DecideWinner(player, bot int) Side {
	switch {
	case player > bot:
		return SidePlayer
	case bot > player:
		return SideBot
	default:
		return SideDraw
	}
}

// DuelLock is a single-assignment winner cell. Once a side is committed
// no later call can replace it, whichever goroutine makes it.
type DuelLock struct {
	winner atomic.Int32
}

// Commit records w as the winner if none has been recorded yet. It
// reports whether this call won the race.
func (l *DuelLock) Commit(w Side) bool {
	if w == SideNone {
		return false
	}
	return l.winner.CompareAndSwap(int32(SideNone), int32(w))
}

// Winner returns the committed side, or SideNone.
func (l *DuelLock) Winner() Side {
	return Side(l.winner.Load())
}

// fork returns an independent lock holding the same winner.
func (l *DuelLock) fork() *DuelLock {
	n := &DuelLock{}
	if l != nil {
		n.winner.Store(l.winner.Load())
	}
	return n
}

// Locked reports whether a winner has been committed.
func (l *DuelLock) Locked() bool {
	return l.Winner() != SideNone
}

// RaceWinner decides a score race after source changed its score.
// When both sides are at or past target the source wins.
func RaceWinner(source Side, player, bot, target int) Side {
	playerHits := player >= target
	botHits := bot >= target
	switch {
	case playerHits && botHits:
		return source
	case playerHits:
		return SidePlayer
	case botHits:
		return SideBot
	default:
		return SideNone
	}
}
