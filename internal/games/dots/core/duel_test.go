package core_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/vovakirdan/tui-dots/internal/games/dots/core"
)

func TestDuelLockSingleAssignment(t *testing.T) {
	for run := 0; run < 50; run++ {
		var lock core.DuelLock
		var wins atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 32; i++ {
			side := core.SidePlayer
			if i%2 == 1 {
				side = core.SideBot
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				if lock.Commit(side) {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		if wins.Load() != 1 {
			t.Fatalf("run %d: %d commits succeeded, want 1", run, wins.Load())
		}
		first := lock.Winner()
		if lock.Commit(core.SideBot) || lock.Commit(core.SidePlayer) || lock.Winner() != first {
			t.Fatalf("run %d: winner changed after commit", run)
		}
	}
}

func TestDuelLockIgnoresNone(t *testing.T) {
	var lock core.DuelLock
	if lock.Commit(core.SideNone) || lock.Locked() {
		t.Error("committing SideNone locked the duel")
	}
}

func TestRaceWinner(t *testing.T) {
	tests := []struct {
		name        string
		source      core.Side
		player, bot int
		want        core.Side
	}{
		{"nobody there", core.SidePlayer, 1990, 1500, core.SideNone},
		{"player crosses", core.SidePlayer, 2010, 1500, core.SidePlayer},
		{"bot crosses", core.SideBot, 100, 2000, core.SideBot},
		{"both, player update", core.SidePlayer, 2050, 2100, core.SidePlayer},
		{"both, bot update", core.SideBot, 2050, 2100, core.SideBot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := core.RaceWinner(tt.source, tt.player, tt.bot, 2000); got != tt.want {
				t.Errorf("RaceWinner = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecideWinner(t *testing.T) {
	tests := []struct {
		player, bot int
		want        core.Side
	}{
		{10, 5, core.SidePlayer},
		{5, 10, core.SideBot},
		{7, 7, core.SideDraw},
	}
	for _, tt := range tests {
		if got := core.DecideWinner(tt.player, tt.bot); got != tt.want {
			t.Errorf("DecideWinner(%d, %d) = %v, want %v", tt.player, tt.bot, got, tt.want)
		}
	}
}
