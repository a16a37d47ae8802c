package match_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-dots/internal/games/dots/core"
	"github.com/vovakirdan/tui-dots/internal/match"
)

type memorySaver struct {
	mu      sync.Mutex
	results []match.Result
	best    map[string]int
}

func (m *memorySaver) SaveResult(r match.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	return nil
}

func (m *memorySaver) HighScore(mode string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best[mode], nil
}

func (m *memorySaver) saved() []match.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]match.Result(nil), m.results...)
}

func fastRules() core.Rules {
	rules := core.DefaultRules()
	rules.TickInterval = 5 * time.Millisecond
	rules.Speed.BaseMoveTime = 40 * time.Millisecond
	rules.Speed.MinMoveTime = 10 * time.Millisecond
	return rules
}

func startRunner(t *testing.T, cfg match.RunnerConfig) *match.Runner {
	t.Helper()
	r := match.NewRunner(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- r.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-errc:
		case <-time.After(time.Second):
			t.Error("runner did not stop")
		}
	})
	return r
}

func TestRunnerAppliesEventsInOrder(t *testing.T) {
	r := startRunner(t, match.RunnerConfig{Rules: fastRules(), Source: core.NewXorshift(7)})
	sub := match.NewSubscriber("test", 256)
	r.Subscribe(sub)

	first := <-sub.Updates()
	assert.Equal(t, "subscribe", first.Event)
	assert.Equal(t, "selecting_mode", first.Snapshot.Phase)

	require.True(t, r.Send(core.StartMode{Mode: core.ModeClassic}))
	require.True(t, r.Send(core.Pause{}))

	var events []string
	require.Eventually(t, func() bool {
		for {
			select {
			case u := <-sub.Updates():
				if u.Event != "tick" {
					events = append(events, u.Event)
				}
			default:
				return len(events) >= 2
			}
		}
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"start_mode", "pause"}, events[:2])
	st := r.State()
	assert.Equal(t, core.PhasePlaying, st.Phase)
	assert.True(t, st.Paused)
}

func TestRunnerSavesTerminalResult(t *testing.T) {
	saver := &memorySaver{}
	r := startRunner(t, match.RunnerConfig{
		Rules:  fastRules(),
		Source: core.NewXorshift(3),
		Saver:  saver,
	})
	require.True(t, r.Send(core.StartMode{Mode: core.ModeSpeed}))

	require.Eventually(t, func() bool { return len(saver.saved()) == 1 }, 2*time.Second, 5*time.Millisecond)
	res := saver.saved()[0]
	assert.Equal(t, "speed", res.Mode)
	assert.Equal(t, "out_of_time", res.EndReason)
	assert.Equal(t, "none", res.Winner)
	assert.Equal(t, string(r.ID()), res.MatchID)
	assert.Equal(t, core.PhaseGameOver, r.State().Phase)
}

func TestRunnerStopsTickingWhenFinished(t *testing.T) {
	r := startRunner(t, match.RunnerConfig{Rules: fastRules(), Source: core.NewXorshift(3)})
	require.True(t, r.Send(core.StartMode{Mode: core.ModeSpeed}))
	require.Eventually(t, func() bool { return r.State().Phase == core.PhaseGameOver }, 2*time.Second, 5*time.Millisecond)

	elapsed := r.State().Elapsed
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, elapsed, r.State().Elapsed)
	assert.Zero(t, r.State().Combo)
}

func TestRunnerPauseFreezesTimers(t *testing.T) {
	rules := fastRules()
	rules.Speed.BaseMoveTime = time.Hour
	r := startRunner(t, match.RunnerConfig{Rules: rules, Source: core.NewXorshift(3)})
	require.True(t, r.Send(core.StartMode{Mode: core.ModeSpeed}))
	require.Eventually(t, func() bool { return r.State().Elapsed > 0 }, time.Second, 5*time.Millisecond)

	require.True(t, r.Send(core.Pause{}))
	require.Eventually(t, func() bool { return r.State().Paused }, time.Second, time.Millisecond)
	left := r.State().MoveTimeLeft
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, left, r.State().MoveTimeLeft)
}

func TestRunnerSeedsStoredHighScore(t *testing.T) {
	saver := &memorySaver{best: map[string]int{"classic": 900}}
	r := startRunner(t, match.RunnerConfig{Rules: fastRules(), Source: core.NewXorshift(1), Scores: saver})
	require.True(t, r.Send(core.StartMode{Mode: core.ModeClassic}))
	require.Eventually(t, func() bool { return r.State().HighScore == 900 }, time.Second, time.Millisecond)
}

func TestRunnerSendAfterStop(t *testing.T) {
	r := match.NewRunner(match.RunnerConfig{Rules: fastRules(), Source: core.NewXorshift(1)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Run(ctx), context.Canceled)
	assert.False(t, r.Send(core.Pause{}))
	assert.NotEmpty(t, r.ID())
}

func TestSubscriberDropsOldest(t *testing.T) {
	sub := match.NewSubscriber("slow", 2)
	for i := 1; i <= 3; i++ {
		sub.Send(match.Update{Snapshot: core.Snapshot{Score: i}})
	}
	assert.Equal(t, 2, (<-sub.Updates()).Snapshot.Score)
	assert.Equal(t, 3, (<-sub.Updates()).Snapshot.Score)

	sub.Close()
	sub.Close()
	sub.Send(match.Update{})
	assert.Empty(t, sub.Updates())
}

func TestRegistry(t *testing.T) {
	reg := match.NewRegistry()
	r := match.NewRunner(match.RunnerConfig{ID: "m1"})
	reg.Register("a", r)
	reg.Register("b", r)
	assert.Equal(t, 2, reg.Count())

	got, ok := reg.Get("a")
	require.True(t, ok)
	assert.Equal(t, match.MatchID("m1"), got.ID())

	reg.Unregister("a")
	_, ok = reg.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, reg.Count())
}

func TestNewResultDaily(t *testing.T) {
	s := core.NewSession(core.DefaultRules(), core.NewXorshift(1))
	s, _ = s.Apply(core.StartMode{Mode: core.ModeDaily, Date: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)})
	res := match.NewResult("d", s)
	assert.Equal(t, "2026-10-14", res.Daily)
	assert.Empty(t, res.Rule)
}
