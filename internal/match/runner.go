package match

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-dots/internal/games/dots/core"
)

// RunnerConfig holds configuration for a runner.
type RunnerConfig struct {
	ID        MatchID // generated when empty
	Rules     core.Rules
	Source    core.Source // nil uses a clock-seeded source
	QueueSize int         // pending input events

	Saver  ResultSaver     // Optional, can be nil
	Scores HighScoreSource // Optional, can be nil
	Logger *log.Logger     // Optional, can be nil
}

// Runner owns a session and applies events to it in arrival order.
// Timer ticks enter the same queue as player input. The ticker only
// runs while the session reports Running, so paused, finished or menu
// sessions accumulate no time.
type Runner struct {
	id     MatchID
	cfg    RunnerConfig
	events chan core.Event
	logger *log.Logger

	mu    sync.RWMutex
	state core.Session
	subs  map[SessionID]*Subscriber

	done     chan struct{}
	doneOnce sync.Once
}

// NewRunner creates a runner whose session starts in the mode menu.
func NewRunner(cfg RunnerConfig) *Runner {
	if cfg.ID == "" {
		cfg.ID = MatchID(uuid.NewString())
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 64
	}
	if cfg.Rules.TickInterval <= 0 {
		cfg.Rules.TickInterval = core.DefaultRules().TickInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		id:     cfg.ID,
		cfg:    cfg,
		events: make(chan core.Event, cfg.QueueSize),
		logger: logger.With("match", string(cfg.ID)),
		state:  core.NewSession(cfg.Rules, cfg.Source),
		subs:   make(map[SessionID]*Subscriber),
		done:   make(chan struct{}),
	}
}

// ID returns the match identifier.
func (r *Runner) ID() MatchID {
	return r.id
}

// State returns the current session.
func (r *Runner) State() core.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Subscribe registers a subscriber and sends it the current snapshot.
func (r *Runner) Subscribe(sub *Subscriber) {
	r.mu.Lock()
	r.subs[sub.ID()] = sub
	snap := r.state.Snapshot()
	r.mu.Unlock()
	sub.Send(Update{MatchID: r.id, Event: "subscribe", Snapshot: snap})
}

// Unsubscribe removes a subscriber.
func (r *Runner) Unsubscribe(id SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, id)
}

// Send queues an event. It blocks while the queue is full so input is
// never reordered or lost, and returns false once the runner stopped.
func (r *Runner) Send(ev core.Event) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.events <- ev:
		return true
	case <-r.done:
		return false
	}
}

// Run processes events until ctx is cancelled or Stop is called.
func (r *Runner) Run(ctx context.Context) error {
	defer r.Stop()

	interval := r.cfg.Rules.TickInterval
	var ticker *time.Ticker
	var tickC <-chan time.Time
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	for {
		// Arm or disarm the timer to match the session.
		running := r.State().Running()
		switch {
		case running && ticker == nil:
			ticker = time.NewTicker(interval)
			tickC = ticker.C
		case !running && ticker != nil:
			ticker.Stop()
			ticker, tickC = nil, nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.done:
			return nil
		case ev := <-r.events:
			r.apply(ev)
		case <-tickC:
			r.apply(core.Tick{DT: interval})
		}
	}
}

// Stop ends the run loop.
// Safe to call multiple times.
func (r *Runner) Stop() {
	r.doneOnce.Do(func() {
		close(r.done)
	})
}

// Done returns a channel closed when the runner stops.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) apply(ev core.Event) {
	r.mu.Lock()
	next, eff := r.state.Apply(ev)
	if _, ok := ev.(core.StartMode); ok {
		next.HighScore = max(next.HighScore, r.storedHighScore(next.Mode))
	}
	r.state = next
	snap := next.Snapshot()
	subs := make([]*Subscriber, 0, len(r.subs))
	for _, s := range r.subs {
		subs = append(subs, s)
	}
	r.mu.Unlock()

	name := core.EventName(ev)
	if !eff.Accepted() {
		r.logger.Debug("event rejected", "event", name, "reason", eff.Reason)
	}

	u := Update{MatchID: r.id, Event: name, Effect: eff, Snapshot: snap}
	for _, s := range subs {
		s.Send(u)
	}

	if eff.Ended {
		r.finish(next)
	}
}

func (r *Runner) storedHighScore(mode core.Mode) int {
	if r.cfg.Scores == nil {
		return 0
	}
	best, err := r.cfg.Scores.HighScore(mode.String())
	if err != nil {
		r.logger.Warn("high score unavailable", "mode", mode, "err", err)
		return 0
	}
	return best
}

func (r *Runner) finish(s core.Session) {
	res := NewResult(r.id, s)
	r.logger.Info("game finished",
		"mode", res.Mode,
		"reason", res.EndReason,
		"winner", res.Winner,
		"score", res.Score,
		"bot_score", res.BotScore,
		"level", res.Level,
	)
	if r.cfg.Saver == nil {
		return
	}
	if err := r.cfg.Saver.SaveResult(res); err != nil {
		r.logger.Error("cannot save result", "err", err)
	}
}
