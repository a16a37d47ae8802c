package match

import "sync"

// Subscriber receives updates from a runner through a buffered channel.
// A slow reader loses the oldest updates, never blocks the runner.
type Subscriber struct {
	id       SessionID
	updates  chan Update
	done     chan struct{}
	doneOnce sync.Once
}

// NewSubscriber creates a subscriber. bufferSize controls how many
// updates can be buffered before dropping.
func NewSubscriber(id SessionID, bufferSize int) *Subscriber {
	if bufferSize < 1 {
		bufferSize = 64 // Default buffer size
	}
	return &Subscriber{
		id:      id,
		updates: make(chan Update, bufferSize),
		done:    make(chan struct{}),
	}
}

// ID returns the subscriber's session.
func (s *Subscriber) ID() SessionID {
	return s.id
}

// Send delivers an update. If the buffer is full, the oldest update is
// dropped to make room.
func (s *Subscriber) Send(u Update) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.updates <- u:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-s.updates:
		default:
		}
		select {
		case s.updates <- u:
		default:
		}
	}
}

// Updates returns the channel to read updates from.
func (s *Subscriber) Updates() <-chan Update {
	return s.updates
}

// Done returns a channel closed when the subscriber is closed.
func (s *Subscriber) Done() <-chan struct{} {
	return s.done
}

// Close marks the subscriber as done.
// Safe to call multiple times.
func (s *Subscriber) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// Registry tracks the runners of connected sessions.
// Thread-safe for concurrent access.
type Registry struct {
	mu      sync.RWMutex
	runners map[SessionID]*Runner
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		runners: make(map[SessionID]*Runner),
	}
}

// Register associates a runner with a session.
func (r *Registry) Register(id SessionID, runner *Runner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runners[id] = runner
}

// Unregister removes a session.
func (r *Registry) Unregister(id SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.runners, id)
}

// Get retrieves a session's runner.
func (r *Registry) Get(id SessionID) (*Runner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	runner, ok := r.runners[id]
	return runner, ok
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.runners)
}
