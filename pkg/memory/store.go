package memory

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pathwise-dev/pathwise/pkg/model"
)

const (
	// DefaultWindow is the number of turns retained per session.
	DefaultWindow = 20
	// DefaultTTL is how long an idle session survives before eviction.
	DefaultTTL = 1 * time.Hour

	cleanupInterval = 10 * time.Minute
)

// sessionLog is one session's turn log. Each log carries its own mutex so
// that independent sessions never block each other.
type sessionLog struct {
	mu   sync.Mutex
	ring *turnRing
}

// Store keeps per-session conversation logs, partitioned by session ID.
// Each session retains at most the configured window of turns (oldest evicted
// first) and expires after the configured idle TTL. There is no persistence
// beyond the process lifetime.
type Store struct {
	sessions *cache.Cache
	window   int
}

type Option func(*options)

type options struct {
	window int
	ttl    time.Duration
}

// WithWindow sets the maximum number of turns retained per session.
func WithWindow(n int) Option {
	return func(o *options) {
		o.window = n
	}
}

// WithTTL sets the idle lifetime of a session.
func WithTTL(d time.Duration) Option {
	return func(o *options) {
		o.ttl = d
	}
}

func New(opts ...Option) *Store {
	o := &options{
		window: DefaultWindow,
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Store{
		sessions: cache.New(o.ttl, cleanupInterval),
		window:   o.window,
	}
}

// OnEvict registers fn to run whenever a session is dropped, either cleared
// explicitly or expired past its TTL. Collaborators holding per-session state
// of their own use it to release that state.
func (s *Store) OnEvict(fn func(model.SessionID)) {
	s.sessions.OnEvicted(func(key string, _ interface{}) {
		fn(model.SessionID(key))
	})
}

// Window returns the configured per-session turn limit.
func (s *Store) Window() int {
	return s.window
}

func (s *Store) session(id model.SessionID) *sessionLog {
	key := string(id)
	if x, ok := s.sessions.Get(key); ok {
		return x.(*sessionLog)
	}

	log := &sessionLog{ring: newTurnRing(s.window)}
	if err := s.sessions.Add(key, log, cache.DefaultExpiration); err != nil {
		// Lost the creation race; take the winner
		if x, ok := s.sessions.Get(key); ok {
			return x.(*sessionLog)
		}
	}
	return log
}

// Append records a single turn for the session, creating the session on
// first use.
func (s *Store) Append(id model.SessionID, turn model.Turn) {
	log := s.session(id)
	log.mu.Lock()
	defer log.mu.Unlock()
	log.ring.append(turn)
	s.sessions.SetDefault(string(id), log)
}

// AppendPair records a user turn and the produced reply turn together, in
// that order, under a single lock. A request is either fully recorded or not
// at all.
func (s *Store) AppendPair(id model.SessionID, user, assistant model.Turn) {
	log := s.session(id)
	log.mu.Lock()
	defer log.mu.Unlock()
	log.ring.append(user)
	log.ring.append(assistant)
	s.sessions.SetDefault(string(id), log)
}

// Get returns the session's retained turns in arrival order. The returned
// slice is a copy; unknown sessions yield an empty result.
func (s *Store) Get(id model.SessionID) []model.Turn {
	x, ok := s.sessions.Get(string(id))
	if !ok {
		return nil
	}
	log := x.(*sessionLog)
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.ring.snapshot()
}

// Len returns the number of retained turns for the session.
func (s *Store) Len(id model.SessionID) int {
	x, ok := s.sessions.Get(string(id))
	if !ok {
		return 0
	}
	log := x.(*sessionLog)
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.ring.len()
}

// Clear drops the session and its turns.
func (s *Store) Clear(id model.SessionID) {
	s.sessions.Delete(string(id))
}
