// Package session keeps one calculator per client and serializes every
// press into it.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"keypad-calculator/internal/keypad"
)

var ErrNotFound = errors.New("session not found")

// Session wraps an adapter with a lock. The adapter must only be touched
// through Do or Press.
type Session struct {
	ID      string
	Created time.Time

	mu       sync.Mutex
	adapter  *keypad.Adapter
	lastUsed time.Time
	now      func() time.Time
}

// Snapshot is a consistent read of a session's display.
type Snapshot struct {
	ID       string
	Display  string
	State    keypad.EntryState
	LastUsed time.Time
}

// Step records the display after a single key.
type Step struct {
	Key     keypad.Button
	Display string
}

// Do runs fn with exclusive access to the session's adapter.
func (s *Session) Do(fn func(a *keypad.Adapter)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.adapter)
	s.lastUsed = s.now()
}

// Press presses buttons in order as one unit.
func (s *Session) Press(buttons ...keypad.Button) []Step {
	steps := make([]Step, 0, len(buttons))
	s.Do(func(a *keypad.Adapter) {
		for _, b := range buttons {
			steps = append(steps, Step{Key: b, Display: a.Press(b)})
		}
	})
	return steps
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		ID:       s.ID,
		Display:  s.adapter.Display(),
		State:    s.adapter.State(),
		LastUsed: s.lastUsed,
	}
}

func (s *Session) idleSince(t time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.Sub(s.lastUsed)
}

// Store holds live sessions in memory. Sessions idle for longer than the
// TTL are treated as gone; a zero TTL disables expiry.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a session with a fresh calculator.
func (s *Store) Create() *Session {
	now := s.now()
	sess := &Session{
		ID:       uuid.NewString(),
		Created:  now,
		adapter:  keypad.NewAdapter(),
		lastUsed: now,
		now:      s.now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Debug("session created", zap.String("session_id", sess.ID))
	return sess
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.expired(sess, s.now()) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were dropped.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && sess.idleSince(now) > s.ttl
}

// Run sweeps every interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Info("expired idle sessions",
					zap.Int("removed", n),
					zap.Int("remaining", s.Len()),
				)
			}
		}
	}
}
