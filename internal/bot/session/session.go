// Package session holds the only state the bot keeps in memory: which
// step of the checkout conversation, if any, each user is currently on.
// Everything else (menu, cart, profile, orders) lives behind the gateway.
package session

import (
	"sync"
)

// Stage identifies the checkout conversation step a user is on.
type Stage string

const (
	// StageIdle indicates no order is being collected.
	StageIdle Stage = "idle"
	// StageAwaitingPhone means the bot asked for the user's contact card.
	StageAwaitingPhone Stage = "awaiting_phone"
	// StageAwaitingLocation means the bot asked for a delivery location.
	StageAwaitingLocation Stage = "awaiting_location"
	// StageAwaitingConfirmation means the order summary was shown and the
	// bot waits for confirm/cancel.
	StageAwaitingConfirmation Stage = "awaiting_confirmation"
)

// Session is the per-user conversation state. Commands mutate it directly;
// the store guarantees one Session instance per user id.
type Session struct {
	UserID int64
	Stage  Stage
}

// InProgress reports whether an order is being collected. Every order-flow
// command re-checks this guard because any command is independently
// reachable from a button press.
func (s *Session) InProgress() bool {
	return s.Stage != StageIdle
}

// Reset puts the session back to idle. All commands outside the order flow
// call this first, which is what aborts an abandoned checkout.
func (s *Session) Reset() {
	s.Stage = StageIdle
}

// Store is an in-memory, mutex-guarded session map keyed by Telegram user
// id. Sessions are created lazily on first access and live for the process
// lifetime. Per-user event serialization is the transport's job (see the
// sharded worker pool in the telegram adapter), so no per-session lock
// exists beyond the map guard.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns the session for a user, creating an idle one if needed.
func (s *Store) Get(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = &Session{UserID: userID, Stage: StageIdle}
		s.sessions[userID] = sess
	}
	return sess
}
