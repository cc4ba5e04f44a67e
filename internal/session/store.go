package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/commodity-gate/internal/domain"
)

// State is a point-in-time view of the session.
type State struct {
	Identity *domain.Identity
	Loading  bool
}

// Store holds the client's session. It starts in the loading state and
// leaves it once Initialize, Login or Logout completes.
type Store struct {
	backend Backend
	logger  *zap.Logger

	mu         sync.RWMutex
	state      State
	generation uint64
	subs       map[int]func(State)
	nextSub    int
}

// NewStore creates a store in the loading state.
func NewStore(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		backend: backend,
		logger:  logger,
		state:   State{Loading: true},
		subs:    make(map[int]func(State)),
	}
}

// Initialize asks the server who the session belongs to. Any failure
// leaves the store without an identity. Results of an Initialize that was
// overtaken by a later Initialize, Login or Logout are discarded.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.state.Loading = true
	s.mu.Unlock()

	identity, err := s.backend.WhoAmI(ctx)
	var next *domain.Identity
	switch {
	case err == nil:
		next = &identity
	case errors.Is(err, ErrUnauthenticated):
		err = nil
	default:
		s.logger.Warn("session initialize failed", zap.Error(err))
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.Debug("discarding stale session initialize")
		return err
	}
	s.state = State{Identity: next, Loading: false}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
	return err
}

// Login records an identity the caller already obtained from the server.
func (s *Store) Login(identity domain.Identity) {
	s.set(&identity)
}

// SignIn logs in through the backend and records the result.
func (s *Store) SignIn(ctx context.Context, email, password string) (domain.Identity, error) {
	identity, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return domain.Identity{}, err
	}
	s.Login(identity)
	return identity, nil
}

// Logout ends the server session and clears the store. The store is
// cleared even when the backend call fails; that error is returned.
func (s *Store) Logout(ctx context.Context) error {
	err := s.backend.Logout(ctx)
	if err != nil {
		s.logger.Warn("session logout failed", zap.Error(err))
	}
	s.set(nil)
	return err
}

func (s *Store) set(identity *domain.Identity) {
	s.mu.Lock()
	s.generation++
	s.state = State{Identity: identity, Loading: false}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snapshot)
}

// Identity returns the current identity, if any.
func (s *Store) Identity() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Identity == nil {
		return domain.Identity{}, false
	}
	return *s.state.Identity, true
}

// Role returns the current role or RoleNone.
func (s *Store) Role() domain.Role {
	id, ok := s.Identity()
	if !ok {
		return domain.RoleNone
	}
	return id.Role
}

// Loading reports whether the session is still being resolved.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Loading
}

func (s *Store) IsManager() bool     { return s.Role() == domain.RoleManager }
func (s *Store) IsStoreKeeper() bool { return s.Role() == domain.RoleStoreKeeper }

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	out := State{Loading: s.state.Loading}
	if s.state.Identity != nil {
		id := *s.state.Identity
		out.Identity = &id
	}
	return out
}

// Subscribe registers fn to receive every state change. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(state State) {
	s.mu.RLock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(state)
	}
}
