// Package session holds the authenticated identity of the dashboard and
// persists it across restarts.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tarsalgabko/logitrack/internal/metrics"
	"github.com/tarsalgabko/logitrack/internal/model"
	"github.com/tarsalgabko/logitrack/internal/notify"
)

// StorageKey is the key the session is persisted under.
const StorageKey = "auth-storage"

// Storage is durable key-value storage for the session.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// UserPatch lists the profile fields UpdateUser may change. Nil fields are
// left untouched. The identity id is not patchable.
type UserPatch struct {
	Email  *string `json:"email,omitempty"`
	Name   *string `json:"name,omitempty"`
	Role   *string `json:"role,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

func (p UserPatch) apply(u *model.User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
}

type persistedState struct {
	State struct {
		User            *model.User `json:"user"`
		IsAuthenticated bool        `json:"isAuthenticated"`
	} `json:"state"`
	Version int `json:"version"`
}

// Store is the session store. Authentication state is derived from the
// presence of a user, so the two can never disagree.
type Store struct {
	mu      sync.RWMutex
	user    *model.User
	storage Storage
	dir     *Directory
	key     string
	hub     notify.Hub
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// New creates a session store and restores any session persisted in storage.
// A corrupt persisted session, or one whose identity id is no longer in dir,
// is discarded.
func New(ctx context.Context, storage Storage, dir *Directory, opts ...Option) (*Store, error) {
	s := &Store{storage: storage, dir: dir, key: StorageKey}
	for _, opt := range opts {
		opt(s)
	}

	data, ok, err := storage.Load(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	if !ok {
		return s, nil
	}

	var st persistedState
	if err := json.Unmarshal(data, &st); err != nil {
		slog.Warn("discarding unreadable persisted session", "key", s.key, "error", err)
		return s, nil
	}
	if st.State.User != nil {
		u := *st.State.User
		if !dir.HasUser(u.ID) {
			slog.Warn("discarding persisted session of unknown identity", "key", s.key, "id", u.ID, "email", u.Email)
			return s, nil
		}
		s.user = &u
	}
	return s, nil
}

// Login signs in the identity registered under email if password matches
// the shared credential and returns that identity. Callers must use the
// returned user rather than re-reading the store, which a concurrent login
// may already have replaced. A false result leaves the session unchanged;
// the error only reports storage failures.
func (s *Store) Login(ctx context.Context, email, password string) (model.User, bool, error) {
	user, ok := s.dir.Authenticate(email, password)
	if !ok {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return model.User{}, false, nil
	}

	s.mu.Lock()
	if err := s.persist(ctx, &user); err != nil {
		s.mu.Unlock()
		return model.User{}, false, err
	}
	stored := user
	s.user = &stored
	s.mu.Unlock()

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.hub.Publish()
	return user, true, nil
}

// Logout clears the session. The in-memory session is always cleared; the
// error reports a failure to clear the persisted copy.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	err := s.storage.Delete(ctx, s.key)
	s.mu.Unlock()

	s.hub.Publish()
	if err != nil {
		return fmt.Errorf("clearing persisted session: %w", err)
	}
	return nil
}

// UpdateUser merges patch into the signed-in user. It reports false, without
// error, when nobody is signed in.
func (s *Store) UpdateUser(ctx context.Context, patch UserPatch) (bool, error) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return false, nil
	}

	merged := *s.user
	patch.apply(&merged)
	if err := s.persist(ctx, &merged); err != nil {
		s.mu.Unlock()
		return false, err
	}
	s.user = &merged
	s.mu.Unlock()

	s.hub.Publish()
	return true, nil
}

// User returns a copy of the signed-in user.
func (s *Store) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a user is signed in.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Directory returns the identity directory the store authenticates against.
func (s *Store) Directory() *Directory {
	return s.dir
}

// Subscribe registers fn to run after every session change.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}

func (s *Store) persist(ctx context.Context, user *model.User) error {
	var st persistedState
	st.State.User = user
	st.State.IsAuthenticated = user != nil

	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.storage.Save(ctx, s.key, data); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}
	return nil
}
