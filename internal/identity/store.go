package identity

import (
	"context"
	"errors"
	"sync"

	"github.com/pluto-protocol/pluto_terminal/internal/store"
)

// ErrNoSession indicates no profile is active.
var ErrNoSession = errors.New("no active session")

// ProfileSyncer receives the latest copy of the active profile so a separate
// collection can stay consistent with it. Implemented by the peer registry.
type ProfileSyncer interface {
	SyncProfile(ctx context.Context, identifier string, profile UserProfile) error
}

// Store owns the active session profile. Every change is persisted wholesale
// and propagated to the syncer, keeping the peer registry's copy of the
// profile eventually consistent with the live session. Single-writer: one
// logical session per terminal instance.
type Store struct {
	mu     sync.Mutex
	kv     *store.Store
	syncer ProfileSyncer
	active *UserProfile
}

// NewStore builds the session store and rehydrates any persisted session.
// A corrupt persisted session degrades to no session.
func NewStore(ctx context.Context, kv *store.Store, syncer ProfileSyncer) (*Store, error) {
	s := &Store{kv: kv, syncer: syncer}
	var saved UserProfile
	ok, err := kv.GetJSON(ctx, store.KeySession, &saved)
	if err != nil {
		return nil, err
	}
	if ok {
		s.active = &saved
	}
	return s, nil
}

// Active returns a copy of the active profile.
func (s *Store) Active(ctx context.Context) (UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return UserProfile{}, ErrNoSession
	}
	return *s.active, nil
}

// SetActive activates a profile, persists it, and patches the registry copy.
func (s *Store) SetActive(ctx context.Context, profile UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, profile)
}

// Update applies mutate to the active profile under the store lock, then
// persists and syncs the result. The mutation never partially applies: an
// error from mutate leaves the profile untouched.
func (s *Store) Update(ctx context.Context, mutate func(*UserProfile) error) (UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return UserProfile{}, ErrNoSession
	}
	updated := *s.active
	if err := mutate(&updated); err != nil {
		return UserProfile{}, err
	}
	if err := s.commit(ctx, updated); err != nil {
		return UserProfile{}, err
	}
	return updated, nil
}

// Logout clears the session and the published flag. The peer registry keeps
// its record so the identity can log back in.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
	return s.kv.Delete(ctx, store.KeySession, store.KeyPublished)
}

// Reset drops the in-memory session without touching persistence. Used after
// the underlying store has been wiped.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
}

func (s *Store) commit(ctx context.Context, profile UserProfile) error {
	if err := s.kv.SetJSON(ctx, store.KeySession, profile); err != nil {
		return err
	}
	s.active = &profile
	if s.syncer != nil {
		if err := s.syncer.SyncProfile(ctx, profile.Identifier(), profile); err != nil {
			return err
		}
	}
	return nil
}
