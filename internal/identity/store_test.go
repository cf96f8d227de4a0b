package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/pluto-protocol/pluto_terminal/internal/store"
)

type recordingSyncer struct {
	identifier string
	profile    UserProfile
	calls      int
}

func (r *recordingSyncer) SyncProfile(_ context.Context, identifier string, profile UserProfile) error {
	r.identifier = identifier
	r.profile = profile
	r.calls++
	return nil
}

func openKV(t *testing.T) *store.Store {
	t.Helper()
	kv, err := store.Open(context.Background(), "")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestSetActivePersistsAndSyncs(t *testing.T) {
	kv := openKV(t)
	syncer := &recordingSyncer{}
	ctx := context.Background()

	s, err := NewStore(ctx, kv, syncer)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := s.Active(ctx); err != ErrNoSession {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}

	profile := UserProfile{ID: "PLTO-1", Email: "trader@example.com"}
	if err := s.SetActive(ctx, profile); err != nil {
		t.Fatalf("set active: %v", err)
	}
	if syncer.identifier != "trader@example.com" {
		t.Fatalf("registry not synced: %+v", syncer)
	}

	// A new store over the same kv rehydrates the session.
	reloaded, err := NewStore(ctx, kv, nil)
	if err != nil {
		t.Fatalf("reload store: %v", err)
	}
	active, err := reloaded.Active(ctx)
	if err != nil {
		t.Fatalf("active after reload: %v", err)
	}
	if active.ID != "PLTO-1" {
		t.Fatalf("unexpected rehydrated profile: %+v", active)
	}
}

func TestUpdateRollsBackOnError(t *testing.T) {
	kv := openKV(t)
	syncer := &recordingSyncer{}
	ctx := context.Background()

	s, err := NewStore(ctx, kv, syncer)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := s.SetActive(ctx, UserProfile{ID: "PLTO-1", Email: "trader@example.com"}); err != nil {
		t.Fatalf("set active: %v", err)
	}
	callsBefore := syncer.calls

	boom := errors.New("boom")
	if _, err := s.Update(ctx, func(p *UserProfile) error {
		p.Wallet.BalanceUSD = 999
		return boom
	}); err != boom {
		t.Fatalf("expected mutate error, got %v", err)
	}

	active, err := s.Active(ctx)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if active.Wallet.BalanceUSD != 0 {
		t.Fatalf("failed update leaked: %+v", active.Wallet)
	}
	if syncer.calls != callsBefore {
		t.Fatalf("failed update synced: %d calls", syncer.calls)
	}
}

func TestLogoutClearsSessionButKeepsRegistrySync(t *testing.T) {
	kv := openKV(t)
	ctx := context.Background()

	s, err := NewStore(ctx, kv, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := s.SetActive(ctx, UserProfile{ID: "PLTO-1"}); err != nil {
		t.Fatalf("set active: %v", err)
	}
	if err := s.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := s.Active(ctx); err != ErrNoSession {
		t.Fatalf("expected ErrNoSession after logout, got %v", err)
	}

	var saved UserProfile
	ok, _ := kv.GetJSON(ctx, store.KeySession, &saved)
	if ok {
		t.Fatal("session survived logout")
	}
}

func TestIdentifierPrecedence(t *testing.T) {
	p := UserProfile{ID: "PLTO-1", Email: "a@example.com", Phone: "+123"}
	if p.Identifier() != "a@example.com" {
		t.Fatalf("email should win: %s", p.Identifier())
	}
	p.Email = ""
	if p.Identifier() != "+123" {
		t.Fatalf("phone should win over id: %s", p.Identifier())
	}
	p.Phone = ""
	if p.Identifier() != "PLTO-1" {
		t.Fatalf("id is the fallback: %s", p.Identifier())
	}
}
