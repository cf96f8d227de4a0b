package registry

import (
	"context"
	"testing"

	"github.com/pluto-protocol/pluto_terminal/internal/identity"
)

func TestRegisterReplacesExistingRecord(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	first := identity.UserProfile{ID: "PLTO-1", Email: "trader@example.com"}
	if err := svc.Register(ctx, "trader@example.com", "first-secret", first); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	second := identity.UserProfile{ID: "PLTO-2", Email: "trader@example.com"}
	if err := svc.Register(ctx, "trader@example.com", "second-secret", second); err != nil {
		t.Fatalf("re-register failed: %v", err)
	}

	peers, err := svc.All(ctx)
	if err != nil {
		t.Fatalf("all failed: %v", err)
	}
	if len(peers) != 1 {
		t.Fatalf("expected one record per identifier, got %d", len(peers))
	}
	if peers[0].Profile.ID != "PLTO-2" {
		t.Fatalf("expected replacement to win, got %s", peers[0].Profile.ID)
	}
	if _, err := svc.Verify(ctx, "trader@example.com", "first-secret"); err != ErrInvalidCredential {
		t.Fatalf("old secret should be invalid, got %v", err)
	}
}

func TestVerify(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	profile := identity.UserProfile{ID: "PLTO-1", Email: "trader@example.com"}
	if err := svc.Register(ctx, "trader@example.com", "super-secret", profile); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	got, err := svc.Verify(ctx, "trader@example.com", "super-secret")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if got.ID != "PLTO-1" {
		t.Fatalf("unexpected profile: %+v", got)
	}

	if _, err := svc.Verify(ctx, "trader@example.com", "wrong"); err != ErrInvalidCredential {
		t.Fatalf("expected ErrInvalidCredential for wrong secret, got %v", err)
	}
	if _, err := svc.Verify(ctx, "nobody@example.com", "super-secret"); err != ErrInvalidCredential {
		t.Fatalf("expected ErrInvalidCredential for unknown identifier, got %v", err)
	}
}

func TestSyncProfilePatchesRecord(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	profile := identity.UserProfile{ID: "PLTO-1", Email: "trader@example.com"}
	if err := svc.Register(ctx, "trader@example.com", "super-secret", profile); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	profile.Wallet.BalanceUSD = 777
	if err := svc.SyncProfile(ctx, "trader@example.com", profile); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	peer, ok, err := svc.Find(ctx, "trader@example.com")
	if err != nil || !ok {
		t.Fatalf("find failed: %v %v", ok, err)
	}
	if peer.Profile.Wallet.BalanceUSD != 777 {
		t.Fatalf("profile not patched: %+v", peer.Profile.Wallet)
	}
	if _, err := svc.Verify(ctx, "trader@example.com", "super-secret"); err != nil {
		t.Fatalf("sync must not disturb the credential: %v", err)
	}
}

func TestFindByWeb3Address(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	plain := identity.UserProfile{ID: "PLTO-1", Email: "a@example.com"}
	linked := identity.UserProfile{ID: "PLTO-2", Email: "b@example.com", Web3Address: "0xabc"}
	if err := svc.Register(ctx, "a@example.com", "secret-one", plain); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.Register(ctx, "b@example.com", "secret-two", linked); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	peer, found, err := svc.FindByWeb3Address(ctx)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if !found || peer.Profile.ID != "PLTO-2" {
		t.Fatalf("expected linked peer, got %v %+v", found, peer)
	}
}
