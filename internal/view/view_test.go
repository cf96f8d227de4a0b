package view

import (
	"testing"

	"github.com/pluto-protocol/pluto_terminal/internal/identity"
)

func TestNavigateAndBack(t *testing.T) {
	r := NewRouter(Landing)

	if got := r.Navigate(Dashboard); got != Dashboard {
		t.Fatalf("navigate returned %s", got)
	}
	if got := r.Navigate(Wallet); got != Wallet {
		t.Fatalf("navigate returned %s", got)
	}
	if r.Depth() != 3 {
		t.Fatalf("unexpected depth: %d", r.Depth())
	}

	if got := r.Back(); got != Dashboard {
		t.Fatalf("back returned %s", got)
	}
	if got := r.Back(); got != Landing {
		t.Fatalf("back returned %s", got)
	}
}

func TestBackAtRootIsNoOp(t *testing.T) {
	r := NewRouter(Landing)
	if got := r.Back(); got != Landing {
		t.Fatalf("back at root returned %s", got)
	}
	if r.Depth() != 1 {
		t.Fatalf("back at root changed depth: %d", r.Depth())
	}
}

func TestNavigateToCurrentViewIsNoOp(t *testing.T) {
	r := NewRouter(Dashboard)
	r.Navigate(Dashboard)
	if r.Depth() != 1 {
		t.Fatalf("repeat navigation grew the stack: %d", r.Depth())
	}
}

func TestResolveWithoutSession(t *testing.T) {
	if got := Resolve(GlobalExplorer, nil); got != GlobalExplorer {
		t.Fatalf("public view blocked: %s", got)
	}
	if got := Resolve(PublicNode, nil); got != PublicNode {
		t.Fatalf("public view blocked: %s", got)
	}
	if got := Resolve(Wallet, nil); got != Landing {
		t.Fatalf("private view without session resolved to %s", got)
	}
}

func TestResolveAdminGate(t *testing.T) {
	user := &identity.UserProfile{ID: "PLTO-1", Role: identity.RoleUser}
	if got := Resolve(Admin, user); got != Dashboard {
		t.Fatalf("non-creator reached admin: %s", got)
	}
	creator := &identity.UserProfile{ID: "PLTO-2", Role: identity.RoleCreator}
	if got := Resolve(Admin, creator); got != Admin {
		t.Fatalf("creator blocked from admin: %s", got)
	}
}

func TestResetReplacesStack(t *testing.T) {
	r := NewRouter(Landing)
	r.Navigate(Dashboard)
	r.Navigate(Settings)
	r.Reset(Landing)
	if r.Current() != Landing || r.Depth() != 1 {
		t.Fatalf("reset left stack: %s depth=%d", r.Current(), r.Depth())
	}
}
