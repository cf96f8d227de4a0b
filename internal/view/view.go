package view

import (
	"sync"

	"github.com/pluto-protocol/pluto_terminal/internal/identity"
)

// View names a terminal surface.
type View string

const (
	Landing        View = "LANDING"
	Auth           View = "AUTH"
	Dashboard      View = "DASHBOARD"
	Trade          View = "TRADE"
	ForexPerps     View = "FOREX_PERPS"
	Wallet         View = "WALLET"
	Settings       View = "SETTINGS"
	Admin          View = "ADMIN"
	GlobalExplorer View = "GLOBAL_EXPLORER"
	PublicNode     View = "PUBLIC_NODE"
	SecurityAI     View = "SECURITY_AI"
	Support        View = "SUPPORT"
)

// Router tracks the navigation stack for one terminal session. The stack
// never empties: Back at depth one is a no-op.
type Router struct {
	mu    sync.Mutex
	stack []View
}

// NewRouter starts a router at the given root view.
func NewRouter(root View) *Router {
	return &Router{stack: []View{root}}
}

// Navigate pushes the target view. Navigating to the current view is a
// no-op, so repeat taps do not grow the stack.
func (r *Router) Navigate(target View) View {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stack[len(r.stack)-1] != target {
		r.stack = append(r.stack, target)
	}
	return r.stack[len(r.stack)-1]
}

// Back pops the current view and returns the one beneath it.
func (r *Router) Back() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stack) > 1 {
		r.stack = r.stack[:len(r.stack)-1]
	}
	return r.stack[len(r.stack)-1]
}

// Current returns the visible view.
func (r *Router) Current() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stack[len(r.stack)-1]
}

// Depth reports the stack height.
func (r *Router) Depth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stack)
}

// Reset replaces the stack with a single root view. Used after logout and
// self-destruct.
func (r *Router) Reset(root View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stack = []View{root}
}

// Public surfaces reachable without a session.
var public = map[View]bool{
	Landing:        true,
	Auth:           true,
	GlobalExplorer: true,
	PublicNode:     true,
}

// Resolve applies access gating to a navigation target. Without a session
// only public surfaces are reachable; the admin surface demands the creator
// role and silently lands everyone else on the dashboard.
func Resolve(target View, profile *identity.UserProfile) View {
	if profile == nil {
		if public[target] {
			return target
		}
		return Landing
	}
	if target == Admin && profile.Role != identity.RoleCreator {
		return Dashboard
	}
	return target
}
