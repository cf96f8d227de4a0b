package registry

import (
	"context"
	"sync"

	"github.com/pluto-protocol/pluto_terminal/internal/identity"
)

// RegisteredPeer is one durable authentication record. At most one record
// exists per identifier; registration replaces any prior record.
type RegisteredPeer struct {
	Identifier     string               `json:"identifier"`
	CredentialHash []byte               `json:"passwordHash"`
	Profile        identity.UserProfile `json:"profile"`
}

// Repository persists registered peers. Lookups never fail on absence; the
// boolean result reports presence.
type Repository interface {
	Upsert(ctx context.Context, peer RegisteredPeer) error
	FindByIdentifier(ctx context.Context, identifier string) (RegisteredPeer, bool, error)
	All(ctx context.Context) ([]RegisteredPeer, error)
	// SyncProfile patches the profile field of every record matching the
	// identifier. A full scan-and-patch is fine at the registry's scale: one
	// local device.
	SyncProfile(ctx context.Context, identifier string, profile identity.UserProfile) error
}

type memoryRepository struct {
	mu    sync.RWMutex
	peers []RegisteredPeer
}

// NewMemoryRepository builds an in-memory peer registry for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Upsert(_ context.Context, peer RegisteredPeer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.peers = upsert(r.peers, peer)
	return nil
}

func (r *memoryRepository) FindByIdentifier(_ context.Context, identifier string) (RegisteredPeer, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.peers {
		if p.Identifier == identifier {
			return p, true, nil
		}
	}
	return RegisteredPeer{}, false, nil
}

func (r *memoryRepository) All(_ context.Context) ([]RegisteredPeer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RegisteredPeer, len(r.peers))
	copy(out, r.peers)
	return out, nil
}

func (r *memoryRepository) SyncProfile(_ context.Context, identifier string, profile identity.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.peers = patch(r.peers, identifier, profile)
	return nil
}

func upsert(peers []RegisteredPeer, peer RegisteredPeer) []RegisteredPeer {
	out := peers[:0]
	for _, p := range peers {
		if p.Identifier != peer.Identifier {
			out = append(out, p)
		}
	}
	return append(out, peer)
}

func patch(peers []RegisteredPeer, identifier string, profile identity.UserProfile) []RegisteredPeer {
	for i := range peers {
		if peers[i].Identifier == identifier {
			peers[i].Profile = profile
		}
	}
	return peers
}
