package registry

import (
	"context"
	"sync"

	"github.com/pluto-protocol/pluto_terminal/internal/identity"
	"github.com/pluto-protocol/pluto_terminal/internal/store"
)

// kvRepository persists the registry as one serialized array, mirroring the
// single-document cache the terminal keeps on device. A corrupt document
// degrades to an empty registry.
type kvRepository struct {
	mu sync.Mutex
	kv *store.Store
}

// NewKVRepository builds a registry backed by the local key-value store.
func NewKVRepository(kv *store.Store) Repository {
	return &kvRepository{kv: kv}
}

func (r *kvRepository) load(ctx context.Context) ([]RegisteredPeer, error) {
	var peers []RegisteredPeer
	if _, err := r.kv.GetJSON(ctx, store.KeyPeerRegistry, &peers); err != nil {
		return nil, err
	}
	return peers, nil
}

func (r *kvRepository) save(ctx context.Context, peers []RegisteredPeer) error {
	return r.kv.SetJSON(ctx, store.KeyPeerRegistry, peers)
}

func (r *kvRepository) Upsert(ctx context.Context, peer RegisteredPeer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	peers, err := r.load(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, upsert(peers, peer))
}

func (r *kvRepository) FindByIdentifier(ctx context.Context, identifier string) (RegisteredPeer, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	peers, err := r.load(ctx)
	if err != nil {
		return RegisteredPeer{}, false, err
	}
	for _, p := range peers {
		if p.Identifier == identifier {
			return p, true, nil
		}
	}
	return RegisteredPeer{}, false, nil
}

func (r *kvRepository) All(ctx context.Context) ([]RegisteredPeer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *kvRepository) SyncProfile(ctx context.Context, identifier string, profile identity.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	peers, err := r.load(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, patch(peers, identifier, profile))
}
