package explorer

import (
	"context"
	"strings"
	"sync"

	"github.com/pluto-protocol/pluto_terminal/internal/store"
)

// DefaultPageSize is the directory page granularity.
const DefaultPageSize = 50

// Service serves the global registry directory: peer-published nodes first,
// then the cached synthetic tail. The synthetic tail is generated once and
// cached; a corrupt cache regenerates.
type Service struct {
	mu  sync.Mutex
	kv  *store.Store
	gen Generator
}

// NewService builds the directory service.
func NewService(kv *store.Store, gen Generator) *Service {
	if gen == nil {
		gen = SyntheticGenerator{}
	}
	return &Service{kv: kv, gen: gen}
}

// Directory returns the full node list: published nodes ahead of the
// synthetic directory, deduplicated by id with the earlier entry winning.
func (s *Service) Directory(ctx context.Context) ([]Node, error) {
	var published []Node
	if _, err := s.kv.GetJSON(ctx, store.KeyPublicNodes, &published); err != nil {
		return nil, err
	}
	synthetic, err := s.synthetic(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(published)+len(synthetic))
	out := make([]Node, 0, len(published)+len(synthetic))
	for _, n := range published {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		n.Published = true
		out = append(out, n)
	}
	for _, n := range synthetic {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		out = append(out, n)
	}
	return out, nil
}

func (s *Service) synthetic(ctx context.Context) ([]Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cached []Node
	ok, err := s.kv.GetJSON(ctx, store.KeyRegistryCache, &cached)
	if err != nil {
		return nil, err
	}
	if ok && len(cached) > 0 {
		return cached, nil
	}
	nodes := s.gen.Nodes()
	if err := s.kv.SetJSON(ctx, store.KeyRegistryCache, nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// Search filters nodes by case-insensitive substring match against name, id
// and symbol. An empty query matches everything.
func Search(nodes []Node, query string) []Node {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nodes
	}
	out := make([]Node, 0)
	for _, n := range nodes {
		if strings.Contains(strings.ToLower(n.Name), query) ||
			strings.Contains(strings.ToLower(n.ID), query) ||
			strings.Contains(strings.ToLower(n.Symbol), query) {
			out = append(out, n)
		}
	}
	return out
}

// Paginate returns the cumulative window: everything up to and including
// page. Page numbering starts at 1; size zero falls back to the default.
func Paginate(nodes []Node, page, size int) []Node {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	limit := page * size
	if limit > len(nodes) {
		limit = len(nodes)
	}
	return nodes[:limit]
}

// Publish appends a node to the public registry and raises the published
// marker. Publishing is idempotent on the marker but appends a fresh node
// entry each call; Directory dedup keeps the first.
func (s *Service) Publish(ctx context.Context, node Node) error {
	var published []Node
	if _, err := s.kv.GetJSON(ctx, store.KeyPublicNodes, &published); err != nil {
		return err
	}
	node.Published = true
	published = append(published, node)
	if err := s.kv.SetJSON(ctx, store.KeyPublicNodes, published); err != nil {
		return err
	}
	return s.kv.SetFlag(ctx, store.KeyPublished, true)
}

// Published reports whether this terminal has pushed a node to the public
// registry.
func (s *Service) Published(ctx context.Context) bool {
	return s.kv.GetFlag(ctx, store.KeyPublished)
}
