package explorer

import (
	"context"
	"math/rand"
	"testing"

	"github.com/pluto-protocol/pluto_terminal/internal/store"
)

func openKV(t *testing.T) *store.Store {
	t.Helper()
	kv, err := store.Open(context.Background(), "")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

// smallGenerator keeps directory tests fast.
type smallGenerator struct{}

func (smallGenerator) Nodes() []Node {
	return []Node{
		{ID: "0x1111", Name: "Pluto Core Genesis", Symbol: "PLTO", Tier: 1},
		{ID: "0xA1", Name: "Quantum Vault Node 1", Symbol: "QUA", Tier: 2},
		{ID: "0xA2", Name: "Titan Bridge Node 2", Symbol: "TIT", Tier: 3},
	}
}

func TestGeneratorShape(t *testing.T) {
	gen := SyntheticGenerator{Rand: rand.New(rand.NewSource(1))}
	nodes := gen.Nodes()

	if len(nodes) != syntheticCount+len(genesisNodes) {
		t.Fatalf("unexpected node count: %d", len(nodes))
	}
	if nodes[0].ID != "0x1111" || nodes[0].Kind() != KindGenesis {
		t.Fatalf("genesis seed missing: %+v", nodes[0])
	}
	first := nodes[len(genesisNodes)]
	if first.Tier != 2 || first.Kind() != KindInstitutional {
		t.Fatalf("head of synthetic tail should be tier 2: %+v", first)
	}
	last := nodes[len(nodes)-1]
	if last.Tier != 3 || last.Kind() != KindCommunity {
		t.Fatalf("tail should be tier 3: %+v", last)
	}
	for _, n := range nodes[:100] {
		if n.Health < 80 || n.Health > 100 {
			t.Fatalf("health out of range: %+v", n)
		}
	}
}

func TestDirectoryCachesSyntheticNodes(t *testing.T) {
	kv := openKV(t)
	svc := NewService(kv, smallGenerator{})
	ctx := context.Background()

	first, err := svc.Directory(ctx)
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("unexpected directory size: %d", len(first))
	}

	var cached []Node
	ok, _ := kv.GetJSON(ctx, store.KeyRegistryCache, &cached)
	if !ok || len(cached) != 3 {
		t.Fatalf("synthetic nodes not cached: %v %d", ok, len(cached))
	}
}

func TestDirectoryPutsPublishedFirstAndDedups(t *testing.T) {
	kv := openKV(t)
	svc := NewService(kv, smallGenerator{})
	ctx := context.Background()

	if err := svc.Publish(ctx, Node{ID: "0x1111", Name: "My Protocol", Symbol: "PLTO"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	nodes, err := svc.Directory(ctx)
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	if nodes[0].Name != "My Protocol" || !nodes[0].Published {
		t.Fatalf("published node not first: %+v", nodes[0])
	}
	for _, n := range nodes[1:] {
		if n.ID == "0x1111" {
			t.Fatalf("duplicate id survived dedup: %+v", n)
		}
	}
	if !svc.Published(ctx) {
		t.Fatal("published marker not raised")
	}
}

func TestSearch(t *testing.T) {
	nodes := smallGenerator{}.Nodes()

	if got := Search(nodes, ""); len(got) != len(nodes) {
		t.Fatalf("empty query should match all, got %d", len(got))
	}
	if got := Search(nodes, "QUANTUM"); len(got) != 1 || got[0].ID != "0xA1" {
		t.Fatalf("case-insensitive name search failed: %+v", got)
	}
	if got := Search(nodes, "0xa2"); len(got) != 1 || got[0].ID != "0xA2" {
		t.Fatalf("id search failed: %+v", got)
	}
	if got := Search(nodes, "plt"); len(got) != 1 {
		t.Fatalf("symbol search failed: %+v", got)
	}
	if got := Search(nodes, "no-such-node"); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestPaginateIsCumulative(t *testing.T) {
	nodes := make([]Node, 120)
	for i := range nodes {
		nodes[i].ID = string(rune('a' + i%26))
	}

	if got := Paginate(nodes, 1, 50); len(got) != 50 {
		t.Fatalf("page 1: %d", len(got))
	}
	if got := Paginate(nodes, 2, 50); len(got) != 100 {
		t.Fatalf("page 2 should include page 1: %d", len(got))
	}
	if got := Paginate(nodes, 5, 50); len(got) != 120 {
		t.Fatalf("overrun should clamp: %d", len(got))
	}
	if got := Paginate(nodes, 0, 0); len(got) != DefaultPageSize {
		t.Fatalf("defaults not applied: %d", len(got))
	}
}
