package explorer

import (
	"fmt"
	"math/rand"
	"strings"
)

const syntheticCount = 20000

// First slice of generated nodes is presented as institutional tier 2.
const institutionalCount = 500

var genesisNodes = []Node{
	{ID: "0x1111", Name: "Pluto Core Genesis", Symbol: "PLTO", TVL: "$12.4B", Status: "LIVE", Health: 100, Tier: 1},
	{ID: "0x99F1", Name: "Mars Liquidity Bridge", Symbol: "MARS", TVL: "$2.1B", Status: "Operational", Health: 100, Tier: 1},
}

var (
	namePrefixes = []string{"Global", "Quantum", "Prime", "Titan", "Apex", "Solid", "Iron", "Ether", "Vortex", "Sovereign"}
	nameSuffixes = []string{"Alpha", "Institutional", "Liquidity", "Bridge", "Vault", "Index", "Protocol", "Hub", "Nexus", "Terminal"}
)

// Generator produces the synthetic slice of the global directory. The
// service regenerates it only when the cached copy is missing.
type Generator interface {
	Nodes() []Node
}

// SyntheticGenerator fabricates the directory: the genesis seeds followed by
// a long synthetic tail.
type SyntheticGenerator struct {
	// Rand drives tvl/status/health variation; nil falls back to the global
	// source.
	Rand *rand.Rand
}

// Nodes builds the full synthetic directory.
func (g SyntheticGenerator) Nodes() []Node {
	nodes := make([]Node, 0, len(genesisNodes)+syntheticCount)
	nodes = append(nodes, genesisNodes...)
	for i := 0; i < syntheticCount; i++ {
		prefix := namePrefixes[i%len(namePrefixes)]
		suffix := nameSuffixes[(i/len(namePrefixes))%len(nameSuffixes)]
		tier := 3
		if i < institutionalCount {
			tier = 2
		}
		status := "Operational"
		if g.float() >= 0.9 {
			status = "Syncing"
		}
		nodes = append(nodes, Node{
			ID:     fmt.Sprintf("0x%X", i+5000),
			Name:   fmt.Sprintf("%s %s Node %d", prefix, suffix, i),
			Symbol: strings.ToUpper(prefix[:3]),
			TVL:    fmt.Sprintf("$%.1fM", g.float()*500+1),
			Status: status,
			Health: 80 + g.intn(20),
			Tier:   tier,
		})
	}
	return nodes
}

func (g SyntheticGenerator) float() float64 {
	if g.Rand != nil {
		return g.Rand.Float64()
	}
	return rand.Float64()
}

func (g SyntheticGenerator) intn(n int) int {
	if g.Rand != nil {
		return g.Rand.Intn(n)
	}
	return rand.Intn(n)
}
