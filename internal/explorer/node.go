package explorer

// Kind classifies where a directory node came from.
type Kind string

const (
	// KindGenesis marks the protocol's own seed nodes.
	KindGenesis Kind = "GENESIS"
	// KindInstitutional marks tier-2 synthetic nodes near the head of the
	// directory.
	KindInstitutional Kind = "INSTITUTIONAL"
	// KindCommunity marks the long tail of synthetic tier-3 nodes.
	KindCommunity Kind = "COMMUNITY"
	// KindPublished marks nodes pushed into the public registry by a peer.
	KindPublished Kind = "PUBLISHED"
)

// Node is one entry in the global registry directory.
type Node struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	TVL       string `json:"tvl"`
	Status    string `json:"status"`
	Health    int    `json:"health"`
	Tier      int    `json:"tier"`
	Published bool   `json:"published,omitempty"`
}

// Kind derives the node's classification from its tier and provenance.
func (n Node) Kind() Kind {
	switch {
	case n.Published:
		return KindPublished
	case n.Tier == 1:
		return KindGenesis
	case n.Tier == 2:
		return KindInstitutional
	default:
		return KindCommunity
	}
}
