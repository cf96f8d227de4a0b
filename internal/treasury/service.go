package treasury

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pluto-protocol/pluto_terminal/internal/explorer"
	"github.com/pluto-protocol/pluto_terminal/internal/identity"
	"github.com/pluto-protocol/pluto_terminal/internal/latency"
	"github.com/pluto-protocol/pluto_terminal/internal/ledger"
	"github.com/pluto-protocol/pluto_terminal/internal/registry"
	"github.com/pluto-protocol/pluto_terminal/internal/store"
	"github.com/pluto-protocol/pluto_terminal/internal/wallet"
)

var (
	// ErrNotCreator gates every treasury action on the creator role.
	ErrNotCreator = errors.New("creator role required")
	// ErrPeerNotFound indicates the drain target does not exist.
	ErrPeerNotFound = errors.New("peer not found")
	// ErrEmptyDestination rejects a settlement with no destination address.
	ErrEmptyDestination = errors.New("destination address is required")
	// ErrNothingToSettle rejects settlement of an empty treasury.
	ErrNothingToSettle = errors.New("treasury balance is zero")
	// ErrInvalidCode rejects a wrong self-destruct confirmation code. No
	// state is touched.
	ErrInvalidCode = errors.New("invalid confirmation code")
)

// Ledger markers for treasury operations.
const (
	drainAsset      = "ADMIN_DRAIN"
	extractionAsset = "PEER_LIQUIDITY_DRAIN"
	treasuryAddress = "TERMINAL_TREASURY"
)

const actionDelay = 1500 * time.Millisecond

// Peer is one row of the treasury directory.
type Peer struct {
	ID         string         `json:"id"`
	Identifier string         `json:"identifier"`
	Provider   string         `json:"provider,omitempty"`
	BalanceUSD float64        `json:"balanceUsd"`
	Assets     []wallet.Asset `json:"assets"`
	Mock       bool           `json:"-"`
}

// Service is the creator-only treasury console: enumerate peers, drain their
// liquidity into the treasury, settle the treasury out, publish the protocol
// node, and wipe the terminal. Every action checks the active role first.
type Service struct {
	mu      sync.Mutex
	session *identity.Store
	peers   *registry.Service
	kv      *store.Store
	nodes   *explorer.Service
	sleep   latency.Sleeper
	code    string

	// mocks are synthetic counterparties shown alongside registered peers.
	// Draining one zeroes it for the life of the process.
	mocks []identity.UserProfile
}

// NewService builds the treasury service. code is the confirmation code
// demanded by self-destruct.
func NewService(session *identity.Store, peers *registry.Service, kv *store.Store, nodes *explorer.Service, sleep latency.Sleeper, code string) *Service {
	return &Service{
		session: session,
		peers:   peers,
		kv:      kv,
		nodes:   nodes,
		sleep:   sleep,
		code:    code,
		mocks:   seedMockPeers(),
	}
}

func seedMockPeers() []identity.UserProfile {
	return []identity.UserProfile{
		{
			ID:             "peer-alpha-92",
			Email:          "vance.finance@pluto.net",
			Role:           identity.RoleUser,
			WalletProvider: "Ledger",
			Wallet: wallet.Wallet{
				ID:         "w-alpha-92",
				BalanceUSD: 12500,
				Assets:     []wallet.Asset{{Symbol: "BTC", Amount: 0.25}, {Symbol: "SOL", Amount: 12}},
			},
		},
		{
			ID:             "peer-gamma-14",
			Email:          "institutional.hedge@mars.com",
			Role:           identity.RoleUser,
			WalletProvider: "MetaMask",
			Wallet: wallet.Wallet{
				ID:         "w-gamma-14",
				BalanceUSD: 450000,
				Assets:     []wallet.Asset{{Symbol: "ETH", Amount: 84.5}},
			},
		},
	}
}

func (s *Service) requireCreator(ctx context.Context) (identity.UserProfile, error) {
	admin, err := s.session.Active(ctx)
	if err != nil {
		return identity.UserProfile{}, ErrNotCreator
	}
	if admin.Role != identity.RoleCreator {
		return identity.UserProfile{}, ErrNotCreator
	}
	return admin, nil
}

// Directory lists drainable peers: every registered peer except the admin
// itself, followed by the synthetic counterparties.
func (s *Service) Directory(ctx context.Context) ([]Peer, error) {
	admin, err := s.requireCreator(ctx)
	if err != nil {
		return nil, err
	}
	registered, err := s.peers.All(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Peer, 0, len(registered)+len(s.mocks))
	for _, p := range registered {
		if p.Profile.ID == admin.ID {
			continue
		}
		out = append(out, Peer{
			ID:         p.Profile.ID,
			Identifier: p.Identifier,
			Provider:   p.Profile.Wallet.CustodyProvider,
			BalanceUSD: p.Profile.Wallet.BalanceUSD,
			Assets:     p.Profile.Wallet.Assets,
		})
	}
	for _, m := range s.mocks {
		out = append(out, Peer{
			ID:         m.ID,
			Identifier: m.Identifier(),
			Provider:   m.WalletProvider,
			BalanceUSD: m.Wallet.BalanceUSD,
			Assets:     m.Wallet.Assets,
			Mock:       true,
		})
	}
	return out, nil
}

// DrainPeer seizes a peer's entire wallet into the treasury. The target is
// zeroed with a withdrawal entry, the admin is credited with a matching
// receipt, and USD totals across the two wallets are conserved.
func (s *Service) DrainPeer(ctx context.Context, targetID string) (identity.UserProfile, error) {
	if _, err := s.requireCreator(ctx); err != nil {
		return identity.UserProfile{}, err
	}
	if err := s.sleep.Wait(ctx, latency.Jitter(actionDelay, 500*time.Millisecond)); err != nil {
		return identity.UserProfile{}, err
	}

	usd, assets, err := s.seize(ctx, targetID)
	if err != nil {
		return identity.UserProfile{}, err
	}

	return s.session.Update(ctx, func(p *identity.UserProfile) error {
		p.Wallet.Credit(usd)
		p.Wallet.Assets = wallet.MergeAssets(p.Wallet.Assets, assets)
		p.Append(ledger.New(ledger.TypeReceive, extractionAsset, usd,
			ledger.WithAddress(targetID),
			ledger.WithID(entryID("EXTRACTION")),
		))
		return nil
	})
}

// seize empties the target wallet, records the seizure on the target's own
// ledger, and returns what it held.
func (s *Service) seize(ctx context.Context, targetID string) (float64, []wallet.Asset, error) {
	s.mu.Lock()
	for i := range s.mocks {
		if s.mocks[i].ID == targetID {
			usd, assets := s.mocks[i].Wallet.Drain()
			s.mocks[i].Append(ledger.New(ledger.TypeWithdraw, drainAsset, usd,
				ledger.WithAddress(treasuryAddress),
				ledger.WithID(entryID("SEIZURE")),
			))
			s.mu.Unlock()
			return usd, assets, nil
		}
	}
	s.mu.Unlock()

	registered, err := s.peers.All(ctx)
	if err != nil {
		return 0, nil, err
	}
	for _, p := range registered {
		if p.Profile.ID != targetID {
			continue
		}
		profile := p.Profile
		usd, assets := profile.Wallet.Drain()
		profile.Append(ledger.New(ledger.TypeWithdraw, drainAsset, usd,
			ledger.WithAddress(treasuryAddress),
			ledger.WithID(entryID("SEIZURE")),
		))
		if err := s.peers.SyncProfile(ctx, p.Identifier, profile); err != nil {
			return 0, nil, err
		}
		return usd, assets, nil
	}
	return 0, nil, ErrPeerNotFound
}

// Settle wires the full treasury USD balance to an external destination.
func (s *Service) Settle(ctx context.Context, destination string) (identity.UserProfile, error) {
	if _, err := s.requireCreator(ctx); err != nil {
		return identity.UserProfile{}, err
	}
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return identity.UserProfile{}, ErrEmptyDestination
	}
	if err := s.sleep.Wait(ctx, latency.Jitter(actionDelay, 500*time.Millisecond)); err != nil {
		return identity.UserProfile{}, err
	}

	return s.session.Update(ctx, func(p *identity.UserProfile) error {
		if p.Wallet.BalanceUSD <= 0 {
			return ErrNothingToSettle
		}
		amount := p.Wallet.BalanceUSD
		p.Wallet.BalanceUSD = 0
		p.Append(ledger.New(ledger.TypeWithdraw, "USD", amount,
			ledger.WithAddress(destination),
			ledger.WithID(entryID("SETTLE")),
		))
		return nil
	})
}

// PublishNode pushes the creator's protocol onto the public registry. TVL is
// the treasury balance plus a flat mark on every held asset unit.
func (s *Service) PublishNode(ctx context.Context) (explorer.Node, error) {
	admin, err := s.requireCreator(ctx)
	if err != nil {
		return explorer.Node{}, err
	}

	var held float64
	for _, a := range admin.Wallet.Assets {
		held += a.Amount * 2400
	}
	name := strings.ToUpper(localPart(admin.Identifier())) + " PROTOCOL"
	node := explorer.Node{
		ID:     "0x" + strings.ToUpper(uuid.NewString()[:6]),
		Name:   name,
		Symbol: "PLTO",
		TVL:    fmt.Sprintf("$%.1fM", (admin.Wallet.BalanceUSD+held)/1_000_000),
		Status: "LIVE",
		Health: 100,
		Tier:   1,
	}
	if err := s.nodes.Publish(ctx, node); err != nil {
		return explorer.Node{}, err
	}
	return node, nil
}

// SelfDestruct wipes every persisted key and drops the live session. A wrong
// confirmation code leaves everything untouched.
func (s *Service) SelfDestruct(ctx context.Context, code string) error {
	if _, err := s.requireCreator(ctx); err != nil {
		return err
	}
	if code != s.code {
		return ErrInvalidCode
	}
	if err := s.kv.Reset(ctx); err != nil {
		return err
	}
	s.session.Reset()
	return nil
}

func localPart(identifier string) string {
	if at := strings.IndexByte(identifier, '@'); at > 0 {
		return identifier[:at]
	}
	return identifier
}

func entryID(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}
