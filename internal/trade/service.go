package trade

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pluto-protocol/pluto_terminal/internal/identity"
	"github.com/pluto-protocol/pluto_terminal/internal/latency"
	"github.com/pluto-protocol/pluto_terminal/internal/ledger"
)

var (
	// ErrUnknownSymbol rejects an order for an instrument the board does not
	// quote.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrInvalidAmount rejects a non-positive order size.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidLeverage bounds perpetual leverage.
	ErrInvalidLeverage = errors.New("leverage out of range")
)

// Settlement identifiers stamped onto ledger entries.
const (
	swapBridge  = "PLUTO-SWAP-BRIDGE"
	forexBridge = "FOREX_MPC_BRIDGE"
)

const executionDelay = 1200 * time.Millisecond

// PriceSource quotes the current price for a symbol.
type PriceSource interface {
	Price(symbol string) (float64, bool)
}

// Service executes simulated orders against the active session wallet. Every
// order is a single atomic profile update: funds are checked before any
// mutation and a ledger entry records the fill.
type Service struct {
	session *identity.Store
	prices  PriceSource
	sleep   latency.Sleeper
}

// NewService builds the trade service.
func NewService(session *identity.Store, prices PriceSource, sleep latency.Sleeper) *Service {
	return &Service{session: session, prices: prices, sleep: sleep}
}

// Buy spends USD on an asset at the quoted price and records the fill.
func (s *Service) Buy(ctx context.Context, symbol string, amount float64, venue string) (identity.UserProfile, error) {
	price, err := s.quote(symbol, amount)
	if err != nil {
		return identity.UserProfile{}, err
	}
	if err := s.sleep.Wait(ctx, latency.Jitter(executionDelay, 300*time.Millisecond)); err != nil {
		return identity.UserProfile{}, err
	}
	cost := amount * price
	return s.session.Update(ctx, func(p *identity.UserProfile) error {
		if err := p.Wallet.Debit(cost); err != nil {
			return err
		}
		p.Wallet.AddAsset(symbol, amount)
		p.Append(ledger.New(ledger.TypeReceive, symbol, amount,
			ledger.WithCustodyNode(venueNode(venue)),
		))
		return nil
	})
}

// Sell liquidates an asset position into USD at the quoted price.
func (s *Service) Sell(ctx context.Context, symbol string, amount float64, venue string) (identity.UserProfile, error) {
	price, err := s.quote(symbol, amount)
	if err != nil {
		return identity.UserProfile{}, err
	}
	if err := s.sleep.Wait(ctx, latency.Jitter(executionDelay, 300*time.Millisecond)); err != nil {
		return identity.UserProfile{}, err
	}
	proceeds := amount * price
	return s.session.Update(ctx, func(p *identity.UserProfile) error {
		if err := p.Wallet.ReduceAsset(symbol, amount); err != nil {
			return err
		}
		p.Wallet.Credit(proceeds)
		p.Append(ledger.New(ledger.TypeSend, symbol, amount,
			ledger.WithCustodyNode(venueNode(venue)),
		))
		return nil
	})
}

// Swap converts one asset position into another at the ratio of their
// quoted prices.
func (s *Service) Swap(ctx context.Context, from, to string, amount float64) (identity.UserProfile, error) {
	fromPrice, err := s.quote(from, amount)
	if err != nil {
		return identity.UserProfile{}, err
	}
	toPrice, ok := s.prices.Price(to)
	if !ok || toPrice <= 0 {
		return identity.UserProfile{}, ErrUnknownSymbol
	}
	if err := s.sleep.Wait(ctx, latency.Jitter(executionDelay, 300*time.Millisecond)); err != nil {
		return identity.UserProfile{}, err
	}
	received := amount * fromPrice / toPrice
	return s.session.Update(ctx, func(p *identity.UserProfile) error {
		if err := p.Wallet.ReduceAsset(from, amount); err != nil {
			return err
		}
		p.Wallet.AddAsset(to, received)
		p.Append(ledger.New(ledger.TypeSend, fmt.Sprintf("%s->%s", from, to), amount,
			ledger.WithCustodyNode(swapBridge),
			ledger.WithID(entryID("SWAP")),
		))
		return nil
	})
}

// OpenPosition opens a leveraged perpetual on a forex pair. Only the margin
// (size over leverage) leaves the wallet.
func (s *Service) OpenPosition(ctx context.Context, pair, side string, size float64, leverage int) (identity.UserProfile, error) {
	if side != ledger.TypeLong && side != ledger.TypeShort {
		return identity.UserProfile{}, fmt.Errorf("unknown side %q", side)
	}
	if leverage < 1 || leverage > 100 {
		return identity.UserProfile{}, ErrInvalidLeverage
	}
	if _, err := s.quote(pair, size); err != nil {
		return identity.UserProfile{}, err
	}
	if err := s.sleep.Wait(ctx, latency.Jitter(executionDelay, 300*time.Millisecond)); err != nil {
		return identity.UserProfile{}, err
	}
	margin := size / float64(leverage)
	return s.session.Update(ctx, func(p *identity.UserProfile) error {
		if err := p.Wallet.Debit(margin); err != nil {
			return err
		}
		p.Append(ledger.New(side, pair, margin,
			ledger.WithLeverage(leverage),
			ledger.WithCustodyNode(forexBridge),
			ledger.WithID(entryID("PERP")),
		))
		return nil
	})
}

func (s *Service) quote(symbol string, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	price, ok := s.prices.Price(symbol)
	if !ok || price <= 0 {
		return 0, ErrUnknownSymbol
	}
	return price, nil
}

func venueNode(venue string) string {
	if venue == "" {
		venue = "pluto_dex"
	}
	return "DEX-" + strings.ToUpper(venue)
}

func entryID(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}
