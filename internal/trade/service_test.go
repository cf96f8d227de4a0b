package trade

import (
	"context"
	"testing"

	"github.com/pluto-protocol/pluto_terminal/internal/identity"
	"github.com/pluto-protocol/pluto_terminal/internal/latency"
	"github.com/pluto-protocol/pluto_terminal/internal/ledger"
	"github.com/pluto-protocol/pluto_terminal/internal/store"
	"github.com/pluto-protocol/pluto_terminal/internal/wallet"
)

type fixedPrices map[string]float64

func (p fixedPrices) Price(symbol string) (float64, bool) {
	price, ok := p[symbol]
	return price, ok
}

func newSession(t *testing.T, balance float64) *identity.Store {
	t.Helper()
	ctx := context.Background()
	kv, err := store.Open(ctx, "")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	session, err := identity.NewStore(ctx, kv, nil)
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	profile := identity.UserProfile{
		ID:     "PLTO-1",
		Email:  "trader@example.com",
		Role:   identity.RoleUser,
		Wallet: wallet.Wallet{BalanceUSD: balance, Assets: []wallet.Asset{{Symbol: "PLTO", Amount: 1000}}},
	}
	if err := session.SetActive(ctx, profile); err != nil {
		t.Fatalf("activate: %v", err)
	}
	return session
}

func newTradeService(t *testing.T, balance float64) (*Service, *identity.Store) {
	session := newSession(t, balance)
	prices := fixedPrices{"BTC": 50_000, "ETH": 2_500, "PLTO": 1, "EUR/USD": 1.08}
	return NewService(session, prices, latency.Instant{}), session
}

func TestBuyFillsOrder(t *testing.T) {
	svc, _ := newTradeService(t, 10_000)
	ctx := context.Background()

	profile, err := svc.Buy(ctx, "ETH", 2, "kraken")
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if profile.Wallet.BalanceUSD != 5_000 {
		t.Fatalf("unexpected balance: %v", profile.Wallet.BalanceUSD)
	}
	if profile.Wallet.Holding("ETH") != 2 {
		t.Fatalf("position missing: %+v", profile.Wallet.Assets)
	}
	tx := profile.Transactions[0]
	if tx.Type != ledger.TypeReceive || tx.Asset != "ETH" || tx.CustodyNode != "DEX-KRAKEN" {
		t.Fatalf("unexpected fill entry: %+v", tx)
	}
}

func TestBuyInsufficientFundsLeavesWallet(t *testing.T) {
	svc, session := newTradeService(t, 10_000)
	ctx := context.Background()

	if _, err := svc.Buy(ctx, "BTC", 1, "binance"); err != ledger.ErrInsufficientFunds {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	active, err := session.Active(ctx)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if active.Wallet.BalanceUSD != 10_000 || len(active.Transactions) != 0 {
		t.Fatalf("failed order mutated wallet: %+v", active.Wallet)
	}
}

func TestSellCreditsProceeds(t *testing.T) {
	svc, _ := newTradeService(t, 10_000)
	ctx := context.Background()

	profile, err := svc.Sell(ctx, "PLTO", 500, "")
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if profile.Wallet.BalanceUSD != 10_500 {
		t.Fatalf("proceeds not credited: %v", profile.Wallet.BalanceUSD)
	}
	if profile.Wallet.Holding("PLTO") != 500 {
		t.Fatalf("position not reduced: %+v", profile.Wallet.Assets)
	}
	if profile.Transactions[0].CustodyNode != "DEX-PLUTO_DEX" {
		t.Fatalf("default venue not applied: %+v", profile.Transactions[0])
	}
}

func TestSwapConvertsAtPriceRatio(t *testing.T) {
	svc, _ := newTradeService(t, 10_000)
	ctx := context.Background()

	profile, err := svc.Swap(ctx, "PLTO", "ETH", 1000)
	if err != nil {
		t.Fatalf("swap: %v", err)
	}
	if profile.Wallet.Holding("PLTO") != 0 {
		t.Fatalf("source not drained: %+v", profile.Wallet.Assets)
	}
	if got := profile.Wallet.Holding("ETH"); got != 0.4 {
		t.Fatalf("unexpected converted amount: %v", got)
	}
	for _, a := range profile.Wallet.Assets {
		if a.Amount == 0 {
			t.Fatalf("zero position survived swap: %+v", a)
		}
	}
	tx := profile.Transactions[0]
	if tx.CustodyNode != swapBridge || tx.ID[:5] != "SWAP-" {
		t.Fatalf("unexpected swap entry: %+v", tx)
	}
}

func TestOpenPositionDebitsMarginOnly(t *testing.T) {
	svc, _ := newTradeService(t, 10_000)
	ctx := context.Background()

	profile, err := svc.OpenPosition(ctx, "EUR/USD", ledger.TypeLong, 5_000, 50)
	if err != nil {
		t.Fatalf("open position: %v", err)
	}
	if profile.Wallet.BalanceUSD != 9_900 {
		t.Fatalf("expected margin debit of 100, balance=%v", profile.Wallet.BalanceUSD)
	}
	tx := profile.Transactions[0]
	if tx.Type != ledger.TypeLong || tx.Leverage != 50 || tx.CustodyNode != forexBridge {
		t.Fatalf("unexpected perp entry: %+v", tx)
	}
}

func TestOrderValidation(t *testing.T) {
	svc, _ := newTradeService(t, 10_000)
	ctx := context.Background()

	if _, err := svc.Buy(ctx, "DOGE", 1, ""); err != ErrUnknownSymbol {
		t.Fatalf("expected ErrUnknownSymbol, got %v", err)
	}
	if _, err := svc.Buy(ctx, "BTC", 0, ""); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := svc.OpenPosition(ctx, "EUR/USD", ledger.TypeShort, 1_000, 0); err != ErrInvalidLeverage {
		t.Fatalf("expected ErrInvalidLeverage, got %v", err)
	}
}
