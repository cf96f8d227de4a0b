package wallet

import (
	"github.com/pluto-protocol/pluto_terminal/internal/ledger"
)

// Custody providers recognized by the terminal.
const (
	CustodyFireblocks       = "FIREBLOCKS"
	CustodyBitGo            = "BITGO"
	CustodyCoinbase         = "COINBASE"
	CustodyLedgerEnterprise = "LEDGER_ENTERPRISE"
)

// Asset is a single position held in a wallet.
type Asset struct {
	Symbol string  `json:"symbol"`
	Amount float64 `json:"amount"`
}

// Wallet is a stored-value account owned by exactly one profile. Asset
// symbols are unique within a wallet; the balance and every asset amount are
// non-negative by construction.
type Wallet struct {
	ID              string  `json:"id"`
	BalanceUSD      float64 `json:"balanceUsd"`
	Assets          []Asset `json:"assets"`
	CustodyProvider string  `json:"custodyProvider,omitempty"`
}

// MergeAssets folds src into dst: amounts are summed for overlapping symbols
// and new symbols are appended. dst is not mutated.
func MergeAssets(dst, src []Asset) []Asset {
	merged := make([]Asset, len(dst))
	copy(merged, dst)
	for _, incoming := range src {
		found := false
		for i := range merged {
			if merged[i].Symbol == incoming.Symbol {
				merged[i].Amount += incoming.Amount
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, incoming)
		}
	}
	return merged
}

// Debit reduces the USD balance, failing before mutation when the balance
// cannot cover the amount.
func (w *Wallet) Debit(usd float64) error {
	if usd <= 0 {
		return ledger.ErrInsufficientFunds
	}
	if w.BalanceUSD < usd {
		return ledger.ErrInsufficientFunds
	}
	w.BalanceUSD -= usd
	return nil
}

// Credit increases the USD balance.
func (w *Wallet) Credit(usd float64) {
	if usd > 0 {
		w.BalanceUSD += usd
	}
}

// Holding returns the amount held for symbol, zero when absent.
func (w *Wallet) Holding(symbol string) float64 {
	for _, a := range w.Assets {
		if a.Symbol == symbol {
			return a.Amount
		}
	}
	return 0
}

// AddAsset merges a single position into the wallet.
func (w *Wallet) AddAsset(symbol string, amount float64) {
	w.Assets = MergeAssets(w.Assets, []Asset{{Symbol: symbol, Amount: amount}})
}

// ReduceAsset decreases a position, failing before mutation when the holding
// cannot cover the amount. Positions that reach zero are removed.
func (w *Wallet) ReduceAsset(symbol string, amount float64) error {
	if amount <= 0 {
		return ledger.ErrInsufficientFunds
	}
	if w.Holding(symbol) < amount {
		return ledger.ErrInsufficientFunds
	}
	out := w.Assets[:0]
	for _, a := range w.Assets {
		if a.Symbol == symbol {
			a.Amount -= amount
		}
		if a.Amount > 0 {
			out = append(out, a)
		}
	}
	w.Assets = out
	return nil
}

// ReplaceAsset drops any existing position for symbol and sets a new one.
// Used when an external bridge reports an authoritative balance.
func (w *Wallet) ReplaceAsset(symbol string, amount float64) {
	out := w.Assets[:0]
	for _, a := range w.Assets {
		if a.Symbol != symbol {
			out = append(out, a)
		}
	}
	w.Assets = append(out, Asset{Symbol: symbol, Amount: amount})
}

// Drain empties the wallet and returns what it held.
func (w *Wallet) Drain() (usd float64, assets []Asset) {
	usd = w.BalanceUSD
	assets = w.Assets
	w.BalanceUSD = 0
	w.Assets = nil
	return usd, assets
}
