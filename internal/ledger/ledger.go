package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInsufficientFunds occurs when a wallet lacks the balance or holdings to
// cover a requested debit. Checks run before any state mutation.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Transaction types.
const (
	TypeDeposit     = "DEPOSIT"
	TypeWithdraw    = "WITHDRAW"
	TypeSend        = "SEND"
	TypeReceive     = "RECEIVE"
	TypeLong        = "LONG"
	TypeShort       = "SHORT"
	TypeLiquidation = "LIQUIDATION"
)

// Transaction statuses.
const (
	StatusCompleted = "COMPLETED"
	StatusPending   = "PENDING"
	StatusFailed    = "FAILED"
)

// Transaction is an immutable log entry. Entries are prepended to a profile's
// history and never mutated after creation.
type Transaction struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Asset       string  `json:"asset"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	Timestamp   int64   `json:"timestamp"`
	Address     string  `json:"address,omitempty"`
	CustodyNode string  `json:"custodyNode,omitempty"`
	Leverage    int     `json:"leverage,omitempty"`
}

// Option mutates an entry at construction time.
type Option func(*Transaction)

// WithAddress records the counterparty or destination address.
func WithAddress(address string) Option {
	return func(tx *Transaction) { tx.Address = address }
}

// WithCustodyNode records the settlement venue identifier.
func WithCustodyNode(node string) Option {
	return func(tx *Transaction) { tx.CustodyNode = node }
}

// WithLeverage records the leverage multiple on a perpetual entry.
func WithLeverage(leverage int) Option {
	return func(tx *Transaction) { tx.Leverage = leverage }
}

// WithID overrides the generated entry identifier.
func WithID(id string) Option {
	return func(tx *Transaction) { tx.ID = id }
}

// New builds a completed transaction entry stamped with the current time.
func New(txType, asset string, amount float64, opts ...Option) Transaction {
	tx := Transaction{
		ID:        "TX-" + strings.ToUpper(uuid.NewString()[:8]),
		Type:      txType,
		Asset:     asset,
		Amount:    amount,
		Status:    StatusCompleted,
		Timestamp: time.Now().UTC().UnixMilli(),
	}
	for _, opt := range opts {
		opt(&tx)
	}
	return tx
}

// Prepend returns the log with tx as its newest entry.
func Prepend(log []Transaction, tx Transaction) []Transaction {
	out := make([]Transaction, 0, len(log)+1)
	out = append(out, tx)
	out = append(out, log...)
	return out
}
