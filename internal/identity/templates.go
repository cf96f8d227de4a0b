package identity

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pluto-protocol/pluto_terminal/internal/ledger"
	"github.com/pluto-protocol/pluto_terminal/internal/wallet"
)

// Starting balances differ by role: standard peers onboard with a modest
// vault, the protocol creator with the consolidated treasury.
const (
	userStartingBalance    = 10_000.00
	userStartingPLTO       = 1_000.0
	creatorStartingBalance = 1_000_000.00
	creatorStartingPLTO    = 1_000_000.0
)

func randomHex(n int) string {
	const digits = "0123456789abcdef"
	b := make([]byte, n)
	for i := range b {
		b[i] = digits[rand.Intn(len(digits))]
	}
	return string(b)
}

// NewUserProfile seeds a standard peer profile: funded demo wallet under
// simulated custody, plus a verified audit attestation.
func NewUserProfile() UserProfile {
	return UserProfile{
		ID:    "PLTO-" + randomHex(8),
		Email: "explorer@node-network.io",
		Role:  RoleUser,
		Wallet: wallet.Wallet{
			ID:              "w-" + randomHex(4),
			BalanceUSD:      userStartingBalance,
			CustodyProvider: wallet.CustodyFireblocks,
			Assets:          []wallet.Asset{{Symbol: "PLTO", Amount: userStartingPLTO}},
		},
		AuditCert: &AuditCertificate{
			ID:        "CERT-OZ-9912",
			Auditor:   "OPENZEPPELIN",
			Timestamp: time.Now().Add(-45 * 24 * time.Hour).UnixMilli(),
			Status:    "VERIFIED",
			Hash:      fmt.Sprintf("0x%s...%s", randomHex(6), randomHex(6)),
		},
		Transactions: []ledger.Transaction{},
	}
}

// NewCreatorProfile seeds the protocol creator profile with the governance
// treasury.
func NewCreatorProfile() UserProfile {
	return UserProfile{
		ID:    "PLTO-ADMIN-" + randomHex(4),
		Email: "admin-gatekeeper@sovereign-layer.net",
		Role:  RoleCreator,
		Wallet: wallet.Wallet{
			ID:         "admin-w-" + randomHex(4),
			BalanceUSD: creatorStartingBalance,
			Assets:     []wallet.Asset{{Symbol: "PLTO", Amount: creatorStartingPLTO}},
		},
		Transactions: []ledger.Transaction{},
	}
}

// Template returns the seed profile for a role.
func Template(role Role) UserProfile {
	if role == RoleCreator {
		return NewCreatorProfile()
	}
	return NewUserProfile()
}
