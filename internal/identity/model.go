package identity

import (
	"github.com/pluto-protocol/pluto_terminal/internal/ledger"
	"github.com/pluto-protocol/pluto_terminal/internal/wallet"
)

// Role determines which terminal surfaces a profile may reach.
type Role string

const (
	RoleUser    Role = "USER"
	RoleCreator Role = "CREATOR"
)

// Auth methods accepted by the onboarding flow.
type Method string

const (
	MethodEmail  Method = "EMAIL"
	MethodPhone  Method = "PHONE"
	MethodWeb3   Method = "WEB3"
	MethodGoogle Method = "GOOGLE"
)

// AuditCertificate is an attestation attached to a profile by the audit
// service. Synthetic; carried for display only.
type AuditCertificate struct {
	ID        string `json:"id"`
	Auditor   string `json:"auditor"`
	Timestamp int64  `json:"timestamp"`
	Status    string `json:"status"`
	Hash      string `json:"hash"`
}

// UserProfile is the active session identity. The session store exclusively
// owns the live instance; the peer registry holds its own copy which is
// patched on every session change.
type UserProfile struct {
	ID             string               `json:"id"`
	Email          string               `json:"email,omitempty"`
	Phone          string               `json:"phone,omitempty"`
	Role           Role                 `json:"role"`
	Wallet         wallet.Wallet        `json:"wallet"`
	Transactions   []ledger.Transaction `json:"transactions"`
	Web3Address    string               `json:"web3Address,omitempty"`
	WalletProvider string               `json:"walletProvider,omitempty"`
	AuditCert      *AuditCertificate    `json:"auditCert,omitempty"`
}

// Identifier is the registry lookup key: email, else phone, else id.
func (p UserProfile) Identifier() string {
	if p.Email != "" {
		return p.Email
	}
	if p.Phone != "" {
		return p.Phone
	}
	return p.ID
}

// Append prepends a ledger entry to the profile's history.
func (p *UserProfile) Append(tx ledger.Transaction) {
	p.Transactions = ledger.Prepend(p.Transactions, tx)
}
