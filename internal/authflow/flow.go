package authflow

import (
	"errors"

	"github.com/pluto-protocol/pluto_terminal/internal/identity"
)

// Step identifies where a flow stands. A flow advances monotonically toward
// StepComplete; failed submissions leave it in place.
type Step string

const (
	StepInitial       Step = "INITIAL"
	StepVerify        Step = "VERIFY"
	StepLoginPassword Step = "LOGIN_PASSWORD"
	StepPasswordSetup Step = "PASSWORD_SETUP"
	StepAgreement     Step = "AGREEMENT"
	StepComplete      Step = "COMPLETE"
)

var (
	// ErrEmptyIdentifier rejects a blank routing channel.
	ErrEmptyIdentifier = errors.New("identifier is required")
	// ErrInvalidCode rejects a wrong attestation code; the flow stays at the
	// verify step for retry.
	ErrInvalidCode = errors.New("invalid verification code")
	// ErrSecretTooShort enforces the minimum secret length.
	ErrSecretTooShort = errors.New("secret must be at least 8 characters")
	// ErrSecretMismatch rejects a failed confirmation.
	ErrSecretMismatch = errors.New("secret confirmation does not match")
	// ErrAgreementRequired rejects completion without explicit acceptance.
	ErrAgreementRequired = errors.New("agreement must be accepted")
	// ErrInvalidStep rejects an operation submitted out of order.
	ErrInvalidStep = errors.New("operation not valid for current step")
)

// Flow is the mutable state of one onboarding/login attempt. One flow is
// live at a time; the service owns all transitions.
type Flow struct {
	Step       Step
	Method     identity.Method
	Role       identity.Role
	Identifier string

	// secret holds the pending credential between password setup and
	// agreement acceptance. Empty for flows that never set a password
	// (returning logins, web3 links).
	secret string
	// existing records whether the identifier was already registered when it
	// was submitted.
	existing bool
}

// Completion is handed to the caller at StepComplete. Secret is non-empty
// only when the flow created a new credential; the caller persists it to the
// registry and activates the session.
type Completion struct {
	Profile identity.UserProfile
	Secret  string
}

// New starts a flow for the given entry method and requested role.
func New(method identity.Method, role identity.Role) *Flow {
	return &Flow{Step: StepInitial, Method: method, Role: role}
}

// Existing reports whether the submitted identifier matched a registered
// peer.
func (f *Flow) Existing() bool {
	return f.existing
}
