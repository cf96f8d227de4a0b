package authflow

import (
	"context"
	"strings"
	"time"

	"github.com/pluto-protocol/pluto_terminal/internal/identity"
	"github.com/pluto-protocol/pluto_terminal/internal/latency"
	"github.com/pluto-protocol/pluto_terminal/internal/notification"
	"github.com/pluto-protocol/pluto_terminal/internal/registry"
	"github.com/pluto-protocol/pluto_terminal/internal/wallet"
)

// Simulated round-trips for the onboarding channels.
const (
	dispatchDelay = 1800 * time.Millisecond
	oauthDelay    = 3 * time.Second
)

// The oauth adapter resolves every attempt to this fixed identity.
const googleIdentifier = "verified_user@gmail.com"

// Service drives auth flows through their transitions. It owns the
// attestation code and decides, per identifier, whether a flow is a new
// registration or a returning login.
type Service struct {
	peers    *registry.Service
	notifier notification.Notifier
	sleep    latency.Sleeper
	code     string
}

// NewService creates the auth flow service. code is the fixed attestation
// code expected at the verify step.
func NewService(peers *registry.Service, notifier notification.Notifier, sleep latency.Sleeper, code string) *Service {
	return &Service{peers: peers, notifier: notifier, sleep: sleep, code: code}
}

// SubmitIdentifier routes the flow after the entry channel is named. A known
// identifier goes straight to the password login step; an unknown one
// triggers a simulated code dispatch and moves to verification.
func (s *Service) SubmitIdentifier(ctx context.Context, f *Flow, identifier string) error {
	if f.Step != StepInitial {
		return ErrInvalidStep
	}
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return ErrEmptyIdentifier
	}
	if err := s.sleep.Wait(ctx, latency.Jitter(dispatchDelay, 400*time.Millisecond)); err != nil {
		return err
	}

	f.Identifier = identifier
	_, found, err := s.peers.Find(ctx, identifier)
	if err != nil {
		return err
	}
	if found {
		f.existing = true
		f.Step = StepLoginPassword
		return nil
	}

	s.dispatchCode(ctx, f)
	f.Step = StepVerify
	return nil
}

// SubmitCode checks the attestation code. A wrong code leaves the flow at
// the verify step.
func (s *Service) SubmitCode(ctx context.Context, f *Flow, code string) error {
	if f.Step != StepVerify {
		return ErrInvalidStep
	}
	if err := s.sleep.Wait(ctx, latency.Jitter(600*time.Millisecond, 200*time.Millisecond)); err != nil {
		return err
	}
	if code != s.code {
		return ErrInvalidCode
	}
	f.Step = StepPasswordSetup
	return nil
}

// SetupPassword records the pending credential for a new registration.
func (s *Service) SetupPassword(_ context.Context, f *Flow, secret, confirm string) error {
	if f.Step != StepPasswordSetup {
		return ErrInvalidStep
	}
	if len(secret) < 8 {
		return ErrSecretTooShort
	}
	if secret != confirm {
		return ErrSecretMismatch
	}
	f.secret = secret
	f.Step = StepAgreement
	return nil
}

// AcceptAgreement finalizes a registration. The seed profile is bound to the
// submitted identifier on the channel the flow entered through, persisted to
// the peer registry when a credential was set, and handed back for session
// activation.
func (s *Service) AcceptAgreement(ctx context.Context, f *Flow, accepted bool) (Completion, error) {
	if f.Step != StepAgreement {
		return Completion{}, ErrInvalidStep
	}
	if !accepted {
		return Completion{}, ErrAgreementRequired
	}

	profile := identity.Template(f.Role)
	switch f.Method {
	case identity.MethodPhone:
		profile.Phone = f.Identifier
		profile.Email = ""
	case identity.MethodWeb3:
		profile.Web3Address = f.Identifier
	default:
		if f.Identifier != "" {
			profile.Email = f.Identifier
		}
	}

	if f.secret != "" {
		if err := s.peers.Register(ctx, profile.Identifier(), f.secret, profile); err != nil {
			return Completion{}, err
		}
	}

	f.Step = StepComplete
	return Completion{Profile: profile, Secret: f.secret}, nil
}

// SubmitPassword completes a returning login. A failed check leaves the flow
// at the login step; the error does not reveal whether the identifier or the
// secret was wrong.
func (s *Service) SubmitPassword(ctx context.Context, f *Flow, secret string) (Completion, error) {
	if f.Step != StepLoginPassword {
		return Completion{}, ErrInvalidStep
	}
	if err := s.sleep.Wait(ctx, latency.Jitter(600*time.Millisecond, 200*time.Millisecond)); err != nil {
		return Completion{}, err
	}
	profile, err := s.peers.Verify(ctx, f.Identifier, secret)
	if err != nil {
		return Completion{}, err
	}
	f.Step = StepComplete
	return Completion{Profile: profile}, nil
}

// BeginGoogle runs the oauth adapter: a simulated consent round-trip that
// always resolves to the fixed verified identity, then routes the flow the
// same way a submitted identifier would.
func (s *Service) BeginGoogle(ctx context.Context, f *Flow) error {
	if f.Step != StepInitial {
		return ErrInvalidStep
	}
	if err := s.sleep.Wait(ctx, latency.Jitter(oauthDelay, 500*time.Millisecond)); err != nil {
		return err
	}

	f.Method = identity.MethodGoogle
	f.Identifier = googleIdentifier
	_, found, err := s.peers.Find(ctx, googleIdentifier)
	if err != nil {
		return err
	}
	if found {
		f.existing = true
		f.Step = StepLoginPassword
		return nil
	}
	s.dispatchCode(ctx, f)
	f.Step = StepVerify
	return nil
}

// BeginWeb3 runs the wallet adapter. A registry peer with a linked wallet
// short-circuits straight to completion with its stored profile; otherwise
// the flow skips code verification and lands at the agreement step with a
// derived address as its identifier.
func (s *Service) BeginWeb3(ctx context.Context, f *Flow, provider string) (Completion, bool, error) {
	if f.Step != StepInitial {
		return Completion{}, false, ErrInvalidStep
	}
	if err := s.sleep.Wait(ctx, latency.Jitter(dispatchDelay, 400*time.Millisecond)); err != nil {
		return Completion{}, false, err
	}

	f.Method = identity.MethodWeb3
	peer, found, err := s.peers.FindByWeb3Address(ctx)
	if err != nil {
		return Completion{}, false, err
	}
	if found {
		f.existing = true
		f.Identifier = peer.Identifier
		f.Step = StepComplete
		return Completion{Profile: peer.Profile}, true, nil
	}

	f.Identifier = wallet.PseudoAddress(provider)
	f.Step = StepAgreement
	return Completion{}, false, nil
}

// dispatchCode emits the simulated verification notification. Delivery is
// best-effort.
func (s *Service) dispatchCode(ctx context.Context, f *Flow) {
	if s.notifier == nil {
		return
	}
	kind := notification.KindEmail
	if f.Method == identity.MethodPhone {
		kind = notification.KindSMS
	}
	_ = s.notifier.Send(ctx, notification.Message{
		Kind:        kind,
		Title:       "Pluto Protocol Verification",
		Body:        "Your terminal access code is " + s.code,
		Destination: f.Identifier,
	})
}
