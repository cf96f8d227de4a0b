package registry

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/pluto-protocol/pluto_terminal/internal/identity"
)

// ErrInvalidCredential covers both an unknown identifier and a wrong secret.
// The shape of the failure does not distinguish the two cases.
var ErrInvalidCredential = errors.New("invalid credential")

// Service manages the durable identifier -> credential/profile map.
type Service struct {
	repo Repository
}

// NewService creates a peer registry service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register stores a hashed credential and profile for the identifier,
// replacing any prior record with the same identifier.
func (s *Service) Register(ctx context.Context, identifier, secret string, profile identity.UserProfile) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.Upsert(ctx, RegisteredPeer{
		Identifier:     identifier,
		CredentialHash: hash,
		Profile:        profile,
	})
}

// Find reports whether the identifier is registered.
func (s *Service) Find(ctx context.Context, identifier string) (RegisteredPeer, bool, error) {
	return s.repo.FindByIdentifier(ctx, identifier)
}

// All lists every registered peer.
func (s *Service) All(ctx context.Context) ([]RegisteredPeer, error) {
	return s.repo.All(ctx)
}

// Verify checks the supplied secret against the stored credential hash and
// returns the stored profile on success.
func (s *Service) Verify(ctx context.Context, identifier, secret string) (identity.UserProfile, error) {
	peer, ok, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return identity.UserProfile{}, err
	}
	if !ok {
		return identity.UserProfile{}, ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword(peer.CredentialHash, []byte(secret)); err != nil {
		return identity.UserProfile{}, ErrInvalidCredential
	}
	return peer.Profile, nil
}

// FindByWeb3Address looks up a peer whose stored profile carries a linked
// external wallet address. Used by the web3 entry adapter to short-circuit
// returning peers.
func (s *Service) FindByWeb3Address(ctx context.Context) (RegisteredPeer, bool, error) {
	peers, err := s.repo.All(ctx)
	if err != nil {
		return RegisteredPeer{}, false, err
	}
	for _, p := range peers {
		if p.Profile.Web3Address != "" {
			return p, true, nil
		}
	}
	return RegisteredPeer{}, false, nil
}

// SyncProfile satisfies identity.ProfileSyncer so the registry copy of the
// active profile tracks the live session.
func (s *Service) SyncProfile(ctx context.Context, identifier string, profile identity.UserProfile) error {
	return s.repo.SyncProfile(ctx, identifier, profile)
}
