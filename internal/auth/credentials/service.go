package credentials

import (
	"context"
	"errors"
	"fmt"

	"storefront-auth/internal/identity"
)

var (
	// ErrInvalidCredentials covers both a missing identity and a wrong
	// password. The two are deliberately indistinguishable so a caller
	// cannot enumerate registered emails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrAlreadyRegistered = errors.New("email already exists")
)

type Service struct {
	identities identity.Store
}

func NewService(identities identity.Store) *Service {
	return &Service{identities: identities}
}

// Register creates a password-based identity. Every creation path
// assigns the member role; no request input can escalate it.
func (s *Service) Register(
	ctx context.Context,
	email string,
	fullname string,
	password string,
) (*identity.IdentityRecord, error) {

	existing, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup existing identity: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	rec, err := s.identities.Insert(ctx, &identity.IdentityRecord{
		Email:        email,
		Fullname:     fullname,
		PasswordHash: hash,
		Role:         identity.RoleMember,
	})
	if err != nil {
		// Lost race with a concurrent registration: the unique index
		// caught what the lookup above missed.
		if errors.Is(err, identity.ErrEmailTaken) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}

	return rec, nil
}

// Authenticate resolves an email and verifies the password against
// the stored hash.
func (s *Service) Authenticate(
	ctx context.Context,
	email string,
	password string,
) (*identity.IdentityRecord, error) {

	rec, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup identity: %w", err)
	}
	if rec == nil || rec.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if err := VerifyPassword(rec.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return rec, nil
}
