package identity

import (
	"context"
	"errors"
)

// ErrEmailTaken is returned by Insert when the store's unique index
// rejects a duplicate email. It closes the window left by the
// read-before-write check in the registration and reconciliation
// flows.
var ErrEmailTaken = errors.New("identity: email already registered")

// Store is the persistence boundary for identity records.
// Implementations must treat a lookup miss as a valid empty result:
// FindByEmail returns (nil, nil), never a not-found error.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*IdentityRecord, error)
	Insert(ctx context.Context, rec *IdentityRecord) (*IdentityRecord, error)
	Update(ctx context.Context, rec *IdentityRecord) error
}
