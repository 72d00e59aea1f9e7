package resolver

import (
	"context"
	"errors"
	"fmt"

	"storefront-auth/internal/auth"
	"storefront-auth/internal/identity"
)

// StoreReconciler resolves federated identities against the document
// store. This is the canonical reconciler.
type StoreReconciler struct {
	identities identity.Store
}

var _ Reconciler = (*StoreReconciler)(nil)

func NewStoreReconciler(identities identity.Store) *StoreReconciler {
	return &StoreReconciler{identities: identities}
}

// Reconcile links the asserted identity to an existing record or
// provisions a new one. The stored role always wins over anything the
// provider says: a federated sign-in refreshes email, name, image and
// provenance, never privileges. A pre-existing local password hash
// survives the update untouched.
func (r *StoreReconciler) Reconcile(
	ctx context.Context,
	asserted *auth.Identity,
) (*identity.IdentityRecord, error) {

	if asserted == nil {
		return nil, errors.New("asserted identity is nil")
	}

	existing, err := r.identities.FindByEmail(ctx, asserted.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup identity: %w", err)
	}

	if existing != nil {
		existing.Email = asserted.Email
		existing.Fullname = asserted.Name
		existing.Image = asserted.Picture
		existing.Type = asserted.Provider

		if err := r.identities.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("update identity: %w", err)
		}
		return existing, nil
	}

	rec, err := r.identities.Insert(ctx, &identity.IdentityRecord{
		Email:    asserted.Email,
		Fullname: asserted.Name,
		Image:    asserted.Picture,
		Role:     identity.RoleMember,
		Type:     asserted.Provider,
	})
	if err != nil {
		// Lost race with a concurrent first sign-in for the same email:
		// fall back to the record the winner created. One re-lookup
		// only; a store that reports a duplicate it cannot produce is
		// broken and gets its error surfaced.
		if errors.Is(err, identity.ErrEmailTaken) {
			winner, lookupErr := r.identities.FindByEmail(ctx, asserted.Email)
			if lookupErr != nil {
				return nil, fmt.Errorf("lookup identity after lost race: %w", lookupErr)
			}
			if winner == nil {
				return nil, fmt.Errorf("insert identity: %w", err)
			}
			return winner, nil
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}

	return rec, nil
}
