package resolver

import (
	"context"

	"storefront-auth/internal/auth"
	"storefront-auth/internal/identity"
)

// Reconciler maps a provider-asserted identity onto a stored identity
// record. It is the ONLY place where federated link-or-provision logic
// lives.
type Reconciler interface {
	Reconcile(
		ctx context.Context,
		asserted *auth.Identity,
	) (*identity.IdentityRecord, error)
}
