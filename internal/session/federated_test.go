package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-auth/internal/auth"
	"storefront-auth/internal/auth/resolver"
	"storefront-auth/internal/identity"
	"storefront-auth/internal/identity/identitytest"
)

// Federated sign-in builds the token from the reconciled record, so
// role and provenance always come from the store, not the provider.
func TestIssue_FromReconciledRecord(t *testing.T) {
	ctx := context.Background()
	store := identitytest.NewFakeStore()
	reconciler := resolver.NewStoreReconciler(store)
	issuer := NewIssuer(testSecret, time.Hour)

	asserted := &auth.Identity{
		Provider: identity.TypeGoogle,
		Email:    "new@x.com",
		Name:     "N",
		Picture:  "http://i",
	}

	rec, err := reconciler.Reconcile(ctx, asserted)
	require.NoError(t, err)

	_, claims, err := issuer.Issue(rec)
	require.NoError(t, err)

	assert.Equal(t, "new@x.com", claims.Email)
	assert.Equal(t, "N", claims.Fullname)
	assert.Equal(t, identity.TypeGoogle, claims.Type)
	assert.Equal(t, "http://i", claims.Image)
	assert.Equal(t, identity.RoleMember, claims.Role)

	// An out-of-band role change shows up on the next sign-in.
	stored, err := store.FindByEmail(ctx, "new@x.com")
	require.NoError(t, err)
	stored.Role = "admin"
	require.NoError(t, store.Update(ctx, stored))

	rec, err = reconciler.Reconcile(ctx, asserted)
	require.NoError(t, err)

	_, claims, err = issuer.Issue(rec)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}
