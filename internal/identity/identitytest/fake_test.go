package identitytest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront-auth/internal/identity"
)

func TestFakeStore_UpdateUnknownRecordFails(t *testing.T) {
	store := NewFakeStore()

	err := store.Update(context.Background(), &identity.IdentityRecord{
		ID:    primitive.NewObjectID(),
		Email: "ghost@x.com",
	})
	assert.Error(t, err)
}

func TestFakeStore_UpdateSeededRecord(t *testing.T) {
	store := NewFakeStore()
	seeded := store.Seed(identity.IdentityRecord{Email: "a@x.com", Fullname: "A", Role: identity.RoleMember})

	seeded.Fullname = "B"
	require.NoError(t, store.Update(context.Background(), &seeded))

	stored := store.Get(seeded.ID)
	require.NotNil(t, stored)
	assert.Equal(t, "B", stored.Fullname)
}
