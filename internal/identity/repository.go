package identity

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront-auth/internal/store"
)

// Repository is the document-store implementation of Store.
type Repository struct {
	client *store.Client
}

var _ Store = (*Repository)(nil)

func NewRepository(client *store.Client) *Repository {
	return &Repository{client: client}
}

// FindByEmail resolves an email to at most one stored identity.
// Matching is exact: no case folding, no trimming. The first match
// wins if the collection ever holds more than one.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*IdentityRecord, error) {
	var rec IdentityRecord
	found, err := r.client.FindByField(ctx, store.UsersCollection, "email", email, &rec)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &rec, nil
}

func (r *Repository) Insert(ctx context.Context, rec *IdentityRecord) (*IdentityRecord, error) {
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	id, err := r.client.Insert(ctx, store.UsersCollection, rec)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	rec.ID = id
	return rec, nil
}

// Update applies a field-level merge to the stored record. Fields the
// record does not carry (a federated sign-in never carries a password
// hash) are left untouched rather than dropped.
func (r *Repository) Update(ctx context.Context, rec *IdentityRecord) error {
	rec.UpdatedAt = time.Now().UTC()

	fields := bson.M{
		"email":      rec.Email,
		"fullname":   rec.Fullname,
		"role":       rec.Role,
		"updated_at": rec.UpdatedAt,
	}
	if rec.Image != "" {
		fields["image"] = rec.Image
	}
	if rec.Type != "" {
		fields["type"] = rec.Type
	}

	return r.client.Update(ctx, store.UsersCollection, rec.ID, fields)
}
