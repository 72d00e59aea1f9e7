// Package identitytest provides an in-memory identity.Store for tests.
package identitytest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront-auth/internal/identity"
)

// FakeStore is an in-memory identity.Store. It mirrors the document
// store's contract: lookup misses are (nil, nil), duplicate emails on
// Insert fail with ErrEmailTaken, and Update merges fields without
// touching the password hash.
type FakeStore struct {
	mu      sync.Mutex
	records map[primitive.ObjectID]*identity.IdentityRecord

	// Optional failure injection, returned by the matching method.
	FindErr   error
	InsertErr error
	UpdateErr error
}

var _ identity.Store = (*FakeStore)(nil)

func NewFakeStore() *FakeStore {
	return &FakeStore{
		records: make(map[primitive.ObjectID]*identity.IdentityRecord),
	}
}

// Seed inserts a record directly, bypassing uniqueness checks.
func (f *FakeStore) Seed(rec identity.IdentityRecord) identity.IdentityRecord {
	f.mu.Lock()
	defer f.mu.Unlock()

	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	f.records[rec.ID] = &rec
	return rec
}

// Get returns a copy of the stored record, or nil.
func (f *FakeStore) Get(id primitive.ObjectID) *identity.IdentityRecord {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.records[id]
	if !ok {
		return nil
	}
	out := *rec
	return &out
}

func (f *FakeStore) FindByEmail(_ context.Context, email string) (*identity.IdentityRecord, error) {
	if f.FindErr != nil {
		return nil, f.FindErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, rec := range f.records {
		if rec.Email == email {
			out := *rec
			return &out, nil
		}
	}
	return nil, nil
}

func (f *FakeStore) Insert(_ context.Context, rec *identity.IdentityRecord) (*identity.IdentityRecord, error) {
	if f.InsertErr != nil {
		return nil, f.InsertErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.records {
		if existing.Email == rec.Email {
			return nil, identity.ErrEmailTaken
		}
	}

	now := time.Now().UTC()
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	stored := *rec
	f.records[rec.ID] = &stored
	return rec, nil
}

func (f *FakeStore) Update(_ context.Context, rec *identity.IdentityRecord) error {
	if f.UpdateErr != nil {
		return f.UpdateErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.records[rec.ID]
	if !ok {
		// A real store would quietly match zero documents, but a test
		// updating a record it never stored is a wiring bug.
		return fmt.Errorf("identitytest: update of unknown record %s", rec.ID.Hex())
	}

	stored.Email = rec.Email
	stored.Fullname = rec.Fullname
	stored.Role = rec.Role
	stored.UpdatedAt = time.Now().UTC()
	if rec.Image != "" {
		stored.Image = rec.Image
	}
	if rec.Type != "" {
		stored.Type = rec.Type
	}
	return nil
}
