package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const UsersCollection = "users"

// EnsureIndexes creates the indexes the service relies on. The unique
// index on users.email is load-bearing: the read-before-write
// uniqueness check in registration and reconciliation is not atomic,
// so two concurrent sign-ups with the same email can both pass it.
// The index makes the second insert fail instead of violating the
// one-record-per-email invariant.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	callCtx, cancel := c.callCtx(ctx)
	defer cancel()

	_, err := c.Collection(UsersCollection).Indexes().CreateOne(callCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("store: create users.email index: %w", err)
	}
	return nil
}
