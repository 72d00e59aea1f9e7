package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultCallTimeout = 5 * time.Second

// Client wraps a single document database handle. One Client is
// constructed at process start and injected into every repository;
// nothing in this package is a package-level singleton.
type Client struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

func Connect(ctx context.Context, uri string, database string) (*Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultCallTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	return &Client{
		client:  client,
		db:      client.Database(database),
		timeout: defaultCallTimeout,
	}, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// callCtx bounds every store call so a slow database cannot pin a
// request indefinitely.
func (c *Client) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// All reads every document of a collection into out (a pointer to a slice).
func (c *Client) All(ctx context.Context, collection string, out any) error {
	return c.withRetry(ctx, func(ctx context.Context) error {
		callCtx, cancel := c.callCtx(ctx)
		defer cancel()

		cursor, err := c.Collection(collection).Find(callCtx, bson.M{})
		if err != nil {
			return err
		}
		return cursor.All(callCtx, out)
	})
}

// ByID reads a single document by its store-assigned id. A missing
// document is reported as found=false, not as an error.
func (c *Client) ByID(ctx context.Context, collection string, id primitive.ObjectID, out any) (bool, error) {
	found := false
	err := c.withRetry(ctx, func(ctx context.Context) error {
		callCtx, cancel := c.callCtx(ctx)
		defer cancel()

		err := c.Collection(collection).FindOne(callCtx, bson.M{"_id": id}).Decode(out)
		if err == mongo.ErrNoDocuments {
			found = false
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

// FindByField runs an equality query and decodes the first match into
// out. Zero matches are a valid empty result (found=false).
func (c *Client) FindByField(ctx context.Context, collection string, field string, value any, out any) (bool, error) {
	found := false
	err := c.withRetry(ctx, func(ctx context.Context) error {
		callCtx, cancel := c.callCtx(ctx)
		defer cancel()

		err := c.Collection(collection).FindOne(callCtx, bson.M{field: value}).Decode(out)
		if err == mongo.ErrNoDocuments {
			found = false
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

// Insert writes a new document and returns its assigned id. Not
// retried: a replayed insert after an ambiguous failure could
// duplicate the document.
func (c *Client) Insert(ctx context.Context, collection string, doc any) (primitive.ObjectID, error) {
	callCtx, cancel := c.callCtx(ctx)
	defer cancel()

	res, err := c.Collection(collection).InsertOne(callCtx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("store: unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// Update applies a field-level $set to the document with the given id.
func (c *Client) Update(ctx context.Context, collection string, id primitive.ObjectID, fields bson.M) error {
	callCtx, cancel := c.callCtx(ctx)
	defer cancel()

	_, err := c.Collection(collection).UpdateOne(
		callCtx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
	)
	return err
}
