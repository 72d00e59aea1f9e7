package catalog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront-auth/internal/store"
)

const productsCollection = "products"

type Repository struct {
	client *store.Client
}

var _ Store = (*Repository)(nil)

func NewRepository(client *store.Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) All(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.client.All(ctx, productsCollection, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *Repository) ByID(ctx context.Context, id string) (*Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Not a store id at all, so it cannot match anything.
		return nil, nil
	}

	var product Product
	found, err := r.client.ByID(ctx, productsCollection, oid, &product)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &product, nil
}
