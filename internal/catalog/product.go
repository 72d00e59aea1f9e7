package catalog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is one storefront item in the products collection.
type Product struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Price float64            `bson:"price" json:"price"`
	Size  string             `bson:"size" json:"size"`
	Image string             `bson:"image,omitempty" json:"image,omitempty"`
}

// Store is the catalog's read-only persistence boundary. ByID treats
// an unknown or malformed id as a valid empty result (nil, nil).
type Store interface {
	All(ctx context.Context) ([]Product, error)
	ByID(ctx context.Context, id string) (*Product, error)
}
