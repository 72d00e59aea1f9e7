package identity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleMember = "member"

	TypeGoogle = "google"
)

// IdentityRecord is one registered identity in the users collection.
// PasswordHash is set only for password-based identities; Image and
// Type only for federated ones. A record is never deleted by any
// flow in this service.
type IdentityRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Fullname     string             `bson:"fullname" json:"fullname"`
	PasswordHash string             `bson:"password,omitempty" json:"-"`
	Role         string             `bson:"role" json:"role"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Type         string             `bson:"type,omitempty" json:"type,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
