package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"storefront-auth/internal/identity"
)

const tokenIssuer = "storefront-auth"

var ErrInvalidToken = errors.New("session: invalid token")

// Claims is the signed session token payload. Identity fields are a
// snapshot taken at sign-in and refreshed only on re-authentication,
// never on ordinary requests.
type Claims struct {
	jwt.RegisteredClaims
	Email    string `json:"email,omitempty"`
	Fullname string `json:"fullname,omitempty"`
	Role     string `json:"role,omitempty"`
	Type     string `json:"type,omitempty"`
	Image    string `json:"image,omitempty"`
}

// Issuer signs and verifies session tokens with a process-wide
// HS256 secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue builds a signed token from an identity record. Enrichment is
// additive only: a claim is set iff the record defines the field, and
// an absent field never clears anything.
func (i *Issuer) Issue(rec *identity.IdentityRecord) (string, *Claims, error) {
	if rec == nil {
		return "", nil, errors.New("session: nil identity record")
	}

	now := i.now().UTC()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   rec.ID.Hex(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	if rec.Email != "" {
		claims.Email = rec.Email
	}
	if rec.Fullname != "" {
		claims.Fullname = rec.Fullname
	}
	if rec.Role != "" {
		claims.Role = rec.Role
	}
	if rec.Type != "" {
		claims.Type = rec.Type
	}
	if rec.Image != "" {
		claims.Image = rec.Image
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", nil, fmt.Errorf("session: sign token: %w", err)
	}

	return signed, claims, nil
}

// Verify parses and validates a signed session token.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(t *jwt.Token) (any, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
