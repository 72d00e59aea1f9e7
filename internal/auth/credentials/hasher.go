package credentials

import (
	"golang.org/x/crypto/bcrypt"
)

// hashCost keeps interactive sign-in latency acceptable while staying
// adaptive. Registration and verification must use the same primitive.
const hashCost = 10

// HashPassword hashes a plaintext password using bcrypt. Password
// policy is not enforced here: any secret the caller accepted gets
// hashed.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

// VerifyPassword compares plaintext password with stored hash using
// bcrypt's timing-safe comparison.
func VerifyPassword(hash string, password string) error {
	return bcrypt.CompareHashAndPassword(
		[]byte(hash),
		[]byte(password),
	)
}
