package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt silently truncates input past 72 bytes; reject instead.
const maxPasswordBytes = 72

var (
	ErrEmptyPassword   = errors.New("password: empty password")
	ErrPasswordTooLong = errors.New("password: longer than 72 bytes")
)

// Hasher hashes account passwords and verifies login attempts.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// BcryptHasher is the bcrypt-backed Hasher for chargemap accounts.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher builds a hasher with the given cost; out-of-range costs
// fall back to bcrypt's default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash derives a bcrypt hash from the plain password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	switch {
	case password == "":
		return "", ErrEmptyPassword
	case len(password) > maxPasswordBytes:
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare checks the plain password against a stored hash.
func (h *BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
