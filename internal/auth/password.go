package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"

	"github.com/Chirag2510/QuizApp-React-DotNet/internal/config"
)

// PasswordHasher turns plaintext passwords into stored digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// NewPasswordHasher picks the hasher selected by configuration. The unsalted
// SHA-256 hasher is the default so existing stored digests keep verifying.
func NewPasswordHasher(cfg config.AuthConfig) PasswordHasher {
	if cfg.PasswordSalted {
		return BcryptHasher{Cost: cfg.BcryptCost}
	}
	return SHA256Hasher{}
}

// SHA256Hasher produces unsalted, lowercase hex SHA-256 digests (64 chars).
// Identical passwords yield identical digests.
type SHA256Hasher struct{}

// Hash returns the hex digest of password.
func (SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

// Verify re-hashes password and compares in constant time.
func (h SHA256Hasher) Verify(password, digest string) bool {
	computed, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}

// BcryptHasher is the salted alternative.
type BcryptHasher struct {
	Cost int
}

// Hash hashes a plaintext password with configured cost.
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify checks a password against its bcrypt hash.
func (BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
