// Package fieldcipher protects individual stored fields (participant score
// and elapsed time) with authenticated encryption.
//
// Ciphertext is the standard base64 encoding of nonce || sealed payload, so it
// can live in a plain text column.
package fieldcipher

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/Chirag2510/QuizApp-React-DotNet/internal/config"
)

const (
	keySize = 32
	keyInfo = "quiz-field-cipher"
)

// DecryptionError reports ciphertext that cannot be opened.
type DecryptionError struct {
	Reason string
	Err    error
}

func (e *DecryptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decrypt field: %s: %v", e.Reason, e.Err)
	}
	return "decrypt field: " + e.Reason
}

func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// Cipher encrypts and decrypts field values with AES-256-GCM.
// It holds no mutable state and is safe for concurrent use.
type Cipher struct {
	aead cipher.AEAD
}

// New derives the field key from the configured secret.
func New(cfg config.AuthConfig) (*Cipher, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("fieldcipher: secret key is empty")
	}

	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(cfg.SecretKey), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("fieldcipher: derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("fieldcipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("fieldcipher: %w", err)
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext under a fresh random nonce.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("fieldcipher: nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens ciphertext produced by Encrypt.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", &DecryptionError{Reason: "invalid encoding", Err: err}
	}

	nonceSize := c.aead.NonceSize()
	if len(raw) < nonceSize+c.aead.Overhead() {
		return "", &DecryptionError{Reason: fmt.Sprintf("ciphertext too short (%d bytes)", len(raw))}
	}

	plaintext, err := c.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", &DecryptionError{Reason: "authentication failed", Err: err}
	}
	return string(plaintext), nil
}
