package auth

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Chirag2510/QuizApp-React-DotNet/internal/config"
)

var lowerHex64 = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestSHA256HasherKnownVectors(t *testing.T) {
	h := SHA256Hasher{}

	cases := map[string]string{
		"":         "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		"abc":      "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		"password": "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
	}
	for in, want := range cases {
		got, err := h.Hash(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSHA256HasherIsDeterministicFixedWidth(t *testing.T) {
	h := SHA256Hasher{}

	a, err := h.Hash("Test@123")
	require.NoError(t, err)
	b, err := h.Hash("Test@123")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Regexp(t, lowerHex64, a)
}

func TestSHA256HasherVerify(t *testing.T) {
	h := SHA256Hasher{}
	words := []string{"", "a", "Test@123", "correct horse battery staple", "pässwörd"}

	for _, w := range words {
		digest, err := h.Hash(w)
		require.NoError(t, err)
		assert.True(t, h.Verify(w, digest), "verify %q", w)

		for _, other := range words {
			if other == w {
				continue
			}
			assert.False(t, h.Verify(other, digest), "verify %q against digest of %q", other, w)
		}
	}

	assert.False(t, h.Verify("a", ""))
	assert.False(t, h.Verify("a", "not-a-digest"))
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	a, err := h.Hash("Test@123")
	require.NoError(t, err)
	b, err := h.Hash("Test@123")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "salted digests should differ")
	assert.True(t, h.Verify("Test@123", a))
	assert.True(t, h.Verify("Test@123", b))
	assert.False(t, h.Verify("Test@124", a))
}

func TestNewPasswordHasher(t *testing.T) {
	assert.IsType(t, SHA256Hasher{}, NewPasswordHasher(config.AuthConfig{}))
	assert.IsType(t, BcryptHasher{}, NewPasswordHasher(config.AuthConfig{PasswordSalted: true, BcryptCost: 4}))
}
