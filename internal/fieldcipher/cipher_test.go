package fieldcipher

import (
	"encoding/base64"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chirag2510/QuizApp-React-DotNet/internal/config"
)

func newTestCipher(t *testing.T, secret string) *Cipher {
	t.Helper()
	c, err := New(config.AuthConfig{SecretKey: secret})
	require.NoError(t, err)
	return c
}

func TestRoundTrip(t *testing.T) {
	c := newTestCipher(t, "test-secret")

	inputs := []string{"", "0", "7", "10", "30", "4294967296", "18446744073709551615", "héllo wörld"}
	for i := 0; i < 200; i++ {
		inputs = append(inputs, strconv.Itoa(i*37))
	}

	for _, in := range inputs {
		ct, err := c.Encrypt(in)
		require.NoError(t, err)
		assert.NotEqual(t, in, ct)

		got, err := c.Decrypt(ct)
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}
}

func TestEncryptUsesFreshNonce(t *testing.T) {
	c := newTestCipher(t, "test-secret")

	a, err := c.Encrypt("42")
	require.NoError(t, err)
	b, err := c.Encrypt("42")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDecryptRejectsMalformedInput(t *testing.T) {
	c := newTestCipher(t, "test-secret")

	valid, err := c.Encrypt("15")
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(valid)
	require.NoError(t, err)

	tampered := append([]byte(nil), raw...)
	tampered[len(tampered)-1] ^= 0xff

	cases := map[string]string{
		"empty":       "",
		"not base64":  "%%%not-base64%%%",
		"too short":   base64.StdEncoding.EncodeToString([]byte("short")),
		"tampered":    base64.StdEncoding.EncodeToString(tampered),
		"truncated":   valid[:len(valid)-8],
		"plain digit": "10",
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := c.Decrypt(in)
			require.Error(t, err)
			assert.Empty(t, got)

			var decErr *DecryptionError
			assert.True(t, errors.As(err, &decErr), "want DecryptionError, got %T", err)
		})
	}
}

func TestDecryptWithDifferentKeyFails(t *testing.T) {
	a := newTestCipher(t, "key-a")
	b := newTestCipher(t, "key-b")

	ct, err := a.Encrypt("20")
	require.NoError(t, err)

	_, err = b.Decrypt(ct)
	var decErr *DecryptionError
	require.ErrorAs(t, err, &decErr)
}

func TestNewRejectsEmptySecret(t *testing.T) {
	_, err := New(config.AuthConfig{})
	require.Error(t, err)
}

func TestConcurrentUse(t *testing.T) {
	c := newTestCipher(t, "test-secret")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			in := strconv.Itoa(n)
			ct, err := c.Encrypt(in)
			if !assert.NoError(t, err) {
				return
			}
			got, err := c.Decrypt(ct)
			assert.NoError(t, err)
			assert.Equal(t, in, got)
		}(i)
	}
	wg.Wait()
}
