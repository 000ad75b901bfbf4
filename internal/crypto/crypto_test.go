package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := Encrypt("5KJvsngHeMpm884wtkJNzQGaCErckhHJBGFsvd3VyK5qMZXj3hS", secret)
	require.NoError(t, err)
	assert.NotEqual(t, "5KJvsngHeMpm884wtkJNzQGaCErckhHJBGFsvd3VyK5qMZXj3hS", token)

	plaintext, err := Decrypt(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "5KJvsngHeMpm884wtkJNzQGaCErckhHJBGFsvd3VyK5qMZXj3hS", plaintext)
}

func TestEncryptNonDeterministic(t *testing.T) {
	secret := []byte("test-secret")

	first, err := Encrypt("same plaintext", secret)
	require.NoError(t, err)
	second, err := Encrypt("same plaintext", secret)
	require.NoError(t, err)

	// Fresh salt and nonce per call, so tokens must differ.
	assert.NotEqual(t, first, second)

	for _, token := range []string{first, second} {
		plaintext, err := Decrypt(token, secret)
		require.NoError(t, err)
		assert.Equal(t, "same plaintext", plaintext)
	}
}

func TestDecryptWrongSecret(t *testing.T) {
	token, err := Encrypt("secret key material", []byte("right secret"))
	require.NoError(t, err)

	plaintext, err := Decrypt(token, []byte("wrong secret"))
	assert.ErrorIs(t, err, ErrDecryptFailed)
	assert.Empty(t, plaintext)
}

func TestDecryptCorruptedToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := Encrypt("secret key material", secret)
	require.NoError(t, err)

	flipped := []byte(token)
	if flipped[0] == 'A' {
		flipped[0] = 'B'
	} else {
		flipped[0] = 'A'
	}

	cases := map[string]string{
		"not base64":   "!!! not base64 !!!",
		"too short":    "c2hvcnQ=",
		"truncated":    token[:len(token)/2],
		"empty":        "",
		"salt flipped": string(flipped),
	}
	for name, corrupted := range cases {
		t.Run(name, func(t *testing.T) {
			plaintext, err := Decrypt(corrupted, secret)
			assert.Error(t, err)
			assert.Empty(t, plaintext)
		})
	}
}

func TestEncryptRejectsEmptyInputs(t *testing.T) {
	_, err := Encrypt("", []byte("secret"))
	assert.Error(t, err)

	_, err = Encrypt("plaintext", nil)
	assert.Error(t, err)

	_, err = Decrypt("token", nil)
	assert.Error(t, err)
}
