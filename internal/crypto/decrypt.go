package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

// ErrDecryptFailed is returned when a token does not authenticate under the
// supplied secret - wrong secret or corrupted ciphertext. Callers can rely
// on never receiving garbage plaintext: GCM rejects the token instead.
var ErrDecryptFailed = errors.New("invalid secret or corrupted ciphertext")

// Decrypt reverses Encrypt: decodes the base64 token, re-derives the key
// from the embedded salt and opens the GCM ciphertext.
// secret must be []byte for security (caller should zero it after use)
func Decrypt(token string, secret []byte) (string, error) {
	if token == "" {
		return "", errors.New("cannot decrypt empty token")
	}
	if len(secret) == 0 {
		return "", errors.New("encryption secret is empty")
	}

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("failed to decode token: %w", err)
	}

	if len(raw) <= saltLen+nonceLen {
		return "", errors.New("token too short")
	}

	salt := raw[:saltLen]
	nonce := raw[saltLen : saltLen+nonceLen]
	ciphertext := raw[saltLen+nonceLen:]

	// Derive key from secret
	key, err := scrypt.Key(secret, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrDecryptFailed
	}

	return string(plaintext), nil
}
