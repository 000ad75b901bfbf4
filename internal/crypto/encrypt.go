package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt parameters for private key encryption at rest
	//
	// N=2^15 (~32MB RAM, tens of ms) - every store operation derives a key
	// inline, so the KDF runs on each add/read of a wallet. The teacher-grade
	// N=2^18 takes 0.5-2s per call which is unusable for a bot answering
	// chat commands; 2^15 keeps brute-force expensive while staying
	// interactive.
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12
)

// Encrypt encrypts a private key string with the process secret and returns
// a single base64 token holding salt, nonce and ciphertext. A fresh salt and
// nonce are drawn per call, so encrypting the same plaintext twice yields
// different tokens.
// secret must be []byte for security (caller should zero it after use)
func Encrypt(plaintext string, secret []byte) (string, error) {
	if plaintext == "" {
		return "", errors.New("cannot encrypt empty plaintext")
	}
	if len(secret) == 0 {
		return "", errors.New("encryption secret is empty")
	}

	// Generate salt and nonce
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

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

	ciphertext := aesGCM.Seal(nil, nonce, []byte(plaintext), nil)

	// Token layout: salt || nonce || ciphertext
	token := make([]byte, 0, saltLen+nonceLen+len(ciphertext))
	token = append(token, salt...)
	token = append(token, nonce...)
	token = append(token, ciphertext...)

	return base64.StdEncoding.EncodeToString(token), nil
}
