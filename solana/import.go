package solana

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/AlexZinkM/multiwallet/internal/model"
	"github.com/AlexZinkM/multiwallet/internal/store"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// ErrInvalidKey is returned when the supplied private key is not a valid
// Solana secret key in base58 or legacy hex form.
var ErrInvalidKey = errors.New("invalid private key")

// IsInvalidKey checks if error is ErrInvalidKey.
func IsInvalidKey(err error) bool {
	return errors.Is(err, ErrInvalidKey)
}

const secretKeyLen = 64 // ed25519 seed + public key

// Import validates a private key, derives its public key and saves the
// wallet for the user. The key is accepted as base58 or as 128-char hex
// (the format old installs exported), but is always re-encoded to base58
// before storing, so the database holds one encoding only.
func Import(st *store.Store, userID, privateKey, name string, setActive bool) (*model.WalletSummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user id", store.ErrInvalidInput)
	}

	secretKey, err := decodeSecretKey(privateKey)
	if err != nil {
		return nil, err
	}
	defer clear(secretKey)

	key := solana.PrivateKey(secretKey)
	// PublicKey() panics on a key whose public half does not match its
	// seed, so validate first.
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: mismatched key", ErrInvalidKey)
	}

	material := model.KeyMaterial{
		PublicKey:  key.PublicKey().String(),
		PrivateKey: base58.Encode(secretKey),
	}

	return st.AddWallet(userID, material, name, setActive)
}

// decodeSecretKey decodes a base58 or legacy-hex private key and checks it
// is a full 64-byte ed25519 secret key.
func decodeSecretKey(privateKey string) ([]byte, error) {
	if privateKey == "" {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidKey)
	}

	secretKey, err := base58.Decode(privateKey)
	if err != nil || len(secretKey) != secretKeyLen {
		// Old installs exported keys hex-encoded; accept that on input.
		if len(privateKey) == secretKeyLen*2 {
			if fromHex, hexErr := hex.DecodeString(privateKey); hexErr == nil {
				return fromHex, nil
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		return nil, fmt.Errorf("%w: incorrect length", ErrInvalidKey)
	}

	return secretKey, nil
}
