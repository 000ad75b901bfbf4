package solana

import (
	"fmt"

	"github.com/AlexZinkM/multiwallet/internal/model"
	"github.com/AlexZinkM/multiwallet/internal/store"

	"github.com/gagliardetto/solana-go"
)

// Generate creates a new Solana keypair and saves it to the user's wallet
// collection. The returned CreatedWallet carries the plaintext base58
// private key so the user can back it up; it is shown once and never stored
// in plaintext.
func Generate(st *store.Store, userID, name string, setActive bool) (*model.CreatedWallet, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user id", store.ErrInvalidInput)
	}

	// Generate new Solana keypair
	wallet := solana.NewWallet()
	defer clear(wallet.PrivateKey)

	material := model.KeyMaterial{
		PublicKey:  wallet.PublicKey().String(),
		PrivateKey: wallet.PrivateKey.String(),
	}

	summary, err := st.AddWallet(userID, material, name, setActive)
	if err != nil {
		return nil, err
	}

	return &model.CreatedWallet{
		ID:         summary.ID,
		Name:       summary.Name,
		PublicKey:  summary.PublicKey,
		PrivateKey: material.PrivateKey,
		IsActive:   summary.IsActive,
	}, nil
}
