package model

// WalletRecord is one persisted wallet entry. PrivateKey holds the encrypted
// token produced by internal/crypto, never plaintext key material.
// Only Name is ever mutated in place (rename); active status lives on the
// collection, not the record.
type WalletRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
	CreatedAt  string `json:"createdAt"`
}

// UserWallets is one user's wallet collection. ActiveWalletID points at a
// member of Wallets, or is null for an empty collection.
type UserWallets struct {
	Wallets        []WalletRecord `json:"wallets"`
	ActiveWalletID *string        `json:"activeWalletId"`
}

// Database is the full persisted state, keyed by user ID. The whole map is
// the unit of durability: every write replaces the file with a complete
// snapshot.
type Database map[string]*UserWallets

// KeyMaterial is the plaintext keypair handed to AddWallet by the keypair
// collaborators. PrivateKey is base58.
type KeyMaterial struct {
	PublicKey  string
	PrivateKey string
}

// WalletSummary is the non-secret view of a wallet returned to callers.
// IsActive is derived by comparing the record id to the collection's active
// pointer at read time.
type WalletSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	PublicKey string `json:"publicKey"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// WalletDetail is a wallet with its decrypted private key. Handed only to
// the immediate caller; must never be cached or persisted.
type WalletDetail struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
	CreatedAt  string `json:"createdAt"`
}
