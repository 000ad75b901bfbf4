package model

// GenerateRequest is the body of POST /wallets/generate
type GenerateRequest struct {
	UserID    string `json:"userId"`
	Name      string `json:"name,omitempty"`
	SetActive *bool  `json:"setActive,omitempty"` // defaults to true
}

// ImportRequest is the body of POST /wallets/import.
// PrivateKey is base58, or 128-char hex from legacy exports.
type ImportRequest struct {
	UserID     string `json:"userId"`
	PrivateKey string `json:"privateKey"`
	Name       string `json:"name,omitempty"`
	SetActive  *bool  `json:"setActive,omitempty"` // defaults to true
}

// WalletRefRequest addresses one wallet of one user (set-active, remove).
type WalletRefRequest struct {
	UserID   string `json:"userId"`
	WalletID string `json:"walletId"`
}

// RenameRequest is the body of POST /wallets/rename
type RenameRequest struct {
	UserID   string `json:"userId"`
	WalletID string `json:"walletId"`
	Name     string `json:"name"`
}

// CreatedWallet is returned by wallet generation. PrivateKey is the plaintext
// base58 key, shown exactly once so the user can back it up.
type CreatedWallet struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
	IsActive   bool   `json:"isActive"`
}

// ExportedWallet is returned by wallet export: the active wallet's decrypted
// key material plus a QR code of the address (base64 PNG).
type ExportedWallet struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
	QR         string `json:"qr"`
}

// OpResponse reports the outcome of a mutating wallet operation.
type OpResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
