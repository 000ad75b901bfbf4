package store

import "errors"

var (
	// ErrInvalidInput means the caller supplied a missing or malformed
	// user id, key material or name.
	ErrInvalidInput = errors.New("invalid wallet data")

	// ErrWalletLimit means the user's collection is already at capacity.
	ErrWalletLimit = errors.New("wallet limit reached (maximum 5 wallets)")
)

// IsWalletLimit checks if error is the capacity error, so callers can show
// a specific "limit reached" message.
func IsWalletLimit(err error) bool {
	return errors.Is(err, ErrWalletLimit)
}

// IsInvalidInput checks if error is a caller-input error.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
