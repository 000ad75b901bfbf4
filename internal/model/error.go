package model

// ErrorResponse is the consistent JSON structure for all API error responses.
// Code lets callers branch on the failure kind without parsing Error text.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error codes used in ErrorResponse.Code.
const (
	CodeInvalidInput = "invalid_input"
	CodeInvalidKey   = "invalid_key"
	CodeWalletLimit  = "wallet_limit"
	CodeNotFound     = "not_found"
	CodeInternal     = "internal"
)
