package handler

import (
	"encoding/json"
	"net/http"

	"github.com/AlexZinkM/multiwallet/internal/model"
	"github.com/AlexZinkM/multiwallet/internal/store"
	"github.com/AlexZinkM/multiwallet/solana"
)

// WalletHandler exposes the wallet store over HTTP
type WalletHandler struct {
	store *store.Store
}

// NewWalletHandler creates a new WalletHandler over the given store
func NewWalletHandler(st *store.Store) *WalletHandler {
	return &WalletHandler{store: st}
}

// Generate handles POST /wallets/generate
// @Summary      Generate new wallet
// @Description  Generates a new Solana keypair and adds it to the user's collection. The private key is returned once for backup.
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.GenerateRequest  true  "Generation data"
// @Success      200      {object}  model.CreatedWallet
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallets/generate [post]
func (h *WalletHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), model.CodeInvalidInput)
		return
	}

	created, err := solana.Generate(h.store, req.UserID, req.Name, setActiveOrDefault(req.SetActive))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

// Import handles POST /wallets/import
// @Summary      Import wallet
// @Description  Imports an existing wallet from a base58 (or legacy hex) private key
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportRequest  true  "Import data"
// @Success      200      {object}  model.WalletSummary
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallets/import [post]
func (h *WalletHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), model.CodeInvalidInput)
		return
	}

	summary, err := solana.Import(h.store, req.UserID, req.PrivateKey, req.Name, setActiveOrDefault(req.SetActive))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Export handles GET /wallets/export
// @Summary      Export active wallet
// @Description  Returns the active wallet's decrypted private key and an address QR code
// @Tags         wallets
// @Produce      json
// @Param        userId  query     string  true  "User ID"
// @Success      200     {object}  model.ExportedWallet
// @Failure      404     {object}  model.ErrorResponse
// @Router       /wallets/export [get]
func (h *WalletHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	exported, err := solana.Export(h.store, r.URL.Query().Get("userId"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if exported == nil {
		writeError(w, http.StatusNotFound, "no wallet found", model.CodeNotFound)
		return
	}

	writeJSON(w, http.StatusOK, exported)
}

// List handles GET /wallets
// @Summary      List wallets
// @Description  Lists the user's wallets in insertion order, without private keys
// @Tags         wallets
// @Produce      json
// @Param        userId  query     string  true  "User ID"
// @Success      200     {array}   model.WalletSummary
// @Router       /wallets [get]
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	summaries, err := h.store.ListWallets(r.URL.Query().Get("userId"))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

// GetActive handles GET /wallets/active
// @Summary      Get active wallet
// @Description  Returns the user's active wallet without its private key
// @Tags         wallets
// @Produce      json
// @Param        userId  query     string  true  "User ID"
// @Success      200     {object}  model.WalletSummary
// @Failure      404     {object}  model.ErrorResponse
// @Router       /wallets/active [get]
func (h *WalletHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	detail, err := h.store.GetActiveWallet(r.URL.Query().Get("userId"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if detail == nil {
		writeError(w, http.StatusNotFound, "no wallet found", model.CodeNotFound)
		return
	}

	// Private key stays with the store; this endpoint is informational.
	writeJSON(w, http.StatusOK, model.WalletSummary{
		ID:        detail.ID,
		Name:      detail.Name,
		PublicKey: detail.PublicKey,
		IsActive:  true,
		CreatedAt: detail.CreatedAt,
	})
}

// SetActive handles POST /wallets/active
// @Summary      Set active wallet
// @Description  Marks one of the user's wallets as the active one
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.WalletRefRequest  true  "Wallet reference"
// @Success      200      {object}  model.OpResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /wallets/active [post]
func (h *WalletHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req model.WalletRefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), model.CodeInvalidInput)
		return
	}

	ok, err := h.store.SetActiveWallet(req.UserID, req.WalletID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "wallet not found", model.CodeNotFound)
		return
	}

	writeJSON(w, http.StatusOK, model.OpResponse{Success: true, Message: "Active wallet updated"})
}

// Remove handles POST /wallets/remove
// @Summary      Remove wallet
// @Description  Removes a wallet permanently. The encrypted private key is discarded with it.
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.WalletRefRequest  true  "Wallet reference"
// @Success      200      {object}  model.OpResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /wallets/remove [post]
func (h *WalletHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.WalletRefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), model.CodeInvalidInput)
		return
	}

	ok, err := h.store.RemoveWallet(req.UserID, req.WalletID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "wallet not found", model.CodeNotFound)
		return
	}

	writeJSON(w, http.StatusOK, model.OpResponse{Success: true, Message: "Wallet removed"})
}

// Rename handles POST /wallets/rename
// @Summary      Rename wallet
// @Description  Renames a wallet, suffixing the name if it collides with another wallet
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.RenameRequest  true  "Rename data"
// @Success      200      {object}  model.OpResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /wallets/rename [post]
func (h *WalletHandler) Rename(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), model.CodeInvalidInput)
		return
	}

	ok, err := h.store.RenameWallet(req.UserID, req.WalletID, req.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "wallet not found or name empty", model.CodeNotFound)
		return
	}

	writeJSON(w, http.StatusOK, model.OpResponse{Success: true, Message: "Wallet renamed"})
}

// Active handles both methods of /wallets/active
func (h *WalletHandler) Active(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetActive(w, r)
	case http.MethodPost:
		h.SetActive(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func setActiveOrDefault(setActive *bool) bool {
	if setActive == nil {
		return true
	}
	return *setActive
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, model.ErrorResponse{Error: message, Code: code})
}

// writeStoreError maps store/solana error kinds to HTTP status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case store.IsWalletLimit(err):
		writeError(w, http.StatusConflict, err.Error(), model.CodeWalletLimit)
	case solana.IsInvalidKey(err):
		writeError(w, http.StatusBadRequest, err.Error(), model.CodeInvalidKey)
	case store.IsInvalidInput(err):
		writeError(w, http.StatusBadRequest, err.Error(), model.CodeInvalidInput)
	default:
		writeError(w, http.StatusInternalServerError, err.Error(), model.CodeInternal)
	}
}
