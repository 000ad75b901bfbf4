package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/AlexZinkM/multiwallet/internal/model"
	"github.com/AlexZinkM/multiwallet/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "wallets.json"), []byte("test-secret"))
	require.NoError(t, err)

	h := NewWalletHandler(st)
	mux := http.NewServeMux()
	mux.HandleFunc("/wallets", h.List)
	mux.HandleFunc("/wallets/generate", h.Generate)
	mux.HandleFunc("/wallets/import", h.Import)
	mux.HandleFunc("/wallets/export", h.Export)
	mux.HandleFunc("/wallets/active", h.Active)
	mux.HandleFunc("/wallets/remove", h.Remove)
	mux.HandleFunc("/wallets/rename", h.Rename)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getJSON(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestWalletLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	// Generate a first wallet.
	resp := postJSON(t, srv.URL+"/wallets/generate", model.GenerateRequest{UserID: "42"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decode[model.CreatedWallet](t, resp)
	assert.Equal(t, "Wallet #1", created.Name)
	assert.True(t, created.IsActive)
	assert.NotEmpty(t, created.PrivateKey)

	// Import the generated key for a second user.
	resp = postJSON(t, srv.URL+"/wallets/import", model.ImportRequest{
		UserID: "43", PrivateKey: created.PrivateKey, Name: "Main",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	imported := decode[model.WalletSummary](t, resp)
	assert.Equal(t, "Main", imported.Name)
	assert.Equal(t, created.PublicKey, imported.PublicKey)

	// List shows the wallet without a private key field.
	resp = getJSON(t, srv.URL+"/wallets?userId=42")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	wallets := decode[[]model.WalletSummary](t, resp)
	require.Len(t, wallets, 1)
	assert.True(t, wallets[0].IsActive)

	// Export returns key material and a QR code.
	resp = getJSON(t, srv.URL+"/wallets/export?userId=42")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	exported := decode[model.ExportedWallet](t, resp)
	assert.Equal(t, created.PrivateKey, exported.PrivateKey)
	assert.NotEmpty(t, exported.QR)

	// Rename, then remove.
	resp = postJSON(t, srv.URL+"/wallets/rename", model.RenameRequest{
		UserID: "42", WalletID: created.ID, Name: "Savings",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/wallets/remove", model.WalletRefRequest{
		UserID: "42", WalletID: created.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = getJSON(t, srv.URL+"/wallets?userId=42")
	wallets = decode[[]model.WalletSummary](t, resp)
	assert.Empty(t, wallets)
}

func TestSetActiveOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/wallets/generate", model.GenerateRequest{UserID: "42"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	inactive := false
	resp = postJSON(t, srv.URL+"/wallets/generate", model.GenerateRequest{UserID: "42", Name: "Second", SetActive: &inactive})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	second := decode[model.CreatedWallet](t, resp)
	assert.False(t, second.IsActive)

	resp = postJSON(t, srv.URL+"/wallets/active", model.WalletRefRequest{UserID: "42", WalletID: second.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = getJSON(t, srv.URL+"/wallets/active?userId=42")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	active := decode[model.WalletSummary](t, resp)
	assert.Equal(t, second.ID, active.ID)
	assert.Equal(t, "Second", active.Name)
}

func TestErrorCodesOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	// Capacity: the sixth generate is rejected with the wallet_limit code.
	for i := 0; i < store.MaxWallets; i++ {
		resp := postJSON(t, srv.URL+"/wallets/generate", model.GenerateRequest{UserID: "42"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp := postJSON(t, srv.URL+"/wallets/generate", model.GenerateRequest{UserID: "42"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errResp := decode[model.ErrorResponse](t, resp)
	assert.Equal(t, model.CodeWalletLimit, errResp.Code)

	// Bad key material.
	resp = postJSON(t, srv.URL+"/wallets/import", model.ImportRequest{UserID: "43", PrivateKey: "garbage"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp = decode[model.ErrorResponse](t, resp)
	assert.Equal(t, model.CodeInvalidKey, errResp.Code)

	// Missing user id.
	resp = postJSON(t, srv.URL+"/wallets/generate", model.GenerateRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp = decode[model.ErrorResponse](t, resp)
	assert.Equal(t, model.CodeInvalidInput, errResp.Code)

	// Unknown wallet and unknown user are 404s, not errors.
	resp = postJSON(t, srv.URL+"/wallets/remove", model.WalletRefRequest{UserID: "42", WalletID: "bogus"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	errResp = decode[model.ErrorResponse](t, resp)
	assert.Equal(t, model.CodeNotFound, errResp.Code)

	resp = getJSON(t, srv.URL+"/wallets/export?userId=nobody")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = getJSON(t, srv.URL+"/wallets/active?userId=nobody")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
