package api

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/AlexZinkM/multiwallet/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRouter(t *testing.T) {
	t.Setenv("WALLET_SECRET", "test-secret")
	t.Setenv("WALLET_DB_PATH", filepath.Join(t.TempDir(), "wallets.json"))
	require.NoError(t, config.Init())

	router, err := SetupRouter()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/wallets?userId=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
