package api

import (
	"net/http"

	_ "github.com/AlexZinkM/multiwallet/docs"
	"github.com/AlexZinkM/multiwallet/internal/config"
	"github.com/AlexZinkM/multiwallet/internal/handler"
	"github.com/AlexZinkM/multiwallet/internal/store"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter builds the wallet store from configuration and sets up the
// router with handlers.
func SetupRouter() (http.Handler, error) {
	secret := config.GetWalletSecretBytes()
	defer clear(secret)

	st, err := store.New(config.GetWalletDBPath(), secret)
	if err != nil {
		return nil, err
	}

	walletHandler := handler.NewWalletHandler(st)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallets", walletHandler.List)
	mux.HandleFunc("/wallets/generate", walletHandler.Generate)
	mux.HandleFunc("/wallets/import", walletHandler.Import)
	mux.HandleFunc("/wallets/export", walletHandler.Export)
	mux.HandleFunc("/wallets/active", walletHandler.Active)
	mux.HandleFunc("/wallets/remove", walletHandler.Remove)
	mux.HandleFunc("/wallets/rename", walletHandler.Rename)

	return mux, nil
}
