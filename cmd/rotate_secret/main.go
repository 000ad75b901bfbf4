// Re-encrypts every stored private key under a new secret.
// The current secret and database path come from the environment
// (WALLET_SECRET, WALLET_DB_PATH); the new secret is passed by flag.
// Usage: WALLET_SECRET=<old> go run ./cmd/rotate_secret -new-secret <new>
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/AlexZinkM/multiwallet/internal/config"
	"github.com/AlexZinkM/multiwallet/internal/store"
)

func main() {
	newSecret := flag.String("new-secret", "", "secret to re-encrypt the database with")
	flag.Parse()

	if *newSecret == "" {
		fmt.Fprintln(os.Stderr, "-new-secret is required")
		os.Exit(1)
	}

	if err := config.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	oldSecret := config.GetWalletSecretBytes()
	defer clear(oldSecret)

	st, err := store.New(config.GetWalletDBPath(), oldSecret)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := st.RotateSecret([]byte(*newSecret)); err != nil {
		fmt.Fprintln(os.Stderr, "rotation failed:", err)
		os.Exit(1)
	}

	fmt.Println("wallet database re-encrypted; update WALLET_SECRET before restarting the server")
}
