package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config contains all configuration parameters for the application.
// WALLET_SECRET is mandatory: the store refuses to start without it.
type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	WalletSecret string `envconfig:"WALLET_SECRET" required:"true"`
	WalletDBPath string `envconfig:"WALLET_DB_PATH" default:"wallets.json"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
// Fails when WALLET_SECRET is not set.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetWalletDBPath returns path to the wallet database file from configuration
func GetWalletDBPath() string {
	return Get().WalletDBPath
}

// GetWalletSecretBytes returns a copy of the wallet secret.
// Caller must zero the returned slice after use for security.
func GetWalletSecretBytes() []byte {
	secret := Get().WalletSecret
	out := make([]byte, len(secret))
	copy(out, secret)
	return out
}
