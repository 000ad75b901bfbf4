package main

import (
	"flag"
	"net/http"

	"github.com/AlexZinkM/multiwallet/internal/api"
	"github.com/AlexZinkM/multiwallet/internal/config"

	"github.com/golang/glog"
)

// @title           Multiwallet API
// @version         1.0
// @description     Encrypted multi-wallet store for Solana keypairs with per-user active-wallet selection.
// @BasePath        /
func main() {
	flag.Parse()
	defer glog.Flush()

	if err := config.Init(); err != nil {
		glog.Exitf("failed to load config: %v", err)
	}

	router, err := api.SetupRouter()
	if err != nil {
		glog.Exitf("failed to set up router: %v", err)
	}

	glog.Infof("wallet store listening on :%s (db %s)", config.GetPort(), config.GetWalletDBPath())
	if err := http.ListenAndServe(":"+config.GetPort(), router); err != nil {
		glog.Exitf("server stopped: %v", err)
	}
}
