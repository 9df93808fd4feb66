package main

import (
	"os"
)

// @title Pinturas Diamante API
// @version 1.0
// @description Catalog, cart and SEO API of the Pinturas Diamante store.
// @host localhost:8080
// @BasePath /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
