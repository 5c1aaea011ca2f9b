// Package main provides the civictrack command line client. Citizens submit
// and track complaints; government officials review and advance them.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	Version = "1.0.0"
	appName = "civictrack"
)

func main() {
	_ = godotenv.Load()

	if err := newApp(os.Stdout).rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
