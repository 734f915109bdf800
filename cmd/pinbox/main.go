package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
