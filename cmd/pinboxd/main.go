package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/pinbox/pinbox/internal/app"
)

func main() {
	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	a, err := app.New()
	if err != nil {
		log.Fatalf("pinboxd failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("pinboxd exited with error: %v", err)
	}
}
