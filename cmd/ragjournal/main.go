package main

import (
	"github.com/joho/godotenv"
	"ragjournal/internal/cli"
)

func main() {
	// API keys live in the environment; .env is optional.
	_ = godotenv.Load()

	cli.Execute()
}
