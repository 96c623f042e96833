package main

import (
	"fmt"
	"os"

	"github.com/infomate/veracity/internal/cli"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development; ignored when absent.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
