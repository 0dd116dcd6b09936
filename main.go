package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/pathwise-dev/pathwise/pkg/cli"
)

func main() {
	// Credentials and provider settings may come from a local .env file;
	// absence is fine
	_ = godotenv.Load()

	ctx := context.Background()
	if err := cli.Run(ctx, os.Args); err != nil {
		os.Exit(err.Code)
	}
}
