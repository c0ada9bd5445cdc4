package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"cinelog/internal/pipeline"
)

func main() {
	// Environment overrides may live in a local .env; a missing file is fine.
	_ = godotenv.Load()

	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		if errors.Is(err, pipeline.ErrPartialFailure) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
