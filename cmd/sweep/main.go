package main

import (
	"fmt"
	"os"

	"github.com/harrison/sweep/internal/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// A .env file is optional; it can set SWEEP_CONFIG or NO_COLOR per project.
	_ = godotenv.Load()

	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
