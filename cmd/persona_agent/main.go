// Package main provides the entry point for the persona-agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "persona_agent",
	Short: "Citation-backed persona reports from a user's public posts and comments",
	Long:  "persona_agent fetches a user's recent posts and comments, runs keyword, entity, forum, style and sentiment analyses over them, and writes a citation-backed persona report.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
