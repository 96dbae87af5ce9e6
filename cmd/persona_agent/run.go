package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/persona-agent/internal/config"
	"github.com/jonathan/persona-agent/internal/fetch"
	"github.com/jonathan/persona-agent/internal/llm"
	"github.com/jonathan/persona-agent/internal/observability"
	"github.com/jonathan/persona-agent/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Analyze one user and write the persona report",
	Long: `Fetches the user's recent posts and comments, runs the five trait analyses, and writes <username>_persona.txt to the output directory.

When --user is omitted the command prompts for a username. Configuration can be loaded from a JSON file using --config; command-line arguments override config file values. Credentials come from the environment (REDDIT_CLIENT_ID, REDDIT_CLIENT_SECRET, REDDIT_USER_AGENT, GEMINI_API_KEY), a .env file, or the config file.`,
	RunE: runPersonaCmd,
}

var (
	runConfigPath string
	runUser       string
	runLimit      int
	runOutDir     string
	runAPIKey     string
	runVerbose    bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runUser, "user", "u", "", "Username to analyze (prompted interactively if omitted)")
	runCommand.Flags().IntVar(&runLimit, "limit", 0, "Per-kind record limit (default 50)")
	runCommand.Flags().StringVarP(&runOutDir, "out-dir", "o", "", "Directory for the report file (default current directory)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed summaries of each stage")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(runCommand)
}

func runPersonaCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := buildRunConfig(cmd)
	if err != nil {
		return err
	}

	// Interactive prompt when no username was supplied.
	if cfg.Username == "" {
		username, err := promptUsername(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		cfg.Username = username
	}
	if cfg.Username == "" {
		return fmt.Errorf("a username is required")
	}

	if cfg.Credentials.RedditClientID == "" || cfg.Credentials.RedditClientSecret == "" {
		return fmt.Errorf("content source credentials are required (set REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET)")
	}
	if cfg.Credentials.GeminiAPIKey == "" {
		return fmt.Errorf("a Gemini API key is required (set GEMINI_API_KEY or pass --api-key)")
	}

	source, err := fetch.NewRedditSource(cfg.Credentials.RedditClientID, cfg.Credentials.RedditClientSecret, &fetch.Options{
		Timeout:   fetch.DefaultTimeout,
		UserAgent: cfg.Credentials.RedditUserAgent,
	})
	if err != nil {
		return err
	}

	model, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.Credentials.GeminiAPIKey)
	if err != nil {
		return err
	}
	defer func() { _ = model.Close() }()

	out := cmd.OutOrStdout()
	opts := &pipeline.RunOptions{
		Username: cfg.Username,
		Source:   source,
		Model:    model,
		Config:   cfg,
		Warnings: cmd.ErrOrStderr(),
		OnProgress: func(ev pipeline.ProgressEvent) {
			fmt.Fprintf(out, "[%s] %s\n", ev.Step, ev.Message)
		},
	}

	result, err := pipeline.Run(ctx, opts)
	if errors.Is(err, pipeline.ErrNoContent) {
		return fmt.Errorf("no content found for user %s; no report written", cfg.Username)
	}
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(out)
		printer.PrintFetchSummary(result.Posts, result.Comments)
		printer.PrintPersona(result.Persona)
	}

	fmt.Fprintf(out, "Persona report written to %s\n", result.ReportPath)
	return nil
}

// buildRunConfig layers defaults, the config file, environment credentials,
// and explicit flags (highest priority).
func buildRunConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if runConfigPath != "" {
		loaded, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Flag overrides apply only when the flag was explicitly set.
	if cmd.Flags().Changed("user") {
		cfg.Username = runUser
	}
	if cmd.Flags().Changed("limit") {
		cfg.FetchLimit = runLimit
	}
	if cmd.Flags().Changed("out-dir") {
		cfg.OutDir = runOutDir
	}
	if cmd.Flags().Changed("api-key") {
		cfg.Credentials.GeminiAPIKey = runAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Environment fills credentials the file and flags left empty.
	cfg.Credentials.FillFrom(config.CredentialsFromEnv())

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// promptUsername reads one username from the interactive input.
func promptUsername(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter username to analyze: ")

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read username: %w", err)
	}
	return strings.TrimSpace(line), nil
}
