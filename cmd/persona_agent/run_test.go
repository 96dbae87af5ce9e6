package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/persona-agent/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptUsername_TrimsInput(t *testing.T) {
	in := strings.NewReader("  someuser \n")
	out := &bytes.Buffer{}

	username, err := promptUsername(in, out)
	require.NoError(t, err)
	assert.Equal(t, "someuser", username)
	assert.Contains(t, out.String(), "Enter username")
}

func TestPromptUsername_EOFWithoutInput(t *testing.T) {
	_, err := promptUsername(strings.NewReader(""), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestPromptUsername_LastLineWithoutNewline(t *testing.T) {
	username, err := promptUsername(strings.NewReader("someuser"), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "someuser", username)
}

func TestBuildRunConfig_FileAndFlagLayering(t *testing.T) {
	content := `{"username": "fromfile", "fetch_limit": 10, "out_dir": "."}`
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	runConfigPath = tmpFile
	defer func() { runConfigPath = "" }()

	require.NoError(t, runCommand.Flags().Set("user", "fromflag"))
	defer func() {
		runUser = ""
		runCommand.Flags().Lookup("user").Changed = false
	}()

	cfg, err := buildRunConfig(runCommand)
	require.NoError(t, err)

	// Flag beats file; file beats defaults; defaults fill the rest.
	assert.Equal(t, "fromflag", cfg.Username)
	assert.Equal(t, 10, cfg.FetchLimit)
	assert.Equal(t, config.DefaultKeywordTopN, cfg.KeywordTopN)
}

func TestBuildRunConfig_EnvCredentials(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("REDDIT_CLIENT_ID", "env-id")
	t.Setenv("REDDIT_CLIENT_SECRET", "env-secret")
	t.Setenv("REDDIT_USER_AGENT", "env-agent")

	cfg, err := buildRunConfig(runCommand)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Credentials.GeminiAPIKey)
	assert.Equal(t, "env-id", cfg.Credentials.RedditClientID)
}

func TestBuildRunConfig_FlagBeatsEnvAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	require.NoError(t, runCommand.Flags().Set("api-key", "flag-key"))
	defer func() {
		runAPIKey = ""
		runCommand.Flags().Lookup("api-key").Changed = false
	}()

	cfg, err := buildRunConfig(runCommand)
	require.NoError(t, err)
	assert.Equal(t, "flag-key", cfg.Credentials.GeminiAPIKey)
}

func TestBuildRunConfig_InvalidConfigFile(t *testing.T) {
	runConfigPath = filepath.Join(t.TempDir(), "missing.json")
	defer func() { runConfigPath = "" }()

	_, err := buildRunConfig(runCommand)
	assert.Error(t, err)
}
