package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteError represents a failure writing the report artifact.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write report %s: %v", e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// Filename returns the report file name for a username.
func Filename(username string) string {
	return username + "_persona.txt"
}

// Write stores the rendered report as <username>_persona.txt under dir,
// UTF-8 encoded, and returns the written path. This is the run's single file
// write.
func Write(dir, username, content string) (string, error) {
	path := filepath.Join(dir, Filename(username))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", &WriteError{Path: path, Cause: err}
	}
	return path, nil
}
