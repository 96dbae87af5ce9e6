// Package fetch provides the content-source client that retrieves a user's
// authored posts and comments as TextRecords.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/persona-agent/internal/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is used when no user agent is provisioned.
const DefaultUserAgent = "persona-agent/1.0 (by /u/persona-agent)"

// Source is the abstraction over the content source. The pipeline depends on
// this interface so tests can substitute a deterministic stand-in for the
// live API.
type Source interface {
	// Listing returns up to limit of the user's most recent records of the
	// given kind, newest first.
	Listing(ctx context.Context, username string, kind types.Kind, limit int) ([]types.TextRecord, error)
}

// Error represents an error talking to the content source.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the content-source client.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// BaseURL and TokenURL override the live API endpoints; tests point them
	// at a local server.
	BaseURL  string
	TokenURL string
}

// DefaultOptions returns sensible defaults for the live API.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		BaseURL:   redditAPIBase,
		TokenURL:  redditTokenURL,
	}
}
