// Package pipeline provides the high-level orchestration for a persona run:
// fetch, aggregate, extract traits, resolve citations, format, write.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/persona-agent/internal/analysis"
	"github.com/jonathan/persona-agent/internal/config"
	"github.com/jonathan/persona-agent/internal/corpus"
	"github.com/jonathan/persona-agent/internal/fetch"
	"github.com/jonathan/persona-agent/internal/llm"
	"github.com/jonathan/persona-agent/internal/report"
	"github.com/jonathan/persona-agent/internal/types"
)

// ErrNoContent signals that neither posts nor comments could be fetched; the
// run halts before any extractor and writes no file.
var ErrNoContent = errors.New("no content found for this user")

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	RunID   string `json:"run_id"`
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration and collaborators for running the pipeline.
// Source and Model are interfaces so tests run against deterministic
// stand-ins instead of the live API and models.
type RunOptions struct {
	Username string
	Source   fetch.Source
	Model    llm.Client
	Config   config.Config

	// Warnings receives non-fatal fetch warnings; defaults to os.Stderr.
	Warnings   io.Writer
	OnProgress ProgressCallback
}

// Result holds the artifacts of a completed run.
type Result struct {
	Persona    *types.Persona
	ReportPath string
	Posts      fetch.KindResult
	Comments   fetch.KindResult
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, runID, step, message string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{RunID: runID, Step: step, Message: message})
	}
}

// Run executes one full persona run. The pipeline is strictly sequential:
// every extractor reads the immutable corpus and returns its own result, and
// data flows one way from fetch to report.
func Run(ctx context.Context, opts *RunOptions) (*Result, error) {
	if opts.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if opts.Source == nil {
		return nil, fmt.Errorf("content source is required")
	}
	if opts.Model == nil {
		return nil, fmt.Errorf("model client is required")
	}
	warnings := opts.Warnings
	if warnings == nil {
		warnings = os.Stderr
	}

	runID := uuid.New().String()
	cfg := opts.Config.MergeWithDefaults(config.Defaults())

	// Fetch. Each kind fails independently; a failed kind is a warning with
	// an empty result, not an abort.
	emitProgress(opts, runID, "fetch", fmt.Sprintf("fetching up to %d posts and %d comments for %s", cfg.FetchLimit, cfg.FetchLimit, opts.Username))
	posts, comments := fetch.FetchUser(ctx, opts.Source, opts.Username, cfg.FetchLimit)
	if !posts.OK() {
		fmt.Fprintf(warnings, "warning: fetching posts failed: %v\n", posts.Err)
	}
	if !comments.OK() {
		fmt.Fprintf(warnings, "warning: fetching comments failed: %v\n", comments.Err)
	}

	// Aggregate.
	c := corpus.Build(posts.Records, comments.Records)
	if c.Empty() {
		return nil, ErrNoContent
	}
	emitProgress(opts, runID, "aggregate", fmt.Sprintf("%d posts, %d comments, %d corpus chars", len(posts.Records), len(comments.Records), len(c.Text)))

	// Extract. The five analyses are independent and order-irrelevant; they
	// run sequentially here.
	emitProgress(opts, runID, "keywords", "extracting interests")
	keywords, err := analysis.ExtractKeywords(ctx, opts.Model, c, cfg.KeywordTopN, cfg.DenyList)
	if err != nil {
		return nil, err
	}

	emitProgress(opts, runID, "entities", "tagging named entities")
	entities, err := analysis.ExtractEntities(ctx, opts.Model, c)
	if err != nil {
		return nil, err
	}

	emitProgress(opts, runID, "forums", "ranking forums")
	forums := analysis.CountForums(c.Records, cfg.ForumTopN)

	emitProgress(opts, runID, "style", "classifying writing style")
	style := analysis.ClassifyStyle(c.Records, cfg.StyleThreshold)

	emitProgress(opts, runID, "sentiment", "classifying sentiment")
	sentiment, err := analysis.ClassifySentiment(ctx, opts.Model, c, cfg.SentimentMaxChars)
	if err != nil {
		return nil, err
	}

	persona := &types.Persona{
		Username:       opts.Username,
		RunID:          runID,
		GeneratedAt:    time.Now(),
		Traits:         []types.TraitResult{keywords, entities, forums, style, sentiment},
		SampleSnippets: report.BuildSnippets(posts.Records, comments.Records),
	}

	// Format and write the single output artifact.
	emitProgress(opts, runID, "report", "writing report")
	content := report.Render(persona, report.Options{EntityCap: cfg.EntityCap})
	path, err := report.Write(cfg.OutDir, opts.Username, content)
	if err != nil {
		return nil, err
	}

	return &Result{
		Persona:    persona,
		ReportPath: path,
		Posts:      posts,
		Comments:   comments,
	}, nil
}
