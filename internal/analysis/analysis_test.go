package analysis

import (
	"context"
	"fmt"

	"github.com/jonathan/persona-agent/internal/llm"
)

// fakeClient is a deterministic stand-in for the model collaborators.
type fakeClient struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

var errBoom = fmt.Errorf("inference backend unavailable")
