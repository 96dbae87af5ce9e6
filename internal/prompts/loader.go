// Package prompts holds the model prompt templates for the trait analyses.
// Templates live in JSON files embedded at compile time so the CLI carries
// them regardless of working directory.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

var store = struct {
	sync.RWMutex
	files map[string]map[string]string
}{files: make(map[string]map[string]string)}

// Get returns the template stored under key in the named prompt file.
// The filename should not include a path (e.g., "analysis.json").
func Get(filename, key string) (string, error) {
	templates, err := load(filename)
	if err != nil {
		return "", err
	}
	tmpl, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return tmpl, nil
}

// MustGet is Get but panics on failure. The analysis prompts are compiled
// in, so a missing one is a programming error, not a runtime condition.
func MustGet(filename, key string) string {
	tmpl, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return tmpl
}

// Format substitutes {{.Key}} placeholders in template with values from
// data. Placeholders without a matching entry are left in place.
func Format(template string, data map[string]string) string {
	out := template
	for key, value := range data {
		out = strings.ReplaceAll(out, "{{."+key+"}}", value)
	}
	return out
}

// List returns all prompt keys in a file.
func List(filename string) ([]string, error) {
	templates, err := load(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(templates))
	for key := range templates {
		keys = append(keys, key)
	}
	return keys, nil
}

// ClearCache drops all parsed prompt files. Useful for testing.
func ClearCache() {
	store.Lock()
	store.files = make(map[string]map[string]string)
	store.Unlock()
}

func load(filename string) (map[string]string, error) {
	store.RLock()
	templates, ok := store.files[filename]
	store.RUnlock()
	if ok {
		return templates, nil
	}

	raw, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(raw, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	store.Lock()
	store.files[filename] = templates
	store.Unlock()
	return templates, nil
}
