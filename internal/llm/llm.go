// Package llm abstracts the text-generation provider behind a prompt-in, text-out call.
package llm

import (
	"context"
	"errors"
)

// Generator sends a prompt to a text model and returns its raw text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned when no provider key is set.
var ErrNotConfigured = errors.New("llm not configured")

// Unconfigured is the Generator used when no API key is available.
type Unconfigured struct{}

// Generate always returns ErrNotConfigured.
func (Unconfigured) Generate(ctx context.Context, prompt string) (string, error) {
	return "", ErrNotConfigured
}

// IsConfigured reports whether g can reach a real provider.
func IsConfigured(g Generator) bool {
	if g == nil {
		return false
	}
	_, unconfigured := g.(Unconfigured)
	return !unconfigured
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
