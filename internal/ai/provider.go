// Package ai holds the generative flows: mock interview turns, interview
// feedback, and quiz generation from source text. Every flow asks for JSON,
// validates it against a schema, and runs through a two-tier model fallback.
package ai

import "context"

// GenerateConfig carries per-call generation parameters.
type GenerateConfig struct {
	Temperature float64
}

// Provider is one model endpoint that produces a JSON document for a prompt.
type Provider interface {
	ModelID() string
	Generate(ctx context.Context, prompt string, cfg GenerateConfig) ([]byte, error)
}
