package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/xeipuuv/gojsonschema"
)

// Client runs prompts against an ordered list of providers: the fast model
// first, then the robust one. Any error, including output that fails schema
// validation, downgrades to the next provider. There is no backoff and no
// circuit-breaking; when every provider fails the caller sees the last
// provider's error.
type Client struct {
	providers []Provider
}

func NewClient(providers ...Provider) *Client {
	return &Client{providers: providers}
}

// GenerateJSON produces schema-valid JSON for prompt and unmarshals it into out.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema *gojsonschema.Schema, cfg GenerateConfig, out any) error {
	if len(c.providers) == 0 {
		return fmt.Errorf("ai service unavailable: no providers configured")
	}

	var lastErr error
	for i, p := range c.providers {
		raw, err := c.tryProvider(ctx, p, prompt, schema, cfg)
		if err != nil {
			lastErr = err
			if i < len(c.providers)-1 {
				log.Printf("model %s failed: %v; failing over to %s", p.ModelID(), err, c.providers[i+1].ModelID())
			}
			continue
		}
		return json.Unmarshal(raw, out)
	}
	return fmt.Errorf("ai service unavailable: %w", lastErr)
}

func (c *Client) tryProvider(ctx context.Context, p Provider, prompt string, schema *gojsonschema.Schema, cfg GenerateConfig) ([]byte, error) {
	raw, err := p.Generate(ctx, prompt, cfg)
	if err != nil {
		return nil, err
	}
	if schema != nil {
		result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("validate output: %w", err)
		}
		if !result.Valid() {
			return nil, fmt.Errorf("output does not match schema: %v", result.Errors())
		}
	}
	return raw, nil
}
