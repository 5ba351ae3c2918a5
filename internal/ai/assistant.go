package ai

import (
	"context"
)

// Generator produces one plain-text completion for a prompt. The gemini
// implementation talks to the real service; the mock implementation is
// deterministic and selected via configuration, never via type inspection.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}
