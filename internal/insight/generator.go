package insight

import (
	"context"
)

// Generator abstracts the external text-generation capability: prompt text
// in, raw response text out. Implementations perform no retries; retry
// policy belongs to the caller of the pipeline.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
