package insight

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	genai "google.golang.org/genai"
)

// GeminiGenerator implements Generator on the official genai client. The API
// call is wrapped in a circuit breaker so a flapping provider fails fast
// instead of burning the generation timeout on every scheduled run.
type GeminiGenerator struct {
	cli     *genai.Client
	model   string
	circuit *gobreaker.CircuitBreaker
}

// NewGeminiGenerator creates a generator backed by the Gemini API.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gemini",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &GeminiGenerator{cli: cli, model: model, circuit: cb}, nil
}

// Generate sends the prompt and returns the raw response text. Any provider,
// transport, or open-circuit failure surfaces as a *GenerationError.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.circuit.Execute(func() (interface{}, error) {
		resp, err := g.cli.Models.GenerateContent(ctx, g.model,
			[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
			nil,
		)
		if err != nil {
			return nil, err
		}
		if len(resp.Candidates) == 0 ||
			resp.Candidates[0].Content == nil ||
			len(resp.Candidates[0].Content.Parts) == 0 {
			return nil, errors.New("response contained no candidates")
		}
		return resp.Candidates[0].Content.Parts[0].Text, nil
	})
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	return result.(string), nil
}
