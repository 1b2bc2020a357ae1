package insight

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyWindow is returned when there are no readings to analyze.
	ErrEmptyWindow = errors.New("no readings available for insight generation")

	// ErrEmptyResponse is returned when the generator output is blank after trimming.
	ErrEmptyResponse = errors.New("generator returned an empty response")

	// ErrNoJSON is returned when no brace-delimited span exists in the response.
	ErrNoJSON = errors.New("no JSON object found in generator response")
)

// GenerationError wraps a provider or transport failure from the generator.
// It is the only pipeline error callers should consider retrying.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("insight generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// MalformedJSONError is returned when the extracted brace span does not parse
// as a JSON object. Raw preserves the offending span for diagnostics.
type MalformedJSONError struct {
	Raw string
	Err error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("malformed JSON in generator response: %v", e.Err)
}

func (e *MalformedJSONError) Unwrap() error { return e.Err }

// SchemaError is returned when a candidate field violates the insight schema.
// Field names the first offending field in validation order.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid insight field %q: %s", e.Field, e.Reason)
}
