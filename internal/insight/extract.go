package insight

import (
	"encoding/json"
	"strings"
)

// ExtractCandidate recovers the single JSON object from raw generator output.
// It is purely syntactic; no field is trusted until validated.
//
// The generator is told to answer with bare JSON, but in practice responses
// arrive wrapped in code fences or short lead-in prose. Fence markers are
// removed literally wherever they appear, then the span from the first '{'
// to the last '}' is taken as the object. The greedy span matches the common
// case of one object inside incidental text; prose containing its own braces
// around the object would defeat it.
func ExtractCandidate(raw string) (Candidate, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoJSON
	}

	span := cleaned[start : end+1]

	var c Candidate
	if err := json.Unmarshal([]byte(span), &c); err != nil {
		return nil, &MalformedJSONError{Raw: span, Err: err}
	}
	return c, nil
}
