package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrNoStructuredPayload means the response holds no candidate span at all.
	ErrNoStructuredPayload = errors.New("no structured payload in model response")
	// ErrMalformedPayload means a candidate span was found but is not valid JSON.
	ErrMalformedPayload = errors.New("malformed structured payload in model response")
)

// tuplePattern matches the TupleNotation line format.
var tuplePattern = regexp.MustCompile(`\("([^"]+)",\s*"([^"]+)"\)`)

// Tuple is one (category, text) pair recovered from a response.
type Tuple struct {
	Category string
	Text     string
}

// ExtractJSONSpan returns the greedy span from the first '{' to the last '}'.
// When no '}' follows the first '{' the span runs to the end of the text and
// will fail to decode.
func ExtractJSONSpan(raw string) (string, error) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", ErrNoStructuredPayload
	}
	end := strings.LastIndexByte(raw, '}')
	if end < start {
		return raw[start:], nil
	}
	return raw[start : end+1], nil
}

// DecodeJSON locates the embedded JSON object in raw and unmarshals it into v.
// Near-valid JSON is not repaired.
func DecodeJSON(raw string, v any) error {
	span, err := ExtractJSONSpan(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(span), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}

// ParseJSON decodes the embedded JSON object in raw into a generic map.
func ParseJSON(raw string) (map[string]any, error) {
	var out map[string]any
	if err := DecodeJSON(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseTuples returns every ("category", "text") pair in raw in order of
// appearance, truncated to max. No matches yields an empty slice, not an error.
func ParseTuples(raw string, max int) []Tuple {
	if max <= 0 {
		return []Tuple{}
	}
	matches := tuplePattern.FindAllStringSubmatch(raw, max)
	out := make([]Tuple, 0, len(matches))
	for _, m := range matches {
		out = append(out, Tuple{Category: m[1], Text: m[2]})
	}
	return out
}
