package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONSurroundingProse(t *testing.T) {
	got, err := ParseJSON(`prefix {"a":1} suffix`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, got)
}

func TestParseJSONMarkdownFence(t *testing.T) {
	raw := "Here you go:\n```json\n{\"overallScore\": 70, \"nested\": {\"k\": \"v\"}}\n```\nThanks."
	got, err := ParseJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, float64(70), got["overallScore"])
	assert.Equal(t, map[string]any{"k": "v"}, got["nested"])
}

func TestParseJSONNoBrace(t *testing.T) {
	_, err := ParseJSON("I cannot help with that.")
	assert.True(t, errors.Is(err, ErrNoStructuredPayload))

	_, err = ParseJSON("")
	assert.True(t, errors.Is(err, ErrNoStructuredPayload))
}

func TestParseJSONMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "unterminated", raw: "{ invalid"},
		{name: "trailing comma", raw: `{"a": 1,}`},
		{name: "single quotes", raw: `{'a': 1}`},
		{name: "two objects", raw: `{"a":1} and {"b":2}`},
		{name: "close before open", raw: `} then {`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON(tt.raw)
			assert.True(t, errors.Is(err, ErrMalformedPayload), "err=%v", err)
		})
	}
}

func TestExtractJSONSpanGreedy(t *testing.T) {
	span, err := ExtractJSONSpan(`x {"a":{"b":1}} y }`)
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"b":1}} y }`, span)
}

func TestDecodeJSONIntoStruct(t *testing.T) {
	var out struct {
		Score int `json:"overallScore"`
	}
	require.NoError(t, DecodeJSON(`result: {"overallScore": 82}`, &out))
	assert.Equal(t, 82, out.Score)
}

func TestParseTuples(t *testing.T) {
	raw := `junk ("Technical", "What is a mutex?") more ("Behavioral", "Describe a conflict.") end`

	got := ParseTuples(raw, 5)
	assert.Equal(t, []Tuple{
		{Category: "Technical", Text: "What is a mutex?"},
		{Category: "Behavioral", Text: "Describe a conflict."},
	}, got)

	got = ParseTuples(raw, 1)
	assert.Equal(t, []Tuple{{Category: "Technical", Text: "What is a mutex?"}}, got)
}

func TestParseTuplesNoMatches(t *testing.T) {
	got := ParseTuples("1. What is a mutex?\n2. Describe a conflict.", 3)
	require.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, ParseTuples(`("Technical", "What is a mutex?")`, 0))
}

func TestParseTuplesMultiline(t *testing.T) {
	raw := "(\"Technical\",\"Explain goroutines.\")\n(\"Situational\",   \"What would you do?\")\n"
	got := ParseTuples(raw, 10)
	require.Len(t, got, 2)
	assert.Equal(t, "Explain goroutines.", got[0].Text)
	assert.Equal(t, "Situational", got[1].Category)
}
