package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), " ")
	require.Error(t, err)
}

func TestGenerateReturnsCandidateText(t *testing.T) {
	var gotPath, gotKey, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Sure: {\"a\":1}"}]}}],"usageMetadata":{"totalTokenCount":12}}`))
	}))
	defer server.Close()

	client, err := NewClient(context.Background(), "test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	got, err := client.Generate(context.Background(), "gemini-flash-latest", "score this resume")
	require.NoError(t, err)
	assert.Equal(t, `Sure: {"a":1}`, got)
	assert.True(t, strings.HasSuffix(gotPath, "gemini-flash-latest:generateContent"), gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Contains(t, gotBody, "score this resume")
}

func TestGenerateSurfacesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	client, err := NewClient(context.Background(), "test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "gemini-flash-latest", "prompt")
	require.Error(t, err)
}

func TestGenerateRequiresModel(t *testing.T) {
	client, err := NewClient(context.Background(), "test-key")
	require.NoError(t, err)
	_, err = client.Generate(context.Background(), "", "prompt")
	require.Error(t, err)
}
