package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"resume-agent/internal/llm"
	"resume-agent/internal/shared/config"
)

func TestBuildDevWithoutKeyUsesPlaceholder(t *testing.T) {
	cfg := config.Config{
		Env:             "dev",
		LLMProvider:     "gemini",
		LLMModel:        llm.DefaultModel,
		CutoffScore:     75,
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
	}
	app, err := Build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer app.Close()

	if _, ok := app.Generator.(llm.PlaceholderClient); !ok {
		t.Fatalf("expected placeholder generator, got %T", app.Generator)
	}

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestBuildProductionRequiresKey(t *testing.T) {
	cfg := config.Config{Env: "production", LLMProvider: "gemini", LocalStoreDir: t.TempDir()}
	if _, err := Build(context.Background(), cfg); err == nil {
		t.Fatalf("expected error without GEMINI_API_KEY in production")
	}
}

func TestBuildOpenAIRequiresKey(t *testing.T) {
	cfg := config.Config{Env: "dev", LLMProvider: "openai", LocalStoreDir: t.TempDir()}
	if _, err := Build(context.Background(), cfg); err == nil {
		t.Fatalf("expected error without OPENAI_API_KEY")
	}
}

func TestSessionFactoryAppliesConfig(t *testing.T) {
	factory := SessionFactory(config.Config{LLMModel: "gpt-4o-mini", CutoffScore: 60}, llm.PlaceholderClient{})
	s := factory()
	if s.CutoffScore() != 60 {
		t.Fatalf("expected cutoff 60, got %d", s.CutoffScore())
	}
}
