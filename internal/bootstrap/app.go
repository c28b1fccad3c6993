package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-agent/internal/llm"
	"resume-agent/internal/llm/gemini"
	"resume-agent/internal/llm/openai"
	"resume-agent/internal/services/health"
	"resume-agent/internal/sessions"
	"resume-agent/internal/shared/config"
	"resume-agent/internal/shared/server"
	"resume-agent/internal/shared/storage/object"
	localstore "resume-agent/internal/shared/storage/object/local"
	s3store "resume-agent/internal/shared/storage/object/s3"
	"resume-agent/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	Store          object.ObjectStore
	Generator      llm.Generator
	Registry       *sessions.Registry
	SessionHandler *sessions.Handler
	Health         *health.Service
}

// Build prepares shared dependencies and wires routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	store, err := BuildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	gen, err := BuildGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}

	registry := sessions.NewRegistry(SessionFactory(cfg, gen))
	app := &App{
		Config:         cfg,
		Store:          store,
		Generator:      gen,
		Registry:       registry,
		SessionHandler: sessions.NewHandler(registry, store),
		Health:         health.NewService(cfg.LLMProvider, registry),
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		SessionHandler: app.SessionHandler,
		Health:         app.Health,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"provider":     cfg.LLMProvider,
		"model":        cfg.LLMModel,
		"object_store": cfg.ObjectStoreType,
		"cutoff_score": cfg.CutoffScore,
	})
	return app, nil
}

// Close disposes live sessions and releases the generator.
func (a *App) Close() {
	a.Registry.Close()
	closeGenerator(a.Generator)
}

// SessionFactory returns a factory that shares gen across sessions.
func SessionFactory(cfg config.Config, gen llm.Generator) sessions.Factory {
	return func() *sessions.Session {
		return sessions.New(gen,
			sessions.WithModel(cfg.LLMModel),
			sessions.WithCutoffScore(cfg.CutoffScore),
		)
	}
}

// BuildGenerator constructs the client for the configured provider.
func BuildGenerator(ctx context.Context, cfg config.Config) (llm.Generator, error) {
	switch cfg.LLMProvider {
	case "openai":
		client, err := openai.NewClient(cfg.OpenAIAPIKey)
		if err != nil {
			return nil, err
		}
		return client, nil
	case "placeholder":
		return llm.PlaceholderClient{}, nil
	default:
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			if isDevLike(cfg.Env) {
				telemetry.Warn("bootstrap.no_api_key", map[string]any{"provider": cfg.LLMProvider})
				return llm.PlaceholderClient{}, nil
			}
			return nil, fmt.Errorf("GEMINI_API_KEY is required")
		}
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// BuildStore constructs the document store selected by OBJECT_STORE.
func BuildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.S3KMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func closeGenerator(gen llm.Generator) {
	closer, ok := gen.(interface{ Close() error })
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		telemetry.Warn("bootstrap.generator_close_failed", map[string]any{"error": err.Error()})
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
