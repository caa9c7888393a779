package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/KirkDiggler/rpg-director/internal/clients/llm"
	"github.com/KirkDiggler/rpg-director/internal/config"
	"github.com/KirkDiggler/rpg-director/internal/entities"
	"github.com/KirkDiggler/rpg-director/internal/errors"
	"github.com/KirkDiggler/rpg-director/internal/metrics"
	"github.com/KirkDiggler/rpg-director/internal/orchestrators/saves"
	"github.com/KirkDiggler/rpg-director/internal/orchestrators/turn"
	"github.com/KirkDiggler/rpg-director/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-director/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-director/internal/redis"
	savesrepo "github.com/KirkDiggler/rpg-director/internal/repositories/saves"
	"github.com/KirkDiggler/rpg-director/internal/store"
)

const redisPingTimeout = 5 * time.Second

// app holds the wired services for one process
type app struct {
	game     turn.Service
	saves    saves.Service
	registry *prometheus.Registry
	closers  []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("Failed to close resource", "error", err)
		}
	}
}

func newApp(ctx context.Context, c *config.Config) (*app, error) {
	settings, err := config.LoadSettings(c.SettingsFile)
	if err != nil {
		return nil, err
	}

	router, err := newRouter(ctx, c)
	if err != nil {
		return nil, err
	}

	a := &app{registry: prometheus.NewRegistry()}
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	repo, err := a.newSaveRepository(ctx, c)
	if err != nil {
		a.Close()
		return nil, err
	}

	clk := clock.New()
	game, err := turn.NewOrchestrator(&turn.Config{
		Store:           store.New(store.DefaultState(settings)),
		Text:            router,
		Images:          router,
		IDs:             idgen.NewMonotonic(clk),
		DefaultSettings: &settings,
		Clock:           clk,
		Metrics:         metrics.New(a.registry),
	})
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to create turn orchestrator")
	}

	savesService, err := saves.NewOrchestrator(&saves.Config{
		Game:        game,
		SaveRepo:    repo,
		IDGenerator: idgen.NewUUID("save"),
		Clock:       clk,
	})
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to create saves orchestrator")
	}

	a.game = game
	a.saves = savesService
	return a, nil
}

// newRouter registers every engine the environment enables
func newRouter(ctx context.Context, c *config.Config) (*llm.Router, error) {
	text := map[entities.TextEngine]llm.TextGenerator{}
	images := map[entities.ImageEngine]llm.ImageGenerator{}

	if c.GeminiAPIKey != "" {
		gemini, err := llm.NewGemini(ctx, &llm.GeminiConfig{
			APIKey:     c.GeminiAPIKey,
			TextModel:  c.GeminiTextModel,
			ImageModel: c.GeminiImageModel,
			Timeout:    c.TextTimeout,
			BaseURL:    c.GeminiBaseURL,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create gemini client")
		}
		text[entities.TextEngineGemini] = gemini
		images[entities.ImageEngineGemini] = gemini
	}

	if c.OllamaURL != "" {
		local, err := llm.NewOllama(&llm.OllamaConfig{
			BaseURL:     c.OllamaURL,
			Model:       c.OllamaModel,
			Timeout:     c.TextTimeout,
			MaxTokens:   c.OllamaMaxTokens,
			Temperature: c.OllamaTemperature,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create ollama client")
		}
		text[entities.TextEngineLocal] = local
	}

	if c.ImageServerURL != "" {
		local, err := llm.NewOpenAIImages(&llm.OpenAIImagesConfig{
			BaseURL:          c.ImageServerURL,
			APIKey:           c.ImageServerAPIKey,
			PerformanceModel: c.ImagePerformanceModel,
			QualityModel:     c.ImageQualityModel,
			Timeout:          c.ImageTimeout,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create image server client")
		}
		images[entities.ImageEngineLocalPerformance] = local
		images[entities.ImageEngineLocalQuality] = local
	}

	slog.Info("Engines configured",
		"text_engines", len(text),
		"image_engines", len(images),
	)

	return llm.NewRouter(&llm.RouterConfig{Text: text, Images: images})
}

func (a *app) newSaveRepository(ctx context.Context, c *config.Config) (savesrepo.Repository, error) {
	switch c.SaveBackend {
	case config.BackendRedis:
		client, err := redisclient.NewClient(c.RedisAddr, &redisclient.Options{
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to create redis client")
		}
		a.closers = append(a.closers, client.Close)
		if err := redisclient.Ping(ctx, client, redisPingTimeout); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to reach redis")
		}
		slog.Info("Using redis save slots", "addr", c.RedisAddr, "db", c.RedisDB)
		return savesrepo.NewRedis(&savesrepo.RedisConfig{Client: client})

	case config.BackendSQLite:
		repo, err := savesrepo.OpenSQLite(ctx, c.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, repo.Close)
		slog.Info("Using sqlite save slots", "path", c.SQLitePath)
		return repo, nil

	default:
		slog.Info("Using in-memory save slots")
		return savesrepo.NewInMemory(), nil
	}
}
