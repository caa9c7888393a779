package llm

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/KirkDiggler/rpg-director/internal/errors"
)

// DefaultOllamaModel is used when no local model is configured
const DefaultOllamaModel = "phi3:mini"

// OllamaConfig configures the local text engine
type OllamaConfig struct {
	BaseURL     string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

// Validate ensures the server URL is set
func (c *OllamaConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("BaseURL", c.BaseURL, vb)

	return vb.Build()
}

// Ollama generates turns with a model served by a local Ollama instance
type Ollama struct {
	client  *api.Client
	model   string
	options map[string]any
}

var _ TextGenerator = (*Ollama)(nil)

// NewOllama creates a local text client
func NewOllama(cfg *OllamaConfig) (*Ollama, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	// api.NewClient wants the server root, not the OpenAI-compatible /v1 path
	base := strings.TrimSuffix(strings.TrimSuffix(cfg.BaseURL, "/"), "/v1")
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, errors.InvalidArgumentf("invalid ollama url %q: %v", cfg.BaseURL, err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultOllamaModel
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 512
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = 0.8
	}

	return &Ollama{
		client: api.NewClient(parsed, &http.Client{Timeout: cfg.Timeout}),
		model:  model,
		options: map[string]any{
			"num_predict": maxTokens,
			"temperature": temperature,
			"top_k":       50,
		},
	}, nil
}

// GenerateTurn asks the local model for the Director's response
func (o *Ollama) GenerateTurn(ctx context.Context, req *TurnRequest) (string, error) {
	stream := false
	chatReq := &api.ChatRequest{
		Model: o.model,
		Messages: []api.Message{
			{Role: "system", Content: LocalDirectorPrompt},
			{Role: "user", Content: BuildTurnPrompt(req)},
		},
		Stream:  &stream,
		Options: o.options,
	}

	start := time.Now()
	var resp api.ChatResponse
	err := o.client.Chat(ctx, chatReq, func(r api.ChatResponse) error {
		resp = r
		return nil
	})
	if err != nil {
		return "", errors.Upstream(err, "ollama chat failed")
	}

	text := StripEcho(resp.Message.Content)
	if text == "" {
		return "", errors.Unavailable("ollama returned an empty response")
	}

	slog.Debug("Ollama turn generated",
		"model", o.model,
		"duration", time.Since(start),
		"length", len(text),
	)
	return text, nil
}
