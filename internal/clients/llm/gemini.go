package llm

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/KirkDiggler/rpg-director/internal/errors"
)

// Default Gemini models
const (
	DefaultGeminiTextModel  = "gemini-2.5-flash"
	DefaultGeminiImageModel = "imagen-4.0-generate-001"
)

// GeminiConfig configures the Gemini client
type GeminiConfig struct {
	APIKey     string
	TextModel  string
	ImageModel string
	Timeout    time.Duration

	// BaseURL overrides the API endpoint
	BaseURL string
}

// Validate ensures the API key is set
func (c *GeminiConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("APIKey", c.APIKey, vb)

	return vb.Build()
}

// Gemini generates turns with a Gemini model and images with Imagen
type Gemini struct {
	client     *genai.Client
	textModel  string
	imageModel string
	timeout    time.Duration
}

var (
	_ TextGenerator  = (*Gemini)(nil)
	_ ImageGenerator = (*Gemini)(nil)
)

// NewGemini creates a Gemini client
func NewGemini(ctx context.Context, cfg *GeminiConfig) (*Gemini, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, errors.Upstream(err, "failed to create genai client")
	}

	g := &Gemini{
		client:     client,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		timeout:    cfg.Timeout,
	}
	if g.textModel == "" {
		g.textModel = DefaultGeminiTextModel
	}
	if g.imageModel == "" {
		g.imageModel = DefaultGeminiImageModel
	}
	return g, nil
}

func (g *Gemini) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

// GenerateTurn asks the text model for the Director's response
func (g *Gemini) GenerateTurn(ctx context.Context, req *TurnRequest) (string, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx,
		g.textModel,
		[]*genai.Content{genai.NewContentFromText(BuildTurnPrompt(req), genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(DirectorSystemPrompt, genai.RoleUser),
		},
	)
	if err != nil {
		return "", errors.Upstream(err, "gemini generate content failed")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.Unavailable("gemini returned an empty response")
	}

	slog.Debug("Gemini turn generated",
		"model", g.textModel,
		"duration", time.Since(start),
		"length", len(text),
	)
	return text, nil
}

// GenerateImage asks Imagen for one JPEG and returns it as a data URL
func (g *Gemini) GenerateImage(ctx context.Context, req *ImageRequest) (string, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	resp, err := g.client.Models.GenerateImages(ctx,
		g.imageModel,
		themedPrompt(req),
		&genai.GenerateImagesConfig{
			NumberOfImages: 1,
			OutputMIMEType: "image/jpeg",
			AspectRatio:    req.Aspect,
		},
	)
	if err != nil {
		return "", errors.Upstream(err, "imagen generate images failed")
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil || len(resp.GeneratedImages[0].Image.ImageBytes) == 0 {
		return "", errors.Unavailable("imagen returned no image")
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(resp.GeneratedImages[0].Image.ImageBytes), nil
}
