package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/KirkDiggler/rpg-director/internal/entities"
	"github.com/KirkDiggler/rpg-director/internal/errors"
)

// Default local diffusion models
const (
	DefaultPerformanceModel = "tiny-sd"
	DefaultQualityModel     = "stable-diffusion-v1-5"
)

// OpenAIImagesConfig configures an OpenAI-compatible image server, such as
// a local diffusion server
type OpenAIImagesConfig struct {
	BaseURL          string
	APIKey           string
	PerformanceModel string
	QualityModel     string
	Timeout          time.Duration
}

// Validate ensures the server URL is set
func (c *OpenAIImagesConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("BaseURL", c.BaseURL, vb)

	return vb.Build()
}

// OpenAIImages generates images through the OpenAI images API. The
// performance engine uses a smaller model and resolution than quality.
type OpenAIImages struct {
	client  *openai.Client
	models  map[entities.ImageEngine]string
	timeout time.Duration
}

var _ ImageGenerator = (*OpenAIImages)(nil)

// NewOpenAIImages creates the local image client
func NewOpenAIImages(cfg *OpenAIImagesConfig) (*OpenAIImages, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	perf := cfg.PerformanceModel
	if perf == "" {
		perf = DefaultPerformanceModel
	}
	quality := cfg.QualityModel
	if quality == "" {
		quality = DefaultQualityModel
	}

	return &OpenAIImages{
		client: openai.NewClientWithConfig(clientCfg),
		models: map[entities.ImageEngine]string{
			entities.ImageEngineLocalPerformance: perf,
			entities.ImageEngineLocalQuality:     quality,
		},
		timeout: cfg.Timeout,
	}, nil
}

// GenerateImage requests one base64 image and returns it as a data URL
func (o *OpenAIImages) GenerateImage(ctx context.Context, req *ImageRequest) (string, error) {
	model, ok := o.models[req.Engine]
	if !ok {
		model = o.models[entities.ImageEngineLocalPerformance]
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	resp, err := o.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         themedPrompt(req),
		Model:          model,
		N:              1,
		Size:           imageSize(req.Engine, req.Aspect),
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return "", errors.Upstream(err, "image server request failed")
	}
	if len(resp.Data) == 0 {
		return "", errors.Unavailable("image server returned no image")
	}

	img := resp.Data[0]
	switch {
	case img.B64JSON != "":
		return "data:image/png;base64," + img.B64JSON, nil
	case img.URL != "":
		return img.URL, nil
	}
	return "", errors.Unavailable("image server returned an empty image")
}

// imageSize picks a resolution for the aspect hint. Quality renders at twice
// the performance resolution.
func imageSize(engine entities.ImageEngine, aspect string) string {
	w, h := 512, 512
	switch aspect {
	case "4:3":
		w, h = 512, 384
	case "3:4":
		w, h = 384, 512
	}
	if engine == entities.ImageEngineLocalQuality {
		w, h = w*2, h*2
	}
	return fmt.Sprintf("%dx%d", w, h)
}
