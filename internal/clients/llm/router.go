package llm

import (
	"context"

	"github.com/KirkDiggler/rpg-director/internal/entities"
	"github.com/KirkDiggler/rpg-director/internal/errors"
)

// RouterConfig maps engines to their clients. Engines without a client
// fail with Unavailable when selected.
type RouterConfig struct {
	Text   map[entities.TextEngine]TextGenerator
	Images map[entities.ImageEngine]ImageGenerator
}

// Validate ensures at least one text engine is wired
func (c *RouterConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if len(c.Text) == 0 {
		vb.RequiredField("Text")
	}

	return vb.Build()
}

// Router dispatches requests by engine. It implements both TextGenerator
// and ImageGenerator.
type Router struct {
	text   map[entities.TextEngine]TextGenerator
	images map[entities.ImageEngine]ImageGenerator
}

var (
	_ TextGenerator  = (*Router)(nil)
	_ ImageGenerator = (*Router)(nil)
)

// NewRouter creates a router
func NewRouter(cfg *RouterConfig) (*Router, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	r := &Router{
		text:   make(map[entities.TextEngine]TextGenerator, len(cfg.Text)),
		images: make(map[entities.ImageEngine]ImageGenerator, len(cfg.Images)),
	}
	for k, v := range cfg.Text {
		r.text[k] = v
	}
	for k, v := range cfg.Images {
		r.images[k] = v
	}
	return r, nil
}

// GenerateTurn sends req to the engine it names
func (r *Router) GenerateTurn(ctx context.Context, req *TurnRequest) (string, error) {
	gen, ok := r.text[req.Engine]
	if !ok {
		return "", errors.Unavailablef("text engine %q is not configured", req.Engine)
	}
	return gen.GenerateTurn(ctx, req)
}

// GenerateImage sends req to the engine it names
func (r *Router) GenerateImage(ctx context.Context, req *ImageRequest) (string, error) {
	gen, ok := r.images[req.Engine]
	if !ok {
		return "", errors.Unavailablef("image engine %q is not configured", req.Engine)
	}
	return gen.GenerateImage(ctx, req)
}
