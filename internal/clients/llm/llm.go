// Package llm holds the text and image generation clients the turn
// orchestrator talks to. The orchestrator only sees TextGenerator and
// ImageGenerator; Router picks the concrete engine from the player's
// settings.
package llm

import (
	"context"

	"github.com/KirkDiggler/rpg-director/internal/entities"
)

//go:generate mockgen -destination=mock/mock.go -package=llmmock github.com/KirkDiggler/rpg-director/internal/clients/llm TextGenerator,ImageGenerator

// RecentEventCount is how many timeline events the Director is shown
const RecentEventCount = 5

// Fallback narratives used when the text engine fails
const (
	RemoteFallbackNarrative = "The connection to the storytelling engine flickered and died. Please try again."
	LocalFallbackNarrative  = "The connection to the local storytelling engine sputtered and failed. Your thoughts feel your own again."
)

// TurnRequest is everything the Director needs to narrate one turn
type TurnRequest struct {
	Character      entities.Character
	World          entities.World
	RecentTimeline []entities.TimelineEvent
	PlayerAction   string
	Engine         entities.TextEngine
}

// ImageRequest asks for one image
type ImageRequest struct {
	Prompt string
	Theme  string
	Aspect string
	Engine entities.ImageEngine
}

// TextGenerator produces the Director's raw response for a turn
type TextGenerator interface {
	GenerateTurn(ctx context.Context, req *TurnRequest) (string, error)
}

// ImageGenerator produces an image reference (URL or data URL)
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req *ImageRequest) (string, error)
}

// FallbackNarrative returns the in-story failure text for engine
func FallbackNarrative(engine entities.TextEngine) string {
	if engine == entities.TextEngineLocal {
		return LocalFallbackNarrative
	}
	return RemoteFallbackNarrative
}

// themedPrompt prefixes the style theme the way every image engine expects
func themedPrompt(req *ImageRequest) string {
	if req.Theme == "" {
		return req.Prompt
	}
	return req.Theme + ", " + req.Prompt
}
