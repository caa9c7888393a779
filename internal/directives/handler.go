package directives

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-director/internal/entities"
	"github.com/KirkDiggler/rpg-director/internal/errors"
	"github.com/KirkDiggler/rpg-director/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-director/internal/store"
)

// ImageKind says what an image effect decorates
type ImageKind string

// Image kinds
const (
	ImageScene    ImageKind = "scene"
	ImagePortrait ImageKind = "portrait"
)

// Aspect ratio hints
const (
	AspectScene    = "4:3"
	AspectPortrait = "3:4"
)

// ImageEffect is a pending image generation request
type ImageEffect struct {
	Kind   ImageKind
	Prompt string
	Aspect string
}

// PortraitEffect builds a portrait request for prompt
func PortraitEffect(prompt string) *ImageEffect {
	return &ImageEffect{Kind: ImagePortrait, Prompt: prompt, Aspect: AspectPortrait}
}

// Result classifies what a directive did, for logs and metrics
type Result string

// Results
const (
	ResultApplied  Result = "applied"
	ResultEffect   Result = "effect"
	ResultSkipped  Result = "skipped"
	ResultRejected Result = "rejected"
)

// Outcome is what handling one directive produced. At most one of Patch and
// Effect is set. Neither is set for a skipped or rejected directive.
type Outcome struct {
	Patch            store.Patch
	Effect           *ImageEffect
	CharacterChanged bool
	Result           Result
}

// HandlerConfig holds the dependencies for the handler
type HandlerConfig struct {
	// IDs allocates timeline event ids
	IDs idgen.Sequence
}

// Validate ensures all required dependencies are provided
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.IDs == nil {
		vb.RequiredField("IDs")
	}

	return vb.Build()
}

// Handler turns directives into outcomes
type Handler struct {
	ids idgen.Sequence
}

// NewHandler creates a handler
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{ids: cfg.IDs}, nil
}

// Handle resolves d against the player's settings
func (h *Handler) Handle(d Directive, settings entities.Settings) Outcome {
	switch v := d.(type) {
	case Rejected:
		slog.Warn("Directive rejected",
			"kind", v.Of,
			"reason", v.Reason,
		)
		return Outcome{Result: ResultRejected}

	case SceneImage:
		if !settings.ImageMode.IncludesScene() {
			slog.Debug("Scene image skipped", "image_mode", settings.ImageMode)
			return Outcome{Result: ResultSkipped}
		}
		return Outcome{
			Effect: &ImageEffect{Kind: ImageScene, Prompt: v.Prompt, Aspect: AspectScene},
			Result: ResultEffect,
		}

	case CharacterImage:
		if !settings.ImageMode.IncludesCharacter() {
			slog.Debug("Character image skipped", "image_mode", settings.ImageMode)
			return Outcome{Result: ResultSkipped}
		}
		return Outcome{Effect: PortraitEffect(v.Prompt), Result: ResultEffect}

	case StatusUpdate:
		return applied(false, func(s *store.State) {
			s.Character.Status = v.Status
		})

	case BackstoryUpdate:
		return applied(true, func(s *store.State) {
			s.Character.Backstory = v.Backstory
		})

	case ItemAdd:
		return applied(true, func(s *store.State) {
			s.Character.UpsertItem(v.Item)
		})

	case ItemRemove:
		return applied(true, func(s *store.State) {
			s.Character.RemoveItem(v.Name)
		})

	case SkillUpdate:
		return applied(true, func(s *store.State) {
			s.Character.UpsertSkill(v.Name, v.Value)
		})

	case NPCUpsert:
		return applied(false, func(s *store.State) {
			mergeNPC(&s.World, v)
		})

	case NPCRemove:
		return applied(false, func(s *store.State) {
			s.World.RemoveNPC(v.ID)
		})

	case NPCRelation:
		return applied(false, func(s *store.State) {
			if i := s.World.FindNPC(v.ID); i >= 0 {
				s.World.NPCs[i].Relationship = entities.ClampRelationship(v.Value)
			}
		})

	case LoreUpdate:
		return applied(false, func(s *store.State) {
			s.World.SetLore(v.Key, v.Value)
		})

	case WorldEvent:
		id := h.ids.Next()
		return applied(false, func(s *store.State) {
			s.Game.Timeline = append(s.Game.Timeline, entities.TimelineEvent{
				ID:          id,
				Description: v.Description,
			})
		})
	}

	slog.Warn("Unhandled directive", "kind", d.Kind())
	return Outcome{Result: ResultSkipped}
}

func applied(changed bool, p store.Patch) Outcome {
	return Outcome{Patch: p, CharacterChanged: changed, Result: ResultApplied}
}

func mergeNPC(w *entities.World, u NPCUpsert) {
	i := w.FindNPC(u.ID)
	if i < 0 {
		w.NPCs = append(w.NPCs, entities.NPC{ID: u.ID})
		i = len(w.NPCs) - 1
	}

	npc := &w.NPCs[i]
	if u.Name != nil {
		npc.Name = *u.Name
	}
	if u.Description != nil {
		npc.Description = *u.Description
	}
	if u.Relationship != nil {
		npc.Relationship = entities.ClampRelationship(*u.Relationship)
	}
}
