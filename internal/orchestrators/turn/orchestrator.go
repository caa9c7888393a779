// Package turn implements the turn orchestrator. A turn takes one player
// action through the Director model, applies the directives found in the
// response, resolves the requested images and commits the narrative.
package turn

//go:generate mockgen -destination=mock/mock_service.go -package=turnmock github.com/KirkDiggler/rpg-director/internal/orchestrators/turn Service

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-director/internal/clients/llm"
	"github.com/KirkDiggler/rpg-director/internal/codec"
	"github.com/KirkDiggler/rpg-director/internal/directives"
	"github.com/KirkDiggler/rpg-director/internal/entities"
	"github.com/KirkDiggler/rpg-director/internal/errors"
	"github.com/KirkDiggler/rpg-director/internal/metrics"
	"github.com/KirkDiggler/rpg-director/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-director/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-director/internal/store"
)

// Service defines the game session operations
type Service interface {
	// Turns
	SubmitPlayerAction(ctx context.Context, input *SubmitPlayerActionInput) (*SubmitPlayerActionOutput, error)
	CompleteOnboarding(ctx context.Context, input *CompleteOnboardingInput) (*CompleteOnboardingOutput, error)

	// Session management
	UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*UpdateSettingsOutput, error)
	Restart(ctx context.Context, input *RestartInput) (*RestartOutput, error)
	LoadState(ctx context.Context, input *LoadStateInput) (*LoadStateOutput, error)
	SerializeState(ctx context.Context, input *SerializeStateInput) (*SerializeStateOutput, error)

	// Observation
	GetSnapshot(ctx context.Context, input *GetSnapshotInput) (*GetSnapshotOutput, error)
	Subscribe(listener store.Listener) (cancel func())
}

// Config holds the dependencies for the turn orchestrator
type Config struct {
	Store  *store.Store
	Text   llm.TextGenerator
	Images llm.ImageGenerator
	IDs    *idgen.Monotonic

	// DefaultSettings are installed by Restart and used as the base for
	// loaded documents. Defaults to entities.DefaultSettings().
	DefaultSettings *entities.Settings
	// Clock times turns for metrics. Defaults to the real clock.
	Clock clock.Clock
	// Metrics is optional
	Metrics *metrics.Metrics
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Store == nil {
		vb.RequiredField("Store")
	}
	if c.Text == nil {
		vb.RequiredField("Text")
	}
	if c.Images == nil {
		vb.RequiredField("Images")
	}
	if c.IDs == nil {
		vb.RequiredField("IDs")
	}

	return vb.Build()
}

type orchestrator struct {
	store    *store.Store
	text     llm.TextGenerator
	images   llm.ImageGenerator
	ids      *idgen.Monotonic
	handler  *directives.Handler
	defaults entities.Settings
	clock    clock.Clock
	metrics  *metrics.Metrics
}

// NewOrchestrator creates a new turn orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	handler, err := directives.NewHandler(&directives.HandlerConfig{IDs: cfg.IDs})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create directive handler")
	}

	defaults := entities.DefaultSettings()
	if cfg.DefaultSettings != nil {
		defaults = cfg.DefaultSettings.Clone()
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	// ids must sort after anything already in the store
	cfg.IDs.Seed(cfg.Store.Snapshot().Game.MaxID())

	return &orchestrator{
		store:    cfg.Store,
		text:     cfg.Text,
		images:   cfg.Images,
		ids:      cfg.IDs,
		handler:  handler,
		defaults: defaults,
		clock:    clk,
		metrics:  cfg.Metrics,
	}, nil
}

// SubmitPlayerAction runs one turn. It returns once the narrative is
// committed. A second action while a turn is running is rejected.
func (o *orchestrator) SubmitPlayerAction(ctx context.Context, input *SubmitPlayerActionInput) (*SubmitPlayerActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	action := strings.TrimSpace(input.Text)
	if action == "" {
		return nil, errors.InvalidArgument("action text is required")
	}

	if err := o.beginTurn(action, nil); err != nil {
		o.metrics.TurnRejected()
		return nil, err
	}

	o.runTurn(ctx, action)

	return &SubmitPlayerActionOutput{State: o.store.Snapshot()}, nil
}

// CompleteOnboarding installs the wizard's character and world, switches to
// PLAYING and runs the opening turn
func (o *orchestrator) CompleteOnboarding(ctx context.Context, input *CompleteOnboardingInput) (*CompleteOnboardingOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	opening := strings.TrimSpace(input.OpeningPrompt)
	if opening == "" {
		return nil, errors.InvalidArgument("opening prompt is required")
	}

	character := input.Character.Clone()
	character.Normalize()
	world := input.World.Clone()
	world.Normalize()

	err := o.beginTurn(opening, func(s *store.State) error {
		if s.Game.Loading {
			return errors.FailedPrecondition("a turn is in progress")
		}
		if s.Game.Phase != entities.PhaseOnboarding {
			return errors.FailedPrecondition("onboarding is already complete")
		}

		s.Character = character
		s.World = world
		s.Game.Phase = entities.PhasePlaying
		return nil
	})
	if err != nil {
		o.metrics.TurnRejected()
		return nil, err
	}

	slog.Info("Onboarding complete",
		"character", character.Name,
		"npcs", len(world.NPCs),
	)

	o.runTurn(ctx, opening)

	return &CompleteOnboardingOutput{State: o.store.Snapshot()}, nil
}

// UpdateSettings merges a partial settings update. It is allowed mid-turn;
// the running turn keeps the settings it started with.
func (o *orchestrator) UpdateSettings(_ context.Context, input *UpdateSettingsInput) (*UpdateSettingsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if err := validateSettingsPatch(&input.Patch); err != nil {
		return nil, err
	}

	var merged entities.Settings
	_ = o.store.Update(func(s *store.State) error {
		input.Patch.Apply(&s.Settings)
		merged = s.Settings.Clone()
		return nil
	})

	return &UpdateSettingsOutput{Settings: merged}, nil
}

// Restart resets the session, settings included, to a fresh onboarding state
func (o *orchestrator) Restart(_ context.Context, _ *RestartInput) (*RestartOutput, error) {
	err := o.store.Update(func(s *store.State) error {
		if s.Game.Loading {
			return errors.FailedPrecondition("cannot restart while a turn is in progress")
		}
		*s = *store.DefaultState(o.defaults)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Session restarted")

	return &RestartOutput{State: o.store.Snapshot()}, nil
}

// LoadState replaces the session with a decoded save document. A malformed
// document leaves the session untouched.
func (o *orchestrator) LoadState(_ context.Context, input *LoadStateInput) (*LoadStateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if len(input.Document) == 0 {
		return nil, errors.InvalidArgument("document is required")
	}

	loaded, err := codec.Decode(input.Document, store.DefaultState(o.defaults))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode save document")
	}

	err = o.store.Update(func(s *store.State) error {
		if s.Game.Loading {
			return errors.FailedPrecondition("cannot load while a turn is in progress")
		}
		*s = *loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.ids.Seed(loaded.Game.MaxID())

	slog.Info("Session loaded",
		"character", loaded.Character.Name,
		"entries", len(loaded.Game.StoryLog),
	)

	return &LoadStateOutput{State: o.store.Snapshot()}, nil
}

// SerializeState encodes the live session as a save document
func (o *orchestrator) SerializeState(_ context.Context, _ *SerializeStateInput) (*SerializeStateOutput, error) {
	snap := o.store.Snapshot()

	doc, err := codec.Encode(snap)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode state")
	}

	return &SerializeStateOutput{Document: doc, State: snap}, nil
}

// GetSnapshot returns a deep copy of the live state
func (o *orchestrator) GetSnapshot(_ context.Context, _ *GetSnapshotInput) (*GetSnapshotOutput, error) {
	return &GetSnapshotOutput{State: o.store.Snapshot()}, nil
}

// Subscribe registers a listener for committed updates
func (o *orchestrator) Subscribe(listener store.Listener) func() {
	return o.store.Subscribe(listener)
}

// beginTurn atomically checks that a turn may start, marks the session as
// loading and appends the player entry. prelude runs first in the same
// update and may reject or prepare the state.
func (o *orchestrator) beginTurn(action string, prelude func(*store.State) error) error {
	return o.store.Update(func(s *store.State) error {
		if prelude != nil {
			if err := prelude(s); err != nil {
				return err
			}
		}

		if s.Game.Loading {
			return errors.FailedPrecondition("a turn is already in progress")
		}
		if s.Game.Phase != entities.PhasePlaying {
			return errors.FailedPreconditionf("actions are not accepted during %s", s.Game.Phase)
		}

		s.Game.Loading = true
		s.Game.StoryLog = append(s.Game.StoryLog, entities.StoryEntry{
			ID:   o.ids.Next(),
			Kind: entities.EntryPlayer,
			Text: action,
		})
		return nil
	})
}

// pending is what a turn has produced so far
type pending struct {
	narrative   string
	sceneURL    string
	portraitURL string
	outcome     string
}

// runTurn drives a begun turn to its commit. Every path, including a panic,
// ends in commit so loading is always cleared.
func (o *orchestrator) runTurn(ctx context.Context, action string) {
	start := o.clock.Now()
	ctx = context.WithoutCancel(ctx)
	snap := o.store.Snapshot()
	settings := snap.Settings

	p := &pending{outcome: metrics.OutcomeCommitted}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Turn panicked",
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			if p.narrative == "" {
				p.narrative = llm.FallbackNarrative(settings.TextEngine)
				p.outcome = metrics.OutcomeFallback
			}
		}

		o.commit(p)
		o.metrics.TurnCompleted(p.outcome, o.clock.Now().Sub(start))

		slog.Info("Turn committed",
			"outcome", p.outcome,
			"scene_image", p.sceneURL != "",
			"portrait", p.portraitURL != "",
		)
	}()

	raw, err := o.text.GenerateTurn(ctx, &llm.TurnRequest{
		Character:      snap.Character,
		World:          snap.World,
		RecentTimeline: snap.Game.RecentTimeline(llm.RecentEventCount),
		PlayerAction:   action,
		Engine:         settings.TextEngine,
	})
	if err == nil && strings.TrimSpace(raw) == "" {
		err = errors.Unavailable("text engine returned an empty response")
	}
	if err != nil {
		slog.Error("Text generation failed",
			"engine", settings.TextEngine,
			"error", err,
		)
		p.narrative = llm.FallbackNarrative(settings.TextEngine)
		p.outcome = metrics.OutcomeFallback
		return
	}

	scan := directives.Scan(raw)
	p.narrative = scan.Narrative

	scene, portrait := o.applyDirectives(scan.Matches, settings)
	o.recordPrompts(scene, portrait)
	o.resolveEffects(ctx, p, scene, portrait, settings)
}

// applyDirectives runs each directive in document order, applying patches
// to the live store before the next one runs. It returns the image effects
// to dispatch: the last of each kind, plus an automatic portrait when the
// character changed without one being requested.
func (o *orchestrator) applyDirectives(matches []directives.Match, settings entities.Settings) (scene, portrait *directives.ImageEffect) {
	changed := false

	for _, m := range matches {
		out := o.handler.Handle(directives.Parse(m), settings)
		o.metrics.DirectiveHandled(m.Kind.String(), string(out.Result))

		if out.Patch != nil {
			o.store.Apply(out.Patch)
		}
		if out.CharacterChanged {
			changed = true
		}
		if out.Effect != nil {
			switch out.Effect.Kind {
			case directives.ImageScene:
				scene = out.Effect
			case directives.ImagePortrait:
				portrait = out.Effect
			}
		}
	}

	if portrait == nil && changed && settings.ImageMode.IncludesCharacter() {
		c := o.store.Snapshot().Character
		portrait = directives.PortraitEffect(c.PortraitPrompt())
		slog.Debug("Character changed, requesting portrait")
	}

	return scene, portrait
}

func (o *orchestrator) recordPrompts(effects ...*directives.ImageEffect) {
	var prompts []string
	for _, e := range effects {
		if e != nil {
			prompts = append(prompts, e.Prompt)
		}
	}
	if len(prompts) == 0 {
		return
	}

	o.store.Apply(func(s *store.State) {
		s.ImagePrompts = append(s.ImagePrompts, prompts...)
	})
}

// resolveEffects runs the scene and portrait requests concurrently and waits
// for both. A failed request leaves its image empty.
func (o *orchestrator) resolveEffects(ctx context.Context, p *pending, scene, portrait *directives.ImageEffect, settings entities.Settings) {
	var g errgroup.Group

	if scene != nil {
		g.Go(func() error {
			p.sceneURL = o.resolveImage(ctx, scene, settings)
			return nil
		})
	}
	if portrait != nil {
		g.Go(func() error {
			p.portraitURL = o.resolveImage(ctx, portrait, settings)
			return nil
		})
	}

	_ = g.Wait()
}

func (o *orchestrator) resolveImage(ctx context.Context, e *directives.ImageEffect, settings entities.Settings) (url string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Image generation panicked",
				"kind", e.Kind,
				"panic", fmt.Sprint(r),
			)
			o.metrics.ImageEffect(string(e.Kind), metrics.ImageFailed)
			url = ""
		}
	}()

	url, err := o.images.GenerateImage(ctx, &llm.ImageRequest{
		Prompt: e.Prompt,
		Theme:  settings.ImageTheme,
		Aspect: e.Aspect,
		Engine: settings.ImageEngine,
	})
	if err == nil && url == "" {
		err = errors.Unavailable("image engine returned no image")
	}
	if err != nil {
		slog.Error("Image generation failed",
			"kind", e.Kind,
			"engine", settings.ImageEngine,
			"error", err,
		)
		o.metrics.ImageEffect(string(e.Kind), metrics.ImageFailed)
		return ""
	}

	o.metrics.ImageEffect(string(e.Kind), metrics.ImageResolved)
	return url
}

// commit appends the narrative entry, installs the resolved images and
// clears loading in one update
func (o *orchestrator) commit(p *pending) {
	_ = o.store.Update(func(s *store.State) error {
		s.Game.StoryLog = append(s.Game.StoryLog, entities.StoryEntry{
			ID:       o.ids.Next(),
			Kind:     entities.EntryNarrative,
			Text:     p.narrative,
			ImageURL: p.sceneURL,
		})

		if p.portraitURL != "" {
			s.Character.PushPortrait(p.portraitURL)
		}
		if p.sceneURL != "" {
			s.Game.BackfillLastEvent(p.sceneURL)
		}

		s.Game.Loading = false
		return nil
	})
}

func validateSettingsPatch(p *entities.SettingsPatch) error {
	vb := errors.NewValidationBuilder()

	if p.ImageMode != nil {
		errors.ValidateEnum("imageGenerationMode", string(*p.ImageMode), []string{
			string(entities.ImageModeNone),
			string(entities.ImageModeCharacter),
			string(entities.ImageModeScene),
			string(entities.ImageModeBoth),
		}, vb)
	}
	if p.TextEngine != nil {
		errors.ValidateEnum("textEngine", string(*p.TextEngine), []string{
			string(entities.TextEngineGemini),
			string(entities.TextEngineLocal),
		}, vb)
	}
	if p.ImageEngine != nil {
		errors.ValidateEnum("imageEngine", string(*p.ImageEngine), []string{
			string(entities.ImageEngineGemini),
			string(entities.ImageEngineLocalPerformance),
			string(entities.ImageEngineLocalQuality),
		}, vb)
	}
	if p.FontScale != nil {
		errors.ValidatePositive("fontScale", *p.FontScale, vb)
	}

	return vb.Build()
}
