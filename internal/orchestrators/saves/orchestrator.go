// Package saves implements the save slot orchestrator. It moves encoded
// sessions between the turn orchestrator and a slot repository.
package saves

//go:generate mockgen -destination=mock/mock_service.go -package=savesmock github.com/KirkDiggler/rpg-director/internal/orchestrators/saves Service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-director/internal/codec"
	"github.com/KirkDiggler/rpg-director/internal/entities"
	"github.com/KirkDiggler/rpg-director/internal/errors"
	"github.com/KirkDiggler/rpg-director/internal/orchestrators/turn"
	"github.com/KirkDiggler/rpg-director/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-director/internal/pkg/idgen"
	savesrepo "github.com/KirkDiggler/rpg-director/internal/repositories/saves"
	"github.com/KirkDiggler/rpg-director/internal/store"
)

// Service defines save slot operations
type Service interface {
	// Slots
	SaveGame(ctx context.Context, input *SaveGameInput) (*SaveGameOutput, error)
	LoadGame(ctx context.Context, input *LoadGameInput) (*LoadGameOutput, error)
	ListSaves(ctx context.Context, input *ListSavesInput) (*ListSavesOutput, error)
	DeleteSave(ctx context.Context, input *DeleteSaveInput) (*DeleteSaveOutput, error)

	// Raw documents
	ExportDocument(ctx context.Context, input *ExportDocumentInput) (*ExportDocumentOutput, error)
	ImportDocument(ctx context.Context, input *ImportDocumentInput) (*ImportDocumentOutput, error)

	// Maintenance
	CheckSaves(ctx context.Context, input *CheckSavesInput) (*CheckSavesOutput, error)
}

// Config holds the dependencies for the saves orchestrator
type Config struct {
	Game        turn.Service
	SaveRepo    savesrepo.Repository
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Game == nil {
		vb.RequiredField("Game")
	}
	if c.SaveRepo == nil {
		vb.RequiredField("SaveRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	game     turn.Service
	saveRepo savesrepo.Repository
	idGen    idgen.Generator
	clock    clock.Clock
}

// NewOrchestrator creates a new saves orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		game:     cfg.Game,
		saveRepo: cfg.SaveRepo,
		idGen:    cfg.IDGenerator,
		clock:    cfg.Clock,
	}, nil
}

// SaveGame writes the live session to a slot
func (o *orchestrator) SaveGame(ctx context.Context, input *SaveGameInput) (*SaveGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	slotID := strings.TrimSpace(input.SlotID)
	if slotID == "" {
		slotID = o.idGen.Generate()
	}

	serialized, err := o.game.SerializeState(ctx, &turn.SerializeStateInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize state")
	}

	slot := &savesrepo.Slot{
		Summary:  summarize(slotID, serialized.State),
		Document: serialized.Document,
	}
	slot.SavedAt = o.clock.Now().UTC()

	out, err := o.saveRepo.Put(ctx, savesrepo.PutInput{Slot: slot})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save slot %s", slotID)
	}

	slog.Info("Game saved",
		"slot_id", slotID,
		"character", slot.CharacterName,
		"turns", slot.Turns,
		"bytes", len(slot.Document),
	)

	return &SaveGameOutput{Summary: out.Summary}, nil
}

// LoadGame restores a slot into the live session
func (o *orchestrator) LoadGame(ctx context.Context, input *LoadGameInput) (*LoadGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if strings.TrimSpace(input.SlotID) == "" {
		return nil, errors.InvalidArgument("slot ID is required")
	}

	got, err := o.saveRepo.Get(ctx, savesrepo.GetInput{ID: input.SlotID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get slot %s", input.SlotID)
	}

	loaded, err := o.game.LoadState(ctx, &turn.LoadStateInput{Document: got.Slot.Document})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load slot %s", input.SlotID)
	}

	slog.Info("Game loaded", "slot_id", input.SlotID)

	return &LoadGameOutput{Summary: got.Slot.Summary, State: loaded.State}, nil
}

// ListSaves returns every slot, newest first
func (o *orchestrator) ListSaves(ctx context.Context, _ *ListSavesInput) (*ListSavesOutput, error) {
	out, err := o.saveRepo.List(ctx, savesrepo.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list slots")
	}

	return &ListSavesOutput{Summaries: out.Summaries}, nil
}

// DeleteSave removes a slot
func (o *orchestrator) DeleteSave(ctx context.Context, input *DeleteSaveInput) (*DeleteSaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if strings.TrimSpace(input.SlotID) == "" {
		return nil, errors.InvalidArgument("slot ID is required")
	}

	if _, err := o.saveRepo.Delete(ctx, savesrepo.DeleteInput{ID: input.SlotID}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete slot %s", input.SlotID)
	}

	slog.Info("Save deleted", "slot_id", input.SlotID)

	return &DeleteSaveOutput{}, nil
}

// ExportDocument returns the live session as a standalone document
func (o *orchestrator) ExportDocument(ctx context.Context, _ *ExportDocumentInput) (*ExportDocumentOutput, error) {
	serialized, err := o.game.SerializeState(ctx, &turn.SerializeStateInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize state")
	}

	return &ExportDocumentOutput{
		Document: serialized.Document,
		FileName: fmt.Sprintf("veritas-save-%d.json", o.clock.Now().UnixMilli()),
	}, nil
}

// ImportDocument replaces the live session with an outside document
func (o *orchestrator) ImportDocument(ctx context.Context, input *ImportDocumentInput) (*ImportDocumentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	loaded, err := o.game.LoadState(ctx, &turn.LoadStateInput{Document: input.Document})
	if err != nil {
		return nil, errors.Wrap(err, "failed to import document")
	}

	return &ImportDocumentOutput{State: loaded.State}, nil
}

// CheckSaves decodes every slot without touching the live session
func (o *orchestrator) CheckSaves(ctx context.Context, input *CheckSavesInput) (*CheckSavesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	listed, err := o.saveRepo.List(ctx, savesrepo.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list slots")
	}

	defaults := store.DefaultState(entities.DefaultSettings())
	out := &CheckSavesOutput{Corrupt: []CorruptSlot{}, Deleted: []string{}}

	for _, summary := range listed.Summaries {
		got, err := o.saveRepo.Get(ctx, savesrepo.GetInput{ID: summary.ID})
		if err != nil {
			if errors.IsNotFound(err) {
				// deleted since the list
				continue
			}
			return nil, errors.Wrapf(err, "failed to get slot %s", summary.ID)
		}
		out.Checked++

		if _, err := codec.Decode(got.Slot.Document, defaults); err != nil {
			slog.Warn("Corrupt save slot", "slot_id", summary.ID, "error", err)
			out.Corrupt = append(out.Corrupt, CorruptSlot{ID: summary.ID, Reason: err.Error()})
		}
	}

	if input.Delete {
		for _, c := range out.Corrupt {
			if _, err := o.saveRepo.Delete(ctx, savesrepo.DeleteInput{ID: c.ID}); err != nil {
				slog.Error("Failed to delete corrupt slot", "slot_id", c.ID, "error", err)
				continue
			}
			out.Deleted = append(out.Deleted, c.ID)
		}
	}

	slog.Info("Saves checked",
		"checked", out.Checked,
		"corrupt", len(out.Corrupt),
		"deleted", len(out.Deleted),
	)

	return out, nil
}

// summarize counts player entries as turns
func summarize(id string, st *store.State) savesrepo.Summary {
	turns := 0
	for _, e := range st.Game.StoryLog {
		if e.Kind == entities.EntryPlayer {
			turns++
		}
	}

	return savesrepo.Summary{
		ID:            id,
		CharacterName: st.Character.Name,
		Turns:         turns,
	}
}
