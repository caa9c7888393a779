// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/rpg-director/internal/entities"
	"github.com/KirkDiggler/rpg-director/internal/store"
)

// StateBuilder provides a fluent interface for building test states
type StateBuilder struct {
	state  *store.State
	nextID int64
}

// NewStateBuilder creates a builder for a fresh onboarding state with the
// default settings
func NewStateBuilder() *StateBuilder {
	return &StateBuilder{
		state:  store.DefaultState(entities.DefaultSettings()),
		nextID: 1,
	}
}

// Playing moves the state past onboarding
func (b *StateBuilder) Playing() *StateBuilder {
	b.state.Game.Phase = entities.PhasePlaying
	return b
}

// Loading marks a turn as in flight
func (b *StateBuilder) Loading() *StateBuilder {
	b.state.Game.Loading = true
	return b
}

// WithCharacterName sets the character name
func (b *StateBuilder) WithCharacterName(name string) *StateBuilder {
	b.state.Character.Name = name
	return b
}

// WithSkill adds or updates a skill
func (b *StateBuilder) WithSkill(name string, value int) *StateBuilder {
	b.state.Character.UpsertSkill(name, value)
	return b
}

// WithItem adds an inventory item
func (b *StateBuilder) WithItem(name, description string) *StateBuilder {
	b.state.Character.UpsertItem(entities.Item{Name: name, Description: description})
	return b
}

// WithNPC adds an NPC
func (b *StateBuilder) WithNPC(id, name string, relationship int) *StateBuilder {
	b.state.World.NPCs = append(b.state.World.NPCs, entities.NPC{
		ID:           id,
		Name:         name,
		Relationship: relationship,
	})
	return b
}

// WithExchange appends a player entry and its narrative reply. Ids count up
// from one unless WithEntryID moved them.
func (b *StateBuilder) WithExchange(action, narrative string) *StateBuilder {
	b.state.Game.StoryLog = append(b.state.Game.StoryLog,
		entities.StoryEntry{ID: b.next(), Kind: entities.EntryPlayer, Text: action},
		entities.StoryEntry{ID: b.next(), Kind: entities.EntryNarrative, Text: narrative},
	)
	return b
}

// WithNarrative appends a narrative entry
func (b *StateBuilder) WithNarrative(text string) *StateBuilder {
	b.state.Game.StoryLog = append(b.state.Game.StoryLog,
		entities.StoryEntry{ID: b.next(), Kind: entities.EntryNarrative, Text: text},
	)
	return b
}

// WithEntryID sets the id of the next appended entry
func (b *StateBuilder) WithEntryID(id int64) *StateBuilder {
	b.nextID = id
	return b
}

// WithEvent appends a timeline event
func (b *StateBuilder) WithEvent(description string) *StateBuilder {
	b.state.Game.Timeline = append(b.state.Game.Timeline,
		entities.TimelineEvent{ID: b.next(), Description: description},
	)
	return b
}

// WithImageMode sets the image generation mode
func (b *StateBuilder) WithImageMode(mode entities.ImageMode) *StateBuilder {
	b.state.Settings.ImageMode = mode
	return b
}

// Build returns a copy of the built state
func (b *StateBuilder) Build() *store.State {
	return b.state.Clone()
}

func (b *StateBuilder) next() int64 {
	id := b.nextID
	b.nextID++
	return id
}
