package turn

import (
	"github.com/KirkDiggler/rpg-director/internal/entities"
	"github.com/KirkDiggler/rpg-director/internal/store"
)

// SubmitPlayerActionInput contains the player's free-form action
type SubmitPlayerActionInput struct {
	Text string
}

// SubmitPlayerActionOutput contains the state after the turn committed
type SubmitPlayerActionOutput struct {
	State *store.State
}

// CompleteOnboardingInput contains the result of the setup wizard
type CompleteOnboardingInput struct {
	// Character is merged over a fresh character
	Character entities.Character
	// World replaces the current world
	World entities.World
	// OpeningPrompt is submitted as the first player action
	OpeningPrompt string
}

// CompleteOnboardingOutput contains the state after the opening turn
type CompleteOnboardingOutput struct {
	State *store.State
}

// UpdateSettingsInput contains a partial settings update
type UpdateSettingsInput struct {
	Patch entities.SettingsPatch
}

// UpdateSettingsOutput contains the merged settings
type UpdateSettingsOutput struct {
	Settings entities.Settings
}

// RestartInput is empty; restart always resets to defaults
type RestartInput struct{}

// RestartOutput contains the fresh state
type RestartOutput struct {
	State *store.State
}

// LoadStateInput contains a save document
type LoadStateInput struct {
	Document []byte
}

// LoadStateOutput contains the restored state
type LoadStateOutput struct {
	State *store.State
}

// SerializeStateInput is empty
type SerializeStateInput struct{}

// SerializeStateOutput contains the encoded save document
type SerializeStateOutput struct {
	Document []byte
	// State is the snapshot the document was encoded from
	State *store.State
}

// GetSnapshotInput is empty
type GetSnapshotInput struct{}

// GetSnapshotOutput contains a deep copy of the live state
type GetSnapshotOutput struct {
	State *store.State
}
