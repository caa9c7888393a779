package v1alpha1

import (
	"time"

	"github.com/KirkDiggler/rpg-director/internal/entities"
	savesrepo "github.com/KirkDiggler/rpg-director/internal/repositories/saves"
	"github.com/KirkDiggler/rpg-director/internal/store"
)

// StateResponse is the wire form of a session snapshot. It uses the same
// section names as a save document.
type StateResponse struct {
	Character    entities.Character `json:"character"`
	World        entities.World     `json:"world"`
	GameState    entities.GameState `json:"gameState"`
	Settings     entities.Settings  `json:"settings"`
	ImagePrompts []string           `json:"imagePrompts"`
}

// ActionRequest is a player action
type ActionRequest struct {
	Text string `json:"text"`
}

// OnboardingRequest completes the setup wizard
type OnboardingRequest struct {
	Character     entities.Character `json:"character"`
	World         entities.World     `json:"world"`
	OpeningPrompt string             `json:"openingPrompt"`
}

// SettingsResponse carries the merged settings
type SettingsResponse struct {
	Settings entities.Settings `json:"settings"`
}

// SaveRequest names the slot to write. Empty creates a new slot.
type SaveRequest struct {
	SlotID string `json:"slotId"`
}

// SaveSummary describes a slot
type SaveSummary struct {
	ID            string    `json:"id"`
	CharacterName string    `json:"characterName"`
	Turns         int       `json:"turns"`
	SavedAt       time.Time `json:"savedAt"`
}

// ListSavesResponse lists slots newest first
type ListSavesResponse struct {
	Saves []SaveSummary `json:"saves"`
}

// LoadResponse carries the loaded slot and the restored state
type LoadResponse struct {
	Save  SaveSummary   `json:"save"`
	State StateResponse `json:"state"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Fields lists per-field failures of a rejected request
	Fields map[string][]string `json:"fields,omitempty"`
}

func convertState(st *store.State) StateResponse {
	return StateResponse{
		Character:    st.Character,
		World:        st.World,
		GameState:    st.Game,
		Settings:     st.Settings,
		ImagePrompts: st.ImagePrompts,
	}
}

func convertSummary(s savesrepo.Summary) SaveSummary {
	return SaveSummary{
		ID:            s.ID,
		CharacterName: s.CharacterName,
		Turns:         s.Turns,
		SavedAt:       s.SavedAt,
	}
}

func convertSummaries(in []savesrepo.Summary) []SaveSummary {
	out := make([]SaveSummary, 0, len(in))
	for _, s := range in {
		out = append(out, convertSummary(s))
	}
	return out
}
