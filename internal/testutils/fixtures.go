package testutils

import (
	"github.com/KirkDiggler/rpg-director/internal/entities"
	"github.com/KirkDiggler/rpg-director/internal/store"
)

const (
	// TestCharacterName is the default character name for test fixtures
	TestCharacterName = "Mira"
	// TestBackstory is the default backstory for test fixtures
	TestBackstory = "A tracker from the northern marches"
	// TestNPCID is the id of the innkeeper in the test world
	TestNPCID = "garrick"
)

// CreateTestCharacter creates a character with a name and backstory and no
// skills, items or portraits
func CreateTestCharacter() entities.Character {
	c := entities.NewCharacter()
	c.Name = TestCharacterName
	c.Backstory = TestBackstory
	return c
}

// CreateTestWorld creates a world with one friendly NPC
func CreateTestWorld() entities.World {
	w := entities.NewWorld()
	w.NPCs = []entities.NPC{
		{ID: TestNPCID, Name: "Garrick", Description: "The innkeeper", Relationship: 10},
	}
	return w
}

// CreateTestPlayingState creates a state past onboarding with the test
// character and world and an empty story
func CreateTestPlayingState() *store.State {
	st := store.DefaultState(entities.DefaultSettings())
	st.Game.Phase = entities.PhasePlaying
	st.Character = CreateTestCharacter()
	st.World = CreateTestWorld()
	return st
}
