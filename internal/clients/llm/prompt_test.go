package llm_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-director/internal/clients/llm"
	"github.com/KirkDiggler/rpg-director/internal/entities"
)

func TestBuildTurnPrompt_Empty(t *testing.T) {
	prompt := llm.BuildTurnPrompt(&llm.TurnRequest{
		Character:    entities.Character{Name: "Mara", Backstory: "A wanderer"},
		World:        entities.NewWorld(),
		PlayerAction: "I look around.",
	})

	assert.Contains(t, prompt, "**CHARACTER: Mara**\n")
	assert.Contains(t, prompt, "Status: Normal\n")
	assert.Contains(t, prompt, "Skills: None\n")
	assert.Contains(t, prompt, "Inventory: None\n")
	assert.Contains(t, prompt, "No lore established.")
	assert.Contains(t, prompt, "No NPCs encountered.")
	assert.Contains(t, prompt, "The story is just beginning.")
	assert.Contains(t, prompt, "--- PLAYER ACTION ---\nI look around.\n")
	assert.True(t, strings.HasSuffix(prompt, llm.ResponseMarker+"\n"))
}

func TestBuildTurnPrompt_Populated(t *testing.T) {
	var timeline []entities.TimelineEvent
	for _, d := range []string{"e1", "e2", "e3", "e4", "e5", "e6", "e7"} {
		timeline = append(timeline, entities.TimelineEvent{Description: d})
	}

	prompt := llm.BuildTurnPrompt(&llm.TurnRequest{
		Character: entities.Character{
			Name:      "Mara",
			Status:    "Wounded",
			Skills:    []entities.Skill{{Name: "Stealth", Value: 40}, {Name: "Perception", Value: 65}},
			Inventory: []entities.Item{{Name: "Dagger"}, {Name: "Rope"}},
		},
		World: entities.World{
			Lore: map[string]string{"Zed": "last", "Arden": "first"},
			NPCs: []entities.NPC{{ID: "g", Name: "Guard", Relationship: -20}},
		},
		RecentTimeline: timeline,
		PlayerAction:   "Run.",
	})

	assert.Contains(t, prompt, "Status: Wounded\n")
	assert.Contains(t, prompt, "Skills: Stealth: 40, Perception: 65\n")
	assert.Contains(t, prompt, "Inventory: Dagger, Rope\n")
	assert.Contains(t, prompt, "- Arden: first\n- Zed: last")
	assert.Contains(t, prompt, "- Guard (Relationship: -20)")
	assert.Contains(t, prompt, "- e3\n- e4\n- e5\n- e6\n- e7")
	assert.NotContains(t, prompt, "- e2\n")
}

func TestStripEcho(t *testing.T) {
	assert.Equal(t, "She nods.", llm.StripEcho("prompt text\n"+llm.ResponseMarker+"\n She nods. "))
	assert.Equal(t, "She nods.", llm.StripEcho("  She nods.\n"))
}

func TestFallbackNarrative(t *testing.T) {
	assert.Equal(t, llm.RemoteFallbackNarrative, llm.FallbackNarrative(entities.TextEngineGemini))
	assert.Equal(t, llm.LocalFallbackNarrative, llm.FallbackNarrative(entities.TextEngineLocal))
}
