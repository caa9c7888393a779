package directives_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-director/internal/directives"
	"github.com/KirkDiggler/rpg-director/internal/entities"
)

type ParseTestSuite struct {
	suite.Suite
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func (s *ParseTestSuite) TestParse() {
	testCases := []struct {
		name     string
		kind     directives.Kind
		payload  string
		expected directives.Directive
	}{
		{
			name:     "scene image",
			kind:     directives.KindSceneImage,
			payload:  " a ruined tower ",
			expected: directives.SceneImage{Prompt: "a ruined tower"},
		},
		{
			name:     "blank scene image",
			kind:     directives.KindSceneImage,
			payload:  "   ",
			expected: directives.Rejected{Of: directives.KindSceneImage, Reason: "blank image prompt"},
		},
		{
			name:     "blank portrait",
			kind:     directives.KindCharacterImage,
			payload:  "",
			expected: directives.Rejected{Of: directives.KindCharacterImage, Reason: "blank image prompt"},
		},
		{
			name:     "status",
			kind:     directives.KindStatusUpdate,
			payload:  "Wounded",
			expected: directives.StatusUpdate{Status: "Wounded"},
		},
		{
			name:     "item with description containing a bar",
			kind:     directives.KindItemAdd,
			payload:  " Sword | A blade | notched ",
			expected: directives.ItemAdd{Item: entities.Item{Name: "Sword", Description: "A blade | notched"}},
		},
		{
			name:     "item without description",
			kind:     directives.KindItemAdd,
			payload:  "Torch",
			expected: directives.ItemAdd{Item: entities.Item{Name: "Torch"}},
		},
		{
			name:     "item without name",
			kind:     directives.KindItemAdd,
			payload:  "|nameless",
			expected: directives.Rejected{Of: directives.KindItemAdd, Reason: "item name is empty"},
		},
		{
			name:     "remove item",
			kind:     directives.KindItemRemove,
			payload:  " Rope ",
			expected: directives.ItemRemove{Name: "Rope"},
		},
		{
			name:     "skill",
			kind:     directives.KindSkillUpdate,
			payload:  "Perception| 65 ",
			expected: directives.SkillUpdate{Name: "Perception", Value: 65},
		},
		{
			name:     "skill with trailing text",
			kind:     directives.KindSkillUpdate,
			payload:  "Perception|65 points",
			expected: directives.Rejected{Of: directives.KindSkillUpdate, Reason: "skill value is not an integer"},
		},
		{
			name:     "skill without value",
			kind:     directives.KindSkillUpdate,
			payload:  "Perception",
			expected: directives.Rejected{Of: directives.KindSkillUpdate, Reason: "skill value is missing"},
		},
		{
			name:    "npc create",
			kind:    directives.KindNPCCreate,
			payload: `{"id":"guard_1","name":"Guard","description":"Bored.","relationship":10}`,
			expected: directives.NPCUpsert{
				Create:       true,
				ID:           "guard_1",
				Name:         strPtr("Guard"),
				Description:  strPtr("Bored."),
				Relationship: intPtr(10),
			},
		},
		{
			name:     "npc update with partial fields and fractional relationship",
			kind:     directives.KindNPCUpdate,
			payload:  `{"id":"guard_1","relationship":-42.9}`,
			expected: directives.NPCUpsert{ID: "guard_1", Relationship: intPtr(-42)},
		},
		{
			name:     "npc relationship out of range",
			kind:     directives.KindNPCUpdate,
			payload:  `{"id":"guard_1","relationship":1e12}`,
			expected: directives.NPCUpsert{ID: "guard_1", Relationship: intPtr(100)},
		},
		{
			name:     "malformed npc",
			kind:     directives.KindNPCCreate,
			payload:  "not json",
			expected: directives.Rejected{Of: directives.KindNPCCreate, Reason: "payload is not a JSON object"},
		},
		{
			name:     "npc without id",
			kind:     directives.KindNPCCreate,
			payload:  `{"name":"Nobody"}`,
			expected: directives.Rejected{Of: directives.KindNPCCreate, Reason: "npc id is empty"},
		},
		{
			name:     "npc remove",
			kind:     directives.KindNPCRemove,
			payload:  `{"id":"guard_1"}`,
			expected: directives.NPCRemove{ID: "guard_1"},
		},
		{
			name:     "npc remove malformed",
			kind:     directives.KindNPCRemove,
			payload:  `guard_1`,
			expected: directives.Rejected{Of: directives.KindNPCRemove, Reason: "payload is not a JSON object"},
		},
		{
			name:     "relation clamps",
			kind:     directives.KindNPCRelationUpdate,
			payload:  "guard_1|150",
			expected: directives.NPCRelation{ID: "guard_1", Value: 100},
		},
		{
			name:     "relation not integer",
			kind:     directives.KindNPCRelationUpdate,
			payload:  "guard_1|friendly",
			expected: directives.Rejected{Of: directives.KindNPCRelationUpdate, Reason: "relationship value is not an integer"},
		},
		{
			name:     "lore",
			kind:     directives.KindLoreUpdate,
			payload:  "The City | Built on bones",
			expected: directives.LoreUpdate{Key: "The City", Value: "Built on bones"},
		},
		{
			name:     "lore without value",
			kind:     directives.KindLoreUpdate,
			payload:  "The City|",
			expected: directives.Rejected{Of: directives.KindLoreUpdate, Reason: "lore key and value are required"},
		},
		{
			name:     "world event",
			kind:     directives.KindWorldEventLog,
			payload:  "The bridge fell.",
			expected: directives.WorldEvent{Description: "The bridge fell."},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got := directives.Parse(directives.Match{Kind: tc.kind, Payload: tc.payload})
			s.Equal(tc.expected, got)
			s.Equal(tc.kind, got.Kind())
		})
	}
}

func TestParseTestSuite(t *testing.T) {
	suite.Run(t, new(ParseTestSuite))
}
