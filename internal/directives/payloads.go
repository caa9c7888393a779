package directives

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-director/internal/entities"
)

// Directive is a parsed, validated state-change instruction. The concrete
// types below are the only implementations.
type Directive interface {
	Kind() Kind
}

// SceneImage requests an illustration of the current scene
type SceneImage struct{ Prompt string }

// CharacterImage requests a new portrait
type CharacterImage struct{ Prompt string }

// StatusUpdate replaces the character status
type StatusUpdate struct{ Status string }

// BackstoryUpdate replaces the character backstory
type BackstoryUpdate struct{ Backstory string }

// ItemAdd adds or replaces an inventory item by name
type ItemAdd struct{ Item entities.Item }

// ItemRemove removes an inventory item by name
type ItemRemove struct{ Name string }

// SkillUpdate sets a skill value by name
type SkillUpdate struct {
	Name  string
	Value int
}

// NPCUpsert creates or merges an NPC. Nil fields were absent from the
// payload and leave the existing value alone.
type NPCUpsert struct {
	Create       bool
	ID           string
	Name         *string
	Description  *string
	Relationship *int
}

// NPCRemove removes an NPC by id
type NPCRemove struct{ ID string }

// NPCRelation sets an NPC relationship
type NPCRelation struct {
	ID    string
	Value int
}

// LoreUpdate writes one lore entry
type LoreUpdate struct {
	Key   string
	Value string
}

// WorldEvent appends to the timeline
type WorldEvent struct{ Description string }

// Rejected is a directive whose payload failed validation
type Rejected struct {
	Of     Kind
	Reason string
}

func (SceneImage) Kind() Kind      { return KindSceneImage }
func (CharacterImage) Kind() Kind  { return KindCharacterImage }
func (StatusUpdate) Kind() Kind    { return KindStatusUpdate }
func (BackstoryUpdate) Kind() Kind { return KindBackstoryUpdate }
func (ItemAdd) Kind() Kind         { return KindItemAdd }
func (ItemRemove) Kind() Kind      { return KindItemRemove }
func (SkillUpdate) Kind() Kind     { return KindSkillUpdate }
func (NPCRemove) Kind() Kind       { return KindNPCRemove }
func (NPCRelation) Kind() Kind     { return KindNPCRelationUpdate }
func (LoreUpdate) Kind() Kind      { return KindLoreUpdate }
func (WorldEvent) Kind() Kind      { return KindWorldEventLog }
func (r Rejected) Kind() Kind      { return r.Of }

// Kind reports create or update depending on the tag that produced it
func (n NPCUpsert) Kind() Kind {
	if n.Create {
		return KindNPCCreate
	}
	return KindNPCUpdate
}

func reject(k Kind, reason string) Rejected {
	return Rejected{Of: k, Reason: reason}
}

// Parse validates a match and returns its typed directive. It never panics:
// any payload it cannot use comes back as Rejected.
func Parse(m Match) Directive {
	payload := m.Payload

	switch m.Kind {
	case KindSceneImage:
		prompt := strings.TrimSpace(payload)
		if prompt == "" {
			return reject(m.Kind, "blank image prompt")
		}
		return SceneImage{Prompt: prompt}

	case KindCharacterImage:
		prompt := strings.TrimSpace(payload)
		if prompt == "" {
			return reject(m.Kind, "blank image prompt")
		}
		return CharacterImage{Prompt: prompt}

	case KindStatusUpdate:
		return StatusUpdate{Status: strings.TrimSpace(payload)}

	case KindBackstoryUpdate:
		return BackstoryUpdate{Backstory: strings.TrimSpace(payload)}

	case KindItemAdd:
		name, desc, _ := splitPair(payload)
		if name == "" {
			return reject(m.Kind, "item name is empty")
		}
		return ItemAdd{Item: entities.Item{Name: name, Description: desc}}

	case KindItemRemove:
		return ItemRemove{Name: strings.TrimSpace(payload)}

	case KindSkillUpdate:
		name, raw, ok := splitPair(payload)
		if name == "" {
			return reject(m.Kind, "skill name is empty")
		}
		if !ok {
			return reject(m.Kind, "skill value is missing")
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return reject(m.Kind, "skill value is not an integer")
		}
		return SkillUpdate{Name: name, Value: value}

	case KindNPCCreate, KindNPCUpdate:
		return parseNPC(m.Kind, payload)

	case KindNPCRemove:
		var body struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal([]byte(payload), &body); err != nil {
			return reject(m.Kind, "payload is not a JSON object")
		}
		id := strings.TrimSpace(body.ID)
		if id == "" {
			return reject(m.Kind, "npc id is empty")
		}
		return NPCRemove{ID: id}

	case KindNPCRelationUpdate:
		id, raw, ok := splitPair(payload)
		if id == "" {
			return reject(m.Kind, "npc id is empty")
		}
		if !ok {
			return reject(m.Kind, "relationship value is missing")
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return reject(m.Kind, "relationship value is not an integer")
		}
		return NPCRelation{ID: id, Value: entities.ClampRelationship(value)}

	case KindLoreUpdate:
		key, value, _ := splitPair(payload)
		if key == "" || value == "" {
			return reject(m.Kind, "lore key and value are required")
		}
		return LoreUpdate{Key: key, Value: value}

	case KindWorldEventLog:
		return WorldEvent{Description: strings.TrimSpace(payload)}
	}

	return reject(m.Kind, "unknown directive kind")
}

// splitPair splits "left|right" at the first bar and trims both halves.
// ok is false when there is no bar.
func splitPair(payload string) (left, right string, ok bool) {
	parts := strings.SplitN(payload, "|", 2)
	left = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		right = strings.TrimSpace(parts[1])
		ok = true
	}
	return left, right, ok
}

func parseNPC(kind Kind, payload string) Directive {
	var body struct {
		ID           *string  `json:"id"`
		Name         *string  `json:"name"`
		Description  *string  `json:"description"`
		Relationship *float64 `json:"relationship"`
	}
	if err := json.Unmarshal([]byte(payload), &body); err != nil {
		return reject(kind, "payload is not a JSON object")
	}
	if body.ID == nil || strings.TrimSpace(*body.ID) == "" {
		return reject(kind, "npc id is empty")
	}

	out := NPCUpsert{
		Create:      kind == KindNPCCreate,
		ID:          strings.TrimSpace(*body.ID),
		Name:        body.Name,
		Description: body.Description,
	}
	if body.Relationship != nil {
		// Clamp before converting so huge values cannot overflow int
		v := math.Trunc(math.Max(entities.RelationshipMin, math.Min(entities.RelationshipMax, *body.Relationship)))
		rel := int(v)
		out.Relationship = &rel
	}
	return out
}
