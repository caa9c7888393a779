package entities

// Relationship bounds
const (
	RelationshipMin = -100
	RelationshipMax = 100
)

// ClampRelationship bounds v to [RelationshipMin, RelationshipMax]
func ClampRelationship(v int) int {
	if v < RelationshipMin {
		return RelationshipMin
	}
	if v > RelationshipMax {
		return RelationshipMax
	}
	return v
}

// NPC is a non-player character. The id is chosen by the model and is stable
// across turns.
type NPC struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Relationship int    `json:"relationship"`
}

// World holds lore and the NPC roster
type World struct {
	Lore map[string]string `json:"lore"`
	NPCs []NPC             `json:"npcs"`
}

// NewWorld returns an empty world with non-nil collections
func NewWorld() World {
	return World{
		Lore: map[string]string{},
		NPCs: []NPC{},
	}
}

// FindNPC returns the index of the NPC with id, or -1
func (w *World) FindNPC(id string) int {
	for i := range w.NPCs {
		if w.NPCs[i].ID == id {
			return i
		}
	}
	return -1
}

// RemoveNPC drops the NPC with id and reports whether it existed
func (w *World) RemoveNPC(id string) bool {
	i := w.FindNPC(id)
	if i < 0 {
		return false
	}
	w.NPCs = append(w.NPCs[:i], w.NPCs[i+1:]...)
	return true
}

// SetLore writes a lore entry. Last write wins.
func (w *World) SetLore(key, value string) {
	if w.Lore == nil {
		w.Lore = map[string]string{}
	}
	w.Lore[key] = value
}

// Normalize fills nil collections, clamps relationships and collapses
// duplicate NPC ids into the first position with the last record.
func (w *World) Normalize() {
	if w.Lore == nil {
		w.Lore = map[string]string{}
	}
	npcs := make([]NPC, 0, len(w.NPCs))
	seen := make(map[string]int, len(w.NPCs))
	for _, n := range w.NPCs {
		n.Relationship = ClampRelationship(n.Relationship)
		if i, ok := seen[n.ID]; ok {
			npcs[i] = n
			continue
		}
		seen[n.ID] = len(npcs)
		npcs = append(npcs, n)
	}
	w.NPCs = npcs
}

// Clone returns a deep copy
func (w World) Clone() World {
	out := World{
		Lore: make(map[string]string, len(w.Lore)),
		NPCs: append([]NPC{}, w.NPCs...),
	}
	for k, v := range w.Lore {
		out.Lore[k] = v
	}
	return out
}
