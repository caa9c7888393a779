// Package directives reads the state-change tags the Director embeds in its
// prose. Scan finds the tag spans, Parse turns each span into a typed
// Directive, and Handler turns a Directive into a store patch or an image
// request.
package directives

// Kind identifies a directive
type Kind string

// Directive kinds
const (
	KindSceneImage        Kind = "scene-image"
	KindCharacterImage    Kind = "character-image"
	KindStatusUpdate      Kind = "status-update"
	KindBackstoryUpdate   Kind = "backstory-update"
	KindItemAdd           Kind = "item-add"
	KindItemRemove        Kind = "item-remove"
	KindSkillUpdate       Kind = "skill-update"
	KindNPCCreate         Kind = "npc-create"
	KindNPCUpdate         Kind = "npc-update"
	KindNPCRemove         Kind = "npc-remove"
	KindNPCRelationUpdate Kind = "npc-relation-update"
	KindLoreUpdate        Kind = "lore-update"
	KindWorldEventLog     Kind = "world-event-log"
)

// tags maps each kind to the tag name the Director writes
var tags = map[Kind]string{
	KindSceneImage:        "img-prompt",
	KindCharacterImage:    "char-img-prompt",
	KindStatusUpdate:      "update-status",
	KindBackstoryUpdate:   "update-backstory",
	KindItemAdd:           "add-item",
	KindItemRemove:        "remove-item",
	KindSkillUpdate:       "update-skill",
	KindNPCCreate:         "create-npc",
	KindNPCUpdate:         "update-npc",
	KindNPCRemove:         "remove-npc",
	KindNPCRelationUpdate: "update-npc-relation",
	KindLoreUpdate:        "update-lore",
	KindWorldEventLog:     "log-world-event",
}

var kindsByTag = func() map[string]Kind {
	m := make(map[string]Kind, len(tags))
	for k, t := range tags {
		m[t] = k
	}
	return m
}()

// Tag returns the wire tag name, or "" for an unknown kind
func (k Kind) Tag() string {
	return tags[k]
}

// String returns the kind name
func (k Kind) String() string {
	return string(k)
}

// KindForTag resolves a wire tag name
func KindForTag(tag string) (Kind, bool) {
	k, ok := kindsByTag[tag]
	return k, ok
}

// Open returns the opening tag, e.g. "[img-prompt]"
func (k Kind) Open() string {
	return "[" + k.Tag() + "]"
}

// Close returns the closing tag, e.g. "[/img-prompt]"
func (k Kind) Close() string {
	return "[/" + k.Tag() + "]"
}

// Wrap renders payload as a complete directive
func (k Kind) Wrap(payload string) string {
	return k.Open() + payload + k.Close()
}
