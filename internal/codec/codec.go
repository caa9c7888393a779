// Package codec reads and writes save documents. Documents carry a version;
// older documents are migrated forward before they are merged over the
// caller's defaults.
package codec

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/KirkDiggler/rpg-director/internal/entities"
	"github.com/KirkDiggler/rpg-director/internal/errors"
	"github.com/KirkDiggler/rpg-director/internal/store"
)

// CurrentVersion is the version Encode writes
const CurrentVersion = 2

// Document is the on-disk save format
type Document struct {
	Version      int                `json:"version"`
	Character    entities.Character `json:"character"`
	World        entities.World     `json:"world"`
	GameState    entities.GameState `json:"gameState"`
	Settings     entities.Settings  `json:"settings"`
	ImagePrompts []string           `json:"imagePrompts"`
}

// Encode serializes the savable parts of st
func Encode(st *store.State) ([]byte, error) {
	if st == nil {
		return nil, errors.InvalidArgument("state is required")
	}

	doc := Document{
		Version:      CurrentVersion,
		Character:    st.Character,
		World:        st.World,
		GameState:    st.Game,
		Settings:     st.Settings,
		ImagePrompts: st.ImagePrompts,
	}
	if doc.ImagePrompts == nil {
		doc.ImagePrompts = []string{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal save document")
	}
	return data, nil
}

// Decode parses a save document of any known version and merges it over a
// copy of defaults. The result always has phase PLAYING and loading false.
// Malformed input returns a DataLoss error.
func Decode(data []byte, defaults *store.State) (*store.State, error) {
	if defaults == nil {
		return nil, errors.InvalidArgument("defaults are required")
	}

	migrated, err := Migrate(data)
	if err != nil {
		return nil, err
	}

	out := defaults.Clone()
	sections := []struct {
		path   string
		target any
	}{
		{"character", &out.Character},
		{"world", &out.World},
		{"gameState", &out.Game},
		{"settings", &out.Settings},
		{"imagePrompts", &out.ImagePrompts},
	}
	for _, sec := range sections {
		raw := gjson.GetBytes(migrated, sec.path)
		if !raw.Exists() || raw.Type == gjson.Null {
			continue
		}
		if err := json.Unmarshal([]byte(raw.Raw), sec.target); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "save document section "+sec.path+" is malformed")
		}
	}

	out.Character.Normalize()
	out.World.Normalize()
	out.Game.Normalize()
	out.Game.Phase = entities.PhasePlaying
	out.Game.Loading = false
	if out.ImagePrompts == nil {
		out.ImagePrompts = []string{}
	}

	return out, nil
}

// Version reports the document version. Documents without one are
// version 1.
func Version(data []byte) int {
	v := gjson.GetBytes(data, "version")
	if !v.Exists() {
		return 1
	}
	return int(v.Int())
}
