package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/KirkDiggler/rpg-director/internal/entities"
	"github.com/KirkDiggler/rpg-director/internal/errors"
)

// migration upgrades a document from version n to n+1
type migration func(data []byte) ([]byte, error)

// migrations is indexed by source version
var migrations = map[int]migration{
	1: migrateV1,
}

// Migrate validates data and upgrades it to CurrentVersion
func Migrate(data []byte) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.DataLoss("save document is not valid JSON")
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, errors.DataLoss("save document is not a JSON object")
	}

	version := Version(data)
	if version < 1 || version > CurrentVersion {
		return nil, errors.DataLossf("unsupported save document version %d", version)
	}

	for v := version; v < CurrentVersion; v++ {
		m, ok := migrations[v]
		if !ok {
			return nil, errors.Internalf("no migration from save document version %d", v)
		}
		var err error
		data, err = m(data)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoss, fmt.Sprintf("failed to migrate save document from version %d", v))
		}
	}
	return data, nil
}

// migrateV1 upgrades documents written before saves were versioned. Those
// may lack portrait history, their history was never capped, and their NPCs
// were stored as the model wrote them: numeric ids, fractional or quoted
// relationships, or none at all.
func migrateV1(data []byte) ([]byte, error) {
	var err error

	history := gjson.GetBytes(data, "character.imageUrlHistory")
	if gjson.GetBytes(data, "character").IsObject() {
		if !history.Exists() || !history.IsArray() {
			if data, err = sjson.SetBytes(data, "character.imageUrlHistory", []string{}); err != nil {
				return nil, err
			}
		} else if n := len(history.Array()); n > entities.PortraitHistoryCap {
			capped := make([]string, 0, entities.PortraitHistoryCap)
			for _, u := range history.Array()[:entities.PortraitHistoryCap] {
				capped = append(capped, u.String())
			}
			if data, err = sjson.SetBytes(data, "character.imageUrlHistory", capped); err != nil {
				return nil, err
			}
		}
	}

	npcs := gjson.GetBytes(data, "world.npcs")
	if npcs.IsArray() {
		for i, npc := range npcs.Array() {
			if !npc.IsObject() {
				continue
			}
			base := fmt.Sprintf("world.npcs.%d.", i)

			if id := npc.Get("id"); id.Type == gjson.Number {
				if data, err = sjson.SetBytes(data, base+"id", id.Raw); err != nil {
					return nil, err
				}
			}

			if data, err = sjson.SetBytes(data, base+"relationship", legacyRelationship(npc.Get("relationship"))); err != nil {
				return nil, err
			}
		}
	}

	return sjson.SetBytes(data, "version", 2)
}

// legacyRelationship reads a stored relationship as a whole number in range.
// Anything that is not a number, or a string holding one, becomes 0.
func legacyRelationship(rel gjson.Result) int {
	var v float64
	switch rel.Type {
	case gjson.Number:
		v = rel.Float()
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(rel.Str), 64)
		if err != nil {
			return 0
		}
		v = parsed
	default:
		return 0
	}
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Trunc(math.Max(entities.RelationshipMin, math.Min(entities.RelationshipMax, v))))
}
