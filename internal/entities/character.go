// Package entities holds the game aggregates owned by the store: the
// character sheet, the world, the game log and the player's settings.
package entities

import (
	"fmt"
	"strings"
)

// PortraitHistoryCap bounds how many superseded portraits are kept
const PortraitHistoryCap = 9

// Skill is a named integer rating. Names are unique within a character.
type Skill struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Item is an inventory entry. Names are unique within a character.
type Item struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Character is the player's sheet
type Character struct {
	Name      string  `json:"name"`
	Backstory string  `json:"backstory"`
	Skills    []Skill `json:"skills"`
	Inventory []Item  `json:"inventory"`
	Status    string  `json:"status,omitempty"`
	ImageURL  string  `json:"imageUrl,omitempty"`

	// ImageURLHistory holds previous portraits, newest first
	ImageURLHistory []string `json:"imageUrlHistory"`
}

// NewCharacter returns an empty character with non-nil collections
func NewCharacter() Character {
	return Character{
		Skills:          []Skill{},
		Inventory:       []Item{},
		ImageURLHistory: []string{},
	}
}

// UpsertSkill sets the value of the named skill, appending it when absent
func (c *Character) UpsertSkill(name string, value int) {
	for i := range c.Skills {
		if c.Skills[i].Name == name {
			c.Skills[i].Value = value
			return
		}
	}
	c.Skills = append(c.Skills, Skill{Name: name, Value: value})
}

// UpsertItem replaces the item with the same name in place, or appends it
func (c *Character) UpsertItem(item Item) {
	for i := range c.Inventory {
		if c.Inventory[i].Name == item.Name {
			c.Inventory[i] = item
			return
		}
	}
	c.Inventory = append(c.Inventory, item)
}

// RemoveItem drops the named item. It reports whether anything was removed.
func (c *Character) RemoveItem(name string) bool {
	for i := range c.Inventory {
		if c.Inventory[i].Name == name {
			c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// PushPortrait installs url as the current portrait. The previous portrait,
// if any, moves to the front of the history, which is then capped.
func (c *Character) PushPortrait(url string) {
	if c.ImageURL != "" {
		c.ImageURLHistory = append([]string{c.ImageURL}, c.ImageURLHistory...)
	}
	if len(c.ImageURLHistory) > PortraitHistoryCap {
		c.ImageURLHistory = c.ImageURLHistory[:PortraitHistoryCap]
	}
	c.ImageURL = url
}

// PortraitPrompt describes the character for an image model
func (c *Character) PortraitPrompt() string {
	skills := make([]string, len(c.Skills))
	for i, s := range c.Skills {
		skills[i] = s.Name
	}
	items := make([]string, len(c.Inventory))
	for i, it := range c.Inventory {
		items[i] = it.Name
	}

	skillText := strings.Join(skills, ", ")
	if skillText == "" {
		skillText = "no defined skills"
	}
	itemText := strings.Join(items, ", ")
	if itemText == "" {
		itemText = "nothing"
	}

	return fmt.Sprintf("A portrait of %s. Backstory: %s. They are skilled in %s. They are currently carrying: %s.",
		c.Name, c.Backstory, skillText, itemText)
}

// Normalize restores the sheet invariants on data that came from outside:
// nil collections become empty, duplicate skill and item names collapse into
// the first position with the last value, and the history is capped.
func (c *Character) Normalize() {
	skills := make([]Skill, 0, len(c.Skills))
	seenSkill := make(map[string]int, len(c.Skills))
	for _, s := range c.Skills {
		if i, ok := seenSkill[s.Name]; ok {
			skills[i].Value = s.Value
			continue
		}
		seenSkill[s.Name] = len(skills)
		skills = append(skills, s)
	}
	c.Skills = skills

	items := make([]Item, 0, len(c.Inventory))
	seenItem := make(map[string]int, len(c.Inventory))
	for _, it := range c.Inventory {
		if i, ok := seenItem[it.Name]; ok {
			items[i] = it
			continue
		}
		seenItem[it.Name] = len(items)
		items = append(items, it)
	}
	c.Inventory = items

	if c.ImageURLHistory == nil {
		c.ImageURLHistory = []string{}
	}
	if len(c.ImageURLHistory) > PortraitHistoryCap {
		c.ImageURLHistory = c.ImageURLHistory[:PortraitHistoryCap]
	}
}

// Clone returns a deep copy
func (c Character) Clone() Character {
	out := c
	out.Skills = append([]Skill{}, c.Skills...)
	out.Inventory = append([]Item{}, c.Inventory...)
	out.ImageURLHistory = append([]string{}, c.ImageURLHistory...)
	return out
}
