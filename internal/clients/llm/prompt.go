package llm

import (
	"fmt"
	"sort"
	"strings"
)

// DirectorSystemPrompt teaches the remote model its role and the tag toolkit
const DirectorSystemPrompt = `
--- ROLE ---
You are the Director of an interactive story. You narrate the consequences of
the player's actions, voice the characters they meet and keep the world
consistent with the lore, characters and events you are given. Stay inside the
established setting and keep continuity above all else.

--- STATE-CHANGE TAG LANGUAGE (Your Toolkit) ---
You MUST use these tags to communicate all changes to game state. The
application parses the tags out of your response; the narrative text should
reflect the changes but must not talk about the tags themselves.

*   **Scene & Atmosphere:**
    *   [img-prompt]A detailed, vivid description of the scene for an image model.[/img-prompt]
*   **Character & Inventory:**
    *   [char-img-prompt]A detailed description of the main character as they look now.[/char-img-prompt]
    *   [update-status]A short description of the character's current condition.[/update-status]
    *   [update-backstory]The full, updated backstory text.[/update-backstory]
    *   [add-item]Item Name|A detailed description of the item.[/add-item]
    *   [remove-item]Item Name[/remove-item]
    *   [update-skill]Skill Name|New integer value[/update-skill]
*   **NPC Management (simple JSON objects):**
    *   [create-npc]{"id": "unique_npc_id", "name": "NPC Name", "description": "Detailed description.", "relationship": 0}[/create-npc]
    *   [update-npc]{"id": "unique_npc_id", "name": "NPC Name", "description": "Updated description.", "relationship": 50}[/update-npc]
    *   [remove-npc]{"id": "unique_npc_id"}[/remove-npc]
    *   [update-npc-relation]unique_npc_id|New integer value between -100 and 100[/update-npc-relation]
*   **World Evolution:**
    *   [update-lore]Lore Key|The new content for this lore entry.[/update-lore]
    *   [log-world-event]A significant event that has occurred.[/log-world-event]

Do not output any other tags. Use the tags proactively: when an action would
logically change a skill, an item or a relationship, emit the tag.
`

// LocalDirectorPrompt is the shorter instruction used for small local models
const LocalDirectorPrompt = `You are a storytelling engine. Continue the story from the player's action, staying consistent with the established facts of the world.

Your response MUST be in two parts:
1. Narrative Text: A story segment that continues from the player's action.
2. State-Change Tags: After the narrative, use tags like [update-status]You feel tired.[/update-status] or [add-item]Gold Coin|A shiny gold coin.[/add-item] to modify the game state based on the story.
`

// ResponseMarker ends the prompt bundle. Local models sometimes echo the
// prompt, so their output is cut at this marker.
const ResponseMarker = "--- YOUR RESPONSE (Narrative + Tags) ---"

// BuildTurnPrompt renders the state bundle sent with each player action
func BuildTurnPrompt(req *TurnRequest) string {
	c := req.Character

	status := c.Status
	if status == "" {
		status = "Normal"
	}

	skills := make([]string, len(c.Skills))
	for i, s := range c.Skills {
		skills[i] = fmt.Sprintf("%s: %d", s.Name, s.Value)
	}
	items := make([]string, len(c.Inventory))
	for i, it := range c.Inventory {
		items[i] = it.Name
	}

	keys := make([]string, 0, len(req.World.Lore))
	for k := range req.World.Lore {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lore := make([]string, len(keys))
	for i, k := range keys {
		lore[i] = fmt.Sprintf("- %s: %s", k, req.World.Lore[k])
	}

	npcs := make([]string, len(req.World.NPCs))
	for i, n := range req.World.NPCs {
		npcs[i] = fmt.Sprintf("- %s (Relationship: %d)", n.Name, n.Relationship)
	}

	events := req.RecentTimeline
	if len(events) > RecentEventCount {
		events = events[len(events)-RecentEventCount:]
	}
	recent := make([]string, len(events))
	for i, e := range events {
		recent[i] = "- " + e.Description
	}

	var b strings.Builder
	b.WriteString("\n--- CURRENT STATE ---\n\n")
	fmt.Fprintf(&b, "**CHARACTER: %s**\n", c.Name)
	fmt.Fprintf(&b, "Status: %s\n", status)
	fmt.Fprintf(&b, "Backstory: %s\n", c.Backstory)
	fmt.Fprintf(&b, "Skills: %s\n", orDefault(strings.Join(skills, ", "), "None"))
	fmt.Fprintf(&b, "Inventory: %s\n\n", orDefault(strings.Join(items, ", "), "None"))
	b.WriteString("**WORLD LORE**\n")
	b.WriteString(orDefault(strings.Join(lore, "\n"), "No lore established."))
	b.WriteString("\n\n**KNOWN NPCS**\n")
	b.WriteString(orDefault(strings.Join(npcs, "\n"), "No NPCs encountered."))
	b.WriteString("\n\n**RECENT KEY EVENTS (Memory)**\n")
	b.WriteString(orDefault(strings.Join(recent, "\n"), "The story is just beginning."))
	b.WriteString("\n\n--- PLAYER ACTION ---\n")
	b.WriteString(req.PlayerAction)
	b.WriteString("\n\n" + ResponseMarker + "\n")
	return b.String()
}

// StripEcho returns the text after the response marker when the model
// repeated the prompt, or the whole text otherwise
func StripEcho(text string) string {
	if _, after, found := strings.Cut(text, ResponseMarker); found {
		return strings.TrimSpace(after)
	}
	return strings.TrimSpace(text)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
