package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-director/internal/codec"
	"github.com/KirkDiggler/rpg-director/internal/config"
	"github.com/KirkDiggler/rpg-director/internal/entities"
	"github.com/KirkDiggler/rpg-director/internal/errors"
	"github.com/KirkDiggler/rpg-director/internal/store"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Summarize a save document",
	Long:  `Decode a save document, migrating older versions, and print a summary. Exits non-zero when the document is malformed.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", args[0])
		}
		settings, err := config.LoadSettings(cfg.SettingsFile)
		if err != nil {
			return err
		}
		return inspect(cmd.OutOrStdout(), data, settings)
	},
}

func inspect(w io.Writer, data []byte, settings entities.Settings) error {
	st, err := codec.Decode(data, store.DefaultState(settings))
	if err != nil {
		return err
	}

	players := 0
	for _, e := range st.Game.StoryLog {
		if e.Kind == entities.EntryPlayer {
			players++
		}
	}

	fmt.Fprintf(w, "version:      %d\n", codec.Version(data))
	fmt.Fprintf(w, "character:    %s\n", st.Character.Name)
	fmt.Fprintf(w, "skills:       %d\n", len(st.Character.Skills))
	fmt.Fprintf(w, "inventory:    %d\n", len(st.Character.Inventory))
	fmt.Fprintf(w, "portraits:    %d\n", len(st.Character.ImageURLHistory))
	fmt.Fprintf(w, "npcs:         %d\n", len(st.World.NPCs))
	fmt.Fprintf(w, "lore:         %d\n", len(st.World.Lore))
	fmt.Fprintf(w, "turns:        %d\n", players)
	fmt.Fprintf(w, "entries:      %d\n", len(st.Game.StoryLog))
	fmt.Fprintf(w, "timeline:     %d\n", len(st.Game.Timeline))
	fmt.Fprintf(w, "prompts:      %d\n", len(st.ImagePrompts))
	fmt.Fprintf(w, "text engine:  %s\n", st.Settings.TextEngine)
	fmt.Fprintf(w, "image engine: %s\n", st.Settings.ImageEngine)
	fmt.Fprintf(w, "image mode:   %s\n", st.Settings.ImageMode)

	return nil
}
