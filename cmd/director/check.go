package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-director/internal/orchestrators/saves"
)

var deleteCorrupt bool

var checkSavesCmd = &cobra.Command{
	Use:   "check-saves",
	Short: "Find save slots that cannot be loaded",
	Long:  `Decode every slot in the configured save backend and report the ones that fail. With --delete the failing slots are removed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.saves.CheckSaves(cmd.Context(), &saves.CheckSavesInput{Delete: deleteCorrupt})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Checked %d slots, found %d corrupt\n", out.Checked, len(out.Corrupt))
		for _, c := range out.Corrupt {
			fmt.Fprintf(w, "  - %s: %s\n", c.ID, c.Reason)
		}
		for _, id := range out.Deleted {
			fmt.Fprintf(w, "Deleted %s\n", id)
		}
		return nil
	},
}

func init() {
	checkSavesCmd.Flags().BoolVar(&deleteCorrupt, "delete", false, "delete corrupt slots")
}
