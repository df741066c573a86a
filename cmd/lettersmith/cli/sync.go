package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lettersmith/lettersmith/internal/profsync"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import changed profile files into memory",
	Long: `Sync checks the skillset CSV and criteria file in the profile directory
against their stored checksums and folds any changes into memory.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig()
		store := getMemory()

		res, err := profsync.New(store, cfg.ProfileDir).Sync()
		if err != nil {
			fmt.Printf("Sync failed: %v\n", err)
			os.Exit(1)
		}

		if !res.SkillsChanged && !res.CriteriaChanged && res.InvalidRemoved == 0 {
			fmt.Println("Profile files unchanged.")
			return
		}
		if res.SkillsChanged {
			fmt.Printf("Skillset: %d added, %d updated, %d removed\n",
				res.SkillsAdded, res.SkillsUpdated, res.SkillsRemoved)
		}
		if res.CriteriaChanged {
			fmt.Println("Criteria file changed; new guidance applies to the next generation.")
		}
		if res.InvalidRemoved > 0 {
			fmt.Printf("Removed %d malformed skill entries\n", res.InvalidRemoved)
		}
		if err := store.Save(); err != nil {
			fmt.Printf("Failed to save memory: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
