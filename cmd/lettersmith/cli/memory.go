package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lettersmith/lettersmith/internal/memory"
	"github.com/lettersmith/lettersmith/internal/profsync"
)

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Inspect and maintain the learning memory",
	Run: func(cmd *cobra.Command, args []string) {
		showDashboard()
	},
}

var memorySkillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List all remembered skills",
	Run: func(cmd *cobra.Command, args []string) {
		store := getMemory()
		for _, s := range store.Skills() {
			fmt.Printf("%-30s %s\n", s.Name, s.Proficiency)
			if s.Context != "" {
				fmt.Printf("  %s\n", s.Context)
			}
		}
	},
}

var memoryForgetCmd = &cobra.Command{
	Use:   "forget [skill-name]",
	Short: "Remove a skill from memory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := getMemory()
		if !store.RemoveSkill(args[0]) {
			fmt.Printf("No skill named %q in memory.\n", args[0])
			os.Exit(1)
		}
		if err := store.Save(); err != nil {
			fmt.Printf("Failed to save memory: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Forgot %s.\n", args[0])
	},
}

var memoryCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove malformed skill entries from memory",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig()
		store := getMemory()
		removed := profsync.New(store, cfg.ProfileDir).CleanupPolluted()
		if removed == 0 {
			fmt.Println("Memory is clean.")
			return
		}
		if err := store.Save(); err != nil {
			fmt.Printf("Failed to save memory: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Removed %d malformed entries.\n", removed)
	},
}

func init() {
	RootCmd.AddCommand(memoryCmd)
	memoryCmd.AddCommand(memorySkillsCmd)
	memoryCmd.AddCommand(memoryForgetCmd)
	memoryCmd.AddCommand(memoryCleanupCmd)
}

func showDashboard() {
	store := getMemory()
	meta := store.Meta()

	fmt.Println("Lettersmith memory")
	fmt.Printf("  Store:        %s\n", store.Path())
	fmt.Printf("  Skills:       %d\n", store.SkillCount())

	styles := store.Styles()
	styleCount := 0
	categories := make([]string, 0, len(styles))
	for cat, prefs := range styles {
		styleCount += len(prefs)
		categories = append(categories, string(cat))
	}
	sort.Strings(categories)
	fmt.Printf("  Style rules:  %d", styleCount)
	if len(categories) > 0 {
		fmt.Printf(" (")
		for i, cat := range categories {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Printf("%s: %d", cat, len(styles[memory.StyleCategory(cat)]))
		}
		fmt.Print(")")
	}
	fmt.Println()

	active := 0
	for _, ev := range store.Events() {
		if ev.Status.Active() {
			active++
		}
	}
	fmt.Printf("  Events:       %d (%d active)\n", len(store.Events()), active)
	fmt.Printf("  Interactions: %d (success rate %.0f%%)\n", meta.TotalInteractions, store.SuccessRate()*100)
}
