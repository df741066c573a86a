package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lettersmith/lettersmith/internal/analyzer"
	"github.com/lettersmith/lettersmith/internal/relevance"
	"github.com/lettersmith/lettersmith/internal/selector"
)

var showDigest bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [job-file]",
	Short: "Analyze a job posting without generating a letter",
	Long: `Analyze builds the requirement profile for a posting and shows what
would be selected from memory, without calling any provider.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAnalyze(args[0])
	},
}

func init() {
	RootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&showDigest, "digest", false, "Also render the memory digest for this posting")
}

func runAnalyze(jobPath string) {
	jobText := readFileArg(jobPath)
	cfg := getConfig()
	store := getMemory()

	profile := analyzer.New().Analyze(jobText)

	fmt.Printf("Role type:        %s (confidence %.2f)\n", profile.RoleType, profile.Confidence)
	fmt.Printf("Primary focus:    %s\n", profile.PrimaryFocus)
	fmt.Printf("Industry:         %s (confidence %.2f)\n", profile.Industry.Name, profile.Industry.Confidence)
	fmt.Printf("Experience level: %s\n", profile.ExperienceLevel)

	if len(profile.RequiredSkills) > 0 {
		fmt.Printf("\nRequired skills:\n")
		for _, s := range profile.RequiredSkills {
			fmt.Printf("  - %s\n", s)
		}
	}
	if len(profile.PreferredSkills) > 0 {
		fmt.Printf("\nPreferred skills:\n")
		for _, s := range profile.PreferredSkills {
			fmt.Printf("  - %s\n", s)
		}
	}
	if len(profile.Technologies) > 0 {
		fmt.Printf("\nTechnologies: %s\n", strings.Join(profile.Technologies, ", "))
	}

	printDomainScores("Technical domains", profile.TechDomains)
	printDomainScores("Business domains", profile.BusinessDomains)

	if showDigest {
		tm := getTemporal(store, cfg)
		tm.Sweep()
		sel := selector.New(store, store, tm, analyzer.New(), relevance.NewScorer(relevance.NewMatcher()))
		digest := sel.Select(jobText, cfg.MaxSkills, cfg.MaxStyles)

		fmt.Printf("\n--- Memory digest ---\n")
		if rendered := digest.Render(); rendered != "" {
			fmt.Println(rendered)
		} else {
			fmt.Println("(nothing relevant in memory)")
		}
		fmt.Printf("\nSkill scores:\n")
		for _, ss := range digest.Skills {
			fmt.Printf("  %.2f  %-30s %s\n", ss.Score.Final, ss.Skill.Name, ss.Score.Explanation)
		}
	}
}

func printDomainScores(title string, scores map[string]float64) {
	if len(scores) == 0 {
		return
	}
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if scores[names[i]] != scores[names[j]] {
			return scores[names[i]] > scores[names[j]]
		}
		return names[i] < names[j]
	})

	fmt.Printf("\n%s:\n", title)
	for _, name := range names {
		fmt.Printf("  %-15s %.1f\n", name, scores[name])
	}
}
