package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose      bool
	ciMode       bool
	providerType string
	modelName    string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "lettersmith",
	Short: "Memory-driven cover letter generator",
	Long: `Lettersmith drafts cover letters that improve over time. It keeps a local
memory of your skills, writing preferences, and current life events, scores
that memory against each job posting, and injects only what is relevant
into the generation prompt.`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	RootCmd.PersistentFlags().BoolVar(&ciMode, "ci", false, "CI mode: JSON logs, non-interactive")
	RootCmd.PersistentFlags().StringVarP(&providerType, "provider", "p", "", "AI provider (openai, ollama, gemini)")
	RootCmd.PersistentFlags().StringVarP(&modelName, "model", "m", "", "Model name (default depends on provider)")
}
