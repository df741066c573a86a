package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lettersmith/lettersmith/internal/analyzer"
	"github.com/lettersmith/lettersmith/internal/feedback"
	"github.com/lettersmith/lettersmith/internal/letter"
	"github.com/lettersmith/lettersmith/internal/memory"
	"github.com/lettersmith/lettersmith/internal/observe"
	"github.com/lettersmith/lettersmith/internal/profsync"
	"github.com/lettersmith/lettersmith/internal/records"
	"github.com/lettersmith/lettersmith/internal/relevance"
	"github.com/lettersmith/lettersmith/internal/selector"
	"github.com/lettersmith/lettersmith/internal/tui"
)

var (
	resumePath string
	outputPath string
	noReview   bool
	maxRounds  int
)

var generateCmd = &cobra.Command{
	Use:   "generate [job-file]",
	Short: "Generate a cover letter for a job posting",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runGenerate(args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Resume file (defaults to resume.txt in the profile dir)")
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the final letter to this file")
	generateCmd.Flags().BoolVar(&noReview, "no-review", false, "Skip the interactive review loop")
	generateCmd.Flags().IntVar(&maxRounds, "max-rounds", 3, "Maximum revision rounds")
}

func runGenerate(jobPath string) error {
	obs := getObserver()
	defer obs.Close()

	ctx, span := obs.StartSpan(context.Background(), "generate")
	defer span.End()

	cfg := getConfig()
	store := getMemory()
	recLog := getRecords()
	defer recLog.Close()

	jobText := readFileArg(jobPath)

	// Fold any changed profile files into memory before selecting from it.
	syncer := profsync.New(store, cfg.ProfileDir)
	syncRes, err := syncer.Sync()
	if err != nil {
		obs.Log().Warn().Err(err).Msg("profile sync failed, continuing with stored memory")
	} else if syncRes.SkillsChanged {
		obs.Log().Info().
			Int("added", syncRes.SkillsAdded).
			Int("removed", syncRes.SkillsRemoved).
			Msg("skillset synced")
	}

	// Advance event statuses so the digest reflects today, not the last run.
	tm := getTemporal(store, cfg)
	for _, tr := range tm.Sweep() {
		obs.Log().Info().
			Str("event", tr.Description).
			Str("from", string(tr.From)).
			Str("to", string(tr.To)).
			Msg("event status advanced")
	}

	_, selectDone := obs.Stage(ctx, "select")
	sel := selector.New(store, store, tm, analyzer.New(), relevance.NewScorer(relevance.NewMatcher()))
	digest := sel.Select(jobText, cfg.MaxSkills, cfg.MaxStyles)
	selectDone()
	obs.Log().Info().
		Str("role", digest.Profile.RoleType).
		Str("industry", digest.Profile.Industry.Name).
		Int("skills", len(digest.Skills)).
		Int("events", len(digest.Events)).
		Msg("memory selected")

	resume := loadResume(cfg.ProfileDir)
	criteria := loadCriteria(syncer)

	p, err := getProvider(cfg)
	if err != nil {
		return err
	}
	composer := letter.NewComposer(p)

	input := letter.Input{
		JobDescription: jobText,
		Resume:         resume,
		Criteria:       criteria,
		MemoryDigest:   digest.Render(),
		Date:           time.Now(),
	}

	obs.Log().Info().Str("provider", p.Name()).Msg("drafting")
	draftCtx, draftDone := obs.Stage(ctx, "draft")
	resp, err := composer.Generate(draftCtx, input)
	draftDone()
	if err != nil {
		return err
	}

	rec := &records.Record{
		Provider:       p.Name(),
		Model:          cfg.Model,
		RoleType:       digest.Profile.RoleType,
		Industry:       digest.Profile.Industry.Name,
		SkillsSelected: selectedNames(digest),
		Outcome:        "pending",
		PromptTokens:   resp.Usage.PromptTokens,
		TotalTokens:    resp.Usage.TotalTokens,
	}
	recID, err := recLog.Add(rec)
	if err != nil {
		obs.Log().Warn().Err(err).Msg("failed to record generation")
	}

	final, outcome, err := reviewLoop(ctx, obs, store, composer, input, resp.Content)
	if err != nil {
		return err
	}

	if recID != 0 {
		if err := recLog.SetOutcome(recID, outcome); err != nil {
			obs.Log().Warn().Err(err).Msg("failed to update record outcome")
		}
	}
	if err := store.Save(); err != nil {
		return fmt.Errorf("failed to save memory: %w", err)
	}

	if outcome == "rejected" {
		fmt.Println("Letter rejected; nothing written.")
		return nil
	}

	out := outputPath
	if out == "" {
		if err := os.MkdirAll(cfg.OutputDir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		out = filepath.Join(cfg.OutputDir, fmt.Sprintf("letter-%s.txt", time.Now().Format("2006-01-02-150405")))
	}
	if err := os.WriteFile(out, []byte(final), 0600); err != nil {
		return fmt.Errorf("failed to write letter: %w", err)
	}
	fmt.Printf("Letter written to %s\n", out)
	return nil
}

// reviewLoop shows each draft and folds the user's reaction back into
// memory. In non-interactive mode the first draft is accepted as-is.
func reviewLoop(ctx context.Context, obs *observe.Observer, store *memory.Store, composer *letter.Composer, input letter.Input, draft string) (string, string, error) {
	fb := feedback.New(store)

	if noReview || ciMode {
		fb.Analyze("approved", draft, "accepted")
		return draft, "accepted", nil
	}

	for round := 1; ; round++ {
		decision, err := tui.Review("Lettersmith draft", draft, round)
		if err != nil {
			return "", "", err
		}

		switch decision.Outcome {
		case tui.OutcomeAccepted:
			fb.Analyze("approved", draft, "accepted")
			return draft, "accepted", nil

		case tui.OutcomeRejected:
			fb.Analyze("rejected without revision", draft, "rejected")
			return draft, "rejected", nil

		case tui.OutcomeRevised:
			ins := fb.Analyze(decision.Feedback, draft, "revised")
			if len(ins.Applied) > 0 {
				obs.Log().Info().Str("learned", strings.Join(ins.Applied, "; ")).Msg("feedback applied to memory")
			}
			if round >= maxRounds {
				obs.Log().Warn().Int("rounds", round).Msg("revision limit reached, keeping last draft")
				return draft, "revised", nil
			}
			resp, err := composer.Refine(ctx, draft, decision.Feedback, input)
			if err != nil {
				return "", "", err
			}
			draft = resp.Content
		}
	}
}

func selectedNames(d *selector.Digest) []string {
	names := make([]string, 0, len(d.Skills))
	for _, ss := range d.Skills {
		names = append(names, ss.Skill.Name)
	}
	return names
}

func loadResume(profileDir string) string {
	if resumePath != "" {
		return readFileArg(resumePath)
	}
	data, err := os.ReadFile(filepath.Join(profileDir, "resume.txt")) // #nosec G304
	if err != nil {
		return ""
	}
	return string(data)
}

func loadCriteria(syncer *profsync.Syncer) string {
	path, err := syncer.CriteriaPath()
	if err != nil || path == "" {
		return ""
	}
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return ""
	}
	return string(data)
}
