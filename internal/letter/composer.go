// Package letter builds generation prompts and drives the drafting call.
// It owns no scoring logic: the memory digest arrives pre-selected and is
// injected verbatim.
package letter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lettersmith/lettersmith/internal/provider"
)

const systemPrompt = "You are an experienced professional writing a cover letter. Write naturally and " +
	"authentically, as if you're personally explaining your background to a hiring manager over coffee. " +
	"Use varied sentence lengths, include contractions when natural (I've, I'm, that's, it's), and write " +
	"with the subtle imperfections that make human writing authentic. Avoid overly polished or perfect " +
	"prose. Be conversational yet professional, confident but not robotic. Use the exact phrasing and " +
	"style from the narrative bank provided - don't rewrite it in formal language."

// Input collects everything one drafting round needs.
type Input struct {
	JobDescription string
	Resume         string
	Skills         string
	Criteria       string
	MemoryDigest   string
	Date           time.Time
}

// Composer renders prompts and calls the provider. No retry policy: a
// failed call means no draft this round.
type Composer struct {
	provider provider.Provider
}

func NewComposer(p provider.Provider) *Composer {
	return &Composer{provider: p}
}

// Generate drafts a letter for the given input.
func (c *Composer) Generate(ctx context.Context, in Input) (*provider.Response, error) {
	messages := []provider.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: c.userPrompt(in)},
	}
	resp, err := c.provider.Generate(ctx, messages, provider.DefaultOptions)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}
	return resp, nil
}

// Refine redrafts a previous letter according to user feedback.
func (c *Composer) Refine(ctx context.Context, previous, feedback string, in Input) (*provider.Response, error) {
	messages := []provider.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: c.userPrompt(in)},
		{Role: "assistant", Content: previous},
		{Role: "user", Content: fmt.Sprintf(
			"Revise the cover letter based on this feedback, keeping the same natural voice:\n\n%s", feedback)},
	}
	resp, err := c.provider.Generate(ctx, messages, provider.DefaultOptions)
	if err != nil {
		return nil, fmt.Errorf("refinement failed: %w", err)
	}
	return resp, nil
}

func (c *Composer) userPrompt(in Input) string {
	var b strings.Builder

	b.WriteString("Write a cover letter for this position. Write naturally, like a human would, " +
		"using whatever length is most effective to showcase the candidate's qualifications.\n\n")
	fmt.Fprintf(&b, "**Today's Date:** %s\n\n", in.Date.Format("January 2, 2006"))

	if strings.TrimSpace(in.MemoryDigest) != "" {
		fmt.Fprintf(&b, "**RELEVANT LEARNED PREFERENCES FOR THIS JOB:**\n%s\n\n", in.MemoryDigest)
	}

	fmt.Fprintf(&b, "**Job Description:**\n%s\n\n", in.JobDescription)
	fmt.Fprintf(&b, "**My Resume:**\n%s\n\n", in.Resume)
	if in.Skills != "" {
		fmt.Fprintf(&b, "**My Skills:** %s\n\n", in.Skills)
	}
	if in.Criteria != "" {
		fmt.Fprintf(&b, "**Writing Guidelines & Experience Bank:**\n%s\n\n", in.Criteria)
	}

	b.WriteString("**Critical Instructions:**\n" +
		"- Use the EXACT phrasing from the narrative bank sections - don't rewrite them formally\n" +
		"- Include contractions (I've, I'm, that's, it's, haven't, don't)\n" +
		"- Write as if you're talking to someone, not writing a formal document\n" +
		"- Mix short and long sentences naturally\n" +
		"- If you don't have direct experience with something mentioned, acknowledge it honestly but show relevant experience\n" +
		"- Focus on the CORE JOB FUNCTION rather than industry context\n" +
		"- IMPORTANT: Apply any learned preferences from previous feedback to improve this cover letter")

	return b.String()
}
