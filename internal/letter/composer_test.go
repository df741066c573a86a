package letter

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lettersmith/lettersmith/internal/provider"
)

func testInput() Input {
	return Input{
		JobDescription: "IT Network Administrator. Required: network security.",
		Resume:         "Ten years of infrastructure work.",
		Criteria:       "Keep it warm and direct.",
		MemoryDigest:   "RELEVANT SKILLS AND EXPERIENCE:\n- Network Security: Expert (relevance: 0.9)",
		Date:           time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerate(t *testing.T) {
	stub := provider.NewStubProvider("Dear Hiring Manager,\n\nI've spent ten years keeping networks safe.")
	c := NewComposer(stub)

	resp, err := c.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(resp.Content, "ten years") {
		t.Errorf("Unexpected response content: %q", resp.Content)
	}

	if len(stub.Requests) != 1 {
		t.Fatalf("Expected 1 provider call, got %d", len(stub.Requests))
	}
	messages := stub.Requests[0]
	if len(messages) != 2 || messages[0].Role != "system" || messages[1].Role != "user" {
		t.Fatalf("Unexpected message shape: %+v", messages)
	}

	prompt := messages[1].Content
	for _, want := range []string{
		"August 28, 2026",
		"RELEVANT LEARNED PREFERENCES",
		"Network Security: Expert",
		"IT Network Administrator",
		"Ten years of infrastructure work.",
		"Keep it warm and direct.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}
}

func TestGenerateWithoutDigest(t *testing.T) {
	stub := provider.NewStubProvider("draft")
	c := NewComposer(stub)

	in := testInput()
	in.MemoryDigest = "  "
	if _, err := c.Generate(context.Background(), in); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if strings.Contains(stub.Requests[0][1].Content, "RELEVANT LEARNED PREFERENCES") {
		t.Error("Empty digest must not inject a preferences block")
	}
}

func TestRefineCarriesConversation(t *testing.T) {
	stub := provider.NewStubProvider("revised draft")
	c := NewComposer(stub)

	resp, err := c.Refine(context.Background(), "first draft", "less formal please", testInput())
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}
	if resp.Content != "revised draft" {
		t.Errorf("Unexpected content: %q", resp.Content)
	}

	messages := stub.Requests[0]
	if len(messages) != 4 {
		t.Fatalf("Expected 4 messages, got %d", len(messages))
	}
	if messages[2].Role != "assistant" || messages[2].Content != "first draft" {
		t.Errorf("Previous draft not carried: %+v", messages[2])
	}
	if !strings.Contains(messages[3].Content, "less formal please") {
		t.Errorf("Feedback not in revision request: %q", messages[3].Content)
	}
}

func TestGenerateProviderError(t *testing.T) {
	stub := provider.NewStubProvider()
	stub.Err = context.DeadlineExceeded
	c := NewComposer(stub)

	if _, err := c.Generate(context.Background(), testInput()); err == nil {
		t.Fatal("Expected error from failing provider")
	}
}

func TestGenerateCancelledContext(t *testing.T) {
	stub := provider.NewStubProvider("draft")
	c := NewComposer(stub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Generate(ctx, testInput()); err == nil {
		t.Fatal("Expected error for cancelled context")
	}
}
