package observe

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestVerboseGatesLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	obs := New(buf, false)

	obs.Log().Info().Msg("hidden at default level")
	if buf.Len() != 0 {
		t.Errorf("Expected info suppressed when not verbose, got %q", buf.String())
	}

	obs.Log().Warn().Msg("warning shown")
	if !strings.Contains(buf.String(), "warning shown") {
		t.Errorf("Expected warning in output, got %q", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	obs := NewJSON(buf, true)

	obs.Log().Info().Str("phase", "draft").Msg("drafting")

	out := buf.String()
	if !strings.Contains(out, `"phase"`) || !strings.Contains(out, "drafting") {
		t.Errorf("Expected structured JSON fields, got %q", out)
	}
}

func TestStage(t *testing.T) {
	buf := &bytes.Buffer{}
	obs := New(buf, true)

	ctx, done := obs.Stage(context.Background(), "select")
	if ctx == nil {
		t.Fatal("Expected non-nil context from Stage")
	}
	done()

	out := buf.String()
	if !strings.Contains(out, "select") || !strings.Contains(out, "stage complete") {
		t.Errorf("Expected stage completion log, got %q", out)
	}
}

func TestStartSpan(t *testing.T) {
	obs := New(&bytes.Buffer{}, true)

	ctx, span := obs.StartSpan(context.Background(), "generate")
	if ctx == nil || span == nil {
		t.Fatal("Expected context and span")
	}
	span.End()
}
