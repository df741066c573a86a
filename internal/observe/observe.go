// Package observe wraps structured logging and tracing for the generation
// pipeline. One Observer per command invocation; the --ci flag switches the
// handler to JSON so output stays machine-readable.
package observe

import (
	"context"
	"io"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("lettersmith")

// Observer handles logging and tracing.
type Observer struct {
	log *bolt.Logger
}

// New creates an Observer with console output. If verbose is false, only
// warnings and errors are shown.
func New(out io.Writer, verbose bool) *Observer {
	l := bolt.New(bolt.NewConsoleHandler(out))
	if !verbose {
		l.SetLevel(bolt.WARN)
	}
	return &Observer{log: l}
}

// NewJSON creates an Observer with JSON output for non-interactive runs.
func NewJSON(out io.Writer, verbose bool) *Observer {
	l := bolt.New(bolt.NewJSONHandler(out))
	if !verbose {
		l.SetLevel(bolt.WARN)
	}
	return &Observer{log: l}
}

// Log returns the underlying logger.
func (o *Observer) Log() *bolt.Logger {
	return o.log
}

// StartSpan starts an OTel span for a pipeline phase.
func (o *Observer) StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

// Stage traces and times one pipeline stage. The returned func ends the
// span and logs the elapsed time; call it when the stage finishes.
func (o *Observer) Stage(ctx context.Context, name string) (context.Context, func()) {
	ctx, span := tracer.Start(ctx, name)
	start := time.Now()
	return ctx, func() {
		span.End()
		o.log.Info().
			Str("stage", name).
			Int("ms", int(time.Since(start).Milliseconds())).
			Msg("stage complete")
	}
}

// Close flushes any buffered logs or traces.
func (o *Observer) Close() error {
	return nil
}
