package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"elide/internal/trace"
)

// setupTracing attaches the configured tracer to the command context and
// returns the matching cleanup.
func setupTracing(cmd *cobra.Command, s *settings) (func(), error) {
	if s.traceOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}
	tracer, err := trace.New(s.trace)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)

	var heartbeat *trace.Heartbeat
	if s.heartbeat > 0 {
		heartbeat = trace.StartHeartbeat(tracer, s.heartbeat)
	}
	return func() {
		if heartbeat != nil {
			heartbeat.Stop()
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}
