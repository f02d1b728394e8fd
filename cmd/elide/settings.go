package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"elide/internal/config"
	"elide/internal/elision"
	"elide/internal/trace"
)

// settings is elide.toml with the global CLI flags applied on top.
type settings struct {
	cfg       config.Config
	infer     elision.InferMode
	quiet     bool
	timings   bool
	trace     trace.Config
	traceOff  bool
	heartbeat time.Duration
}

type settingsKey struct{}

func withSettings(ctx context.Context, s *settings) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, settingsKey{}, s)
}

func settingsFrom(cmd *cobra.Command) *settings {
	if s, ok := cmd.Context().Value(settingsKey{}).(*settings); ok {
		return s
	}
	return &settings{cfg: config.Default(), traceOff: true}
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Flags()
	path, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return nil, err
	}

	s := &settings{cfg: cfg}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if flags.Changed("max-diagnostics") {
		n, err := flags.GetInt("max-diagnostics")
		if err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		s.cfg.Diagnostics.Max = n
	}
	if flags.Changed("infer") {
		if s.cfg.Elide.Infer, err = flags.GetString("infer"); err != nil {
			return nil, fmt.Errorf("failed to get infer flag: %w", err)
		}
	}
	if s.infer, err = elision.ParseInferMode(s.cfg.Elide.Infer); err != nil {
		return nil, err
	}
	if err := s.loadTrace(cmd); err != nil {
		return nil, err
	}
	return s, nil
}

// loadTrace merges [trace] with the --trace* flags.
func (s *settings) loadTrace(cmd *cobra.Command) error {
	flags := cmd.Flags()
	tc := s.cfg.Trace
	for flag, dst := range map[string]*string{
		"trace":       &tc.Output,
		"trace-level": &tc.Level,
		"trace-mode":  &tc.Mode,
	} {
		if !flags.Changed(flag) {
			continue
		}
		v, err := flags.GetString(flag)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", flag, err)
		}
		*dst = v
	}
	// an explicit output with no level means "trace something"
	if flags.Changed("trace") && !flags.Changed("trace-level") && tc.Level == "off" {
		tc.Level = "phase"
	}

	level, err := trace.ParseLevel(tc.Level)
	if err != nil {
		return fmt.Errorf("invalid trace level: %w", err)
	}
	mode, err := trace.ParseMode(tc.Mode)
	if err != nil {
		return fmt.Errorf("invalid trace mode: %w", err)
	}
	ring, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	hb, err := flags.GetDuration("trace-heartbeat")
	if err != nil {
		return fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}
	if !flags.Changed("trace-heartbeat") && tc.Heartbeat != "" {
		if hb, err = time.ParseDuration(tc.Heartbeat); err != nil {
			return fmt.Errorf("invalid [trace].heartbeat: %w", err)
		}
	}

	s.traceOff = level == trace.LevelOff
	s.heartbeat = hb
	s.trace = trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: tc.Output,
		RingSize:   ring,
		Heartbeat:  hb,
	}
	return nil
}
