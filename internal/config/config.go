// Package config loads elide.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the config file looked up from the working directory upwards.
const FileName = "elide.toml"

// Config is the merged view of elide.toml and defaults. CLI flags are
// applied on top by the caller.
type Config struct {
	Elide       ElideConfig       `toml:"elide"`
	Output      OutputConfig      `toml:"output"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Trace       TraceConfig       `toml:"trace"`

	// Path is where the config came from, "" for defaults.
	Path string `toml:"-"`
}

type ElideConfig struct {
	Infer  string `toml:"infer"`  // elide | keep
	Verify bool   `toml:"verify"` // run the invariant check after the pass
	Jobs   int    `toml:"jobs"`   // 0 = GOMAXPROCS
}

type OutputConfig struct {
	Suffix string `toml:"suffix"`
	Dir    string `toml:"dir"` // "" = next to the input
}

type DiagnosticsConfig struct {
	Max   int  `toml:"max"`
	Notes bool `toml:"notes"`
}

type TraceConfig struct {
	Level     string `toml:"level"`
	Mode      string `toml:"mode"`
	Output    string `toml:"output"`
	Heartbeat string `toml:"heartbeat"` // time.Duration syntax
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Elide:       ElideConfig{Infer: "elide", Verify: true},
		Output:      OutputConfig{Suffix: ".elided.hirpack"},
		Diagnostics: DiagnosticsConfig{Max: 100, Notes: true},
		Trace:       TraceConfig{Level: "off", Mode: "stream", Output: "-"},
	}
}

// Find walks from startDir up to the filesystem root looking for elide.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load reads path over the defaults. Keys absent from the file keep their
// default value.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		keys := make([]string, 0, len(undec))
		for _, k := range undec {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("output", "suffix") && strings.TrimSpace(cfg.Output.Suffix) == "" {
		return Config{}, fmt.Errorf("%s: [output].suffix must not be empty", path)
	}
	if meta.IsDefined("diagnostics", "max") && cfg.Diagnostics.Max < 0 {
		return Config{}, fmt.Errorf("%s: [diagnostics].max must be >= 0", path)
	}
	if meta.IsDefined("elide", "jobs") && cfg.Elide.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [elide].jobs must be >= 0", path)
	}
	switch strings.ToLower(cfg.Elide.Infer) {
	case "elide", "keep":
	default:
		return Config{}, fmt.Errorf("%s: [elide].infer must be \"elide\" or \"keep\", got %q", path, cfg.Elide.Infer)
	}
	cfg.Path = path
	return cfg, nil
}

// Discover finds and loads elide.toml starting at startDir; without one it
// returns Default.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
