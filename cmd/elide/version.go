package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"elide/internal/hirfile"
	"elide/internal/version"
)

type versionPayload struct {
	Tool             string `json:"tool"`
	Version          string `json:"version"`
	Schema           string `json:"schema"`
	SchemaConstraint string `json:"schema_constraint"`
	GitCommit        string `json:"git_commit,omitempty"`
	BuildDate        string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show elide build and dump schema versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "pretty":
				fmt.Fprint(out, version.Info())
				return nil
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(versionPayload{
					Tool:             "elide",
					Version:          version.Version,
					Schema:           hirfile.SchemaVersion,
					SchemaConstraint: hirfile.SchemaConstraint,
					GitCommit:        strings.TrimSpace(version.GitCommit),
					BuildDate:        strings.TrimSpace(version.BuildDate),
				})
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}
