// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nsalias/nsalias/internal/nsmap"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"
)

type (
	// mapReport is the machine-readable form of a built namespace map.
	mapReport struct {
		Root        string           `json:"root" yaml:"root" toml:"root"`
		Package     string           `json:"package,omitempty" yaml:"package,omitempty" toml:"package,omitempty"`
		Config      string           `json:"config,omitempty" yaml:"config,omitempty" toml:"config,omitempty"`
		Namespaces  []namespaceEntry `json:"namespaces" yaml:"namespaces" toml:"namespaces"`
		Diagnostics []diagnosticView `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty" toml:"diagnostics,omitempty"`
	}

	namespaceEntry struct {
		Name  string   `json:"name" yaml:"name" toml:"name"`
		Kind  string   `json:"kind" yaml:"kind" toml:"kind"`
		Paths []string `json:"paths" yaml:"paths" toml:"paths"`
	}

	diagnosticView struct {
		Severity string `json:"severity" yaml:"severity" toml:"severity"`
		Code     string `json:"code" yaml:"code" toml:"code"`
		Message  string `json:"message" yaml:"message" toml:"message"`
		Path     string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	}
)

func newMapCommand(app *App, flags *rootFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Print the namespace map of the project",
		Long: `Build and print the namespace map of the project.

Each namespace is listed with its target: a single directory, or the candidate
directories searched in order (the package name bucket).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.loadSession(cmd.Context(), flags)
			if err != nil {
				return err
			}

			report := newMapReport(s)
			if format == formatText {
				app.Diagnostics.Render(cmd.Context(), s.result.Diagnostics, app.stderr, flags.verbose)
				renderMapText(app.stdout, report)
				return nil
			}
			return writeReport(app.stdout, format, report)
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "output format: text, json, yaml or toml")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{formatText, formatJSON, formatYAML, formatTOML}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func newMapReport(s *session) mapReport {
	report := mapReport{
		Root:       string(s.project.Root),
		Package:    s.packageName,
		Config:     s.configPath,
		Namespaces: make([]namespaceEntry, 0, len(s.result.Map)),
	}

	for _, name := range s.result.Map.Names() {
		target := s.result.Map[name]
		kind := "single"
		if _, ok := target.(nsmap.Candidates); ok {
			kind = "candidates"
		}
		report.Namespaces = append(report.Namespaces, namespaceEntry{Name: name, Kind: kind, Paths: nsmap.Paths(target)})
	}

	for _, d := range s.result.Diagnostics {
		report.Diagnostics = append(report.Diagnostics, diagnosticView{
			Severity: string(d.Severity),
			Code:     d.Code,
			Message:  d.Message,
			Path:     d.Path,
		})
	}
	return report
}

func writeReport(w io.Writer, format string, report any) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case formatJSON:
		data, err = json.MarshalIndent(report, "", "  ")
		data = append(data, '\n')
	case formatYAML:
		data, err = yaml.Marshal(report)
	case formatTOML:
		data, err = toml.Marshal(report)
	default:
		return fmt.Errorf("unknown format %q (want %s, %s, %s or %s)", format, formatText, formatJSON, formatYAML, formatTOML)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}

func renderMapText(w io.Writer, report mapReport) {
	fmt.Fprintln(w, TitleStyle.Render("Namespaces")+SubtitleStyle.Render(" ("+report.Root+")"))
	if len(report.Namespaces) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("  (none)"))
		return
	}

	width := 0
	for _, ns := range report.Namespaces {
		width = max(width, len(ns.Name))
	}
	for _, ns := range report.Namespaces {
		name := ns.Name + strings.Repeat(" ", width-len(ns.Name))
		paths := strings.Join(ns.Paths, ", ")
		if ns.Kind == "candidates" {
			paths = "[" + paths + "]"
		}
		fmt.Fprintf(w, "  %s  %s\n", NameStyle.Render(name), SuccessStyle.Render(paths))
	}
}
