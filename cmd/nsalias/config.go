// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nsalias/nsalias/internal/config"
	"github.com/nsalias/nsalias/internal/issue"
	"github.com/nsalias/nsalias/pkg/types"
)

// newConfigCommand creates the `nsalias config` command tree.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage nsalias configuration",
		Long: `Manage nsalias configuration.

Configuration is read from nsalias.cue, or nsalias.toml, in the project root.
Every key can be overridden from the environment with the NSALIAS_ prefix,
for example NSALIAS_DISABLE_SYNC=true.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, path, err := loadConfig(cmd.Context(), app, flags)
			if err != nil {
				return err
			}
			showConfig(app.stdout, cfg, path)
			return nil
		},
	})

	var dumpFormat string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE or TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(cmd.Context(), app, flags)
			if err != nil {
				return err
			}
			switch dumpFormat {
			case "cue":
				fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			case formatTOML:
				data, err := config.GenerateTOML(cfg)
				if err != nil {
					return err
				}
				_, err = app.stdout.Write(data)
				return err
			default:
				return fmt.Errorf("unknown format %q (want cue or toml)", dumpFormat)
			}
			return nil
		},
	}
	dumpCmd.Flags().StringVar(&dumpFormat, "format", "cue", "output format: cue or toml")
	cfgCmd.AddCommand(dumpCmd)

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default nsalias.cue in the project root",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			p, err := app.openProject(flags)
			if err != nil {
				return err
			}
			path := filepath.Join(string(p.Root), config.CUEFileName)
			if err := config.WriteDefault(app.fs, path, force); err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			p, err := app.openProject(flags)
			if err != nil {
				return err
			}
			path := config.Locate(config.LoadOptions{
				ConfigFilePath: types.FilesystemPath(flags.configPath),
				ProjectRoot:    p.Root,
				FS:             app.fs,
			})
			if path == "" {
				fmt.Fprintf(app.stdout, "%s (not found, defaults in use)\n", filepath.Join(string(p.Root), config.CUEFileName))
				return nil
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	return cfgCmd
}

// loadConfig loads the configuration of the current project. Failures carry
// the configuration issue help.
func loadConfig(ctx context.Context, app *App, flags *rootFlags) (*config.Config, string, error) {
	p, err := app.openProject(flags)
	if err != nil {
		return nil, "", err
	}

	opts := config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(flags.configPath),
		ProjectRoot:    p.Root,
		FS:             app.fs,
	}
	cfg, err := app.Config.Load(ctx, opts)
	if err != nil {
		return nil, "", newServiceError(err, issue.ConfigLoadFailedId)
	}
	return cfg, config.Locate(opts), nil
}

func showConfig(w io.Writer, cfg *config.Config, path string) {
	keyStyle := NameStyle
	valueStyle := SuccessStyle
	none := SubtitleStyle.Render("(not set)")

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if path == "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	}
	fmt.Fprintln(w)

	if cfg.Name == "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("name"), none)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("name"), valueStyle.Render(cfg.Name))
	}

	list := func(key string, values config.StringList) {
		if values == nil {
			fmt.Fprintf(w, "%s: %s\n", keyStyle.Render(key), none)
			return
		}
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render(key), valueStyle.Render("["+strings.Join(values, ", ")+"]"))
	}
	list("sources", cfg.Sources)
	list("includes", cfg.Includes)
	list("excludes", cfg.Excludes)
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("disable_sync"), valueStyle.Render(fmt.Sprintf("%v", cfg.DisableSync)))

	fmt.Fprintf(w, "%s:\n", keyStyle.Render("namespaces"))
	if len(cfg.Namespaces) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none configured)"))
		return
	}
	for _, name := range slices.Sorted(maps.Keys(cfg.Namespaces)) {
		ns := cfg.Namespaces[name]
		value := strings.Join(ns.Paths, ", ")
		if ns.List {
			value = "[" + value + "]"
		}
		fmt.Fprintf(w, "  %s: %s\n", name, valueStyle.Render(value))
	}
}
