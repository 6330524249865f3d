// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/nsalias/nsalias/internal/issue"
	"github.com/nsalias/nsalias/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand creates the nsalias command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "nsalias",
		Short: "Resolve namespace aliases to relative module paths",
		Long: TitleStyle.Render("nsalias") + SubtitleStyle.Render(" - namespace aliases for module specifiers") + `

nsalias maps logical namespaces such as "proj/tests/helpers" or "~/index"
onto the directories of a project and prints the relative path an importing
file should use instead.

Namespaces come from the package name in package.json, the source directories,
the top-level directories of the project, and explicit bindings in nsalias.cue.

` + SubtitleStyle.Render("Examples:") + `
  nsalias map                                  List all namespaces
  nsalias resolve proj/tests/helpers --from src/index.js
  nsalias resolve '~/lib/util' --absolute      Print the absolute target
  nsalias config init                          Create nsalias.cue`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			app.logger = newLogger(app.stderr, flags.verbose)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is nsalias.cue or nsalias.toml in the project root)")
	rootCmd.PersistentFlags().StringVar(&flags.root, "root", "", "project root (default is the nearest directory with package.json or nsalias.cue)")

	rootCmd.AddCommand(newMapCommand(app, flags))
	rootCmd.AddCommand(newResolveCommand(app, flags))
	rootCmd.AddCommand(newConfigCommand(app, flags))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute runs the CLI and exits with the command's exit code.
// This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(int(types.ExitFailure))
	}

	err = fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	os.Exit(int(exitCodeFor(err, app)))
}

// exitCodeFor renders any issue help attached to err and maps it to an exit code.
func exitCodeFor(err error, app *App) types.ExitCode {
	if err == nil {
		return types.ExitOK
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		renderServiceError(app.stderr, svcErr, "dark")
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return types.ExitFailure
}

// formatErrorForDisplay formats an error for user display.
// ActionableErrors include their suggestions and, in verbose mode, the error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
