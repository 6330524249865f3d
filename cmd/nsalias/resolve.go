// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nsalias/nsalias/internal/issue"
	"github.com/nsalias/nsalias/internal/relpath"
	"github.com/nsalias/nsalias/pkg/types"
)

const unresolvedMarker = "(unresolved)"

func newResolveCommand(app *App, flags *rootFlags) *cobra.Command {
	var (
		from     string
		absolute bool
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <specifier>...",
		Short: "Resolve module specifiers",
		Long: `Resolve module specifiers against the namespace map.

Each specifier is printed with the path the importing file (--from) should
use instead. Without --from, paths are relative to the working directory.
Relative and absolute specifiers, and specifiers no namespace matches, are
reported as unresolved.`,
		Example: `  nsalias resolve proj/tests/helpers --from src/index.js
  nsalias resolve '~/lib/util' ':index' --absolute`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.loadSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			if flags.verbose {
				app.Diagnostics.Render(cmd.Context(), s.result.Diagnostics, app.stderr, flags.verbose)
			}

			importing := from
			if importing == "" {
				importing = relpath.UnknownFile
			}

			unresolved := 0
			for _, spec := range args {
				var (
					out string
					ok  bool
				)
				if absolute {
					m, found := s.resolver.Lookup(spec)
					out, ok = m.Path, found
				} else {
					out, ok = s.resolver.Resolve(spec, importing)
				}

				if !ok {
					unresolved++
					fmt.Fprintf(app.stdout, "%s -> %s\n", NameStyle.Render(spec), WarningStyle.Render(unresolvedMarker))
					continue
				}
				fmt.Fprintf(app.stdout, "%s -> %s\n", NameStyle.Render(spec), SuccessStyle.Render(out))
			}

			if strict && unresolved > 0 {
				return &ExitError{
					Code: types.ExitUnresolved,
					Err: newServiceError(
						fmt.Errorf("%d of %d specifier(s) unresolved", unresolved, len(args)),
						issue.SpecifierUnresolvedId,
					),
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "importing file the result is relative to")
	cmd.Flags().BoolVar(&absolute, "absolute", false, "print the substituted absolute path instead of a relative one")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with status 2 when a specifier is unresolved")

	return cmd
}
