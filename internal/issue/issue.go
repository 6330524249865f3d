// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	// ConfigLoadFailedId is raised when nsalias.cue / nsalias.toml cannot be loaded.
	ConfigLoadFailedId Id = iota + 1
	// ProjectRootNotFoundId is raised when the project root is missing or not a directory.
	ProjectRootNotFoundId
	// ManifestNotFoundId is raised when no package name can be determined.
	ManifestNotFoundId
	// SpecifierUnresolvedId is raised by strict resolution for unmapped specifiers.
	SpecifierUnresolvedId
	// NamespaceRejectedId is raised when an explicit namespace binding is dropped.
	NamespaceRejectedId
)

type (
	// Id identifies a catalog entry.
	Id int

	// MarkdownMsg is the Markdown body of a catalog entry.
	MarkdownMsg string

	// HttpLink is a documentation link attached to a catalog entry.
	HttpLink string

	// Issue is a help page explaining a failure and how to recover from it.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

nsalias reads its options from ` + "`nsalias.cue`" + ` (or ` + "`nsalias.toml`" + `) in the project root.

## Things you can try:
- Check the error message above for the offending field
- Print the effective configuration:
~~~
$ nsalias config show
~~~
- Recreate a default configuration file:
~~~
$ nsalias config init
~~~

## Example configuration:
~~~cue
sources: ["src"]
excludes: "dist, coverage"
namespaces: {
	aliasPath: "src/path/to/alias"
	npmAlias:  "npm:babel"
}
~~~`,
	}

	projectRootNotFoundIssue = &Issue{
		id: ProjectRootNotFoundId,
		mdMsg: `
# Project root not found!

Namespace targets are resolved against the project root, which must be an existing directory.

## Things you can try:
- Run nsalias from inside the project
- Pass the root explicitly:
~~~
$ nsalias --root /path/to/project map
~~~`,
	}

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No package name available!

The default namespace and the ` + "`~`" + ` / ` + "`:`" + ` shorthands need a package name.
It is read from the ` + "`name`" + ` field of ` + "`package.json`" + `.

## Things you can try:
- Add a name to package.json
- Or set a fallback in nsalias.cue:
~~~cue
name: "my-package"
~~~`,
	}

	specifierUnresolvedIssue = &Issue{
		id: SpecifierUnresolvedId,
		mdMsg: `
# Specifier not resolved!

No namespace matched the specifier, or every candidate directory of the
matching namespace was missing on disk.

## Things you can try:
- List the namespaces nsalias knows about:
~~~
$ nsalias map
~~~
- Check that the module exists inside one of the listed directories
- Run with ` + "`--verbose`" + ` to see the prefix matching trace`,
	}

	namespaceRejectedIssue = &Issue{
		id: NamespaceRejectedId,
		mdMsg: `
# Namespace binding rejected!

An explicit namespace must map to a single path. List values are only
produced for the default sources bucket.

~~~cue
namespaces: {
	lib: "src/lib"          // ok
	both: ["src", "lib"]    // rejected
}
~~~`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		projectRootNotFoundIssue.Id(): projectRootNotFoundIssue,
		manifestNotFoundIssue.Id():    manifestNotFoundIssue,
		specifierUnresolvedIssue.Id(): specifierUnresolvedIssue,
		namespaceRejectedIssue.Id():   namespaceRejectedIssue,
	}
)

// Id returns the catalog id.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw Markdown body.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// DocLinks returns a copy of the documentation links.
func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the Markdown body with the given glamour style ("dark", "light", "notty").
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also:\n")
		for _, link := range i.docLinks {
			md.WriteString("- [" + string(link) + "](" + string(link) + ")\n")
		}
	}
	return render(md.String(), stylePath)
}

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	out := slices.Collect(maps.Values(issues))
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
