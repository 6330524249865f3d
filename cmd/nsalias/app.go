// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/afero"

	"github.com/nsalias/nsalias/internal/config"
	"github.com/nsalias/nsalias/internal/fsprobe"
	"github.com/nsalias/nsalias/internal/issue"
	"github.com/nsalias/nsalias/internal/manifest"
	"github.com/nsalias/nsalias/internal/nsmap"
	"github.com/nsalias/nsalias/internal/project"
	"github.com/nsalias/nsalias/internal/resolver"
	"github.com/nsalias/nsalias/pkg/types"
)

// codeConfigLoadFailed is reported when the CLI falls back to defaults.
const codeConfigLoadFailed = "config_load_failed"

type (
	// App wires CLI services and shared dependencies. All Cobra handlers
	// receive an App and load a session through it.
	App struct {
		Config      ConfigProvider
		Manifest    manifest.Reader
		Diagnostics DiagnosticRenderer
		fs          afero.Fs
		getwd       func() (string, error)
		stdout      io.Writer
		stderr      io.Writer
		logger      *slog.Logger
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config      ConfigProvider
		Manifest    manifest.Reader
		Diagnostics DiagnosticRenderer
		FS          afero.Fs
		Getwd       func() (string, error)
		Stdout      io.Writer
		Stderr      io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// DiagnosticRenderer renders map build diagnostics.
	DiagnosticRenderer interface {
		Render(ctx context.Context, diags []nsmap.Diagnostic, stderr io.Writer, verbose bool)
	}

	// rootFlags are the persistent flags shared by every command.
	rootFlags struct {
		configPath string
		root       string
		verbose    bool
	}

	// session is everything one invocation needs to resolve specifiers.
	session struct {
		project     *project.Context
		config      *config.Config
		configPath  string
		packageName string
		result      nsmap.Result
		resolver    *resolver.Resolver
	}

	defaultDiagnosticRenderer struct{}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.FS == nil {
		deps.FS = afero.NewOsFs()
	}
	if deps.Getwd == nil {
		deps.Getwd = os.Getwd
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Manifest == nil {
		deps.Manifest = manifest.NewFileReader(deps.FS)
	}
	if deps.Diagnostics == nil {
		deps.Diagnostics = &defaultDiagnosticRenderer{}
	}

	return &App{
		Config:      deps.Config,
		Manifest:    deps.Manifest,
		Diagnostics: deps.Diagnostics,
		fs:          deps.FS,
		getwd:       deps.Getwd,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
		logger:      newLogger(deps.Stderr, false),
	}, nil
}

// openProject resolves the project root from --root or by walking up from the
// working directory.
func (a *App) openProject(flags *rootFlags) (*project.Context, error) {
	cwd, err := a.getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	probe := fsprobe.New(a.fs)
	root := flags.root
	if root == "" {
		if root, err = project.FindRoot(cwd, probe); err != nil {
			return nil, err
		}
	}

	p, err := project.New(root, cwd, probe)
	if err != nil {
		return nil, newServiceError(err, issue.ProjectRootNotFoundId)
	}
	a.logger.Debug("project opened", "root", p.Root, "cwd", p.WorkingDir)
	return p, nil
}

// loadSession opens the project, loads configuration and builds the namespace
// map. An invalid project configuration falls back to defaults with an error
// diagnostic; an explicit --config that fails to load is fatal.
func (a *App) loadSession(ctx context.Context, flags *rootFlags) (*session, error) {
	p, err := a.openProject(flags)
	if err != nil {
		return nil, err
	}

	s := &session{project: p}

	opts := config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(flags.configPath),
		ProjectRoot:    p.Root,
		FS:             a.fs,
	}
	s.configPath = config.Locate(opts)

	var diags []nsmap.Diagnostic
	cfg, err := a.Config.Load(ctx, opts)
	if err != nil {
		if flags.configPath != "" {
			return nil, newServiceError(err, issue.ConfigLoadFailedId)
		}
		diags = append(diags, nsmap.Diagnostic{
			Severity: nsmap.SeverityError,
			Code:     codeConfigLoadFailed,
			Message:  formatErrorForDisplay(err, flags.verbose),
			Path:     s.configPath,
			Cause:    err,
		})
		cfg = &config.Config{}
	}
	s.config = cfg

	m := a.Manifest.Read(string(p.Root))
	buildOpts := cfg.NamespaceOptions(m.Name)
	s.packageName = buildOpts.PackageName

	s.result = nsmap.NewBuilder(p, nsmap.WithLogger(a.logger)).Build(buildOpts)
	s.result.Diagnostics = append(diags, s.result.Diagnostics...)
	s.resolver = resolver.New(p, s.result.Map, s.packageName, resolver.WithLogger(a.logger))

	return s, nil
}

// diagnosticIssues maps diagnostic codes to the catalog entry explaining them.
var diagnosticIssues = map[string]issue.Id{
	codeConfigLoadFailed:            issue.ConfigLoadFailedId,
	nsmap.CodePackageNameMissing:    issue.ManifestNotFoundId,
	nsmap.CodeNamespaceListRejected: issue.NamespaceRejectedId,
}

// Render prints one line per diagnostic. In verbose mode the catalog entry for
// each distinct problem follows.
func (defaultDiagnosticRenderer) Render(_ context.Context, diags []nsmap.Diagnostic, stderr io.Writer, verbose bool) {
	var ids []issue.Id
	for _, d := range diags {
		prefix := WarningStyle.Render("Warning: ")
		if d.Severity == nsmap.SeverityError {
			prefix = ErrorStyle.Render("Error: ")
		}
		msg := d.Message
		if d.Path != "" {
			msg = d.Path + ": " + msg
		}
		fmt.Fprintln(stderr, prefix+msg)

		if id, ok := diagnosticIssues[d.Code]; ok && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	if !verbose {
		return
	}
	for _, id := range ids {
		renderIssue(stderr, id, "notty")
	}
}
