// SPDX-License-Identifier: MPL-2.0

package config

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/nsalias/nsalias/internal/issue"
	"github.com/nsalias/nsalias/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "nsalias"
	// EnvPrefix prefixes environment overrides (NSALIAS_DISABLE_SYNC, ...).
	EnvPrefix = "NSALIAS"
	// CUEFileName is the preferred config file name.
	CUEFileName = AppName + ".cue"
	// TOMLFileName is the alternative config file name.
	TOMLFileName = AppName + ".toml"

	schemaDefinition = "#Config"
)

//go:embed nsalias_schema.cue
var configSchema []byte

// viperKeys are the keys Viper manages; namespaces bypass Viper to keep key case.
var viperKeys = []string{"name", "sources", "includes", "excludes", "disable_sync"}

// Locate returns the config file Load would read, or "" when none exists.
func Locate(opts LoadOptions) string {
	fs := fsOrDefault(opts.FS)
	if opts.ConfigFilePath != "" {
		return string(opts.ConfigFilePath)
	}
	for _, name := range []string{CUEFileName, TOMLFileName} {
		p := filepath.Join(string(opts.ProjectRoot), name)
		if fileExists(fs, p) {
			return p
		}
	}
	return ""
}

// loadWithOptions performs option-driven config loading. It returns the
// loaded file path, empty when defaults were used.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	if err := opts.Validate(); err != nil {
		return nil, "", err
	}

	fs := fsOrDefault(opts.FS)
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range viperKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, "", fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	v.SetDefault("disable_sync", false)

	path := Locate(opts)
	if opts.ConfigFilePath != "" && !fileExists(fs, path) {
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Use 'nsalias config show' to see the default configuration").
			Wrap(fmt.Errorf("config file not found: %s", path)).
			BuildError()
	}

	var namespaces map[string]NamespaceValue
	if path != "" {
		raw, err := readConfigFile(fs, path)
		if err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE or TOML syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("See 'nsalias config --help' for configuration options").
				Wrap(err).
				BuildError()
		}

		namespaces, err = parseNamespaces(raw["namespaces"])
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", path, err)
		}
		delete(raw, "namespaces")

		if err := v.MergeConfigMap(raw); err != nil {
			return nil, "", fmt.Errorf("failed to merge config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(stringListHook())); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Namespaces = namespaces

	return &cfg, path, nil
}

// readConfigFile decodes a CUE or TOML file into a schema-validated map.
func readConfigFile(fs afero.Fs, path string) (map[string]any, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
			return nil, err
		}
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		res, err := cueutil.DecodeValue[map[string]any](configSchema, raw, schemaDefinition, cueutil.WithFilename(path))
		if err != nil {
			return nil, err
		}
		return *res.Value, nil
	}

	res, err := cueutil.ParseAndDecode[map[string]any](configSchema, data, schemaDefinition, cueutil.WithFilename(path))
	if err != nil {
		return nil, err
	}
	if *res.Value == nil {
		return map[string]any{}, nil
	}
	return *res.Value, nil
}

// WriteDefault writes DefaultConfig as CUE to path. It refuses to overwrite
// an existing file unless force is set.
func WriteDefault(fs afero.Fs, path string, force bool) error {
	fs = fsOrDefault(fs)
	if !force && fileExists(fs, path) {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := afero.WriteFile(fs, path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateCUE generates a CUE representation of the configuration.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// nsalias configuration\n\n")

	if cfg.Name != "" {
		fmt.Fprintf(&sb, "name: %q\n", cfg.Name)
	}
	writeCUEList(&sb, "sources", cfg.Sources)
	writeCUEList(&sb, "includes", cfg.Includes)
	writeCUEList(&sb, "excludes", cfg.Excludes)

	if len(cfg.Namespaces) > 0 {
		sb.WriteString("\nnamespaces: {\n")
		for _, name := range slices.Sorted(maps.Keys(cfg.Namespaces)) {
			ns := cfg.Namespaces[name]
			if ns.List {
				fmt.Fprintf(&sb, "\t%q: %s\n", name, cueList(ns.Paths))
			} else if len(ns.Paths) > 0 {
				fmt.Fprintf(&sb, "\t%q: %q\n", name, ns.Paths[0])
			}
		}
		sb.WriteString("}\n")
	}

	fmt.Fprintf(&sb, "\ndisable_sync: %v\n", cfg.DisableSync)

	return sb.String()
}

// tomlConfig fixes the key order of GenerateTOML output.
type tomlConfig struct {
	Name        string         `toml:"name,omitempty"`
	Sources     []string       `toml:"sources,omitempty"`
	Includes    []string       `toml:"includes,omitempty"`
	Excludes    []string       `toml:"excludes,omitempty"`
	DisableSync bool           `toml:"disable_sync"`
	Namespaces  map[string]any `toml:"namespaces,omitempty"`
}

// GenerateTOML generates a TOML representation of the configuration.
func GenerateTOML(cfg *Config) ([]byte, error) {
	out := tomlConfig{
		Name:        cfg.Name,
		Sources:     cfg.Sources,
		Includes:    cfg.Includes,
		Excludes:    cfg.Excludes,
		DisableSync: cfg.DisableSync,
	}
	if len(cfg.Namespaces) > 0 {
		out.Namespaces = make(map[string]any, len(cfg.Namespaces))
		for name, ns := range cfg.Namespaces {
			if ns.List {
				out.Namespaces[name] = ns.Paths
			} else if len(ns.Paths) > 0 {
				out.Namespaces[name] = ns.Paths[0]
			}
		}
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("failed to encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

func writeCUEList(sb *strings.Builder, key string, values StringList) {
	if values == nil {
		return
	}
	fmt.Fprintf(sb, "%s: %s\n", key, cueList(values))
}

func cueList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func fsOrDefault(fs afero.Fs) afero.Fs {
	if fs == nil {
		return afero.NewOsFs()
	}
	return fs
}

// fileExists checks if a file exists and is not a directory.
func fileExists(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && !info.IsDir()
}
