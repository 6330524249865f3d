// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/nsalias/nsalias/internal/nsmap"
	"github.com/nsalias/nsalias/pkg/types"
)

// ErrInvalidLoadOptions is the sentinel error wrapped by InvalidLoadOptionsError.
var ErrInvalidLoadOptions = errors.New("invalid load options")

type (
	// StringList is a list option written either as a single string or as a
	// list of strings. Entries are tokenized when the namespace map is built.
	StringList []string

	// NamespaceValue is the right-hand side of a namespaces entry.
	NamespaceValue struct {
		Paths []string
		// List is set when the value was written as a list.
		List bool
	}

	// Config holds the project configuration.
	Config struct {
		// Name is the package name fallback.
		Name string `mapstructure:"name"`
		// Sources is nil when not configured, selecting the built-in default.
		Sources     StringList                `mapstructure:"sources"`
		Includes    StringList                `mapstructure:"includes"`
		Excludes    StringList                `mapstructure:"excludes"`
		Namespaces  map[string]NamespaceValue `mapstructure:"-"`
		DisableSync bool                      `mapstructure:"disable_sync"`
	}

	// InvalidLoadOptionsError is returned when LoadOptions carries invalid paths.
	InvalidLoadOptionsError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the configuration written by "nsalias config init".
func DefaultConfig() *Config {
	return &Config{
		Sources:  StringList(slices.Clone(nsmap.DefaultSources)),
		Excludes: StringList(slices.Clone(nsmap.DefaultExcludes)),
	}
}

// Validate returns an error if any non-empty path option is whitespace-only.
func (o LoadOptions) Validate() error {
	var errs []error
	for _, p := range []types.FilesystemPath{o.ConfigFilePath, o.ProjectRoot} {
		if p == "" {
			continue
		}
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &InvalidLoadOptionsError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidLoadOptionsError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid load options: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidLoadOptions for errors.Is() compatibility.
func (e *InvalidLoadOptionsError) Unwrap() error { return ErrInvalidLoadOptions }

// NamespaceOptions converts the configuration into map build options.
// packageName is the manifest name; Name is used when it is empty.
func (c *Config) NamespaceOptions(packageName string) nsmap.Options {
	if strings.TrimSpace(packageName) == "" {
		packageName = c.Name
	}

	names := make([]string, 0, len(c.Namespaces))
	for name := range c.Namespaces {
		names = append(names, name)
	}
	slices.Sort(names)

	bindings := make([]nsmap.Binding, 0, len(names))
	for _, name := range names {
		ns := c.Namespaces[name]
		bindings = append(bindings, nsmap.Binding{Name: name, Paths: slices.Clone(ns.Paths), List: ns.List})
	}

	var sources []string
	if c.Sources != nil {
		sources = slices.Clone([]string(c.Sources))
	}

	return nsmap.Options{
		PackageName: packageName,
		Sources:     sources,
		Includes:    slices.Clone([]string(c.Includes)),
		Excludes:    slices.Clone([]string(c.Excludes)),
		Namespaces:  bindings,
		DisableSync: c.DisableSync,
	}
}

// stringListHook lets a StringList be written as a single string.
func stringListHook() mapstructure.DecodeHookFuncType {
	listType := reflect.TypeFor[StringList]()
	return func(from, to reflect.Type, data any) (any, error) {
		if to != listType || from.Kind() != reflect.String {
			return data, nil
		}
		return StringList{data.(string)}, nil
	}
}

// parseNamespaces converts the decoded namespaces table, keeping key case.
func parseNamespaces(raw any) (map[string]NamespaceValue, error) {
	if raw == nil {
		return nil, nil
	}
	table, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("namespaces: expected a table, got %T", raw)
	}

	out := make(map[string]NamespaceValue, len(table))
	for name, value := range table {
		switch v := value.(type) {
		case string:
			out[name] = NamespaceValue{Paths: []string{v}}
		case []any:
			paths := make([]string, 0, len(v))
			for i, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("namespaces.%s[%d]: expected string, got %T", name, i, item)
				}
				paths = append(paths, s)
			}
			out[name] = NamespaceValue{Paths: paths, List: true}
		case []string:
			out[name] = NamespaceValue{Paths: slices.Clone(v), List: true}
		default:
			return nil, fmt.Errorf("namespaces.%s: expected string or list, got %T", name, value)
		}
	}
	return out, nil
}
