// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nsalias/nsalias/pkg/types"
)

func TestProvider_RejectsInvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: types.FilesystemPath("   "),
		FS:             writeFiles(t, nil),
	})
	if !errors.Is(err, ErrInvalidLoadOptions) {
		t.Fatalf("Load() error = %v, want ErrInvalidLoadOptions", err)
	}

	var loadErr *InvalidLoadOptionsError
	if !errors.As(err, &loadErr) {
		t.Fatalf("errors.As(*InvalidLoadOptionsError) failed for %v", err)
	}
	if len(loadErr.FieldErrors) != 1 || !errors.Is(loadErr.FieldErrors[0], types.ErrInvalidFilesystemPath) {
		t.Errorf("FieldErrors = %v, want one ErrInvalidFilesystemPath", loadErr.FieldErrors)
	}
}

func TestInvalidLoadOptionsError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		errs   []error
		wantIn []string
	}{
		{"single", []error{errors.New("bad path")}, []string{"invalid load options: bad path"}},
		{"multiple", []error{errors.New("first"), errors.New("second")}, []string{"first; second"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := &InvalidLoadOptionsError{FieldErrors: tt.errs}
			for _, want := range tt.wantIn {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Error() = %q, want it to contain %q", err.Error(), want)
				}
			}
			if !errors.Is(err, ErrInvalidLoadOptions) {
				t.Error("errors.Is(err, ErrInvalidLoadOptions) = false")
			}
		})
	}
}
