// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestNamespaceName_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   NamespaceName
		wantErr bool
	}{
		{"package name", "proj", false},
		{"sub namespace", "proj/tests", false},
		{"scoped package", "@scope/proj", false},
		{"camel case alias", "aliasPath", false},
		{"empty", "", true},
		{"whitespace", "  ", true},
		{"relative marker", "./src", true},
		{"hidden name", ".cache", true},
		{"absolute", "/src", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.value.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("NamespaceName(%q).Validate() error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidNamespaceName) {
				t.Errorf("error should wrap ErrInvalidNamespaceName, got: %v", err)
			}
		})
	}
}

func TestNamespaceName_Child(t *testing.T) {
	t.Parallel()

	if got := NamespaceName("proj").Child("tests"); got != "proj/tests" {
		t.Errorf("Child() = %q, want %q", got, "proj/tests")
	}
}

func TestIsNPMTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target string
		want   bool
	}{
		{"npm:babel", true},
		{"npm:babel/foo/bar", true},
		{"npm", false},
		{"/root/npm:babel", false},
		{"src/npm", false},
	}

	for _, tt := range tests {
		if got := IsNPMTarget(tt.target); got != tt.want {
			t.Errorf("IsNPMTarget(%q) = %v, want %v", tt.target, got, tt.want)
		}
	}
}
