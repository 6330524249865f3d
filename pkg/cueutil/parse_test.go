// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

var testSchema = []byte(`
#Config: close({
	name?:    string
	sources?: string | [...string]
	debug?:   bool
})
`)

type testConfig struct {
	Name  string `json:"name"`
	Debug bool   `json:"debug"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	res, err := ParseAndDecode[testConfig](testSchema, []byte(`name: "proj", debug: true`), "#Config")
	if err != nil {
		t.Fatalf("ParseAndDecode() error: %v", err)
	}
	if res.Value.Name != "proj" || !res.Value.Debug {
		t.Errorf("ParseAndDecode() = %+v", res.Value)
	}
}

func TestParseAndDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		opts    []Option
		wantSub string
	}{
		{"syntax error", `name: "proj`, []Option{WithFilename("nsalias.cue")}, "nsalias.cue"},
		{"type mismatch", `debug: "yes"`, []Option{WithFilename("nsalias.cue")}, "debug"},
		{"unknown field", `unknown: 1`, nil, "<input>"},
		{"too large", `name: "proj"`, []Option{WithMaxFileSize(4)}, "exceeds maximum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseAndDecode[map[string]any](testSchema, []byte(tt.data), "#Config", tt.opts...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q should contain %q", err, tt.wantSub)
			}
		})
	}
}

func TestParseAndDecode_MissingDefinition(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecode[map[string]any](testSchema, []byte(`name: "x"`), "#Missing")
	if err == nil || !strings.Contains(err.Error(), "#Missing") {
		t.Errorf("expected missing definition error, got %v", err)
	}
}

func TestDecodeValue(t *testing.T) {
	t.Parallel()

	res, err := DecodeValue[map[string]any](testSchema, map[string]any{
		"name":    "proj",
		"sources": []any{"src", "lib"},
	}, "#Config")
	if err != nil {
		t.Fatalf("DecodeValue() error: %v", err)
	}
	if (*res.Value)["name"] != "proj" {
		t.Errorf("DecodeValue() = %v", *res.Value)
	}

	if _, err := DecodeValue[map[string]any](testSchema, map[string]any{"debug": "no"}, "#Config", WithFilename("nsalias.toml")); err == nil {
		t.Error("DecodeValue() should reject a string debug flag")
	}
}
