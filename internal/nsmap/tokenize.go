// SPDX-License-Identifier: MPL-2.0

package nsmap

import (
	"os"
	"slices"
	"strings"
	"unicode"
)

// Tokenize splits every value on commas and whitespace, then splits each token
// on the OS path-list separator. Empty tokens are dropped and order is kept.
func Tokenize(values ...string) []string {
	var out []string
	for _, value := range values {
		fields := strings.FieldsFunc(value, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		for _, field := range fields {
			for part := range strings.SplitSeq(field, string(os.PathListSeparator)) {
				if part != "" {
					out = append(out, part)
				}
			}
		}
	}
	return out
}

// dedupe drops repeated entries, keeping the first occurrence.
func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
