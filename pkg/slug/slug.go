// Package slug derives URL slugs from product names.
package slug

import "strings"

// Derive lowercases name, drops everything outside [a-z0-9 -], turns
// whitespace runs into single hyphens, collapses hyphen runs, and trims
// leading/trailing hyphens. Deriving twice from the same name yields the
// same slug.
func Derive(name string) string {
	lowered := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n':
			b.WriteByte(' ')
		case r == '-':
			b.WriteByte('-')
		}
	}

	fields := strings.FieldsFunc(b.String(), func(r rune) bool {
		return r == ' ' || r == '-'
	})
	return strings.Join(fields, "-")
}
