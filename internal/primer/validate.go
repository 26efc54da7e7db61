// internal/primer/validate.go
package primer

import (
	"fmt"
	"strings"
	"unicode"
)

// Normalize removes spaces/quotes and uppercases bases.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		out = append(out, unicode.ToUpper(r))
	}
	return string(out)
}

// Validate returns a normalized primer or an error if any symbol is outside the
// IUPAC nucleotide alphabet (inosine allowed).
func Validate(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return s, fmt.Errorf("empty primer")
	}
	for i := 0; i < len(s); i++ {
		if iupacMask[s[i]] == 0 {
			return "", fmt.Errorf("invalid base %q at %d in %s; allowed: %s",
				s[i], i+1, s, strings.Join(strings.Split(dnaSymbols+"UI", ""), " "))
		}
	}
	return s, nil
}
