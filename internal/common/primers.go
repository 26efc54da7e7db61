// internal/common/primers.go
package common

import (
	"strings"

	"hyperex/internal/primer"
)

// UniquePairs drops pairs whose (forward, reverse) primers, compared without
// case, already appeared earlier. The first occurrence keeps its name.
func UniquePairs(in []primer.Pair) []primer.Pair {
	type key struct{ f, r string }
	seen := make(map[key]struct{}, len(in))
	out := make([]primer.Pair, 0, len(in))
	for _, p := range in {
		k := key{strings.ToUpper(p.Forward), strings.ToUpper(p.Reverse)}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}
