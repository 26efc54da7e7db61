// internal/primer/catalog.go
package primer

import (
	"sort"
	"strings"
)

// Catalog resolves named 16S rRNA hypervariable regions to primer pairs and
// primer literals to the sub-region they flank. It is built once and only read
// afterwards; share one *Catalog across goroutines.
type Catalog struct {
	primers map[string]string    // primer name → sequence
	regions map[string][2]string // region → (forward name, reverse name)
	labels  map[string]string    // primer sequence → sub-region label
}

// NewCatalog returns the built-in 16S catalog.
func NewCatalog() *Catalog {
	c := &Catalog{
		primers: map[string]string{
			// forward
			"27F":    "AGAGTTTGATCMTGGCTCAG",
			"341F":   "CCTACGGGNGGCWGCAG",
			"515F":   "GTGCCAGCMGCCGCGGTAA",
			"515F-Y": "GTGYCAGCMGCCGCGGTAA",
			"799F":   "AACMGGATTAGATACCCKG",
			"928F":   "TAAAACTYAAAKGAATTGACGGGG",
			"1100F":  "YAACGAGCGCAACCC",
			// reverse
			"337R":     "CYIACTGCTGCCTCCCGTAG",
			"534R":     "ATTACCGCGGCTGCTGG",
			"805R":     "GACTACHVGGGTATCTAATCC",
			"926Rb":    "CCGTCAATTYMTTTRAGT",
			"806R":     "GGACTACHVGGGTWTCTAAT",
			"909-928R": "CCCCGYCAATTCMTTTRAGT",
			"1193R":    "ACGTCATCCCCACCTTCC",
			"1492Rmod": "TACGGYTACCTTGTTAYGACTT",
		},
		regions: map[string][2]string{
			"v1v2": {"27F", "337R"},
			"v1v3": {"27F", "534R"},
			"v1v9": {"27F", "1492Rmod"},
			"v3v4": {"341F", "805R"},
			"v3v5": {"341F", "926Rb"},
			"v4":   {"515F", "806R"},
			"v4v5": {"515F-Y", "909-928R"},
			"v5v7": {"799F", "1193R"},
			"v6v9": {"928F", "1492Rmod"},
			"v7v9": {"1100F", "1492Rmod"},
		},
		labels: map[string]string{
			"AGAGTTTGATCMTGGCTCAG":     "v1",
			"CCTACGGGNGGCWGCAG":        "v3",
			"GTGCCAGCMGCCGCGGTAA":      "v4",
			"GTGYCAGCMGCCGCGGTAA":      "v4",
			"AACMGGATTAGATACCCKG":      "v5",
			"TAAAACTYAAAKGAATTGACGGGG": "v6",
			"YAACGAGCGCAACCC":          "v7",
			"CYIACTGCTGCCTCCCGTAG":     "v2",
			"ATTACCGCGGCTGCTGG":        "v3",
			"GACTACHVGGGTATCTAATCC":    "v4",
			"CCGTCAATTYMTTTRAGT":       "v5",
			"GGACTACHVGGGTWTCTAAT":     "v4",
			"CCCCGYCAATTCMTTTRAGT":     "v5",
			"ACGTCATCCCCACCTTCC":       "v7",
			"TACGGYTACCTTGTTAYGACTT":   "v9",
		},
	}
	return c
}

// Regions lists the supported region names in sorted order.
func (c *Catalog) Regions() []string {
	out := make([]string, 0, len(c.regions))
	for name := range c.regions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Primer returns the sequence of a named primer such as "27F".
func (c *Catalog) Primer(name string) (string, bool) {
	s, ok := c.primers[name]
	return s, ok
}

// PrimerNames returns the forward and reverse primer names of a region.
func (c *Catalog) PrimerNames(region string) (fwd, rev string, ok bool) {
	r, ok := c.regions[region]
	if !ok {
		return "", "", false
	}
	return r[0], r[1], true
}

// Region returns the primer pair for a named region.
func (c *Catalog) Region(name string) (Pair, bool) {
	r, ok := c.regions[name]
	if !ok {
		return Pair{}, false
	}
	return c.NewPair(name, c.primers[r[0]], c.primers[r[1]]), true
}

// SubLabel returns the sub-region a primer literal flanks, or "". Case and the
// U spelling of T are ignored.
func (c *Catalog) SubLabel(primer string) string { return c.labels[labelKey(primer)] }

func labelKey(s string) string {
	return strings.ReplaceAll(strings.ToUpper(s), "U", "T")
}

// Label derives a region label from a primer pair: both sub-labels resolved and
// identical collapse to one ("v4"+"v4" → "v4"); otherwise they are concatenated
// forward then reverse, with misses contributing "".
func (c *Catalog) Label(fwd, rev string) string {
	a, b := c.SubLabel(fwd), c.SubLabel(rev)
	if a != "" && a == b {
		return a
	}
	return a + b
}

// NewPair builds a Pair and resolves its label.
func (c *Catalog) NewPair(name, fwd, rev string) Pair {
	return Pair{Name: name, Forward: fwd, Reverse: rev, Label: c.Label(fwd, rev)}
}
