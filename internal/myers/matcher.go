// internal/myers/matcher.go
package myers

import (
	"errors"
	"fmt"
)

// MaxPatternLen is the longest pattern a single 64-bit column can hold.
const MaxPatternLen = 64

var (
	ErrEmptyPattern   = errors.New("myers: empty pattern")
	ErrPatternTooLong = errors.New("myers: pattern exceeds 64 symbols")
)

// Equivalence reports whether pattern symbol p accepts text symbol t.
type Equivalence func(p, t byte) bool

func exact(p, t byte) bool { return p == t }

// Hit is an end position (inclusive, 0-based) and its edit distance.
type Hit struct {
	End  int
	Dist int
}

// Match is a hit with its recovered start position.
type Match struct {
	Start int
	End   int // inclusive
	Dist  int
}

// Len is the number of text symbols covered by the match.
func (m Match) Len() int { return m.End - m.Start + 1 }

// Matcher holds the precomputed match masks of one pattern. It is read-only
// after New and safe for concurrent use.
type Matcher struct {
	pattern []byte
	m       int
	last    uint64
	peq     [256]uint64 // bit i: pattern[i] accepts the byte
	rpeq    [256]uint64 // same for the reversed pattern
}

// New compiles pattern under eq (nil means exact byte equality).
func New(pattern []byte, eq Equivalence) (*Matcher, error) {
	m := len(pattern)
	if m == 0 {
		return nil, ErrEmptyPattern
	}
	if m > MaxPatternLen {
		return nil, fmt.Errorf("%w (got %d)", ErrPatternTooLong, m)
	}
	if eq == nil {
		eq = exact
	}
	mt := &Matcher{
		pattern: append([]byte(nil), pattern...),
		m:       m,
		last:    1 << uint(m-1),
	}
	for c := 0; c < 256; c++ {
		for i := 0; i < m; i++ {
			if eq(pattern[i], byte(c)) {
				mt.peq[c] |= 1 << uint(i)
				mt.rpeq[c] |= 1 << uint(m-1-i)
			}
		}
	}
	return mt, nil
}

// Len returns the pattern length.
func (mt *Matcher) Len() int { return mt.m }

// Pattern returns a copy of the compiled pattern.
func (mt *Matcher) Pattern() []byte { return append([]byte(nil), mt.pattern...) }

/* ------------------------------ DP column ------------------------------- */

// column is one DP column encoded as vertical delta vectors plus the score of
// the last row.
type column struct {
	pv, mv uint64
	score  int
}

func newColumn(m int) column { return column{pv: ^uint64(0), score: m} }

// advance consumes one text symbol. hin is the horizontal delta of row 0:
// 0 lets an alignment start anywhere (search), 1 anchors it (global).
func (c *column) advance(eq, last, hin uint64) {
	xv := eq | c.mv
	xh := (((eq & c.pv) + c.pv) ^ c.pv) | eq
	ph := c.mv | ^(xh | c.pv)
	mh := c.pv & xh
	if ph&last != 0 {
		c.score++
	} else if mh&last != 0 {
		c.score--
	}
	ph = ph<<1 | hin
	mh <<= 1
	c.pv = mh | ^(xv | ph)
	c.mv = ph & xv
}

// Distance returns the global edit distance between the pattern and s.
func (mt *Matcher) Distance(s []byte) int {
	col := newColumn(mt.m)
	for _, b := range s {
		col.advance(mt.peq[b], mt.last, 1)
	}
	return col.score
}
