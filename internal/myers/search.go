// internal/myers/search.go
package myers

// Iterator lazily yields every end position whose best alignment has at most
// k edits, scanning the text once from left to right.
type Iterator struct {
	mt   *Matcher
	text []byte
	k    int
	pos  int
	col  column
}

// Iter starts a scan of text. A negative k is treated as 0; k >= Len() makes
// every position a hit.
func (mt *Matcher) Iter(text []byte, k int) *Iterator {
	if k < 0 {
		k = 0
	}
	return &Iterator{mt: mt, text: text, k: k, col: newColumn(mt.m)}
}

// Next returns the next hit, or false once the text is exhausted.
func (it *Iterator) Next() (Hit, bool) {
	for it.pos < len(it.text) {
		i := it.pos
		it.pos++
		it.col.advance(it.mt.peq[it.text[i]], it.mt.last, 0)
		if it.col.score <= it.k {
			return Hit{End: i, Dist: it.col.score}, true
		}
	}
	return Hit{}, false
}

// FindAll returns every hit in text order.
func (mt *Matcher) FindAll(text []byte, k int) []Hit {
	var out []Hit
	it := mt.Iter(text, k)
	for h, ok := it.Next(); ok; h, ok = it.Next() {
		out = append(out, h)
	}
	return out
}

// BestHit returns the hit with the lowest distance; ties go to the earliest end
// position. The scan stops at the first exact hit since nothing can beat it.
func (mt *Matcher) BestHit(text []byte, k int) (Hit, bool) {
	var (
		best  Hit
		found bool
	)
	it := mt.Iter(text, k)
	for h, ok := it.Next(); ok; h, ok = it.Next() {
		if !found || h.Dist < best.Dist {
			best, found = h, true
			if best.Dist == 0 {
				break
			}
		}
	}
	return best, found
}

// HitAt recovers the start of an alignment ending at end with at most k edits.
// It runs the anchored recurrence backwards over at most Len()+k symbols. Among
// starts reaching the minimal distance it prefers the alignment whose length is
// closest to the pattern length, then the shorter one.
func (mt *Matcher) HitAt(text []byte, end, k int) (Match, bool) {
	if end < 0 || end >= len(text) {
		return Match{}, false
	}
	if k < 0 {
		k = 0
	}
	col := newColumn(mt.m)
	best := Match{End: end, Dist: -1}
	bestSpan := 0
	for j := 1; j <= mt.m+k && end-j+1 >= 0; j++ {
		col.advance(mt.rpeq[text[end-j+1]], mt.last, 1)
		d := col.score
		if d > k {
			continue
		}
		if best.Dist < 0 || d < best.Dist || (d == best.Dist && absDiff(j, mt.m) < absDiff(bestSpan, mt.m)) {
			best.Start, best.Dist, bestSpan = end-j+1, d, j
		}
	}
	if best.Dist < 0 {
		return Match{}, false
	}
	return best, true
}

// Find returns the best hit together with its start position.
func (mt *Matcher) Find(text []byte, k int) (Match, bool) {
	h, ok := mt.BestHit(text, k)
	if !ok {
		return Match{}, false
	}
	return mt.HitAt(text, h.End, k)
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
