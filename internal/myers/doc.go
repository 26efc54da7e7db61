// Package myers implements bounded edit-distance search of a short pattern in a
// long text with Myers' bit-vector algorithm (Hyyrö's formulation).
//
// Symbol equality is configurable: the matcher precomputes, for each of the
// 256 possible text bytes, which pattern positions that byte satisfies, so
// ambiguity codes on either side cost nothing at scan time.
//
// Patterns are limited to one machine word (64 symbols).
package myers
