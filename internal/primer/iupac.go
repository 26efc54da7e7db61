// internal/primer/iupac.go
package primer

/* -------------------------- IUPAC lookup table -------------------------- */

// bit0=A bit1=C bit2=G bit3=T (U shares the T bit)
var iupacMask [256]uint8

// expansion lists the literal bases each symbol stands for, upper-case only.
var expansion = map[byte]string{
	'A': "A", 'C': "C", 'G': "G", 'T': "T", 'U': "T",
	'R': "AG", 'Y': "CT", 'S': "CG", 'W': "AT",
	'K': "GT", 'M': "AC", 'B': "CGT", 'D': "AGT",
	'H': "ACT", 'V': "ACG", 'N': "ACGT",
	'I': "ACGT", // inosine pairs with any base
}

func init() {
	bit := map[byte]uint8{'A': 1, 'C': 2, 'G': 4, 'T': 8}
	for sym, lits := range expansion {
		var m uint8
		for i := 0; i < len(lits); i++ {
			m |= bit[lits[i]]
		}
		iupacMask[sym] = m
		iupacMask[sym+('a'-'A')] = m
	}
}

/* ------------------------------ accessors ------------------------------- */

// Mask returns the 4-bit base set of an IUPAC symbol (0 for unknown bytes).
func Mask(c byte) uint8 { return iupacMask[c] }

// IsLiteral reports whether c names exactly one base (A, C, G, T or U).
func IsLiteral(c byte) bool {
	m := iupacMask[c]
	return m != 0 && m&(m-1) == 0
}

// Expand returns the literal bases the symbol may represent, or nil when the
// symbol is not part of the IUPAC nucleotide alphabet.
func Expand(c byte) []byte {
	lits, ok := expansion[upper(c)]
	if !ok {
		return nil
	}
	return []byte(lits)
}

// Equivalent is the ambiguity-aware equality used by the matcher: the two
// symbols are the same (ignoring case), or one of them is a literal contained in
// the other's class. Two distinct ambiguity codes never match each other.
//
// Example: Equivalent('R', 'G') == true, Equivalent('R', 'S') == false
func Equivalent(p, t byte) bool {
	if upper(p) == upper(t) {
		return true
	}
	mp, mt := iupacMask[p], iupacMask[t]
	if mp&mt == 0 {
		return false
	}
	return IsLiteral(p) || IsLiteral(t)
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
