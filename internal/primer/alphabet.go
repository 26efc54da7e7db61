// internal/primer/alphabet.go
package primer

// Alphabet is the nucleotide alphabet a sequence record is written in.
type Alphabet int

const (
	Unknown Alphabet = iota
	DNA
	RNA
)

func (a Alphabet) String() string {
	switch a {
	case DNA:
		return "dna"
	case RNA:
		return "rna"
	default:
		return "unknown"
	}
}

const (
	dnaSymbols = "ACGTRYSWKMBDHVN"
	rnaSymbols = "ACGURYSWKMBDHVN"
)

var dnaSet, rnaSet [256]bool

func init() {
	for i := 0; i < len(dnaSymbols); i++ {
		dnaSet[dnaSymbols[i]] = true
		dnaSet[dnaSymbols[i]+('a'-'A')] = true
	}
	for i := 0; i < len(rnaSymbols); i++ {
		rnaSet[rnaSymbols[i]] = true
		rnaSet[rnaSymbols[i]+('a'-'A')] = true
	}
}

// Classify returns DNA when every symbol belongs to the DNA IUPAC set, RNA when
// every symbol belongs to the RNA IUPAC set, and Unknown otherwise (e.g. a
// record mixing T and U, or containing gaps). Case is ignored.
func Classify(seq []byte) Alphabet {
	dna, rna := true, true
	for _, c := range seq {
		dna = dna && dnaSet[c]
		rna = rna && rnaSet[c]
		if !dna && !rna {
			return Unknown
		}
	}
	if dna {
		return DNA
	}
	return RNA
}
