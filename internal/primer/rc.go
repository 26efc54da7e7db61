// internal/primer/rc.go
package primer

import "errors"

// ErrUnknownAlphabet is returned when a transform needs an alphabet and none
// could be resolved for the record.
var ErrUnknownAlphabet = errors.New("primer: unknown alphabet")

var complementDNA, complementRNA [256]byte

func init() {
	for i := range complementDNA {
		complementDNA[i] = byte(i) // unrecognized symbols pass through
		complementRNA[i] = byte(i)
	}
	pairs := [][2]byte{
		{'C', 'G'},
		{'R', 'Y'},
		{'K', 'M'},
		{'B', 'V'},
		{'D', 'H'},
	}
	set := func(tab *[256]byte, a, b byte) {
		tab[a], tab[b] = b, a
		tab[a+('a'-'A')], tab[b+('a'-'A')] = b+('a'-'A'), a+('a'-'A')
	}
	for _, p := range pairs {
		set(&complementDNA, p[0], p[1])
		set(&complementRNA, p[0], p[1])
	}
	set(&complementDNA, 'A', 'T')
	set(&complementRNA, 'A', 'U')
	// S, W and N are their own complement: identity already holds.
}

func table(a Alphabet) (*[256]byte, error) {
	switch a {
	case DNA:
		return &complementDNA, nil
	case RNA:
		return &complementRNA, nil
	default:
		return nil, ErrUnknownAlphabet
	}
}

// Complement maps every symbol to its complement in alphabet a.
func Complement(s string, a Alphabet) (string, error) {
	tab, err := table(a)
	if err != nil {
		return "", err
	}
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = tab[s[i]]
	}
	return string(out), nil
}

// ReverseComplement is reverse(Complement(s, a)).
func ReverseComplement(s string, a Alphabet) (string, error) {
	tab, err := table(a)
	if err != nil {
		return "", err
	}
	n := len(s)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = tab[s[n-1-i]]
	}
	return string(out), nil
}

// Recode spells thymine and uracil the way alphabet a does (T for DNA, U for
// RNA), keeping case. Primers are usually written as DNA; an RNA record needs
// its primers in U form before they are complemented.
func Recode(s string, a Alphabet) (string, error) {
	var from, to byte
	switch a {
	case DNA:
		from, to = 'U', 'T'
	case RNA:
		from, to = 'T', 'U'
	default:
		return "", ErrUnknownAlphabet
	}
	out := []byte(s)
	for i, c := range out {
		switch c {
		case from:
			out[i] = to
		case from + ('a' - 'A'):
			out[i] = to + ('a' - 'A')
		}
	}
	return string(out), nil
}

// RevComp is the DNA reverse-complement of a byte slice.
func RevComp(seq []byte) []byte {
	n := len(seq)
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = complementDNA[seq[n-1-i]]
	}
	return out
}
