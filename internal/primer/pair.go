// internal/primer/pair.go
package primer

// Pair is a forward/reverse primer pair and the region label derived from it.
type Pair struct {
	Name    string // region name, primer-file row id, or "" for inline pairs
	Forward string // 5'→3', binds the forward strand
	Reverse string // 5'→3', binds the reverse strand
	Label   string // catalog label ("v3v4"); empty when unnamed
}

// DisplayName is the label when known, else the explicit name, else the two
// primers joined by a slash.
func (p Pair) DisplayName() string {
	switch {
	case p.Label != "":
		return p.Label
	case p.Name != "":
		return p.Name
	default:
		return p.Forward + "/" + p.Reverse
	}
}
