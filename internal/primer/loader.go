// internal/primer/loader.go
package primer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// pairFile is the YAML primer-set layout:
//
//	pairs:
//	  - name: v4
//	    forward: GTGCCAGCMGCCGCGGTAA
//	    reverse: GGACTACHVGGGTWTCTAAT
type pairFile struct {
	Pairs []struct {
		Name    string `yaml:"name"`
		Forward string `yaml:"forward"`
		Reverse string `yaml:"reverse"`
	} `yaml:"pairs"`
}

// LoadFile reads a primer set, choosing YAML for .yaml/.yml and TSV otherwise.
// Labels are resolved against cat.
func LoadFile(path string, cat *Catalog) ([]Pair, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(fh, path, cat)
	default:
		return LoadTSV(fh, path, cat)
	}
}

// LoadTSV reads whitespace-separated rows of `name forward reverse`.
// Blank lines and lines starting with '#' are skipped.
func LoadTSV(r io.Reader, path string, cat *Catalog) ([]Pair, error) {
	var list []Pair
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 3 {
			return nil, fmt.Errorf("%s:%d bad field count", path, ln)
		}
		p, err := newCheckedPair(cat, f[0], f[1], f[2])
		if err != nil {
			return nil, fmt.Errorf("%s:%d %w", path, ln, err)
		}
		list = append(list, p)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%s: no primer pairs", path)
	}
	return list, nil
}

// LoadYAML reads the `pairs:` document described on pairFile.
func LoadYAML(r io.Reader, path string, cat *Catalog) ([]Pair, error) {
	var doc pairFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(doc.Pairs) == 0 {
		return nil, fmt.Errorf("%s: no primer pairs", path)
	}
	list := make([]Pair, 0, len(doc.Pairs))
	for i, row := range doc.Pairs {
		p, err := newCheckedPair(cat, row.Name, row.Forward, row.Reverse)
		if err != nil {
			return nil, fmt.Errorf("%s: pair %d: %w", path, i+1, err)
		}
		list = append(list, p)
	}
	return list, nil
}

func newCheckedPair(cat *Catalog, name, fwd, rev string) (Pair, error) {
	f, err := Validate(fwd)
	if err != nil {
		return Pair{}, fmt.Errorf("forward: %w", err)
	}
	r, err := Validate(rev)
	if err != nil {
		return Pair{}, fmt.Errorf("reverse: %w", err)
	}
	return cat.NewPair(name, f, r), nil
}

// InlinePairs pairs repeated -f/-r values by position.
func InlinePairs(cat *Catalog, fwds, revs []string) ([]Pair, error) {
	if len(fwds) != len(revs) {
		return nil, fmt.Errorf("got %d forward and %d reverse primers; they pair by position", len(fwds), len(revs))
	}
	out := make([]Pair, 0, len(fwds))
	for i := range fwds {
		p, err := newCheckedPair(cat, "", fwds[i], revs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// RegionPairs resolves region names against the catalog.
func RegionPairs(cat *Catalog, names []string) ([]Pair, error) {
	out := make([]Pair, 0, len(names))
	for _, n := range names {
		p, ok := cat.Region(n)
		if !ok {
			return nil, fmt.Errorf("unknown region %q (supported: %s)", n, strings.Join(cat.Regions(), ", "))
		}
		out = append(out, p)
	}
	return out, nil
}
