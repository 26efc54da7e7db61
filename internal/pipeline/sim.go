// internal/pipeline/sim.go
package pipeline

import "hyperex/internal/engine"

// Extractor is the minimal capability the pipeline needs.
// Any engine (including fakes in tests) can satisfy this.
type Extractor interface {
	Extract(id string, seq []byte) engine.Report
}
