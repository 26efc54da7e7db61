package cmdutil

import (
	"context"
	"io"

	"hyperex/internal/engine"
	"hyperex/internal/pipeline"
)

// RunStream runs the shared pipeline and streams each report, in input order,
// via send. It returns the number of records sent and the first error
// encountered.
func RunStream(
	ctx context.Context,
	cfg pipeline.Config,
	src io.Reader,
	ext pipeline.Extractor,
	send func(engine.Report) error,
) (int, error) {
	total := 0
	err := pipeline.Run(ctx, cfg, src, ext, func(r pipeline.Result) error {
		if err := send(r.Report); err != nil {
			return err
		}
		total++
		return nil
	})
	return total, err
}
