package export

import (
	"context"

	"github.com/reviewkit/klavex/internal/client"
	"github.com/reviewkit/klavex/internal/extract"
)

// Pipeline wires the fetcher, extractor and CSV writer together for one
// export run. It streams events page by page, flattens each into a row,
// accumulates the full row set, and writes the file once at the end. The
// first fatal error from any stage aborts the run and propagates unchanged.
type Pipeline struct {
	Client      *client.Client
	Range       client.DateRange
	Output      string
	ChunkMonths int

	// Detailed re-fetches each event individually for its full property
	// set. Much slower; one extra request per event.
	Detailed bool

	// Progress, when set, receives human-readable status lines.
	Progress func(format string, args ...interface{})
}

// Run executes the export and returns the written row count and path.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	metricID, err := p.Client.ResolveReviewMetricID(ctx)
	if err != nil {
		return nil, err
	}
	p.progress("resolved %q metric: %s", "Submitted review", metricID)

	var rows []extract.Row

	chunks := p.Range.Chunks(p.ChunkMonths)
	for i, chunk := range chunks {
		p.progress("chunk %d/%d: %s", i+1, len(chunks), chunk)

		q := client.EventQuery{MetricID: metricID, Range: chunk}
		n, err := p.Client.StreamEvents(ctx, q, func(ev client.RawEvent) error {
			if p.Detailed {
				full, err := p.Client.GetEvent(ctx, ev.ID)
				if err != nil {
					return err
				}
				ev = full
			}
			rows = append(rows, extract.Flatten(ev))
			return nil
		})
		if err != nil {
			return nil, err
		}
		p.progress("chunk %d/%d: %d events (total %d)", i+1, len(chunks), n, len(rows))
	}

	return WriteCSV(rows, p.Output)
}

func (p *Pipeline) progress(format string, args ...interface{}) {
	if p.Progress != nil {
		p.Progress(format, args...)
	}
}
