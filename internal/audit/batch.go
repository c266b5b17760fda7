package audit

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
)

// BatchResult pairs one audited assessment version with its findings.
type BatchResult struct {
	AssessmentID      uuid.UUID
	AssessmentVersion int
	Findings          []Finding
}

// RunBatch audits several assessments concurrently. workers caps the
// number of in-flight audits; anything below one means serial. Results
// come back in input order regardless of completion order, so batch
// output is as deterministic as a single Run.
func RunBatch(ctx context.Context, assessments []*htc.Assessment, cfg Config, workers int) ([]BatchResult, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]BatchResult, len(assessments))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, a := range assessments {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = BatchResult{
				AssessmentID:      a.ID,
				AssessmentVersion: a.Version,
				Findings:          Run(a, cfg),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
