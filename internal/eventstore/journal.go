package eventstore

import (
	"context"
	"time"

	"git.home.luguber.info/inful/webdoc/internal/linkverify"
)

// Journal records generation lifecycle callbacks as events and keeps an
// optional projection current.
type Journal struct {
	store      Store
	projection *RunHistoryProjection
}

// NewJournal returns a journal appending to store. projection may be nil.
func NewJournal(store Store, projection *RunHistoryProjection) *Journal {
	return &Journal{store: store, projection: projection}
}

func (j *Journal) record(ctx context.Context, ev Event, err error) error {
	if err != nil {
		return err
	}
	if err := j.store.Append(ctx, ev.RunID(), ev.Type(), ev.Payload(), ev.Metadata()); err != nil {
		return err
	}
	if j.projection != nil {
		j.projection.Apply(ev)
	}
	return nil
}

// GenerationStarted records the start of a run.
func (j *Journal) GenerationStarted(ctx context.Context, runID, template string, pageCount int) error {
	ev, err := NewGenerationStarted(runID, template, pageCount)
	return j.record(ctx, ev, err)
}

// StageCompleted records one stage outcome.
func (j *Journal) StageCompleted(ctx context.Context, runID, stage, result string, d time.Duration) error {
	ev, err := NewStageCompleted(runID, stage, result, d)
	return j.record(ctx, ev, err)
}

// LinksVerified records the broken links of a run.
func (j *Journal) LinksVerified(ctx context.Context, runID string, broken []linkverify.BrokenLink) error {
	pairs := make([]string, 0, len(broken))
	for _, b := range broken {
		pairs = append(pairs, b.Source+" -> "+b.Target)
	}
	ev, err := NewLinksVerified(runID, pairs)
	return j.record(ctx, ev, err)
}

// GenerationCompleted records a successful run.
func (j *Journal) GenerationCompleted(ctx context.Context, runID string, filesGenerated, brokenLinks int, d time.Duration) error {
	ev, err := NewGenerationCompleted(runID, filesGenerated, brokenLinks, d)
	return j.record(ctx, ev, err)
}

// GenerationFailed records an aborted run.
func (j *Journal) GenerationFailed(ctx context.Context, runID, stage, message string) error {
	ev, err := NewGenerationFailed(runID, stage, message)
	return j.record(ctx, ev, err)
}
