package generator

import (
	"context"
	"time"

	"git.home.luguber.info/inful/webdoc/internal/linkverify"
)

// EventSink receives the lifecycle of each generation run. Sink errors are
// logged and never fail a run.
type EventSink interface {
	GenerationStarted(ctx context.Context, runID, template string, pageCount int) error
	StageCompleted(ctx context.Context, runID, stage, result string, d time.Duration) error
	LinksVerified(ctx context.Context, runID string, broken []linkverify.BrokenLink) error
	GenerationCompleted(ctx context.Context, runID string, filesGenerated, brokenLinks int, d time.Duration) error
	GenerationFailed(ctx context.Context, runID, stage, message string) error
}
