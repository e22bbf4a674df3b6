package eventstore

import (
	"encoding/json"
	"time"

	"git.home.luguber.info/inful/webdoc/internal/foundation/errors"
)

// Event type names.
const (
	TypeGenerationStarted   = "GenerationStarted"
	TypeStageCompleted      = "StageCompleted"
	TypeLinksVerified       = "LinksVerified"
	TypeGenerationCompleted = "GenerationCompleted"
	TypeGenerationFailed    = "GenerationFailed"
)

func newBase(runID, eventType string, payload any) (BaseEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return BaseEvent{}, errors.EventStoreError("failed to marshal "+eventType+" payload").
			WithCause(err).
			WithContext("run_id", runID).
			Build()
	}
	return BaseEvent{
		EventRunID:     runID,
		EventType:      eventType,
		EventTimestamp: time.Now(),
		EventPayload:   data,
	}, nil
}

// GenerationStarted is emitted when a run begins.
type GenerationStarted struct {
	BaseEvent
	Template  string `json:"template"`
	PageCount int    `json:"page_count"`
}

// NewGenerationStarted creates a GenerationStarted event.
func NewGenerationStarted(runID, template string, pageCount int) (*GenerationStarted, error) {
	ev := &GenerationStarted{Template: template, PageCount: pageCount}
	base, err := newBase(runID, TypeGenerationStarted, map[string]any{
		"template":   template,
		"page_count": pageCount,
	})
	if err != nil {
		return nil, err
	}
	ev.BaseEvent = base
	return ev, nil
}

// StageCompleted is emitted after each pipeline stage.
type StageCompleted struct {
	BaseEvent
	Stage    string        `json:"stage"`
	Result   string        `json:"result"`
	Duration time.Duration `json:"duration_ms"`
}

// NewStageCompleted creates a StageCompleted event.
func NewStageCompleted(runID, stage, result string, duration time.Duration) (*StageCompleted, error) {
	ev := &StageCompleted{Stage: stage, Result: result, Duration: duration}
	base, err := newBase(runID, TypeStageCompleted, map[string]any{
		"stage":       stage,
		"result":      result,
		"duration_ms": duration.Milliseconds(),
	})
	if err != nil {
		return nil, err
	}
	ev.BaseEvent = base
	return ev, nil
}

// LinksVerified records the broken links found in a run.
type LinksVerified struct {
	BaseEvent
	Broken []string `json:"broken"`
}

// NewLinksVerified creates a LinksVerified event. broken holds "source -> target" pairs.
func NewLinksVerified(runID string, broken []string) (*LinksVerified, error) {
	if broken == nil {
		broken = []string{}
	}
	ev := &LinksVerified{Broken: broken}
	base, err := newBase(runID, TypeLinksVerified, map[string]any{
		"broken_count": len(broken),
		"broken":       broken,
	})
	if err != nil {
		return nil, err
	}
	ev.BaseEvent = base
	return ev, nil
}

// GenerationCompleted is emitted when a run writes all of its files.
type GenerationCompleted struct {
	BaseEvent
	FilesGenerated int           `json:"files_generated"`
	BrokenLinks    int           `json:"broken_links"`
	Duration       time.Duration `json:"duration_ms"`
}

// NewGenerationCompleted creates a GenerationCompleted event.
func NewGenerationCompleted(runID string, filesGenerated, brokenLinks int, duration time.Duration) (*GenerationCompleted, error) {
	ev := &GenerationCompleted{FilesGenerated: filesGenerated, BrokenLinks: brokenLinks, Duration: duration}
	base, err := newBase(runID, TypeGenerationCompleted, map[string]any{
		"files_generated": filesGenerated,
		"broken_links":    brokenLinks,
		"duration_ms":     duration.Milliseconds(),
	})
	if err != nil {
		return nil, err
	}
	ev.BaseEvent = base
	return ev, nil
}

// GenerationFailed is emitted when a stage aborts a run.
type GenerationFailed struct {
	BaseEvent
	Stage string `json:"stage"`
	Error string `json:"error"`
}

// NewGenerationFailed creates a GenerationFailed event.
func NewGenerationFailed(runID, stage, errorMsg string) (*GenerationFailed, error) {
	ev := &GenerationFailed{Stage: stage, Error: errorMsg}
	base, err := newBase(runID, TypeGenerationFailed, map[string]any{
		"stage": stage,
		"error": errorMsg,
	})
	if err != nil {
		return nil, err
	}
	ev.BaseEvent = base
	return ev, nil
}
