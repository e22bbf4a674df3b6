package generator

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/webdoc/internal/logfields"
	"git.home.luguber.info/inful/webdoc/internal/metrics"
)

// Stage is a discrete unit of work in a generation run.
type Stage func(ctx context.Context, rs *runState) error

// StageName is a strongly-typed identifier for a generation stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StageLoadTemplate  StageName = "load_template"
	StageBuildContext  StageName = "build_context"
	StagePrepareAssets StageName = "prepare_assets"
	StageRender        StageName = "render"
	StageConvert       StageName = "convert"
	StageVerifyLinks   StageName = "verify_links"
	StageWriteFiles    StageName = "write_files"
)

// StageErrorKind classifies the outcome of a stage.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Run must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying the stage and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}

func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

func resultLabel(k StageErrorKind) metrics.ResultLabel {
	switch k {
	case StageErrorWarning:
		return metrics.ResultWarning
	case StageErrorCanceled:
		return metrics.ResultCanceled
	default:
		return metrics.ResultFatal
	}
}

// stageDef pairs a stage name with its executing function.
type stageDef struct {
	Name StageName
	Fn   Stage
}

// pipeline is a fluent builder for ordered stage definitions.
type pipeline struct{ defs []stageDef }

func newPipeline() *pipeline { return &pipeline{defs: make([]stageDef, 0, 8)} }

func (p *pipeline) add(name StageName, fn Stage) *pipeline {
	p.defs = append(p.defs, stageDef{Name: name, Fn: fn})
	return p
}

func (p *pipeline) addIf(cond bool, name StageName, fn Stage) *pipeline {
	if cond {
		p.add(name, fn)
	}
	return p
}

// classify normalizes a raw stage error: anything that is not a StageError is fatal.
func classify(stage StageName, err error) *StageError {
	if err == nil {
		return nil
	}
	if se, ok := err.(*StageError); ok {
		return se
	}
	return newFatalStageError(stage, err)
}

// runStages executes stages in order, recording timing and stopping on the
// first fatal error or cancellation.
func (g *Generator) runStages(ctx context.Context, rs *runState, stages []stageDef) *StageError {
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			se := newCanceledStageError(st.Name, err)
			g.recordStage(ctx, rs, st.Name, 0, se)
			return se
		}

		t0 := time.Now()
		err := st.Fn(ctx, rs)
		dur := time.Since(t0)

		se := classify(st.Name, err)
		g.recordStage(ctx, rs, st.Name, dur, se)

		if se == nil || se.Kind == StageErrorWarning {
			continue
		}
		return se
	}
	return nil
}

func (g *Generator) recordStage(ctx context.Context, rs *runState, name StageName, dur time.Duration, se *StageError) {
	result := metrics.ResultSuccess
	if se != nil {
		result = resultLabel(se.Kind)
	}

	rs.stageDurations[name] = dur
	g.recorder.ObserveStageDuration(string(name), dur)
	g.recorder.IncStageResult(string(name), result)

	attrs := []any{
		logfields.RunID(rs.runID),
		logfields.Stage(string(name)),
		logfields.DurationMS(float64(dur.Microseconds()) / 1000),
	}
	switch {
	case se == nil:
		g.logger.Debug("Stage completed", attrs...)
	case se.Kind == StageErrorWarning:
		g.logger.Warn("Stage completed with warnings", append(attrs, logfields.Error(se.Err))...)
	default:
		g.logger.Error("Stage failed", append(attrs, logfields.Error(se.Err))...)
	}

	g.emit("stage", func(s EventSink) error {
		return s.StageCompleted(context.WithoutCancel(ctx), rs.runID, string(name), string(result), dur)
	})
}
