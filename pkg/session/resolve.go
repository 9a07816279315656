package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/scamshield/scamshield/pkg/scenario"
)

// ErrContentMismatch indicates the selected option's correctness value has
// no matching outcome in the scenario. This is an authoring defect; the
// engine never fabricates an outcome to cover it.
var ErrContentMismatch = errors.New("no outcome matches selected option")

// ProgressRecorder is the persistence collaborator consumed by the engine.
// Implementations must be idempotent per scenario ID and must persist
// durably before returning.
type ProgressRecorder interface {
	RecordCompletion(ctx context.Context, scenarioID string, wasCorrect bool) error
}

// Resolve maps a selected option to its outcome: the first outcome in
// authored order whose correctness equals the option's. It does not touch
// progress; see Engine.Resolve for the full policy.
func Resolve(s *scenario.Scenario, selected scenario.Option) (scenario.Outcome, error) {
	out, ok := s.OutcomeFor(selected.IsCorrect)
	if !ok {
		return scenario.Outcome{}, fmt.Errorf("%w: scenario %q option %q is_correct=%t",
			ErrContentMismatch, s.ID, selected.ID, selected.IsCorrect)
	}
	return out, nil
}

// Engine is the decision resolution engine: it matches options to outcomes
// and applies the progress update policy.
type Engine struct {
	progress ProgressRecorder
}

// NewEngine creates an engine backed by the given progress recorder.
func NewEngine(progress ProgressRecorder) *Engine {
	return &Engine{progress: progress}
}

// Resolve matches the selected option to its outcome and records the
// completion exactly once per selection. Resolution failures
// (ErrContentMismatch) are returned with no progress side effect. A
// persistence failure does not invalidate the resolved outcome; it is
// returned as saveErr so the shell can warn that progress may not be
// retained while still showing the outcome.
func (e *Engine) Resolve(ctx context.Context, s *scenario.Scenario, selected scenario.Option) (out scenario.Outcome, saveErr error, err error) {
	out, err = Resolve(s, selected)
	if err != nil {
		return scenario.Outcome{}, nil, err
	}
	if e.progress != nil {
		saveErr = e.progress.RecordCompletion(ctx, s.ID, out.IsCorrect)
	}
	return out, saveErr, nil
}
