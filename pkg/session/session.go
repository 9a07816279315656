package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/scamshield/scamshield/pkg/scenario"
)

// Stage is the lifecycle of one scenario attempt as seen by the shell.
type Stage string

const (
	StageViewing      Stage = "viewing"       // transcript reveal in progress
	StageOptionsShown Stage = "options_shown" // dwell satisfied, awaiting a tap
	StageOutcomeShown Stage = "outcome_shown"
	StageExited       Stage = "exited"
)

var (
	// ErrInvalidStage is returned when a shell command arrives in a stage
	// that does not permit it, e.g. selecting an option mid-reveal.
	ErrInvalidStage = errors.New("operation not permitted in current stage")
	// ErrRetryNotAllowed is returned for a retry after a correct outcome.
	ErrRetryNotAllowed = errors.New("retry is only available after an incorrect outcome")
	// ErrNoScenario is returned when starting an attempt without a scenario.
	ErrNoScenario = errors.New("no scenario provided")
	// ErrOptionNotFound is returned when the tapped option ID is not part
	// of the scenario.
	ErrOptionNotFound = errors.New("option not found in scenario")
)

// Controller orchestrates one scenario attempt: it drives the reveal
// machine, feeds the selection into the decision engine and decides the next
// stage. All attempt-scoped state (reveal position, selection, shown
// outcome) lives here and is discarded on exit.
type Controller struct {
	engine    *Engine
	revealCfg RevealConfig

	scn      *scenario.Scenario
	reveal   *RevealMachine
	stage    Stage
	selected *scenario.Option
	outcome  *scenario.Outcome
	saveErr  error
}

// NewController creates a session controller. The engine carries the
// progress update policy; revealCfg tunes the dwell gate.
func NewController(engine *Engine, revealCfg RevealConfig) *Controller {
	return &Controller{
		engine:    engine,
		revealCfg: revealCfg,
		stage:     StageExited,
	}
}

// StartAttempt begins a fresh attempt at the given scenario. Any prior
// attempt state is discarded; the reveal machine restarts at Initializing.
func (c *Controller) StartAttempt(s *scenario.Scenario) error {
	if s == nil {
		return ErrNoScenario
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("cannot start attempt: %w", err)
	}
	c.scn = s
	c.reveal = NewRevealMachine(c.revealCfg)
	c.reveal.Start()
	c.stage = StageViewing
	c.selected = nil
	c.outcome = nil
	c.saveErr = nil
	return nil
}

// Stage returns the current attempt stage.
func (c *Controller) Stage() Stage {
	return c.stage
}

// Scenario returns the scenario under attempt, nil after exit.
func (c *Controller) Scenario() *scenario.Scenario {
	return c.scn
}

// Reveal exposes the reveal machine for the rendering shell. Nil outside an
// attempt.
func (c *Controller) Reveal() *RevealMachine {
	return c.reveal
}

// FinalMessageVisible forwards a visibility observation to the reveal
// machine while viewing. A returned DwellTimer must be scheduled by the
// shell, which calls TimerElapsed when it fires.
func (c *Controller) FinalMessageVisible(ratio float64) (DwellTimer, bool) {
	if c.stage != StageViewing {
		return DwellTimer{}, false
	}
	return c.reveal.FinalMessageVisible(ratio)
}

// TimerElapsed forwards a dwell timer firing. When the dwell gate is
// satisfied the attempt advances to OptionsShown.
func (c *Controller) TimerElapsed(token uint64) bool {
	if c.stage != StageViewing {
		return false
	}
	if c.reveal.TimerElapsed(token) {
		c.stage = StageOptionsShown
		return true
	}
	return false
}

// Options returns the selectable decision options. Empty until the dwell
// gate has been satisfied.
func (c *Controller) Options() []scenario.Option {
	if c.stage != StageOptionsShown {
		return nil
	}
	return c.scn.Options
}

// SelectOption resolves the tapped option. On success the attempt advances
// to OutcomeShown. On ErrContentMismatch the attempt stays in OptionsShown
// and no progress is recorded; the shell should present a failure state and
// allow exit. A persistence failure does not block the attempt; it is kept
// in SaveWarning for the shell.
func (c *Controller) SelectOption(ctx context.Context, optionID string) (scenario.Outcome, error) {
	if c.stage != StageOptionsShown {
		return scenario.Outcome{}, ErrInvalidStage
	}

	var selected *scenario.Option
	for i := range c.scn.Options {
		if c.scn.Options[i].ID == optionID {
			selected = &c.scn.Options[i]
			break
		}
	}
	if selected == nil {
		return scenario.Outcome{}, fmt.Errorf("%w: %q", ErrOptionNotFound, optionID)
	}

	out, saveErr, err := c.engine.Resolve(ctx, c.scn, *selected)
	if err != nil {
		return scenario.Outcome{}, err
	}

	c.selected = selected
	c.outcome = &out
	c.saveErr = saveErr
	c.stage = StageOutcomeShown
	return out, nil
}

// Outcome returns the outcome shown for the current attempt, if any.
func (c *Controller) Outcome() (scenario.Outcome, bool) {
	if c.outcome == nil {
		return scenario.Outcome{}, false
	}
	return *c.outcome, true
}

// SaveWarning returns the persistence failure from the last resolution, if
// any. The attempt advanced regardless; the shell may warn that progress was
// not retained.
func (c *Controller) SaveWarning() error {
	return c.saveErr
}

// CanRetry reports whether a retry is offered. Only an incorrect outcome
// permits one.
func (c *Controller) CanRetry() bool {
	return c.stage == StageOutcomeShown && c.outcome != nil && !c.outcome.IsCorrect
}

// Retry returns to OptionsShown with the selection cleared. The transcript
// state is untouched: the user does not re-read the conversation.
func (c *Controller) Retry() error {
	if c.stage != StageOutcomeShown {
		return ErrInvalidStage
	}
	if !c.CanRetry() {
		return ErrRetryNotAllowed
	}
	c.selected = nil
	c.outcome = nil
	c.saveErr = nil
	c.stage = StageOptionsShown
	return nil
}

// Exit ends the attempt and discards all attempt-scoped state. Permitted
// from any stage; re-entering the same scenario later restarts at
// Initializing.
func (c *Controller) Exit() {
	c.scn = nil
	c.reveal = nil
	c.selected = nil
	c.outcome = nil
	c.saveErr = nil
	c.stage = StageExited
}
