package session

import "time"

// RevealState is the lifecycle of one transcript read-through.
type RevealState string

const (
	RevealInitializing RevealState = "initializing"
	RevealRevealing    RevealState = "revealing"
	// RevealAwaitingOptionTap is terminal for the reveal: once reached,
	// options stay shown regardless of further scrolling.
	RevealAwaitingOptionTap RevealState = "awaiting_option_tap"
)

const (
	// DefaultDwellTime is how long the final message must stay continuously
	// visible before options unlock.
	DefaultDwellTime = time.Second
	// DefaultVisibilityThreshold is the minimum fraction of the final
	// message's area that must be on screen for it to count as visible.
	DefaultVisibilityThreshold = 0.8
)

// RevealConfig tunes the dwell gate.
type RevealConfig struct {
	DwellTime           time.Duration
	VisibilityThreshold float64
}

// withDefaults fills zero values so a RevealConfig{} behaves like the
// reference behavior (1s at 80%).
func (c RevealConfig) withDefaults() RevealConfig {
	if c.DwellTime <= 0 {
		c.DwellTime = DefaultDwellTime
	}
	if c.VisibilityThreshold <= 0 {
		c.VisibilityThreshold = DefaultVisibilityThreshold
	}
	return c
}

// DwellTimer is a request for the driver to schedule a one-shot timer and
// call TimerElapsed with the token when it fires. Tokens sequence timer
// generations: a token from a canceled generation is ignored, which is what
// makes the dwell timer cancelable without carry-over.
type DwellTimer struct {
	Token    uint64
	Duration time.Duration
}

// RevealMachine governs how the scripted transcript is read. It consumes
// abstract visibility-changed and timer-elapsed events from the shell; it
// never owns a real timer itself, so tests and drivers control time.
type RevealMachine struct {
	cfg   RevealConfig
	state RevealState
	seq   uint64 // current timer generation
	armed bool   // a dwell timer for generation seq is outstanding
}

// NewRevealMachine returns a machine in Initializing for one attempt.
func NewRevealMachine(cfg RevealConfig) *RevealMachine {
	return &RevealMachine{
		cfg:   cfg.withDefaults(),
		state: RevealInitializing,
	}
}

// State returns the current reveal state.
func (m *RevealMachine) State() RevealState {
	return m.state
}

// Start moves the machine to Revealing once the transcript is rendered.
func (m *RevealMachine) Start() {
	if m.state == RevealInitializing {
		m.state = RevealRevealing
	}
}

// Reset returns the machine to Initializing and invalidates any pending
// dwell timer. Called on scenario (re)selection.
func (m *RevealMachine) Reset() {
	m.state = RevealInitializing
	m.seq++
	m.armed = false
}

// FinalMessageVisible processes a visibility observation for the final
// transcript message. When the message becomes sufficiently visible it
// returns a DwellTimer the driver must schedule; when visibility drops below
// the threshold any pending timer is invalidated and the dwell restarts from
// zero on the next sighting.
func (m *RevealMachine) FinalMessageVisible(ratio float64) (DwellTimer, bool) {
	if m.state != RevealRevealing {
		return DwellTimer{}, false
	}

	if ratio < m.cfg.VisibilityThreshold {
		if m.armed {
			// Partial dwell does not carry over.
			m.seq++
			m.armed = false
		}
		return DwellTimer{}, false
	}

	if m.armed {
		// Timer already running for an uninterrupted sighting.
		return DwellTimer{}, false
	}

	m.seq++
	m.armed = true
	return DwellTimer{Token: m.seq, Duration: m.cfg.DwellTime}, true
}

// TimerElapsed consumes a dwell timer firing. Stale tokens from canceled
// generations are ignored. Returns true when the machine transitioned to
// AwaitingOptionTap.
func (m *RevealMachine) TimerElapsed(token uint64) bool {
	if m.state != RevealRevealing || !m.armed || token != m.seq {
		return false
	}
	m.armed = false
	m.state = RevealAwaitingOptionTap
	return true
}

// EndReached reports whether the dwell gate has been satisfied.
func (m *RevealMachine) EndReached() bool {
	return m.state == RevealAwaitingOptionTap
}

// ScrollHintVisible reports whether the scroll-to-end affordance should be
// shown. Activating it is a pure view jump; it never satisfies the dwell
// requirement, so the machine has no transition for it.
func (m *RevealMachine) ScrollHintVisible() bool {
	return m.state != RevealAwaitingOptionTap
}
