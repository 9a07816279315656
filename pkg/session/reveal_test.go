package session

import (
	"testing"
	"time"
)

func TestRevealMachine_Lifecycle(t *testing.T) {
	m := NewRevealMachine(RevealConfig{})

	if m.State() != RevealInitializing {
		t.Fatalf("Expected initializing, got %s", m.State())
	}

	m.Start()
	if m.State() != RevealRevealing {
		t.Fatalf("Expected revealing after start, got %s", m.State())
	}
	if m.EndReached() {
		t.Error("End must not be reached before the dwell gate")
	}
	if !m.ScrollHintVisible() {
		t.Error("Scroll hint should be visible before end is reached")
	}
}

func TestRevealMachine_DwellGate(t *testing.T) {
	m := NewRevealMachine(RevealConfig{DwellTime: time.Second, VisibilityThreshold: 0.8})
	m.Start()

	// Below the visibility threshold no timer is armed.
	if _, armed := m.FinalMessageVisible(0.5); armed {
		t.Error("Visibility below threshold must not arm a timer")
	}

	// At threshold a timer is requested.
	timer, armed := m.FinalMessageVisible(0.8)
	if !armed {
		t.Fatal("Expected a dwell timer at threshold visibility")
	}
	if timer.Duration != time.Second {
		t.Errorf("Expected 1s dwell, got %v", timer.Duration)
	}

	// A repeat sighting while armed does not restart the timer.
	if _, again := m.FinalMessageVisible(0.9); again {
		t.Error("Uninterrupted visibility must not re-arm the timer")
	}

	if !m.TimerElapsed(timer.Token) {
		t.Fatal("Expected transition on timer elapse")
	}
	if m.State() != RevealAwaitingOptionTap {
		t.Errorf("Expected awaiting_option_tap, got %s", m.State())
	}
}

func TestRevealMachine_PartialDwellDoesNotCarryOver(t *testing.T) {
	m := NewRevealMachine(RevealConfig{})
	m.Start()

	// Final message becomes visible; a timer for generation 1 is armed.
	first, armed := m.FinalMessageVisible(0.9)
	if !armed {
		t.Fatal("Expected a dwell timer")
	}

	// At 0.9s of the required 1.0s the message scrolls out of view.
	if _, rearm := m.FinalMessageVisible(0.3); rearm {
		t.Error("Losing visibility must not arm a timer")
	}

	// The original timer fires late; its generation was canceled.
	if m.TimerElapsed(first.Token) {
		t.Fatal("Stale timer token must be ignored")
	}
	if m.EndReached() {
		t.Fatal("Interrupted dwell must not satisfy the gate")
	}

	// Regaining visibility starts a fresh, full dwell.
	second, armed := m.FinalMessageVisible(0.85)
	if !armed {
		t.Fatal("Expected a fresh dwell timer after regaining visibility")
	}
	if second.Token == first.Token {
		t.Error("Fresh dwell must use a new timer generation")
	}
	if second.Duration != DefaultDwellTime {
		t.Errorf("Fresh dwell must require the full duration, got %v", second.Duration)
	}

	if !m.TimerElapsed(second.Token) {
		t.Fatal("Expected transition on uninterrupted dwell")
	}
}

func TestRevealMachine_OneWayTransition(t *testing.T) {
	m := NewRevealMachine(RevealConfig{})
	m.Start()

	timer, _ := m.FinalMessageVisible(1.0)
	m.TimerElapsed(timer.Token)

	// Scrolling away after the gate is satisfied changes nothing.
	if _, armed := m.FinalMessageVisible(0.0); armed {
		t.Error("Visibility events after the gate must be ignored")
	}
	if !m.EndReached() {
		t.Error("Options remain shown once revealed")
	}
	if m.ScrollHintVisible() {
		t.Error("Scroll hint hides once the end is reached")
	}
}

func TestRevealMachine_Reset(t *testing.T) {
	m := NewRevealMachine(RevealConfig{})
	m.Start()

	timer, _ := m.FinalMessageVisible(1.0)
	m.Reset()

	if m.State() != RevealInitializing {
		t.Errorf("Expected initializing after reset, got %s", m.State())
	}
	if m.TimerElapsed(timer.Token) {
		t.Error("Reset must invalidate pending timers")
	}

	// The machine is reusable after a reset.
	m.Start()
	fresh, armed := m.FinalMessageVisible(0.9)
	if !armed {
		t.Fatal("Expected a timer after restart")
	}
	if !m.TimerElapsed(fresh.Token) {
		t.Error("Expected transition after restart")
	}
}

func TestRevealMachine_NoEventsBeforeStart(t *testing.T) {
	m := NewRevealMachine(RevealConfig{})

	if _, armed := m.FinalMessageVisible(1.0); armed {
		t.Error("Visibility events before start must be ignored")
	}
	if m.TimerElapsed(1) {
		t.Error("Timer events before start must be ignored")
	}
}
