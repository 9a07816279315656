package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/scamshield/scamshield/internal/storage"
	"github.com/scamshield/scamshield/pkg/progress"
	"github.com/scamshield/scamshield/pkg/session"
)

// ScenarioCounter reports the total number of scenarios, the denominator for
// progress percentages. Satisfied by content.Repository.
type ScenarioCounter interface {
	TotalScenarios() int
}

// ProgressService applies the progress update policy on top of a
// ProgressStore: idempotent completion recording, fixed award on first
// correct completion, durable save before returning. Load failures degrade
// to an empty record; save failures propagate so callers can warn the user.
type ProgressService struct {
	store  storage.ProgressStore
	total  ScenarioCounter
	award  int
	logger *slog.Logger

	// Serializes load-modify-save per process. The engine itself is
	// single-threaded, but the HTTP shell is not.
	mu sync.Mutex
}

// NewProgressService creates a progress service. award is the score granted
// for the first correct completion of a scenario.
func NewProgressService(store storage.ProgressStore, total ScenarioCounter, award int, logger *slog.Logger) *ProgressService {
	return &ProgressService{
		store:  store,
		total:  total,
		award:  award,
		logger: logger,
	}
}

// load returns the device's record, degrading to an empty record when none
// exists or loading fails.
func (s *ProgressService) load(ctx context.Context, deviceID string) *progress.Record {
	rec, err := s.store.LoadProgress(ctx, deviceID)
	if err != nil {
		s.logger.Warn("Progress load failed, starting from empty record",
			"device_id", deviceID, "error", err)
		return progress.NewRecord()
	}
	if rec == nil {
		return progress.NewRecord()
	}
	return rec
}

// RecordCompletion marks the scenario completed for the device and persists
// the record before returning. Idempotent per scenario ID: repeat calls are
// no-ops and skip the save entirely.
func (s *ProgressService) RecordCompletion(ctx context.Context, deviceID, scenarioID string, wasCorrect bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.load(ctx, deviceID)
	if !rec.RecordCompletion(scenarioID, wasCorrect, s.award) {
		return nil // already completed, nothing to persist
	}
	if err := s.store.SaveProgress(ctx, deviceID, rec); err != nil {
		return fmt.Errorf("progress may not be retained: %w", err)
	}
	return nil
}

// IsCompleted reports whether the device has completed the scenario.
func (s *ProgressService) IsCompleted(ctx context.Context, deviceID, scenarioID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, deviceID).IsCompleted(scenarioID)
}

// Summary returns the device's progress summary against the current content
// set.
func (s *ProgressService) Summary(ctx context.Context, deviceID string) progress.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, deviceID).Summarize(s.total.TotalScenarios())
}

// Reset clears the device's completed set and score unconditionally.
func (s *ProgressService) Reset(ctx context.Context, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteProgress(ctx, deviceID); err != nil {
		return fmt.Errorf("failed to reset progress: %w", err)
	}
	return nil
}

// ForDevice binds the service to one device, yielding the recorder consumed
// by the session engine.
func (s *ProgressService) ForDevice(deviceID string) session.ProgressRecorder {
	return &deviceRecorder{svc: s, deviceID: deviceID}
}

type deviceRecorder struct {
	svc      *ProgressService
	deviceID string
}

func (d *deviceRecorder) RecordCompletion(ctx context.Context, scenarioID string, wasCorrect bool) error {
	return d.svc.RecordCompletion(ctx, d.deviceID, scenarioID, wasCorrect)
}
