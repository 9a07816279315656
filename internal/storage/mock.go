package storage

import (
	"context"
	"errors"

	"github.com/scamshield/scamshield/pkg/progress"
)

// MockProgressStore is an in-memory ProgressStore for tests.
type MockProgressStore struct {
	records map[string]*progress.Record

	// FailSaves makes every SaveProgress call fail, for exercising the
	// save-failure path.
	FailSaves bool
	SaveCalls int
	// PingErr is returned by Ping when set.
	PingErr error
}

var _ ProgressStore = (*MockProgressStore)(nil)

func NewMockProgressStore() *MockProgressStore {
	return &MockProgressStore{records: make(map[string]*progress.Record)}
}

func (m *MockProgressStore) Ping(ctx context.Context) error { return m.PingErr }

func (m *MockProgressStore) LoadProgress(ctx context.Context, deviceID string) (*progress.Record, error) {
	rec, ok := m.records[deviceID]
	if !ok {
		return nil, nil
	}
	// Copy so callers cannot mutate the stored record in place.
	cp := *rec
	cp.Completed = append([]string{}, rec.Completed...)
	return &cp, nil
}

func (m *MockProgressStore) SaveProgress(ctx context.Context, deviceID string, rec *progress.Record) error {
	m.SaveCalls++
	if m.FailSaves {
		return errors.New("mock save failure")
	}
	cp := *rec
	cp.Completed = append([]string{}, rec.Completed...)
	m.records[deviceID] = &cp
	return nil
}

func (m *MockProgressStore) DeleteProgress(ctx context.Context, deviceID string) error {
	delete(m.records, deviceID)
	return nil
}

func (m *MockProgressStore) Close() error { return nil }
