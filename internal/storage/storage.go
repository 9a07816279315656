package storage

import (
	"context"

	"github.com/scamshield/scamshield/pkg/progress"
)

// ProgressStore persists per-device progress records. Implementations must
// make SaveProgress durable before returning; LoadProgress returns nil for a
// device with no record, and treats malformed persisted data as absent
// rather than failing.
type ProgressStore interface {
	// Ping tests the store connection
	Ping(ctx context.Context) error

	// LoadProgress retrieves the record for a device.
	// Returns nil if no record exists.
	LoadProgress(ctx context.Context, deviceID string) (*progress.Record, error)

	// SaveProgress durably stores the record for a device.
	SaveProgress(ctx context.Context, deviceID string, rec *progress.Record) error

	// DeleteProgress removes the record for a device.
	DeleteProgress(ctx context.Context, deviceID string) error

	// Close closes the store connection
	Close() error
}
