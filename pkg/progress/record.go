package progress

import "math"

// DefaultAward is the score awarded for the first correct completion of a
// scenario. Configurable via config.PointsPerScenario.
const DefaultAward = 20

// Record is the durable per-device summary of completed scenarios and
// cumulative score. It is the only state that outlives a single attempt.
type Record struct {
	Completed []string `json:"completed"` // scenario IDs, unique membership
	Score     int      `json:"score"`
}

// NewRecord returns an empty record, the state of a device on first launch.
func NewRecord() *Record {
	return &Record{Completed: []string{}}
}

// IsCompleted reports whether the scenario ID is in the completed set.
func (r *Record) IsCompleted(scenarioID string) bool {
	for _, id := range r.Completed {
		if id == scenarioID {
			return true
		}
	}
	return false
}

// RecordCompletion marks a scenario completed and awards points when the
// first completion was correct. It is idempotent per scenario ID: a second
// call for the same ID changes nothing, regardless of correctness. Returns
// true when the record was changed.
func (r *Record) RecordCompletion(scenarioID string, wasCorrect bool, award int) bool {
	if r.IsCompleted(scenarioID) {
		return false
	}
	r.Completed = append(r.Completed, scenarioID)
	if wasCorrect {
		r.Score += award
	}
	return true
}

// Reset clears the completed set and score unconditionally.
func (r *Record) Reset() {
	r.Completed = []string{}
	r.Score = 0
}

// Normalize repairs a record loaded from persistence: nil slices become
// empty, duplicate IDs are dropped, negative scores clamp to zero. Malformed
// persisted data is treated as absent rather than fatal, and this keeps a
// partially damaged record usable.
func (r *Record) Normalize() {
	if r.Completed == nil {
		r.Completed = []string{}
	}
	seen := make(map[string]struct{}, len(r.Completed))
	deduped := r.Completed[:0]
	for _, id := range r.Completed {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}
	r.Completed = deduped
	if r.Score < 0 {
		r.Score = 0
	}
}

// Percentage returns the completion percentage rounded to the nearest
// integer, defined as 0 when total is 0.
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// Summary is the read model exposed to the presentation shell.
type Summary struct {
	CompletedCount int `json:"completed_count"`
	TotalCount     int `json:"total_count"`
	Percentage     int `json:"percentage"`
	Score          int `json:"score"`
}

// Summarize builds a Summary for a record against the known scenario total.
func (r *Record) Summarize(totalScenarios int) Summary {
	return Summary{
		CompletedCount: len(r.Completed),
		TotalCount:     totalScenarios,
		Percentage:     Percentage(len(r.Completed), totalScenarios),
		Score:          r.Score,
	}
}
