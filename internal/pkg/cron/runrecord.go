package cron

import (
	"sync"
	"time"
)

// RunRecord is the reconciler's last-run state. It replaces the ambient
// counters the cron process used to keep: a single supervised value
// with a read API.
type RunRecord struct {
	LastRunAt   *time.Time `json:"last_run_at,omitempty"`
	LastSuccess bool       `json:"last_success"`
	LastMessage string     `json:"last_message,omitempty"`
	RunCount    int        `json:"run_count"`
	MarkedCount int        `json:"marked_count"`
}

// RunRecorder guards a RunRecord for concurrent writers (the job) and
// readers (the status endpoint).
type RunRecorder struct {
	mu     sync.RWMutex
	record RunRecord
}

func NewRunRecorder() *RunRecorder {
	return &RunRecorder{}
}

// Record stores the outcome of one sweep.
func (r *RunRecorder) Record(ranAt time.Time, success bool, message string, marked int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.record.LastRunAt = &ranAt
	r.record.LastSuccess = success
	r.record.LastMessage = message
	r.record.RunCount++
	r.record.MarkedCount = marked
}

// Snapshot returns a copy of the current record.
func (r *RunRecorder) Snapshot() RunRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.record
}
