package pipeline

import (
	"context"
	"sync"
	"time"
)

type Status struct {
	Running    bool           `json:"running"`
	StartedAt  *time.Time     `json:"started_at,omitempty"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
	Last       *IngestSummary `json:"last_summary,omitempty"`
	LastError  string         `json:"last_error,omitempty"`
}

type ingestRunner interface {
	Run(ctx context.Context, params IngestParams) (IngestSummary, error)
}

// Tracker runs at most one ingest at a time in the background and remembers
// the outcome of the last run.
type Tracker struct {
	runner  ingestRunner
	timeout time.Duration

	mu     sync.Mutex
	status Status
	wg     sync.WaitGroup
}

func NewTracker(runner ingestRunner, timeout time.Duration) *Tracker {
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &Tracker{runner: runner, timeout: timeout}
}

// Trigger starts a run and reports false when one is already in progress.
func (t *Tracker) Trigger(params IngestParams) bool {
	t.mu.Lock()
	if t.status.Running {
		t.mu.Unlock()
		return false
	}
	now := time.Now().UTC()
	t.status.Running = true
	t.status.StartedAt = &now
	t.status.FinishedAt = nil
	t.mu.Unlock()

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()

		sum, err := t.runner.Run(ctx, params)

		t.mu.Lock()
		defer t.mu.Unlock()
		done := time.Now().UTC()
		t.status.Running = false
		t.status.FinishedAt = &done
		t.status.Last = &sum
		t.status.LastError = ""
		if err != nil {
			t.status.LastError = err.Error()
		}
	}()
	return true
}

func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Wait blocks until the current run, if any, has finished.
func (t *Tracker) Wait() {
	t.wg.Wait()
}
