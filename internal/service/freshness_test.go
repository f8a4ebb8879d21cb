package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"career-match/internal/domain/job"

	"github.com/stretchr/testify/assert"
)

type fakeRefreshable struct {
	latest   time.Time
	fetched  atomic.Int32
	persists atomic.Int32
}

func (f *fakeRefreshable) LatestFetchedAt(context.Context, string) (time.Time, error) {
	return f.latest, nil
}

func (f *fakeRefreshable) FetchFresh(context.Context, string) ([]job.Posting, error) {
	f.fetched.Add(1)
	return []job.Posting{{URL: "u"}}, nil
}

func (f *fakeRefreshable) Persist(_ context.Context, jobs []job.Posting) (int, error) {
	f.persists.Add(1)
	return len(jobs), nil
}

type fakeLock struct{ held map[string]bool }

func (l *fakeLock) SetIfNotExists(_ context.Context, key, _ string, _ time.Duration) (bool, error) {
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

func TestEnsureFresh_FreshDataSkips(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	corpus := &fakeRefreshable{latest: now.Add(-5 * time.Minute)}
	s := NewFreshnessService(corpus, nil, quietLogger(), 30)
	s.now = func() time.Time { return now }

	assert.False(t, s.EnsureFresh(context.Background(), "golang"))
	s.Wait()
	assert.Zero(t, corpus.fetched.Load())
}

func TestEnsureFresh_StaleRefreshesOnceUnderLock(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	corpus := &fakeRefreshable{latest: now.Add(-2 * time.Hour)}
	lock := &fakeLock{held: map[string]bool{}}
	s := NewFreshnessService(corpus, lock, quietLogger(), 30)
	s.now = func() time.Time { return now }

	assert.True(t, s.EnsureFresh(context.Background(), " GoLang "))
	assert.False(t, s.EnsureFresh(context.Background(), "golang"))
	s.Wait()

	assert.Equal(t, int32(1), corpus.fetched.Load())
	assert.Equal(t, int32(1), corpus.persists.Load())
}

func TestEnsureFresh_NeverFetched(t *testing.T) {
	corpus := &fakeRefreshable{}
	s := NewFreshnessService(corpus, nil, quietLogger(), 0)

	assert.True(t, s.EnsureFresh(context.Background(), "rust"))
	assert.False(t, s.EnsureFresh(context.Background(), "  "))
	s.Wait()
	assert.Equal(t, int32(1), corpus.fetched.Load())
}
