package pipeline

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"

	"career-match/internal/domain/job"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCorpus struct {
	mu      sync.Mutex
	fetched []string
	failOn  map[string]bool
}

func (f *fakeCorpus) FetchFresh(_ context.Context, q string) ([]job.Posting, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, q)
	f.mu.Unlock()
	if f.failOn[q] {
		return nil, errors.New("upstream down")
	}
	return []job.Posting{{URL: q + "/1"}, {URL: q + "/2"}}, nil
}

func (f *fakeCorpus) Persist(_ context.Context, jobs []job.Posting) (int, error) {
	return len(jobs) - 1, nil
}

func TestIngestPipeline_Run(t *testing.T) {
	corpus := &fakeCorpus{failOn: map[string]bool{"cloud architect": true}}
	p := NewIngestPipeline(corpus, log.New(io.Discard, "", 0))

	sum, err := p.Run(context.Background(), IngestParams{
		Queries: []string{"software engineer", " Software  Engineer ", "", "data scientist", "cloud architect"},
		Workers: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, IngestSummary{TotalFetched: 4, TotalSaved: 2, QueriesProcessed: 2, QueriesFailed: 1}, sum)
	assert.ElementsMatch(t, []string{"software engineer", "data scientist", "cloud architect"}, corpus.fetched)
}

func TestIngestPipeline_CancelledContext(t *testing.T) {
	corpus := &fakeCorpus{}
	p := NewIngestPipeline(corpus, log.New(io.Discard, "", 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Run(ctx, IngestParams{Queries: []string{"a", "b"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorkerPool_RunsEveryTask(t *testing.T) {
	pool := NewWorkerPool[int](3, 0)
	pool.SetRateLimit(0)
	results := pool.Run(context.Background())

	go func() {
		defer pool.Close()
		for i := 1; i <= 10; i++ {
			pool.Submit(context.Background(), func(context.Context) (int, error) { return i, nil })
		}
	}()

	total := 0
	for r := range results {
		require.NoError(t, r.Err)
		total += r.Value
	}
	assert.Equal(t, 55, total)
}

func TestUniqueQueries(t *testing.T) {
	assert.Equal(t, []string{"Go dev", "rust"}, uniqueQueries([]string{" Go   dev", "go dev", "", "rust"}))
}
