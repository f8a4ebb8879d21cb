package pipeline

import (
	"context"
	"log"
	"strings"
	"time"

	"career-match/internal/domain/job"
)

type ingestCorpus interface {
	FetchFresh(ctx context.Context, query string) ([]job.Posting, error)
	Persist(ctx context.Context, jobs []job.Posting) (int, error)
}

type IngestParams struct {
	Queries []string
	Workers int
	// QueriesPerSecond paces upstream calls; zero means unpaced.
	QueriesPerSecond float64
}

type IngestSummary struct {
	TotalFetched     int `json:"total_fetched"`
	TotalSaved       int `json:"total_saved"`
	QueriesProcessed int `json:"queries_processed"`
	QueriesFailed    int `json:"queries_failed"`
}

type queryOutcome struct {
	query   string
	fetched int
	saved   int
}

// IngestPipeline fetches each query through the job corpus and stores the
// results. A failing query is logged and counted, never fatal.
type IngestPipeline struct {
	corpus ingestCorpus
	log    *log.Logger
}

func NewIngestPipeline(corpus ingestCorpus, logger *log.Logger) *IngestPipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &IngestPipeline{corpus: corpus, log: logger}
}

func (p *IngestPipeline) Run(ctx context.Context, params IngestParams) (IngestSummary, error) {
	start := time.Now()
	queries := uniqueQueries(params.Queries)
	workers := params.Workers
	if workers <= 0 {
		workers = 3
	}

	p.log.Printf("pipeline=ingest status=started queries=%d workers=%d", len(queries), workers)

	pool := NewWorkerPool[queryOutcome](workers, workers*2)
	pool.SetRateLimit(params.QueriesPerSecond)
	results := pool.Run(ctx)

	go func() {
		defer pool.Close()
		for _, q := range queries {
			ok := pool.Submit(ctx, func(ctx context.Context) (queryOutcome, error) {
				return p.ingestQuery(ctx, q)
			})
			if !ok {
				return
			}
		}
	}()

	var sum IngestSummary
	for r := range results {
		if r.Err != nil {
			sum.QueriesFailed++
			continue
		}
		sum.QueriesProcessed++
		sum.TotalFetched += r.Value.fetched
		sum.TotalSaved += r.Value.saved
	}

	p.log.Printf("pipeline=ingest status=finished processed=%d failed=%d fetched=%d saved=%d duration=%s",
		sum.QueriesProcessed, sum.QueriesFailed, sum.TotalFetched, sum.TotalSaved, time.Since(start))
	return sum, ctx.Err()
}

func (p *IngestPipeline) ingestQuery(ctx context.Context, q string) (queryOutcome, error) {
	jobs, err := p.corpus.FetchFresh(ctx, q)
	if err != nil {
		p.log.Printf("pipeline=ingest status=error query=%q step=fetch err=%v", q, err)
		return queryOutcome{}, err
	}
	saved, err := p.corpus.Persist(ctx, jobs)
	if err != nil {
		p.log.Printf("pipeline=ingest status=error query=%q step=persist err=%v", q, err)
		return queryOutcome{}, err
	}
	p.log.Printf("pipeline=ingest status=ok query=%q fetched=%d saved=%d", q, len(jobs), saved)
	return queryOutcome{query: q, fetched: len(jobs), saved: saved}, nil
}

func uniqueQueries(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, q := range in {
		q = strings.Join(strings.Fields(q), " ")
		if q == "" {
			continue
		}
		k := strings.ToLower(q)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, q)
	}
	return out
}
