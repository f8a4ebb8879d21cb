package usecase

import (
	"context"
	"log"
	"sort"

	"career-match/internal/domain/job"
	"career-match/internal/domain/matching"
	"career-match/internal/domain/skill"
	"career-match/internal/infrastructure/llm"

	"golang.org/x/sync/errgroup"
)

const (
	defaultBatchSize   = 10
	defaultMaxEnhanced = 20
)

type batchMatcher interface {
	MatchBatch(ctx context.Context, skillNames []string, jobs []job.Posting) llm.Result[[]llm.BatchMatch]
}

// Ranker scores candidate postings for a skill set, preferring the LLM
// matcher and falling back to matching.Score.
type Ranker struct {
	matcher     batchMatcher
	batchSize   int
	maxEnhanced int
	concurrency int
	logger      *log.Logger
}

func NewRanker(matcher batchMatcher, concurrency int, logger *log.Logger) *Ranker {
	if logger == nil {
		logger = log.Default()
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Ranker{
		matcher:     matcher,
		batchSize:   defaultBatchSize,
		maxEnhanced: defaultMaxEnhanced,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Recommend returns at most limit results sorted by score, highest first,
// keeping candidate order on ties. Matcher failures are logged and never
// returned.
func (r *Ranker) Recommend(ctx context.Context, userSkills []skill.Skill, jobs []job.Posting, limit int, useEnhanced bool) ([]matching.Result, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	if jobs == nil {
		return nil, ErrNilJobs
	}
	if limit == 0 || len(jobs) == 0 {
		return []matching.Result{}, nil
	}

	names := skill.Names(userSkills)

	var results []matching.Result
	if useEnhanced && r.matcher != nil {
		results = r.enhanced(ctx, names, jobs)
	}
	if len(results) == 0 {
		results = make([]matching.Result, 0, len(jobs))
		for _, p := range jobs {
			results = append(results, matching.Score(names, p))
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// enhanced sends the first maxEnhanced jobs in batches. Each batch writes
// into its own slot, so the merged order matches sequential processing.
func (r *Ranker) enhanced(ctx context.Context, names []string, jobs []job.Posting) []matching.Result {
	if len(jobs) > r.maxEnhanced {
		jobs = jobs[:r.maxEnhanced]
	}

	var batches [][]job.Posting
	for start := 0; start < len(jobs); start += r.batchSize {
		end := start + r.batchSize
		if end > len(jobs) {
			end = len(jobs)
		}
		batches = append(batches, jobs[start:end])
	}

	slots := make([][]matching.Result, len(batches))
	g := new(errgroup.Group)
	g.SetLimit(r.concurrency)
	for i, batch := range batches {
		if ctx.Err() != nil {
			r.logger.Printf("[Ranker] batch=%d status=skipped reason=%v", i, ctx.Err())
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				r.logger.Printf("[Ranker] batch=%d status=skipped reason=%v", i, ctx.Err())
				return nil
			}
			res := r.matcher.MatchBatch(ctx, names, batch)
			if !res.OK() {
				r.logger.Printf("[Ranker] batch=%d jobs=%d status=failed err=%v", i, len(batch), res.Err)
				return nil
			}
			slots[i] = toResults(batch, res.Value)
			r.logger.Printf("[Ranker] batch=%d jobs=%d status=ok results=%d", i, len(batch), len(slots[i]))
			return nil
		})
	}
	_ = g.Wait()

	out := make([]matching.Result, 0, len(jobs))
	for _, s := range slots {
		out = append(out, s...)
	}
	return out
}

func toResults(batch []job.Posting, matches []llm.BatchMatch) []matching.Result {
	out := make([]matching.Result, 0, len(matches))
	for _, m := range matches {
		if m.Index < 0 || m.Index >= len(batch) {
			continue
		}
		out = append(out, matching.Result{
			Job:            batch[m.Index],
			MatchScore:     matching.ClampScore(m.Score),
			MatchingSkills: nonNil(m.MatchingSkills),
			MissingSkills:  nonNil(m.MissingSkills),
			Explanation:    m.Explanation,
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
