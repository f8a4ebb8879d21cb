package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"career-match/internal/domain/job"
	"career-match/internal/repository"
	"career-match/internal/search"

	"github.com/google/uuid"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
	minSearchResults   = 5
)

type searchCorpus interface {
	Search(ctx context.Context, query string, limit int) ([]job.Posting, error)
	List(ctx context.Context, limit, offset int) ([]job.Posting, error)
	Get(ctx context.Context, id uuid.UUID) (job.Posting, error)
}

type freshnessEnsurer interface {
	EnsureFresh(ctx context.Context, query string) bool
}

type JobSearchParams struct {
	Query string
	Limit int
}

type JobSearchUsecase interface {
	Search(ctx context.Context, params JobSearchParams) ([]job.Posting, error)
	List(ctx context.Context, limit, offset int) ([]job.Posting, error)
	Get(ctx context.Context, id uuid.UUID) (job.Posting, error)
}

type JobSearch struct {
	corpus    searchCorpus
	freshness freshnessEnsurer
	cache     SearchCache
	logger    *log.Logger
	now       func() time.Time
	lockWait  time.Duration
}

func NewJobSearchUsecase(corpus searchCorpus, freshness freshnessEnsurer, cache SearchCache, logger *log.Logger) *JobSearch {
	if logger == nil {
		logger = log.Default()
	}
	return &JobSearch{
		corpus:    corpus,
		freshness: freshness,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
		lockWait:  300 * time.Millisecond,
	}
}

// Search expands the query with synonyms, re-ranks the matches and caches
// the page. Concurrent misses on the same key wait briefly for the first
// request to fill the cache.
func (u *JobSearch) Search(ctx context.Context, params JobSearchParams) ([]job.Posting, error) {
	limit := params.Limit
	if limit == 0 {
		limit = defaultSearchLimit
	}
	if limit < 0 || limit > maxSearchLimit {
		return nil, ErrInvalidInput
	}
	params.Limit = limit

	qctx := search.ProcessQuery(params.Query)
	if qctx.Normalized == "" {
		return nil, ErrInvalidInput
	}

	if u.freshness != nil {
		u.freshness.EnsureFresh(ctx, qctx.Normalized)
	}

	cacheKey := JobsSearchCacheKey(params)
	lockKey := JobsSearchLockKey(cacheKey)
	if u.cache != nil {
		if cached, ok := u.cached(ctx, cacheKey); ok {
			return cached, nil
		}
		u.logger.Printf("[Jobs] Cache MISS: %s", cacheKey)

		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", 30*time.Second)
		switch {
		case err == nil && ok:
			defer func() { _ = u.cache.Delete(context.WithoutCancel(ctx), lockKey) }()
		case err == nil && !ok:
			jitter := time.Duration(u.now().UnixNano()%201) * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(u.lockWait + jitter):
			}
			if cached, ok := u.cached(ctx, cacheKey); ok {
				return cached, nil
			}
			u.logger.Printf("[Jobs] Lock wait fallback: %s", lockKey)
		}
	}

	rows, err := u.corpus.Search(ctx, qctx.SearchText(), limit)
	if err != nil {
		u.logger.Printf("[Jobs] search failed query=%q err=%v", qctx.Normalized, err)
		return nil, ErrInternal
	}

	if len(rows) < minSearchResults {
		fb := search.FallbackFirstWord(qctx.Normalized)
		if fb != "" && fb != qctx.Normalized {
			fbCtx := search.ProcessQuery(fb)
			if rows2, err := u.corpus.Search(ctx, fbCtx.SearchText(), limit); err == nil && len(rows2) > len(rows) {
				rows = rows2
			}
		}
	}

	out := search.RankJobs(rows, qctx.Variants, u.now().UTC())
	if out == nil {
		out = []job.Posting{}
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, out, 0); err == nil {
			u.logger.Printf("[Jobs] Cache SET: %s", cacheKey)
		}
	}
	return out, nil
}

func (u *JobSearch) cached(ctx context.Context, key string) ([]job.Posting, bool) {
	var cached []job.Posting
	hit, err := u.cache.GetJSON(ctx, key, &cached)
	if err != nil || !hit {
		return nil, false
	}
	u.logger.Printf("[Jobs] Cache HIT: %s", key)
	return cached, true
}

func (u *JobSearch) List(ctx context.Context, limit, offset int) ([]job.Posting, error) {
	if limit == 0 {
		limit = defaultSearchLimit
	}
	if limit < 0 || limit > maxSearchLimit || offset < 0 {
		return nil, ErrInvalidInput
	}
	out, err := u.corpus.List(ctx, limit, offset)
	if err != nil {
		u.logger.Printf("[Jobs] list failed err=%v", err)
		return nil, ErrInternal
	}
	return out, nil
}

func (u *JobSearch) Get(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	if id == uuid.Nil {
		return job.Posting{}, ErrInvalidInput
	}
	p, err := u.corpus.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Posting{}, ErrNotFound
		}
		return job.Posting{}, ErrInternal
	}
	return p, nil
}
