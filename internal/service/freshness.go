package service

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"career-match/internal/domain/job"
	"career-match/internal/infrastructure/cache"
)

type refreshableCorpus interface {
	LatestFetchedAt(ctx context.Context, query string) (time.Time, error)
	FetchFresh(ctx context.Context, query string) ([]job.Posting, error)
	Persist(ctx context.Context, jobs []job.Posting) (int, error)
}

type lockCache interface {
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

// FreshnessService refreshes a query in the background when the newest stored
// posting for it is older than the threshold.
type FreshnessService struct {
	corpus    refreshableCorpus
	cache     lockCache
	logger    *log.Logger
	threshold time.Duration
	timeout   time.Duration
	now       func() time.Time

	wg sync.WaitGroup
}

func NewFreshnessService(corpus refreshableCorpus, lock lockCache, logger *log.Logger, freshnessMinutes int) *FreshnessService {
	if logger == nil {
		logger = log.Default()
	}
	threshold := time.Duration(freshnessMinutes) * time.Minute
	if threshold <= 0 {
		threshold = 30 * time.Minute
	}
	return &FreshnessService{
		corpus:    corpus,
		cache:     lock,
		logger:    logger,
		threshold: threshold,
		timeout:   90 * time.Second,
		now:       time.Now,
	}
}

// EnsureFresh returns immediately. It reports whether a refresh was started.
func (s *FreshnessService) EnsureFresh(ctx context.Context, query string) bool {
	if s == nil || s.corpus == nil {
		return false
	}
	query = strings.Join(strings.Fields(strings.ToLower(query)), " ")
	if query == "" {
		return false
	}

	latest, err := s.corpus.LatestFetchedAt(ctx, query)
	if err != nil {
		s.logger.Printf("[Jobs] freshness lookup failed query=%q err=%v", query, err)
		return false
	}
	if !latest.IsZero() && s.now().Sub(latest) <= s.threshold {
		return false
	}
	s.logger.Printf("[Jobs] Freshness stale detected query=%q latest=%v threshold=%s", query, latest, s.threshold)

	if s.cache != nil {
		ok, err := s.cache.SetIfNotExists(ctx, cache.FreshnessKeyPrefix+query, "1", 2*time.Minute)
		if err != nil || !ok {
			return false
		}
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx2, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		jobs, err := s.corpus.FetchFresh(ctx2, query)
		if err != nil {
			s.logger.Printf("[Jobs] refresh failed query=%q err=%v", query, err)
			return
		}
		saved, err := s.corpus.Persist(ctx2, jobs)
		if err != nil {
			s.logger.Printf("[Jobs] refresh persist failed query=%q err=%v", query, err)
			return
		}
		s.logger.Printf("[Jobs] refresh done query=%q fetched=%d saved=%d", query, len(jobs), saved)
	}()
	return true
}

// Wait blocks until background refreshes finish; used on shutdown.
func (s *FreshnessService) Wait() {
	if s == nil {
		return
	}
	s.wg.Wait()
}
