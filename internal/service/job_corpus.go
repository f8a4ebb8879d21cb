package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"career-match/internal/domain/job"
	"career-match/internal/repository"

	"github.com/google/uuid"
)

var ErrNoJobSources = errors.New("no job sources configured")

// JobCorpus is the only way the rest of the application reads or writes
// postings.
type JobCorpus interface {
	Search(ctx context.Context, query string, limit int) ([]job.Posting, error)
	FetchFresh(ctx context.Context, query string) ([]job.Posting, error)
	Persist(ctx context.Context, jobs []job.Posting) (int, error)
	List(ctx context.Context, limit, offset int) ([]job.Posting, error)
	Get(ctx context.Context, id uuid.UUID) (job.Posting, error)
}

// JobSource is one upstream provider of postings.
type JobSource interface {
	Name() string
	Search(ctx context.Context, query string) ([]job.Posting, error)
}

type searchInvalidator interface {
	InvalidateSearch(ctx context.Context) error
}

type jobsNotifier interface {
	NotifyJobsUpdated(keyword, source string, saved int)
}

type DefaultJobCorpus struct {
	repo          repository.JobRepository
	sources       []JobSource
	cache         searchInvalidator
	notifier      jobsNotifier
	sourceTimeout time.Duration
	logger        *log.Logger
}

type JobCorpusOption func(*DefaultJobCorpus)

func WithSearchInvalidator(c searchInvalidator) JobCorpusOption {
	return func(s *DefaultJobCorpus) { s.cache = c }
}

func WithJobsNotifier(n jobsNotifier) JobCorpusOption {
	return func(s *DefaultJobCorpus) { s.notifier = n }
}

func WithSourceTimeout(d time.Duration) JobCorpusOption {
	return func(s *DefaultJobCorpus) { s.sourceTimeout = d }
}

func WithSources(sources ...JobSource) JobCorpusOption {
	return func(s *DefaultJobCorpus) {
		for _, src := range sources {
			if src != nil {
				s.sources = append(s.sources, src)
			}
		}
	}
}

func NewJobCorpus(repo repository.JobRepository, logger *log.Logger, opts ...JobCorpusOption) *DefaultJobCorpus {
	if logger == nil {
		logger = log.Default()
	}
	s := &DefaultJobCorpus{repo: repo, sourceTimeout: 60 * time.Second, logger: logger}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *DefaultJobCorpus) Search(ctx context.Context, query string, limit int) ([]job.Posting, error) {
	if strings.TrimSpace(query) == "" {
		return []job.Posting{}, nil
	}
	return s.repo.Search(ctx, query, limit)
}

// FetchFresh queries every source concurrently and merges the results,
// deduplicated by URL in source order. It fails only when every source did.
func (s *DefaultJobCorpus) FetchFresh(ctx context.Context, query string) ([]job.Posting, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []job.Posting{}, nil
	}
	if len(s.sources) == 0 {
		return nil, ErrNoJobSources
	}

	type res struct {
		jobs []job.Posting
		err  error
	}
	results := make([]res, len(s.sources))

	var wg sync.WaitGroup
	for i, src := range s.sources {
		wg.Add(1)
		go func(i int, src JobSource) {
			defer wg.Done()
			ctx2, cancel := context.WithTimeout(ctx, s.sourceTimeout)
			defer cancel()

			jobs, err := src.Search(ctx2, query)
			results[i] = res{jobs: jobs, err: err}
		}(i, src)
	}
	wg.Wait()

	all := make([]job.Posting, 0)
	var okCount int
	var lastErr error
	for i, r := range results {
		name := s.sources[i].Name()
		if r.err != nil {
			lastErr = r.err
			s.logger.Printf("[Jobs] fetch source=%s query=%q status=error err=%v", name, query, r.err)
			continue
		}
		okCount++
		s.logger.Printf("[Jobs] fetch source=%s query=%q jobs=%d", name, query, len(r.jobs))
		all = append(all, r.jobs...)
	}
	if okCount == 0 {
		return nil, lastErr
	}

	return dedupeByURL(all), nil
}

// Persist stores new postings and reports how many rows were inserted.
// Subscribers and the search cache only hear about it when something changed.
func (s *DefaultJobCorpus) Persist(ctx context.Context, jobs []job.Posting) (int, error) {
	if len(jobs) == 0 {
		return 0, nil
	}
	saved, err := s.repo.InsertMany(ctx, jobs)
	if err != nil {
		return 0, err
	}
	s.logger.Printf("[Jobs] persisted received=%d saved=%d", len(jobs), saved)
	if saved == 0 {
		return 0, nil
	}

	if s.cache != nil {
		if err := s.cache.InvalidateSearch(ctx); err != nil {
			s.logger.Printf("[Jobs] cache invalidation failed err=%v", err)
		}
	}
	if s.notifier != nil {
		s.notifier.NotifyJobsUpdated("", primarySource(jobs), saved)
	}
	return saved, nil
}

func (s *DefaultJobCorpus) List(ctx context.Context, limit, offset int) ([]job.Posting, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *DefaultJobCorpus) Get(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	return s.repo.GetByID(ctx, id)
}

// LatestFetchedAt is used by the freshness check.
func (s *DefaultJobCorpus) LatestFetchedAt(ctx context.Context, query string) (time.Time, error) {
	return s.repo.LatestFetchedAt(ctx, query)
}

func dedupeByURL(in []job.Posting) []job.Posting {
	seen := make(map[string]struct{}, len(in))
	out := make([]job.Posting, 0, len(in))
	for _, p := range in {
		u := strings.TrimSpace(p.URL)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, p)
	}
	return out
}

func primarySource(jobs []job.Posting) string {
	for _, j := range jobs {
		if j.Source != "" {
			return j.Source
		}
	}
	return "unknown"
}

var _ JobCorpus = (*DefaultJobCorpus)(nil)
