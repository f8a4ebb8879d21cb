package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"sync"
	"time"

	"career-match/internal/domain/job"
	"career-match/internal/domain/skill"
	"career-match/internal/infrastructure/llm"
	"career-match/internal/repository"

	"github.com/google/uuid"
)

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

type mockMatcher struct {
	mu    sync.Mutex
	calls [][]job.Posting
	fn    func(batch []job.Posting) llm.Result[[]llm.BatchMatch]
}

func (m *mockMatcher) MatchBatch(_ context.Context, _ []string, jobs []job.Posting) llm.Result[[]llm.BatchMatch] {
	m.mu.Lock()
	m.calls = append(m.calls, jobs)
	m.mu.Unlock()
	return m.fn(jobs)
}

type mockAnalyzer struct {
	res llm.Result[[]skill.Skill]
}

func (m mockAnalyzer) Analyze(context.Context, string) llm.Result[[]skill.Skill] {
	return m.res
}

type mockProfiles struct {
	profiles map[uuid.UUID]repository.SkillProfile
	err      error
	upserts  int
}

func (m *mockProfiles) Get(_ context.Context, userID uuid.UUID) (repository.SkillProfile, error) {
	if m.err != nil {
		return repository.SkillProfile{}, m.err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return repository.SkillProfile{}, repository.ErrSkillProfileNotFound
	}
	return p, nil
}

func (m *mockProfiles) Upsert(_ context.Context, p repository.SkillProfile) error {
	if m.err != nil {
		return m.err
	}
	if m.profiles == nil {
		m.profiles = map[uuid.UUID]repository.SkillProfile{}
	}
	m.profiles[p.UserID] = p
	m.upserts++
	return nil
}

type mockCorpus struct {
	searchJobs  []job.Posting
	searchErr   error
	freshJobs   []job.Posting
	freshErr    error
	listJobs    []job.Posting
	listErr     error
	persisted   []job.Posting
	searchCalls []string
	byID        map[uuid.UUID]job.Posting
}

func (m *mockCorpus) Search(_ context.Context, query string, limit int) ([]job.Posting, error) {
	m.searchCalls = append(m.searchCalls, query)
	if len(m.searchJobs) > limit {
		return m.searchJobs[:limit], m.searchErr
	}
	return m.searchJobs, m.searchErr
}

func (m *mockCorpus) FetchFresh(context.Context, string) ([]job.Posting, error) {
	return m.freshJobs, m.freshErr
}

func (m *mockCorpus) Persist(_ context.Context, jobs []job.Posting) (int, error) {
	m.persisted = append(m.persisted, jobs...)
	return len(jobs), nil
}

func (m *mockCorpus) List(context.Context, int, int) ([]job.Posting, error) {
	return m.listJobs, m.listErr
}

func (m *mockCorpus) Get(_ context.Context, id uuid.UUID) (job.Posting, error) {
	p, ok := m.byID[id]
	if !ok {
		return job.Posting{}, repository.ErrJobNotFound
	}
	return p, nil
}

type memCache struct {
	mu    sync.Mutex
	data  map[string][]byte
	locks map[string]bool
	sets  int
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, locks: map[string]bool{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	delete(c.locks, key)
	return nil
}

func (c *memCache) SetIfNotExists(_ context.Context, key string, _ string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locks[key] {
		return false, nil
	}
	c.locks[key] = true
	return true, nil
}
