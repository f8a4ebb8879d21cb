package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"career-match/internal/domain/job"
	"career-match/internal/domain/matching"
	"career-match/internal/domain/skill"
	"career-match/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultRecommendLimit = 5
	maxRecommendLimit     = 50
	recommendCandidates   = 20
	recommendQuerySkills  = 3
)

type recommendationCorpus interface {
	Search(ctx context.Context, query string, limit int) ([]job.Posting, error)
	FetchFresh(ctx context.Context, query string) ([]job.Posting, error)
	Persist(ctx context.Context, jobs []job.Posting) (int, error)
	List(ctx context.Context, limit, offset int) ([]job.Posting, error)
}

type recommender interface {
	Recommend(ctx context.Context, userSkills []skill.Skill, jobs []job.Posting, limit int, useEnhanced bool) ([]matching.Result, error)
}

type JobRecommendationParams struct {
	Limit int
	// UseEnhanced defaults to true when nil.
	UseEnhanced *bool
	// Skills overrides the stored profile when non-empty.
	Skills []string
}

type JobRecommendationUsecase interface {
	Recommend(ctx context.Context, userID uuid.UUID, params JobRecommendationParams) ([]matching.Result, error)
}

type JobRecommendation struct {
	corpus   recommendationCorpus
	profiles repository.SkillProfileRepository
	ranker   recommender
	logger   *log.Logger
}

func NewJobRecommendationUsecase(corpus recommendationCorpus, profiles repository.SkillProfileRepository, ranker recommender, logger *log.Logger) *JobRecommendation {
	if logger == nil {
		logger = log.Default()
	}
	return &JobRecommendation{corpus: corpus, profiles: profiles, ranker: ranker, logger: logger}
}

// RecommendLimit is the limit Recommend applies for a requested one: 5 when
// unset, at most 50. Negative values are rejected by Recommend itself.
func RecommendLimit(requested int) int {
	switch {
	case requested <= 0:
		return defaultRecommendLimit
	case requested > maxRecommendLimit:
		return maxRecommendLimit
	}
	return requested
}

func (u *JobRecommendation) Recommend(ctx context.Context, userID uuid.UUID, params JobRecommendationParams) ([]matching.Result, error) {
	if params.Limit < 0 {
		return nil, ErrInvalidLimit
	}
	limit := RecommendLimit(params.Limit)
	useEnhanced := true
	if params.UseEnhanced != nil {
		useEnhanced = *params.UseEnhanced
	}

	skills, err := u.loadSkills(ctx, userID, params.Skills)
	if err != nil {
		return nil, err
	}

	query := SkillQuery(skills, recommendQuerySkills)
	jobs, err := u.candidates(ctx, query)
	if err != nil {
		return nil, err
	}

	u.logger.Printf("[Recommend] user_id=%s query=%q candidates=%d limit=%d enhanced=%t", userID, query, len(jobs), limit, useEnhanced)
	return u.ranker.Recommend(ctx, skills, jobs, limit, useEnhanced)
}

func (u *JobRecommendation) loadSkills(ctx context.Context, userID uuid.UUID, override []string) ([]skill.Skill, error) {
	if len(override) > 0 {
		out := make([]skill.Skill, 0, len(override))
		for _, name := range override {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			out = append(out, skill.Skill{Name: name, Category: skill.Categorize(name), Confidence: 1})
		}
		out = skill.Dedupe(out)
		if len(out) == 0 {
			return nil, ErrUserSkillProfileEmpty
		}
		return out, nil
	}

	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	p, err := u.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSkillProfileNotFound) {
			return nil, ErrUserSkillProfileEmpty
		}
		u.logger.Printf("[Recommend] profile load failed user_id=%s err=%v", userID, err)
		return nil, ErrInternal
	}
	if len(p.Skills) == 0 {
		return nil, ErrUserSkillProfileEmpty
	}
	return p.Skills, nil
}

// candidates searches locally, then fetches upstream, then falls back to the
// newest stored postings. Upstream failures only cost that step.
func (u *JobRecommendation) candidates(ctx context.Context, query string) ([]job.Posting, error) {
	jobs, err := u.corpus.Search(ctx, query, recommendCandidates)
	if err != nil {
		u.logger.Printf("[Recommend] search failed query=%q err=%v", query, err)
	}
	if len(jobs) > 0 {
		return jobs, nil
	}

	fresh, err := u.corpus.FetchFresh(ctx, query)
	if err != nil {
		u.logger.Printf("[Recommend] fetch failed query=%q err=%v", query, err)
	}
	if len(fresh) > 0 {
		if _, err := u.corpus.Persist(ctx, fresh); err != nil {
			u.logger.Printf("[Recommend] persist failed query=%q err=%v", query, err)
			return fresh, nil
		}
		// stored rows carry ids, fetched ones do not
		if stored, err := u.corpus.Search(ctx, query, recommendCandidates); err == nil && len(stored) > 0 {
			return stored, nil
		}
		return fresh, nil
	}

	jobs, err = u.corpus.List(ctx, recommendCandidates, 0)
	if err != nil {
		u.logger.Printf("[Recommend] list failed err=%v", err)
		return nil, ErrInternal
	}
	if jobs == nil {
		jobs = []job.Posting{}
	}
	return jobs, nil
}

// SkillQuery joins the n most confident skill names, keeping profile order
// on ties.
func SkillQuery(skills []skill.Skill, n int) string {
	sorted := make([]skill.Skill, len(skills))
	copy(sorted, skills)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return strings.Join(skill.Names(sorted), " ")
}
