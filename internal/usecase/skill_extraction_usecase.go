package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"career-match/internal/domain/skill"
	"career-match/internal/infrastructure/llm"
	"career-match/internal/repository"

	"github.com/google/uuid"
)

const (
	MethodLLM        = "llm"
	MethodDictionary = "dictionary"
)

type skillAnalyzer interface {
	Analyze(ctx context.Context, text string) llm.Result[[]skill.Skill]
}

type Extraction struct {
	Skills []skill.Skill `json:"skills"`
	Method string        `json:"method"`
}

type SkillExtractionUsecase interface {
	Extract(ctx context.Context, text string) (Extraction, error)
	AnalyzeAndStore(ctx context.Context, userID uuid.UUID, text string) (repository.SkillProfile, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (repository.SkillProfile, error)
}

type SkillExtraction struct {
	analyzer skillAnalyzer
	profiles repository.SkillProfileRepository
	logger   *log.Logger
	now      func() time.Time
}

// NewSkillExtractionUsecase accepts a nil analyzer; every extraction then
// uses the dictionary.
func NewSkillExtractionUsecase(analyzer skillAnalyzer, profiles repository.SkillProfileRepository, logger *log.Logger) *SkillExtraction {
	if logger == nil {
		logger = log.Default()
	}
	return &SkillExtraction{analyzer: analyzer, profiles: profiles, logger: logger, now: time.Now}
}

// Extract tries the LLM first and falls back to the reference dictionary when
// it is unavailable, fails or finds nothing. Only blank input is an error.
func (u *SkillExtraction) Extract(ctx context.Context, text string) (Extraction, error) {
	if strings.TrimSpace(text) == "" {
		return Extraction{}, ErrEmptyText
	}

	if u.analyzer != nil {
		res := u.analyzer.Analyze(ctx, text)
		if res.OK() && len(res.Value) > 0 {
			u.logger.Printf("[Skills] extracted method=%s skills=%d", MethodLLM, len(res.Value))
			return Extraction{Skills: res.Value, Method: MethodLLM}, nil
		}
		if res.Err != nil && !errors.Is(res.Err, llm.ErrNotConfigured) {
			u.logger.Printf("[Skills] llm extraction failed, using dictionary err=%v", res.Err)
		}
	}

	skills := skill.ExtractFromDictionary(text)
	if skills == nil {
		skills = []skill.Skill{}
	}
	u.logger.Printf("[Skills] extracted method=%s skills=%d", MethodDictionary, len(skills))
	return Extraction{Skills: skills, Method: MethodDictionary}, nil
}

// AnalyzeAndStore extracts skills and replaces the user's stored profile.
func (u *SkillExtraction) AnalyzeAndStore(ctx context.Context, userID uuid.UUID, text string) (repository.SkillProfile, error) {
	if userID == uuid.Nil {
		return repository.SkillProfile{}, ErrUnauthorized
	}
	ex, err := u.Extract(ctx, text)
	if err != nil {
		return repository.SkillProfile{}, err
	}

	sum := sha256.Sum256([]byte(text))
	p := repository.SkillProfile{
		UserID:           userID,
		Skills:           ex.Skills,
		SourceTextSHA256: hex.EncodeToString(sum[:]),
		Method:           ex.Method,
		UpdatedAt:        u.now().UTC(),
	}
	if u.profiles == nil {
		return p, nil
	}
	if err := u.profiles.Upsert(ctx, p); err != nil {
		u.logger.Printf("[Skills] profile save failed user_id=%s err=%v", userID, err)
		return repository.SkillProfile{}, ErrInternal
	}
	return p, nil
}

func (u *SkillExtraction) GetProfile(ctx context.Context, userID uuid.UUID) (repository.SkillProfile, error) {
	if userID == uuid.Nil {
		return repository.SkillProfile{}, ErrUnauthorized
	}
	if u.profiles == nil {
		return repository.SkillProfile{}, ErrUserSkillProfileEmpty
	}
	p, err := u.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSkillProfileNotFound) {
			return repository.SkillProfile{}, ErrUserSkillProfileEmpty
		}
		return repository.SkillProfile{}, ErrInternal
	}
	return p, nil
}
