package usecase

import (
	"context"
	"errors"
	"log"

	"career-match/internal/domain/job"
	"career-match/internal/repository"

	"github.com/google/uuid"
)

type SavedJobUsecase interface {
	Save(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	Remove(ctx context.Context, userID, jobID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]job.Posting, error)
}

type SavedJobs struct {
	repo   repository.SavedJobRepository
	logger *log.Logger
}

func NewSavedJobUsecase(repo repository.SavedJobRepository, logger *log.Logger) *SavedJobs {
	if logger == nil {
		logger = log.Default()
	}
	return &SavedJobs{repo: repo, logger: logger}
}

// Save reports whether the bookmark is new. Saving twice is not an error.
func (u *SavedJobs) Save(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return false, ErrInvalidInput
	}
	created, err := u.repo.Save(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return false, ErrNotFound
		}
		u.logger.Printf("[SavedJobs] save failed user_id=%s job_id=%s err=%v", userID, jobID, err)
		return false, ErrInternal
	}
	return created, nil
}

func (u *SavedJobs) Remove(ctx context.Context, userID, jobID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return ErrInvalidInput
	}
	removed, err := u.repo.Remove(ctx, userID, jobID)
	if err != nil {
		u.logger.Printf("[SavedJobs] remove failed user_id=%s job_id=%s err=%v", userID, jobID, err)
		return ErrInternal
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

func (u *SavedJobs) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]job.Posting, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if limit == 0 {
		limit = defaultSearchLimit
	}
	if limit < 0 || limit > maxSearchLimit || offset < 0 {
		return nil, ErrInvalidInput
	}
	out, err := u.repo.List(ctx, userID, limit, offset)
	if err != nil {
		u.logger.Printf("[SavedJobs] list failed user_id=%s err=%v", userID, err)
		return nil, ErrInternal
	}
	return out, nil
}
