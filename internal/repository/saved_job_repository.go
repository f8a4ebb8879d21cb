package repository

import (
	"context"
	"errors"

	"career-match/internal/database"
	"career-match/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type SavedJobRepository interface {
	Save(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	Remove(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]job.Posting, error)
}

type PostgresSavedJobRepository struct {
	db database.DB
}

func NewPostgresSavedJobRepository(db database.DB) *PostgresSavedJobRepository {
	return &PostgresSavedJobRepository{db: db}
}

// Save reports false when the job was already saved.
func (r *PostgresSavedJobRepository) Save(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx,
		`INSERT INTO saved_jobs (user_id, job_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, jobID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, ErrJobNotFound
		}
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresSavedJobRepository) Remove(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx, `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresSavedJobRepository) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]job.Posting, error) {
	limit = clampLimit(limit, 20, 100)
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM saved_jobs s
		 JOIN jobs j ON j.id = s.job_id
		 WHERE s.user_id = $1
		 ORDER BY s.saved_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return collectPostings(rows)
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
