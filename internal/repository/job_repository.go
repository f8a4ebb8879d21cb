package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"career-match/internal/database"
	"career-match/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

type JobRepository interface {
	Search(ctx context.Context, query string, limit int) ([]job.Posting, error)
	List(ctx context.Context, limit, offset int) ([]job.Posting, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error)
	InsertMany(ctx context.Context, jobs []job.Posting) (int, error)
	LatestFetchedAt(ctx context.Context, query string) (time.Time, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `j.id, j.title, j.company, j.location, j.url, j.description, j.extracted_skills, j.source, j.source_id, j.fetched_at`

// Search matches any query word against the full-text index or the extracted
// skill list, best rank first.
func (r *PostgresJobRepository) Search(ctx context.Context, query string, limit int) ([]job.Posting, error) {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return []job.Posting{}, nil
	}
	limit = clampLimit(limit, 20, 100)

	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs j
		 WHERE j.search_vector @@ websearch_to_tsquery('english', $1)
		    OR EXISTS (SELECT 1 FROM unnest(j.extracted_skills) s WHERE lower(s) = ANY($2))
		 ORDER BY ts_rank(j.search_vector, websearch_to_tsquery('english', $1)) DESC, j.fetched_at DESC
		 LIMIT $3`,
		strings.Join(words, " or "), words, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectPostings(rows)
}

func (r *PostgresJobRepository) List(ctx context.Context, limit, offset int) ([]job.Posting, error) {
	limit = clampLimit(limit, 20, 100)
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs j
		 ORDER BY j.fetched_at DESC, j.id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return collectPostings(rows)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1`, id)
	p, err := scanPosting(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, err
	}
	return p, nil
}

// InsertMany stores postings keyed by URL and reports how many were new.
// Postings without a URL are skipped.
func (r *PostgresJobRepository) InsertMany(ctx context.Context, jobs []job.Posting) (int, error) {
	if len(jobs) == 0 {
		return 0, nil
	}

	saved := 0
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, p := range jobs {
			url := strings.TrimSpace(p.URL)
			if url == "" {
				continue
			}
			skills := p.ExtractedSkills
			if skills == nil {
				skills = []string{}
			}
			fetched := p.FetchedAt
			if fetched.IsZero() {
				fetched = time.Now().UTC()
			}

			n, err := tx.Exec(ctx,
				`INSERT INTO jobs (title, company, location, url, description, extracted_skills, source, source_id, fetched_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				 ON CONFLICT (url) DO NOTHING`,
				p.Title, p.Company, p.Location, url, p.Description, skills, p.Source, p.SourceID, fetched,
			)
			if err != nil {
				return err
			}
			saved += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return saved, nil
}

// LatestFetchedAt returns the newest fetch time among jobs matching query, or
// the zero time when none match.
func (r *PostgresJobRepository) LatestFetchedAt(ctx context.Context, query string) (time.Time, error) {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return time.Time{}, nil
	}

	var latest *time.Time
	row := r.db.QueryRow(ctx,
		`SELECT MAX(j.fetched_at) FROM jobs j WHERE j.search_vector @@ websearch_to_tsquery('english', $1)`,
		strings.Join(words, " or "),
	)
	if err := row.Scan(&latest); err != nil {
		return time.Time{}, err
	}
	if latest == nil {
		return time.Time{}, nil
	}
	return latest.UTC(), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPosting(s scanner) (job.Posting, error) {
	var p job.Posting
	err := s.Scan(&p.ID, &p.Title, &p.Company, &p.Location, &p.URL, &p.Description, &p.ExtractedSkills, &p.Source, &p.SourceID, &p.FetchedAt)
	if err != nil {
		return job.Posting{}, err
	}
	if p.ExtractedSkills == nil {
		p.ExtractedSkills = []string{}
	}
	return p, nil
}

func collectPostings(rows database.Rows) ([]job.Posting, error) {
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
