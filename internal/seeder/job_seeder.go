package seeder

import (
	"context"
	"fmt"
	"log"
	"time"

	"career-match/internal/database"
	"career-match/internal/domain/job"
	"career-match/internal/domain/skill"
)

const SourceSeed = "seed"

type jobInserter interface {
	InsertMany(ctx context.Context, jobs []job.Posting) (int, error)
}

// JobSeeder loads a small demo corpus so search and recommendations work on
// a fresh database without API keys. Re-running it is a no-op because rows
// are keyed by URL.
type JobSeeder struct {
	DB   database.DB
	Jobs jobInserter
	Log  *log.Logger
}

func (JobSeeder) Name() string { return "jobs" }

func (s JobSeeder) Run(ctx context.Context) (int, error) {
	if err := ensureTableColumns(ctx, s.DB, "jobs",
		"id", "title", "company", "location", "url", "description",
		"extracted_skills", "source", "source_id", "fetched_at",
	); err != nil {
		return 0, err
	}

	items := DemoJobs(time.Now().UTC())
	saved, err := s.Jobs.InsertMany(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("seed jobs: %w", err)
	}
	if s.Log != nil {
		s.Log.Printf("seeder=jobs total=%d saved=%d", len(items), saved)
	}
	return saved, nil
}

func DemoJobs(now time.Time) []job.Posting {
	items := []struct {
		Title, Company, Location, Slug, Description string
	}{
		{
			Title:       "Senior Python Developer",
			Company:     "TechCorp Inc.",
			Location:    "Remote",
			Slug:        "senior-python-developer",
			Description: "Build APIs with Python, Django and PostgreSQL. Experience with Docker and AWS is a plus.",
		},
		{
			Title:       "Data Scientist",
			Company:     "Analytics Co.",
			Location:    "New York, NY",
			Slug:        "data-scientist",
			Description: "Train machine learning models with Python, pandas and TensorFlow. Strong SQL required.",
		},
		{
			Title:       "Backend Engineer (Go)",
			Company:     "CloudKita",
			Location:    "Jakarta, ID",
			Slug:        "backend-engineer-go",
			Description: "Build and maintain Go services, REST APIs and PostgreSQL-backed systems on Kubernetes.",
		},
		{
			Title:       "Fullstack Engineer",
			Company:     "BuildFast",
			Location:    "Remote",
			Slug:        "fullstack-engineer",
			Description: "Ship product features with React, TypeScript and Node.js. Own CI/CD with GitHub Actions.",
		},
		{
			Title:       "DevOps Engineer",
			Company:     "ScaleUp",
			Location:    "Berlin, DE",
			Slug:        "devops-engineer",
			Description: "Operate Docker, Kubernetes and Terraform on AWS. Improve observability and on-call tooling.",
		},
	}

	out := make([]job.Posting, 0, len(items))
	for _, it := range items {
		out = append(out, job.Posting{
			Title:           it.Title,
			Company:         it.Company,
			Location:        it.Location,
			URL:             "https://example.com/jobs/" + it.Slug,
			Description:     it.Description,
			ExtractedSkills: skill.ExtractNames(it.Title + " " + it.Description),
			FetchedAt:       now,
			Source:          SourceSeed,
			SourceID:        it.Slug,
		})
	}
	return out
}

func ensureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			return fmt.Errorf("schema mismatch: missing column %s.%s (run migrations first)", table, col)
		}
	}
	return nil
}
