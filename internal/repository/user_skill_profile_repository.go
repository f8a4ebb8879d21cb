package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"career-match/internal/database"
	"career-match/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSkillProfileNotFound = errors.New("skill profile not found")

type SkillProfile struct {
	UserID           uuid.UUID
	Skills           []skill.Skill
	SourceTextSHA256 string
	Method           string
	UpdatedAt        time.Time
}

type SkillProfileRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (SkillProfile, error)
	Upsert(ctx context.Context, p SkillProfile) error
}

type PostgresSkillProfileRepository struct {
	db database.DB
}

func NewPostgresSkillProfileRepository(db database.DB) *PostgresSkillProfileRepository {
	return &PostgresSkillProfileRepository{db: db}
}

func (r *PostgresSkillProfileRepository) Get(ctx context.Context, userID uuid.UUID) (SkillProfile, error) {
	var raw []byte
	p := SkillProfile{UserID: userID}
	row := r.db.QueryRow(ctx,
		`SELECT skills, source_text_sha256, extraction_method, updated_at
		 FROM user_skill_profiles
		 WHERE user_id = $1`,
		userID,
	)
	if err := row.Scan(&raw, &p.SourceTextSHA256, &p.Method, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return SkillProfile{}, ErrSkillProfileNotFound
		}
		return SkillProfile{}, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p.Skills); err != nil {
			return SkillProfile{}, err
		}
	}
	if p.Skills == nil {
		p.Skills = []skill.Skill{}
	}
	return p, nil
}

func (r *PostgresSkillProfileRepository) Upsert(ctx context.Context, p SkillProfile) error {
	skills := p.Skills
	if skills == nil {
		skills = []skill.Skill{}
	}
	raw, err := json.Marshal(skills)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO user_skill_profiles (user_id, skills, source_text_sha256, extraction_method, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (user_id) DO UPDATE
		 SET skills = EXCLUDED.skills,
		     source_text_sha256 = EXCLUDED.source_text_sha256,
		     extraction_method = EXCLUDED.extraction_method,
		     updated_at = now()`,
		p.UserID, raw, p.SourceTextSHA256, p.Method,
	)
	return err
}
