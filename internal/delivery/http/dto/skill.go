package dto

import (
	"time"

	"career-match/internal/domain/skill"

	"github.com/google/uuid"
)

type ExtractSkillsRequest struct {
	Text string `json:"text" validate:"max=50000"`
}

type ExtractSkillsResponse struct {
	Skills []skill.Skill `json:"skills"`
	Method string        `json:"method"`
}

type SkillProfileResponse struct {
	UserID    uuid.UUID     `json:"user_id"`
	Skills    []skill.Skill `json:"skills"`
	Method    string        `json:"method"`
	UpdatedAt string        `json:"updated_at"`
}

func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
