package dto

import (
	"career-match/internal/domain/job"
	"career-match/internal/domain/matching"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	URL             string    `json:"url"`
	Description     string    `json:"description"`
	ExtractedSkills []string  `json:"extracted_skills"`
	Source          string    `json:"source"`
	FetchedAt       string    `json:"fetched_at"`
}

func NewJobResponse(p job.Posting) JobResponse {
	skills := p.ExtractedSkills
	if skills == nil {
		skills = []string{}
	}
	return JobResponse{
		ID:              p.ID,
		Title:           p.Title,
		Company:         p.Company,
		Location:        p.Location,
		URL:             p.URL,
		Description:     p.Description,
		ExtractedSkills: skills,
		Source:          p.Source,
		FetchedAt:       FormatTime(p.FetchedAt),
	}
}

func NewJobResponses(items []job.Posting) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewJobResponse(it))
	}
	return out
}

type RecommendationResponse struct {
	Job              JobResponse `json:"job"`
	MatchScore       float64     `json:"match_score"`
	MatchingSkills   []string    `json:"matching_skills"`
	MissingSkills    []string    `json:"missing_skills"`
	MatchExplanation string      `json:"match_explanation,omitempty"`
}

func NewRecommendationResponses(items []matching.Result) []RecommendationResponse {
	out := make([]RecommendationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, RecommendationResponse{
			Job:              NewJobResponse(it.Job),
			MatchScore:       it.MatchScore,
			MatchingSkills:   nonNil(it.MatchingSkills),
			MissingSkills:    nonNil(it.MissingSkills),
			MatchExplanation: it.Explanation,
		})
	}
	return out
}

type SaveJobResponse struct {
	JobID   uuid.UUID `json:"job_id"`
	Created bool      `json:"created"`
}

type IngestRequest struct {
	Queries []string `json:"queries" validate:"max=50,dive,required,max=200"`
	Workers int      `json:"workers" validate:"gte=0,lte=32"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
