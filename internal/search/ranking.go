package search

import (
	"sort"
	"strings"
	"time"

	"career-match/internal/domain/job"
)

// JobScore breaks down how a posting ranks for a search.
type JobScore struct {
	Relevance     float64
	Freshness     float64
	SourceQuality float64
	DataQuality   float64
	FinalScore    float64
}

var SourceWeights = map[string]float64{
	job.SourceLinkedIn: 3,
	job.SourceJSearch:  3,
	"seed":             1,
	"unknown":          1,
}

// ComputeRelevance weighs title hits over skill, description and company
// hits. The result is capped at 10.
func ComputeRelevance(p job.Posting, queryVariants []string) float64 {
	if len(queryVariants) == 0 {
		return 0
	}

	title := strings.ToLower(p.Title)
	desc := strings.ToLower(p.Description)
	company := strings.ToLower(p.Company)
	skills := make(map[string]struct{}, len(p.ExtractedSkills))
	for _, s := range p.ExtractedSkills {
		skills[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	score := 0.0
	for _, v := range queryVariants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if title != "" && strings.Contains(title, v) {
			score += 3
		}
		if _, ok := skills[v]; ok {
			score += 2
		}
		if desc != "" && strings.Contains(desc, v) {
			score += 1
		}
		if company != "" && strings.Contains(company, v) {
			score += 1
		}
		if score >= 10 {
			return 10
		}
	}
	return score
}

func ComputeFreshness(p job.Posting, now time.Time) float64 {
	if p.FetchedAt.IsZero() {
		return 0
	}
	age := now.Sub(p.FetchedAt)
	if age < 0 {
		age = 0
	}

	day := 24 * time.Hour
	switch {
	case age <= day:
		return 5
	case age <= 3*day:
		return 4
	case age <= 7*day:
		return 3
	case age <= 14*day:
		return 2
	case age <= 30*day:
		return 1
	}
	return 0
}

func ComputeSourceQuality(source string) float64 {
	source = strings.TrimSpace(strings.ToLower(source))
	if source == "" {
		source = "unknown"
	}
	if w, ok := SourceWeights[source]; ok {
		return w
	}
	return 1
}

func ComputeDataQuality(p job.Posting) float64 {
	score := 0.0
	if strings.TrimSpace(p.Title) != "" {
		score++
	}
	if strings.TrimSpace(p.Company) != "" {
		score++
	}
	if strings.TrimSpace(p.Location) != "" {
		score++
	}
	if len(strings.TrimSpace(p.Description)) > 100 {
		score++
	}
	if strings.TrimSpace(p.URL) != "" {
		score++
	}
	return score
}

func ScoreJob(p job.Posting, queryVariants []string, now time.Time) JobScore {
	rel := ComputeRelevance(p, queryVariants)
	fresh := ComputeFreshness(p, now)
	src := ComputeSourceQuality(p.Source)
	qual := ComputeDataQuality(p)

	return JobScore{
		Relevance:     rel,
		Freshness:     fresh,
		SourceQuality: src,
		DataQuality:   qual,
		FinalScore:    (rel * 2.0) + (fresh * 1.5) + (src * 1.0) + (qual * 0.5),
	}
}

// RankJobs reorders postings by ScoreJob, keeping input order on ties. The
// input slice is not modified.
func RankJobs(jobs []job.Posting, queryVariants []string, now time.Time) []job.Posting {
	if len(jobs) == 0 {
		return jobs
	}

	type scored struct {
		idx   int
		score float64
	}
	items := make([]scored, len(jobs))
	maxScore := 0.0
	for i := range jobs {
		s := ScoreJob(jobs[i], queryVariants, now).FinalScore
		items[i] = scored{idx: i, score: s}
		if s > maxScore {
			maxScore = s
		}
	}

	out := make([]job.Posting, 0, len(jobs))
	if maxScore == 0 {
		return append(out, jobs...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})
	for _, it := range items {
		out = append(out, jobs[it.idx])
	}
	return out
}
