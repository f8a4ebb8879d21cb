package matching

import (
	"math"
	"strings"

	"career-match/internal/domain/job"
)

const (
	titleBoost    = 0.2
	maxMissing    = 3
	scoreDecimals = 100.0
)

type Result struct {
	Job            job.Posting `json:"job"`
	MatchScore     float64     `json:"match_score"`
	MatchingSkills []string    `json:"matching_skills"`
	MissingSkills  []string    `json:"missing_skills"`
	Explanation    string      `json:"match_explanation,omitempty"`
}

// Score rates how well userSkills cover a posting using substring matches
// over title, company and description. It is pure: identical inputs give
// identical results.
func Score(userSkills []string, p job.Posting) Result {
	corpus := strings.ToLower(p.Title + " " + p.Company + " " + p.Description)

	matched := make([]string, 0, len(userSkills))
	seen := make(map[string]struct{}, len(userSkills))
	for _, s := range userSkills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		if !matchesAnyVariant(corpus, s) {
			continue
		}
		seen[key] = struct{}{}
		matched = append(matched, s)
	}

	missing := make([]string, 0, maxMissing)
	for _, term := range Vocabulary {
		if len(missing) >= maxMissing {
			break
		}
		lower := strings.ToLower(term)
		if _, ok := seen[lower]; ok {
			continue
		}
		if strings.Contains(corpus, lower) {
			missing = append(missing, term)
		}
	}

	score := 0.0
	if denom := len(matched) + len(missing); denom > 0 {
		score = float64(len(matched)) / float64(denom)
	}

	title := strings.ToLower(p.Title)
	for _, m := range matched {
		if strings.Contains(title, strings.ToLower(m)) {
			score += titleBoost
			break
		}
	}

	return Result{
		Job:            p,
		MatchScore:     roundScore(clampScore(score)),
		MatchingSkills: matched,
		MissingSkills:  missing,
	}
}

// Variants returns the lowercase spellings tried for a skill name: as is,
// without spaces, with hyphens for spaces and without dots.
func Variants(skill string) []string {
	lower := strings.ToLower(strings.TrimSpace(skill))
	return []string{
		lower,
		strings.ReplaceAll(lower, " ", ""),
		strings.ReplaceAll(lower, " ", "-"),
		strings.ReplaceAll(lower, ".", ""),
	}
}

func matchesAnyVariant(corpus, skill string) bool {
	for _, v := range Variants(skill) {
		if v == "" {
			continue
		}
		if strings.Contains(corpus, v) {
			return true
		}
	}
	return false
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func roundScore(v float64) float64 {
	return math.Round(v*scoreDecimals) / scoreDecimals
}

// ClampScore is exported for callers normalizing externally produced scores.
func ClampScore(v float64) float64 {
	return roundScore(clampScore(v))
}
