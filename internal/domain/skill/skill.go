package skill

import "strings"

type Category string

const (
	CategoryTechnical     Category = "technical"
	CategorySoft          Category = "soft"
	CategoryDomain        Category = "domain"
	CategoryCertification Category = "certification"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryTechnical, CategorySoft, CategoryDomain, CategoryCertification:
		return true
	default:
		return false
	}
}

type Skill struct {
	Name       string   `json:"name"`
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
}

// Names returns the non-empty skill names in order.
func Names(skills []Skill) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		n := strings.TrimSpace(s.Name)
		if n == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Dedupe drops empty names and repeated names (case-insensitive), keeping the
// first occurrence.
func Dedupe(skills []Skill) []Skill {
	out := make([]Skill, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			continue
		}
		k := strings.ToLower(s.Name)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

func ClampConfidence(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
