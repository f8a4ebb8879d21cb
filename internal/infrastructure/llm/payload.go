package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"career-match/internal/domain/skill"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNoSkills        = errors.New("llm response contained no usable skills")
	ErrMalformedOutput = errors.New("llm response is not valid json")
)

var validate = validator.New()

// SkillItem is one validated skill parsed from an analysis response.
type SkillItem struct {
	Name       string  `validate:"required,max=120"`
	Category   string  `validate:"required,oneof=technical soft domain certification"`
	Confidence float64 `validate:"gte=0,lte=1"`
}

// BatchMatch is one validated job evaluation. Index refers to the job's
// position inside the batch that was sent.
type BatchMatch struct {
	Index          int      `validate:"gte=0,ltfield=BatchSize"`
	BatchSize      int      `validate:"gt=0"`
	Score          float64  `validate:"gte=0,lte=1"`
	MatchingSkills []string `validate:"dive,required"`
	MissingSkills  []string `validate:"max=3,dive,required"`
	Explanation    string
}

type skillAnalysisPayload struct {
	TechnicalSkills []skillEntry `json:"technical_skills"`
	SoftSkills      []skillEntry `json:"soft_skills"`
	DomainKnowledge []skillEntry `json:"domain_knowledge"`
	Certifications  []skillEntry `json:"certifications"`
}

type skillEntry struct {
	Name       looseString `json:"name"`
	Confidence *looseFloat `json:"confidence"`
}

type matchEntry struct {
	JobID            *looseInt    `json:"job_id"`
	MatchScore       looseFloat   `json:"match_score"`
	MatchingSkills   looseStrings `json:"matching_skills"`
	MissingSkills    looseStrings `json:"missing_skills"`
	MatchExplanation looseString  `json:"match_explanation"`
}

// DecodeSkills converts a skill-analysis response into skills. Entries with no
// name are dropped, confidences are clamped to [0,1] (0.5 when absent) and
// names are deduplicated case-insensitively in category order.
func DecodeSkills(text string) Result[[]skill.Skill] {
	raw, err := ExtractJSON(text, '{')
	if err != nil {
		return Fail[[]skill.Skill](err)
	}

	var p skillAnalysisPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Fail[[]skill.Skill](fmt.Errorf("%w: %v", ErrMalformedOutput, err))
	}

	groups := []struct {
		cat     skill.Category
		entries []skillEntry
	}{
		{skill.CategoryTechnical, p.TechnicalSkills},
		{skill.CategorySoft, p.SoftSkills},
		{skill.CategoryDomain, p.DomainKnowledge},
		{skill.CategoryCertification, p.Certifications},
	}

	out := make([]skill.Skill, 0)
	for _, g := range groups {
		for _, e := range g.entries {
			conf := 0.5
			if e.Confidence != nil {
				conf = skill.ClampConfidence(float64(*e.Confidence))
			}
			item := SkillItem{
				Name:       strings.TrimSpace(string(e.Name)),
				Category:   string(g.cat),
				Confidence: conf,
			}
			if err := validate.Struct(item); err != nil {
				continue
			}
			out = append(out, skill.Skill{Name: item.Name, Category: g.cat, Confidence: item.Confidence})
		}
	}

	out = skill.Dedupe(out)
	if len(out) == 0 {
		return Fail[[]skill.Skill](ErrNoSkills)
	}
	return Ok(out)
}

// DecodeBatchMatches converts a batch evaluation response. Fields with the
// wrong shape fall back to zero values; entries without a usable job_id, with
// an index outside the batch, or repeating an earlier index are dropped.
func DecodeBatchMatches(text string, batchSize int) Result[[]BatchMatch] {
	raw, err := ExtractJSON(text, '[')
	if err != nil {
		return Fail[[]BatchMatch](err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return Fail[[]BatchMatch](fmt.Errorf("%w: %v", ErrMalformedOutput, err))
	}

	out := make([]BatchMatch, 0, len(entries))
	seen := make(map[int]struct{}, len(entries))
	for _, rawEntry := range entries {
		var e matchEntry
		if err := json.Unmarshal(rawEntry, &e); err != nil {
			continue
		}
		if e.JobID == nil {
			continue
		}

		m := BatchMatch{
			Index:          int(*e.JobID),
			BatchSize:      batchSize,
			Score:          clampUnit(float64(e.MatchScore)),
			MatchingSkills: dedupeFold(e.MatchingSkills, nil),
			Explanation:    strings.TrimSpace(string(e.MatchExplanation)),
		}
		m.MissingSkills = dedupeFold(e.MissingSkills, m.MatchingSkills)
		if len(m.MissingSkills) > maxMissingSkills {
			m.MissingSkills = m.MissingSkills[:maxMissingSkills]
		}
		if err := validate.Struct(m); err != nil {
			continue
		}
		if _, dup := seen[m.Index]; dup {
			continue
		}
		seen[m.Index] = struct{}{}
		out = append(out, m)
	}
	return Ok(out)
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// maxMissingSkills matches the heuristic's cap so both paths return the same shape.
const maxMissingSkills = 3

// dedupeFold trims in, drops blanks and case-insensitive repeats, and drops
// anything already in exclude. Order is kept.
func dedupeFold(in, exclude []string) []string {
	seen := make(map[string]struct{}, len(in)+len(exclude))
	for _, s := range exclude {
		seen[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	out := make([]string, 0, len(in))
	for _, s := range compactStrings(in) {
		k := strings.ToLower(s)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// The loose* types never fail decoding: a value of the wrong shape leaves the
// zero value in place.

type looseFloat float64

func (f *looseFloat) UnmarshalJSON(b []byte) error {
	if v, ok := parseNumber(b); ok {
		*f = looseFloat(v)
	}
	return nil
}

type looseInt int

// An unusable job_id decodes to -1 so validation rejects the entry.
func (n *looseInt) UnmarshalJSON(b []byte) error {
	v, ok := parseNumber(b)
	if !ok || v != math.Trunc(v) {
		*n = -1
		return nil
	}
	*n = looseInt(v)
	return nil
}

func parseNumber(b []byte) (float64, bool) {
	var v float64
	if err := json.Unmarshal(b, &v); err == nil {
		return v, true
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return 0, false
	}
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return p, true
}

type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err == nil {
		*s = looseString(v)
	}
	return nil
}

type looseStrings []string

func (ss *looseStrings) UnmarshalJSON(b []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		var v string
		if err := json.Unmarshal(it, &v); err == nil {
			out = append(out, v)
		}
	}
	*ss = out
	return nil
}
