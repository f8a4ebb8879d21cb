package llm

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"career-match/internal/domain/job"
)

const maxPromptTextLen = 12000

// clipText cuts s to at most n bytes without splitting a rune.
func clipText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// BuildSkillPrompt asks for categorized skills with confidences.
func BuildSkillPrompt(text string) string {
	text = clipText(strings.TrimSpace(text), maxPromptTextLen)

	var sb strings.Builder
	sb.WriteString("You are an expert technical recruiter. Extract the candidate's skills from the resume text below.\n\n")
	sb.WriteString("Return ONLY a JSON object with exactly these keys:\n")
	sb.WriteString(`{
  "technical_skills": [{"name": "skill name", "confidence": 0.95}],
  "soft_skills": [{"name": "skill name", "confidence": 0.8}],
  "domain_knowledge": [{"name": "domain", "confidence": 0.7}],
  "certifications": [{"name": "certification name", "confidence": 0.95}]
}`)
	sb.WriteString("\n\nConfidence is a number between 0.0 and 1.0. Use short canonical names (e.g. \"Python\", \"Kubernetes\"). ")
	sb.WriteString("Use empty arrays for categories with no entries.\n\n")
	sb.WriteString("RESUME TEXT:\n")
	sb.WriteString(text)
	sb.WriteString("\n")
	return sb.String()
}

type promptJob struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Company            string   `json:"company"`
	ExtractedSkills    []string `json:"extracted_skills"`
	DescriptionSummary string   `json:"description_summary"`
}

// BuildMatchPrompt asks for one evaluation per job, keyed by the job's index
// within the batch.
func BuildMatchPrompt(skillNames []string, jobs []job.Posting) (string, error) {
	data := make([]promptJob, 0, len(jobs))
	for i, j := range jobs {
		skills := j.ExtractedSkills
		if skills == nil {
			skills = []string{}
		}
		data = append(data, promptJob{
			ID:                 i,
			Title:              j.Title,
			Company:            j.Company,
			ExtractedSkills:    skills,
			DescriptionSummary: job.TruncateDescription(j.Description),
		})
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("You are an expert career advisor. Evaluate how well a candidate's skills match each job posting.\n\n")
	sb.WriteString("USER SKILLS:\n")
	sb.WriteString(strings.Join(skillNames, ", "))
	sb.WriteString("\n\nJOB POSTINGS (JSON):\n")
	sb.Write(b)
	sb.WriteString("\n\nFor each job provide a match score between 0.0 and 1.0, the candidate skills that match, ")
	sb.WriteString("the important skills the candidate is missing and a one sentence explanation.\n")
	sb.WriteString("Return ONLY a JSON array with one object per job:\n")
	sb.WriteString(`[{"job_id": 0, "match_score": 0.85, "matching_skills": ["Skill1"], "missing_skills": ["Skill2"], "match_explanation": "..."}]`)
	sb.WriteString("\njob_id must be the \"id\" of the job in the input.\n")
	return sb.String(), nil
}
