package llm

import (
	"testing"

	"career-match/internal/domain/skill"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSkills(t *testing.T) {
	in := "```json\n" + `{
  "technical_skills": [{"name": "Go", "confidence": 0.9}, {"name": "", "confidence": 0.9}, {"name": "go", "confidence": 0.4}],
  "soft_skills": [{"name": "Leadership", "confidence": 1.4}],
  "domain_knowledge": [{"name": "Fintech"}],
  "certifications": [{"name": "CKA", "confidence": "0.75"}]
}` + "\n```"

	res := DecodeSkills(in)
	require.True(t, res.OK(), "%v", res.Err)

	want := []skill.Skill{
		{Name: "Go", Category: skill.CategoryTechnical, Confidence: 0.9},
		{Name: "Leadership", Category: skill.CategorySoft, Confidence: 1},
		{Name: "Fintech", Category: skill.CategoryDomain, Confidence: 0.5},
		{Name: "CKA", Category: skill.CategoryCertification, Confidence: 0.75},
	}
	assert.Equal(t, want, res.Value)
}

func TestDecodeSkills_Failures(t *testing.T) {
	res := DecodeSkills("I could not find any skills.")
	assert.False(t, res.OK())
	assert.ErrorIs(t, res.Err, ErrNoJSON)

	res = DecodeSkills(`{"technical_skills": "Go, Rust"}`)
	assert.ErrorIs(t, res.Err, ErrMalformedOutput)

	res = DecodeSkills(`{"technical_skills": [], "soft_skills": []}`)
	assert.ErrorIs(t, res.Err, ErrNoSkills)
}

func TestDecodeBatchMatches_FencedArray(t *testing.T) {
	in := "```json\n[{\"job_id\":0,\"match_score\":0.8,\"matching_skills\":[\"Python\"],\"missing_skills\":[\"SQL\"],\"match_explanation\":\"Strong Python fit.\"}]\n```"

	res := DecodeBatchMatches(in, 1)
	require.True(t, res.OK(), "%v", res.Err)
	require.Len(t, res.Value, 1)

	m := res.Value[0]
	assert.Equal(t, 0, m.Index)
	assert.Equal(t, 0.8, m.Score)
	assert.Equal(t, []string{"Python"}, m.MatchingSkills)
	assert.Equal(t, []string{"SQL"}, m.MissingSkills)
	assert.Equal(t, "Strong Python fit.", m.Explanation)
}

func TestDecodeBatchMatches_MalformedFieldsDefault(t *testing.T) {
	in := `Here you go: [
  {"job_id": 1, "match_score": "high", "matching_skills": "Go", "missing_skills": [1, "Rust", ""]},
  {"job_id": "0", "match_score": 3},
  {"job_id": 7, "match_score": 0.4},
  {"job_id": 1.5, "match_score": 0.4},
  {"match_score": 0.9},
  {"job_id": 1, "match_score": 0.99},
  "not an object"
]`

	res := DecodeBatchMatches(in, 2)
	require.True(t, res.OK(), "%v", res.Err)
	require.Len(t, res.Value, 2)

	first := res.Value[0]
	assert.Equal(t, 1, first.Index)
	assert.Equal(t, 0.0, first.Score)
	assert.Empty(t, first.MatchingSkills)
	assert.Equal(t, []string{"Rust"}, first.MissingSkills)

	second := res.Value[1]
	assert.Equal(t, 0, second.Index)
	assert.Equal(t, 1.0, second.Score)
}

func TestDecodeBatchMatches_NotJSON(t *testing.T) {
	res := DecodeBatchMatches("the service is overloaded", 3)
	assert.False(t, res.OK())

	res = DecodeBatchMatches(`[{"job_id": 0,}]`, 3)
	assert.ErrorIs(t, res.Err, ErrMalformedOutput)
}

func TestDecodeBatchMatches_SkillListsNormalized(t *testing.T) {
	in := `[{"job_id":0,"match_score":0.5,"matching_skills":[" Go ","go","Docker"],"missing_skills":["docker","Rust","RUST","Kafka","AWS","GCP"]}]`

	res := DecodeBatchMatches(in, 1)
	require.True(t, res.OK(), "%v", res.Err)
	require.Len(t, res.Value, 1)
	assert.Equal(t, []string{"Go", "Docker"}, res.Value[0].MatchingSkills)
	assert.Equal(t, []string{"Rust", "Kafka", "AWS"}, res.Value[0].MissingSkills)
}
