package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountMentions(t *testing.T) {
	tests := []struct {
		name string
		text string
		term string
		want int
	}{
		{name: "single word", text: "we use python daily", term: "Python", want: 1},
		{name: "adjacent repeats", text: "python python", term: "python", want: 2},
		{name: "not inside a word", text: "going to django", term: "Go", want: 0},
		{name: "punctuation boundary", text: "go, rust and (go)", term: "go", want: 2},
		{name: "symbols in term", text: "c++ and c# developers", term: "C++", want: 1},
		{name: "dotted term", text: "node.js/react", term: "Node.js", want: 1},
		{name: "multi word", text: "strong problem solving skills", term: "Problem Solving", want: 1},
		{name: "empty term", text: "anything", term: " ", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountMentions(tt.text, tt.term))
		})
	}
}

func TestExtractFromDictionary(t *testing.T) {
	text := "Senior Python engineer. Python, Docker and Kubernetes. Python scripting. Strong Leadership."
	got := ExtractFromDictionary(text)
	require.Len(t, got, 4)

	assert.Equal(t, "Python", got[0].Name)
	assert.Equal(t, CategoryTechnical, got[0].Category)
	assert.InDelta(t, 0.8, got[0].Confidence, 1e-9)

	assert.Equal(t, "Docker", got[1].Name)
	assert.InDelta(t, 0.6, got[1].Confidence, 1e-9)
	assert.Equal(t, "Kubernetes", got[2].Name)

	assert.Equal(t, "Leadership", got[3].Name)
	assert.Equal(t, CategorySoft, got[3].Category)
}

func TestExtractFromDictionary_ConfidenceCap(t *testing.T) {
	text := "sql sql sql sql sql sql sql sql"
	got := ExtractFromDictionary(text)
	require.Len(t, got, 1)
	assert.Equal(t, "SQL", got[0].Name)
	assert.InDelta(t, 0.95, got[0].Confidence, 1e-9)
}

func TestExtractFromDictionary_Empty(t *testing.T) {
	assert.Empty(t, ExtractFromDictionary("   "))
	assert.Empty(t, ExtractFromDictionary("nothing relevant here"))
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, CategorySoft, Categorize("Teamwork"))
	assert.Equal(t, CategoryCertification, Categorize("AWS Certified Developer"))
	assert.Equal(t, CategoryTechnical, Categorize("Kotlin"))
}

func TestDedupe(t *testing.T) {
	in := []Skill{{Name: " Go "}, {Name: "go"}, {Name: ""}, {Name: "SQL"}}
	got := Dedupe(in)
	require.Len(t, got, 2)
	assert.Equal(t, "Go", got[0].Name)
	assert.Equal(t, "SQL", got[1].Name)
}
