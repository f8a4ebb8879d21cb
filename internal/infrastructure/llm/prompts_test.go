package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestClipText_KeepsRunesWhole(t *testing.T) {
	assert.Equal(t, "abc", clipText("abc", 10))
	assert.Equal(t, "ab", clipText("abé", 3))

	long := strings.Repeat("a", maxPromptTextLen-1) + "ééé"
	got := clipText(long, maxPromptTextLen)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, maxPromptTextLen-1, len(got))
}

func TestBuildSkillPrompt_ClipsLongText(t *testing.T) {
	text := strings.Repeat("a", maxPromptTextLen-1) + "ü and more"
	p := BuildSkillPrompt(text)
	assert.True(t, utf8.ValidString(p))
	assert.NotContains(t, p, "and more")
}
