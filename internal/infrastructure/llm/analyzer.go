package llm

import (
	"context"
	"log"
	"strings"

	"career-match/internal/domain/job"
	"career-match/internal/domain/skill"
)

// SkillAnalyzer extracts skills from free text through a Generator.
type SkillAnalyzer struct {
	gen    Generator
	logger *log.Logger
}

func NewSkillAnalyzer(gen Generator, logger *log.Logger) *SkillAnalyzer {
	if logger == nil {
		logger = log.Default()
	}
	return &SkillAnalyzer{gen: gen, logger: logger}
}

func (a *SkillAnalyzer) Analyze(ctx context.Context, text string) Result[[]skill.Skill] {
	if a == nil || a.gen == nil {
		return Fail[[]skill.Skill](ErrNotConfigured)
	}
	out, err := a.gen.Generate(ctx, BuildSkillPrompt(text))
	if err != nil {
		return Fail[[]skill.Skill](err)
	}
	res := DecodeSkills(out)
	if !res.OK() {
		a.logger.Printf("[LLM] skill analysis unparseable err=%v head=%q", res.Err, head(out, 200))
	}
	return res
}

// JobMatcher evaluates a batch of postings against a candidate's skills.
type JobMatcher struct {
	gen    Generator
	logger *log.Logger
}

func NewJobMatcher(gen Generator, logger *log.Logger) *JobMatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &JobMatcher{gen: gen, logger: logger}
}

func (m *JobMatcher) MatchBatch(ctx context.Context, skillNames []string, jobs []job.Posting) Result[[]BatchMatch] {
	if m == nil || m.gen == nil {
		return Fail[[]BatchMatch](ErrNotConfigured)
	}
	prompt, err := BuildMatchPrompt(skillNames, jobs)
	if err != nil {
		return Fail[[]BatchMatch](err)
	}
	out, err := m.gen.Generate(ctx, prompt)
	if err != nil {
		return Fail[[]BatchMatch](err)
	}
	res := DecodeBatchMatches(out, len(jobs))
	if !res.OK() {
		m.logger.Printf("[LLM] batch match unparseable jobs=%d err=%v head=%q", len(jobs), res.Err, head(out, 200))
	}
	return res
}

func head(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
