package search

import (
	"strings"
	"unicode"
)

const maxVariants = 10

// QueryContext is a user query after normalization and synonym expansion.
// Variants always starts with the normalized query and holds at most 10 entries.
type QueryContext struct {
	Original   string
	Normalized string
	Variants   []string
}

// SearchText joins the variants for the OR-semantics full-text search.
func (q QueryContext) SearchText() string {
	return strings.Join(q.Variants, " ")
}

func ProcessQuery(input string) QueryContext {
	q := QueryContext{Original: input, Normalized: NormalizeQuery(input)}
	q.Variants = ExpandQuery(q.Normalized)
	return q
}

// NormalizeQuery lowercases input, keeps letters, digits and the symbols that
// appear in technology names (+ # .), and collapses whitespace.
func NormalizeQuery(input string) string {
	keep := func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), r == '+', r == '#', r == '.':
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return ' '
		}
		return -1
	}

	words := strings.Fields(strings.Map(keep, input))
	out := words[:0]
	for _, w := range words {
		// sentence dots are noise, "node.js" and "c++" are not
		if w = strings.Trim(w, "."); w != "" {
			out = append(out, w)
		}
	}
	return strings.Join(out, " ")
}

// compactKeys maps "datascience" to "data science" for every multi-word
// synonym key.
var compactKeys = func() map[string]string {
	m := make(map[string]string)
	for k := range Synonyms {
		if strings.Contains(k, " ") {
			m[strings.ReplaceAll(k, " ", "")] = k
		}
	}
	return m
}()

type variantSet struct {
	list []string
	seen map[string]struct{}
}

func (v *variantSet) add(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	if _, ok := v.seen[s]; ok {
		return
	}
	v.seen[s] = struct{}{}
	v.list = append(v.list, s)
}

// addWithTail adds every phrase followed by tail.
func (v *variantSet) addWithTail(phrases []string, tail []string) {
	rest := strings.Join(tail, " ")
	for _, p := range phrases {
		v.add(p + " " + rest)
	}
}

// ExpandQuery returns normalized followed by synonym variants: whole-query
// synonyms, then synonyms of the leading one or two words with the remainder
// kept, then the spaced form of a compacted first word ("fullstack").
func ExpandQuery(normalized string) []string {
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return []string{}
	}

	v := &variantSet{seen: make(map[string]struct{}, maxVariants)}
	v.add(normalized)
	for _, syn := range GetSynonyms(normalized) {
		v.add(syn)
	}

	words := strings.Fields(normalized)
	v.addWithTail(GetSynonyms(words[0]), words[1:])
	if len(words) >= 2 {
		v.addWithTail(GetSynonyms(words[0]+" "+words[1]), words[2:])
	}

	if spaced, ok := compactKeys[words[0]]; ok {
		v.addWithTail([]string{spaced}, words[1:])
		v.addWithTail(Synonyms[spaced], words[1:])
	}

	if len(v.list) > maxVariants {
		return v.list[:maxVariants]
	}
	return v.list
}

// FallbackFirstWord is the retry query used when the full query finds little.
func FallbackFirstWord(normalized string) string {
	if words := strings.Fields(normalized); len(words) > 0 {
		return words[0]
	}
	return ""
}
