package skill

import "strings"

// ExtractFromDictionary scans text for every Reference entry using whole-word,
// case-insensitive matching. Confidence grows with the number of mentions:
// min(0.5 + 0.1*count, 0.95).
func ExtractFromDictionary(text string) []Skill {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return nil
	}

	out := make([]Skill, 0)
	for _, name := range Reference {
		c := CountMentions(lower, name)
		if c <= 0 {
			continue
		}
		conf := 0.5 + 0.1*float64(c)
		if conf > 0.95 {
			conf = 0.95
		}
		out = append(out, Skill{Name: name, Category: Categorize(name), Confidence: conf})
	}
	return out
}

// ExtractNames is the name-only form used when tagging job postings.
func ExtractNames(text string) []string {
	return Names(ExtractFromDictionary(text))
}

// CountMentions counts whole-word occurrences of term in textLower, which
// must already be lowercase. A word boundary is any character outside
// [a-z0-9] or the edge of the text.
func CountMentions(textLower, term string) int {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return 0
	}

	count := 0
	from := 0
	for from <= len(textLower)-len(needle) {
		i := strings.Index(textLower[from:], needle)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(needle)
		if isBoundary(textLower, start-1) && isBoundary(textLower, end) {
			count++
		}
		from = start + 1
	}
	return count
}

func isBoundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9')
}
