package search

// Synonyms maps a normalized query to alternative phrasings seen in job
// titles. Keys and values are lowercase.
var Synonyms = map[string][]string{
	"golang":           {"go"},
	"go":               {"golang"},
	"js":               {"javascript"},
	"ts":               {"typescript"},
	"k8s":              {"kubernetes"},
	"ml":               {"machine learning"},
	"ai":               {"artificial intelligence", "machine learning"},
	"frontend":         {"front end", "frontend developer", "ui developer"},
	"backend":          {"back end", "server developer"},
	"fullstack":        {"full stack", "full stack developer"},
	"devops":           {"site reliability", "platform engineer", "sre"},
	"sre":              {"site reliability", "devops"},
	"data science":     {"data scientist", "machine learning"},
	"qa":               {"quality assurance", "test engineer"},
	"ux":               {"user experience", "product designer"},
	"machine learning": {"ml engineer", "ai engineer"},
	"node":             {"node.js", "nodejs"},
}

func GetSynonyms(query string) []string {
	if query == "" {
		return []string{}
	}
	if v, ok := Synonyms[query]; ok {
		out := make([]string, 0, len(v))
		out = append(out, v...)
		return out
	}
	return []string{}
}
