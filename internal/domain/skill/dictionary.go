package skill

import "strings"

// Reference is the fixed dictionary scanned when no external extractor is
// available. Order is significant: extraction output follows it.
var Reference = []string{
	"Python", "JavaScript", "TypeScript", "Java", "C#", "C++", "Go", "Ruby", "PHP", "Swift", "Kotlin",
	"React", "Angular", "Vue.js", "Node.js", "Express", "Django", "Flask", "FastAPI",
	"HTML", "CSS", "SASS", "LESS", "Bootstrap", "Tailwind CSS",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform", "CI/CD", "Jenkins", "GitHub Actions",
	"SQL", "MongoDB", "PostgreSQL", "MySQL", "SQLite", "Redis", "Elasticsearch",
	"Machine Learning", "Deep Learning", "NLP", "TensorFlow", "PyTorch", "Keras", "scikit-learn",
	"Data Analysis", "Data Visualization", "Pandas", "NumPy", "Matplotlib", "Tableau", "Power BI",
	"Communication", "Leadership", "Teamwork", "Problem Solving", "Critical Thinking",
	"Time Management", "Adaptability", "Creativity", "Emotional Intelligence",
}

var softSkills = map[string]struct{}{
	"communication":          {},
	"leadership":             {},
	"teamwork":               {},
	"problem solving":        {},
	"critical thinking":      {},
	"time management":        {},
	"adaptability":           {},
	"creativity":             {},
	"emotional intelligence": {},
}

func IsSoft(name string) bool {
	_, ok := softSkills[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Categorize classifies a dictionary hit.
func Categorize(name string) Category {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "certified") || strings.Contains(lower, "certification") {
		return CategoryCertification
	}
	if IsSoft(name) {
		return CategorySoft
	}
	return CategoryTechnical
}
