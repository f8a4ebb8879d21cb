package matching

// Vocabulary is scanned, in declaration order, to report terms a posting
// mentions that the candidate did not match.
var Vocabulary = []string{
	"Python", "JavaScript", "Java", "React", "Angular", "Vue", "Node.js",
	"SQL", "MongoDB", "Express", "Django", "Flask", "AWS", "Azure", "GCP",
	"Docker", "Kubernetes", "CI/CD", "Git", "Agile", "TypeScript", "Redux",
	"REST API", "GraphQL", "NoSQL", "CSS", "HTML", "Spring", "Hibernate",
	"Microservices", "Unit Testing", "TDD", "Ruby", "Go", "Swift",
}
