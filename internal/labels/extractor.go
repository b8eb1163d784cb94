// Package labels extracts normalized skill and experience tokens from free
// text such as resumes and job descriptions.
package labels

import (
	"fmt"
	"regexp"
	"strings"
)

// vocabulary is the fixed skill list scanned in order. Extraction output
// preserves this order, so changing it changes downstream label sets.
var vocabulary = []string{
	// Programming languages
	"python", "java", "c++", "c#", "javascript", "typescript", "go", "rust", "php", "swift", "kotlin",

	// Frontend frameworks
	"react", "angular", "vue", "next.js", "svelte", "bootstrap", "tailwind",

	// Backend frameworks
	"node", "express", "django", "flask", "fastapi", "spring", "spring boot", "laravel", "ruby on rails",

	// Databases
	"mysql", "postgresql", "mongodb", "sqlite", "oracle", "redis", "cassandra", "dynamodb",

	// Cloud & DevOps
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "terraform", "ansible",

	// Data Science & ML
	"pandas", "numpy", "matplotlib", "seaborn", "scikit-learn", "tensorflow", "pytorch", "keras", "openai", "huggingface",

	// Big Data
	"hadoop", "spark", "kafka", "airflow",

	// APIs
	"rest api", "graphql", "grpc", "postman", "swagger",

	// Tools & Misc
	"git", "github", "gitlab", "bitbucket", "jira", "figma", "excel", "power bi", "tableau",

	// Other
	"nlp", "data analysis", "data visualization", "linux", "agile", "scrum",
}

var experiencePattern = regexp.MustCompile(`(\d+)\s*\+?\s*(years?|yrs?)`)

// Extract returns the deduplicated skill tokens found in text, in vocabulary
// order, followed by a single experience token. Only the first "N years"
// mention is used; when none is found the "0 year" sentinel is appended so
// every label set carries an experience entry. Extract is a pure function of
// its input.
func Extract(text string) []string {
	text = strings.ToLower(text)

	extracted := make([]string, 0, 16)
	seen := make(map[string]bool, 16)
	for _, kw := range vocabulary {
		if strings.Contains(text, kw) && !seen[kw] {
			extracted = append(extracted, kw)
			seen[kw] = true
		}
	}

	if m := experiencePattern.FindStringSubmatch(text); m != nil {
		extracted = append(extracted, fmt.Sprintf("%s year", m[1]))
	} else {
		extracted = append(extracted, "0 year")
	}

	return extracted
}
