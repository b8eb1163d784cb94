package labels

import (
	"regexp"
	"strconv"
	"strings"
)

var experienceKeywords = []string{"year", "yr", "experience", "exp"}

var numberPattern = regexp.MustCompile(`\d+(\.\d+)?`)

// NormalizeExperience extracts the numeric value from experience labels like
// "2 years" or "3+ yr exp". Labels without an experience keyword, or without
// a number, yield 0.
func NormalizeExperience(label string) float64 {
	label = strings.ToLower(label)

	hasKeyword := false
	for _, kw := range experienceKeywords {
		if strings.Contains(label, kw) {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword {
		return 0
	}

	m := numberPattern.FindString(label)
	if m == "" {
		return 0
	}
	value, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return value
}
