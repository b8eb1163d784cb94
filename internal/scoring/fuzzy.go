// Package scoring compares job requirement labels against candidate labels
// and produces a bounded weighted similarity score.
package scoring

import (
	"github.com/agnivade/levenshtein"
)

// DefaultFuzzyThreshold is the minimum ratio (0-100) for a candidate label
// to count as matching a job label.
const DefaultFuzzyThreshold = 80

// Ratio returns the textual similarity of two strings on a 0-100 scale,
// derived from edit distance relative to the longer string.
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 100
	}

	dist := levenshtein.ComputeDistance(a, b)
	ratio := 100 * (longest - dist) / longest
	if ratio < 0 {
		ratio = 0
	}
	return ratio
}

// bestMatch returns the candidate's closest label among pool and its ratio.
// An empty pool yields ("", 0).
func bestMatch(label string, pool []string) (string, int) {
	best := ""
	bestScore := 0
	for _, p := range pool {
		if r := Ratio(label, p); r > bestScore || best == "" {
			best = p
			bestScore = r
		}
	}
	return best, bestScore
}

// fuzzyMatchLabels matches every candidate label against the job labels.
// Matches at or above threshold are reported by the job label they hit;
// the rest are returned unmatched.
func fuzzyMatchLabels(jobLabels, candidateLabels []string, threshold int) (matched, unmatched []string) {
	for _, label := range candidateLabels {
		best, score := bestMatch(label, jobLabels)
		if best != "" && score >= threshold {
			matched = append(matched, best)
		} else {
			unmatched = append(unmatched, label)
		}
	}
	return matched, unmatched
}
