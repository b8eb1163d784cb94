package scoring

import (
	"context"
	"math"
	"strings"

	"github.com/martin/hirepilot/internal/labels"
)

// Priority labels count double when weighting the similarity vectors.
const priorityWeight = 2.0

// Embedder produces sentence embeddings for the optional semantic blend.
// llm.Client satisfies this interface.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Options tunes a similarity computation.
type Options struct {
	// PriorityLabels are weighted double in both vectors.
	PriorityLabels []string
	// FuzzyThreshold overrides DefaultFuzzyThreshold when positive.
	FuzzyThreshold int
	// Embedder enables 50/50 semantic blending when non-nil.
	Embedder Embedder
}

// Result is the outcome of a similarity computation.
type Result struct {
	// Score is in [0,1], rounded to 3 decimals.
	Score float64
	// Matched lists the job labels the candidate fuzzily matched.
	Matched []string
	// Missing lists job labels with no candidate match.
	Missing []string
}

// Score compares job labels against candidate labels. Candidate labels are
// fuzzy-matched to job labels, every label in the union is weighted
// (experience fulfillment capped at 1.0, priority labels doubled, everything
// else 1.0), and the score is the cosine similarity of the weighted job and
// candidate vectors. There is no error branch: degenerate inputs produce a
// zero or near-zero score.
func Score(ctx context.Context, jobLabels, candidateLabels []string, opts Options) Result {
	threshold := opts.FuzzyThreshold
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}

	jobNorm := normalize(jobLabels)
	candNorm := normalize(candidateLabels)

	matched, _ := fuzzyMatchLabels(jobNorm, candNorm, threshold)
	union := labelUnion(jobNorm, candNorm)
	weights := labelWeights(union, normalize(opts.PriorityLabels), jobNorm)

	matchedSet := toSet(matched)
	jobSet := toSet(jobNorm)

	jobVec := make([]float64, len(union))
	candVec := make([]float64, len(union))
	for i, label := range union {
		if jobSet[label] {
			jobVec[i] = weights[label]
		}
		if matchedSet[label] {
			candVec[i] = weights[label]
		}
	}

	score := cosineSimilarity(jobVec, candVec)

	if opts.Embedder != nil {
		if semantic, ok := semanticSimilarity(ctx, opts.Embedder, jobLabels, candidateLabels); ok {
			score = (score + semantic) / 2
		}
	}

	missing := make([]string, 0)
	for _, label := range jobNorm {
		if !matchedSet[label] {
			missing = append(missing, label)
		}
	}

	return Result{
		Score:   round3(score),
		Matched: matched,
		Missing: missing,
	}
}

// labelWeights assigns a weight to every label in the union. Experience
// labels are scored as fulfillment of the job's own experience requirement,
// capped at 1.0 so over-qualification is never rewarded beyond parity.
func labelWeights(union, priorityLabels, jobLabels []string) map[string]float64 {
	jdExp := 0.0
	for _, label := range jobLabels {
		if exp := labels.NormalizeExperience(label); exp > 0 {
			jdExp = exp
			break // a job description carries one experience requirement
		}
	}

	prioritySet := toSet(priorityLabels)

	weights := make(map[string]float64, len(union))
	for _, label := range union {
		exp := labels.NormalizeExperience(label)
		switch {
		case exp > 0 && jdExp > 0:
			weights[label] = math.Min(exp/jdExp, 1.0)
		case prioritySet[label]:
			weights[label] = priorityWeight
		default:
			weights[label] = 1.0
		}
	}
	return weights
}

// semanticSimilarity embeds the joined label texts and returns their cosine
// similarity. Embedding failures degrade to the lexical score alone.
func semanticSimilarity(ctx context.Context, embedder Embedder, jobLabels, candidateLabels []string) (float64, bool) {
	jobEmbed, err := embedder.EmbedText(ctx, strings.Join(jobLabels, " "))
	if err != nil {
		return 0, false
	}
	candEmbed, err := embedder.EmbedText(ctx, strings.Join(candidateLabels, " "))
	if err != nil {
		return 0, false
	}
	if len(jobEmbed) != len(candEmbed) {
		return 0, false
	}

	a := make([]float64, len(jobEmbed))
	b := make([]float64, len(candEmbed))
	for i := range jobEmbed {
		a[i] = float64(jobEmbed[i])
		b[i] = float64(candEmbed[i])
	}
	return cosineSimilarity(a, b), true
}

// cosineSimilarity is the standard dot-product-over-norms measure. A zero
// vector on either side yields 0 rather than dividing by zero.
func cosineSimilarity(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func normalize(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

// labelUnion merges both label lists preserving first-seen order, so the
// vector layout is deterministic for identical inputs.
func labelUnion(a, b []string) []string {
	union := make([]string, 0, len(a)+len(b))
	seen := make(map[string]bool, len(a)+len(b))
	for _, label := range a {
		if !seen[label] {
			union = append(union, label)
			seen[label] = true
		}
	}
	for _, label := range b {
		if !seen[label] {
			union = append(union, label)
			seen[label] = true
		}
	}
	return union
}

func toSet(in []string) map[string]bool {
	set := make(map[string]bool, len(in))
	for _, s := range in {
		set[s] = true
	}
	return set
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
