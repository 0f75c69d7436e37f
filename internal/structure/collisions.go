package structure

import (
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/KodyMike/rndSequencer/pkg/report"
)

// nearDuplicateMaxDistance is the Hamming distance up to which two tokens
// count as near-duplicates.
const nearDuplicateMaxDistance = 2

// collisionSampleTarget caps the number of pairwise comparisons; the
// stride is chosen so that roughly this many pairs are inspected.
const collisionSampleTarget = 1000

// hammingDistance is defined between equal-length strings only; unequal
// lengths are treated as maximally distant.
func hammingDistance(a, b string) int {
	if len(a) != len(b) {
		longer := len(a)
		if len(b) > longer {
			longer = len(b)
		}
		return longer
	}
	d := 0
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}

// AnalyzeCollisions counts exact duplicates over the whole sample and
// estimates near-duplicate incidence and mean pairwise distance from a
// systematic sample of pairs (i, i+stride). The stride keeps the cost at
// O(n) comparisons instead of O(n²); for very large samples the distance
// figures are estimates, not exact values. Levenshtein similarity is
// recorded for sampled unequal-length pairs, where Hamming distance is
// undefined.
func AnalyzeCollisions(tokens []string) report.CollisionAnalysis {
	n := len(tokens)
	result := report.CollisionAnalysis{}
	if n == 0 {
		return result
	}

	counts := make(map[string]int, n)
	for _, token := range tokens {
		counts[token]++
	}
	result.ExactDuplicates = n - len(counts)

	// percentage of tokens whose value occurs more than once: 100 for an
	// all-identical sample
	duplicated := 0
	for _, c := range counts {
		if c > 1 {
			duplicated += c
		}
	}
	result.DuplicatePercentage = float64(duplicated) / float64(n) * 100

	if n < 2 {
		return result
	}

	stride := (n + collisionSampleTarget - 1) / collisionSampleTarget
	result.SampleStride = stride

	hammingSum := 0
	ratioSum := 0.0
	ratioCount := 0
	for i := 0; i+stride < n; i += stride {
		a, b := tokens[i], tokens[i+stride]
		result.SampledPairs++

		d := hammingDistance(a, b)
		hammingSum += d
		if d >= 1 && d <= nearDuplicateMaxDistance {
			result.NearDuplicates++
		}
		if len(a) != len(b) {
			ratioSum += levenshtein.RatioForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
			ratioCount++
		}
	}
	if result.SampledPairs > 0 {
		result.MeanHammingDistance = float64(hammingSum) / float64(result.SampledPairs)
	}
	if ratioCount > 0 {
		result.MeanLevenshteinRatio = ratioSum / float64(ratioCount)
	}
	return result
}
