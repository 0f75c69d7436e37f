// Package entropy implements the entropy estimators: pooled Shannon
// entropy at character and bit level, min-entropy of whole tokens and of
// the global bit bias, and per-position min-entropy across the sample.
// All estimators operate on decoded bytes (bitstream.FromBytes), except
// the character-level Shannon estimate which reads the printable tokens.
package entropy

import (
	"math"

	"github.com/KodyMike/rndSequencer/internal/bitstream"
)

// CharacterCounts builds a pooled frequency table over every character in
// every token.
func CharacterCounts(tokens []string) map[rune]int {
	counts := make(map[rune]int)
	for _, token := range tokens {
		for _, char := range token {
			counts[char]++
		}
	}
	return counts
}

// ShannonChars is the pooled character-level Shannon entropy in bits per
// character. Returns 0 for an empty sample.
func ShannonChars(tokens []string) float64 {
	counts := CharacterCounts(tokens)
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}

	h := 0.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		h -= p * math.Log2(p)
	}
	return h
}

// ShannonBits is the Shannon entropy of the bit distribution, in bits per
// bit; at most 1.0. Returns 0 for an empty sequence.
func ShannonBits(bits bitstream.Bits) float64 {
	if len(bits) == 0 {
		return 0
	}
	p1 := bits.OnesFraction()
	p0 := 1 - p1

	h := 0.0
	if p0 > 0 {
		h -= p0 * math.Log2(p0)
	}
	if p1 > 0 {
		h -= p1 * math.Log2(p1)
	}
	return h
}

// BitBiasMinEntropy is -log2(max(p0, p1)) over the bit distribution,
// capturing global 0/1 imbalance. At most 1.0 per bit.
func BitBiasMinEntropy(bits bitstream.Bits) float64 {
	if len(bits) == 0 {
		return 0
	}
	p1 := bits.OnesFraction()
	pMax := math.Max(p1, 1-p1)
	return -math.Log2(pMax)
}

// WholeTokenMinEntropy is -log2(mostFrequentCount / n) over the token
// sample. When every token is unique this saturates at log2(n), which is
// not a meaningful security bound; callers gate on the duplicate count.
func WholeTokenMinEntropy(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	counts := make(map[string]int, len(tokens))
	maxCount := 0
	for _, token := range tokens {
		counts[token]++
		if counts[token] > maxCount {
			maxCount = counts[token]
		}
	}
	return -math.Log2(float64(maxCount) / float64(len(tokens)))
}

// PerPosition holds the per-byte-offset min-entropy profile of a sample.
// TotalBits is the sum across positions; it is only a sound total-entropy
// estimate when FixedLength is true, otherwise it is a conservative,
// informational lower bound.
type PerPosition struct {
	Entropies   []float64
	Coverage    []float64
	TotalBits   float64
	FixedLength bool
}

// PerPositionMinEntropy computes, for each byte offset up to the longest
// token, the min-entropy of the byte value at that offset across the
// tokens that reach it. Coverage records the fraction of tokens reaching
// each position.
func PerPositionMinEntropy(decoded [][]byte) PerPosition {
	n := len(decoded)
	if n == 0 {
		return PerPosition{FixedLength: false}
	}

	maxLen := 0
	fixedLength := true
	for _, d := range decoded {
		if len(d) > maxLen {
			maxLen = len(d)
		}
		if len(d) != len(decoded[0]) {
			fixedLength = false
		}
	}

	result := PerPosition{
		Entropies:   make([]float64, maxLen),
		Coverage:    make([]float64, maxLen),
		FixedLength: fixedLength,
	}
	for pos := 0; pos < maxLen; pos++ {
		var counts [256]int
		contributors := 0
		maxCount := 0
		for _, d := range decoded {
			if pos >= len(d) {
				continue
			}
			contributors++
			counts[d[pos]]++
			if counts[d[pos]] > maxCount {
				maxCount = counts[d[pos]]
			}
		}
		result.Coverage[pos] = float64(contributors) / float64(n)
		if contributors > 0 {
			result.Entropies[pos] = -math.Log2(float64(maxCount) / float64(contributors))
		}
		result.TotalBits += result.Entropies[pos]
	}
	return result
}

// EffectiveSecurityBits is the conservative minimum across the entropy
// estimators. The per-position total only enters when token length is
// fixed; the whole-token estimator only when duplicates were observed,
// since min-entropy over a collision-free small sample is not a bound.
func EffectiveSecurityBits(bitBiasPerBit, avgBitsPerToken float64, perPosition PerPosition, wholeTokenMinEntropy float64, duplicates int) float64 {
	effective := bitBiasPerBit * avgBitsPerToken
	if perPosition.FixedLength && perPosition.TotalBits < effective {
		effective = perPosition.TotalBits
	}
	if duplicates > 0 && wholeTokenMinEntropy < effective {
		effective = wholeTokenMinEntropy
	}
	return effective
}
