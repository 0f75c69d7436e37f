// Package structure implements the structural detectors: sequential and
// timestamp patterns, shared prefixes and suffixes, collision analysis,
// an LZ78 compression-ratio estimate and per-token bit-bias checks.
// These complement the statistical battery with cheap, direct evidence of
// predictable token generation.
package structure

import (
	"regexp"
	"strconv"
)

// sequentialThreshold is the fraction of incrementing adjacent pairs
// above which the sample is flagged sequential.
const sequentialThreshold = 0.5

// timestampThreshold is the fraction of timestamp-like tokens above which
// the sample is flagged.
const timestampThreshold = 0.3

// Unix-second bounds for the years 2000 through 2100.
const (
	timestampMin = 946684800
	timestampMax = 4102444800
)

var timestampRE = regexp.MustCompile(`^\d{10,13}$`)

// DetectSequential counts adjacent token pairs that increment by exactly
// one when parsed as integers. Non-numeric tokens contribute nothing.
// The fraction is over all n-1 adjacent pairs.
func DetectSequential(tokens []string) (bool, float64) {
	if len(tokens) < 2 {
		return false, 0
	}

	incrementing := 0
	for i := 1; i < len(tokens); i++ {
		prev, errPrev := strconv.ParseInt(tokens[i-1], 10, 64)
		curr, errCurr := strconv.ParseInt(tokens[i], 10, 64)
		if errPrev == nil && errCurr == nil && curr == prev+1 {
			incrementing++
		}
	}

	fraction := float64(incrementing) / float64(len(tokens)-1)
	return fraction > sequentialThreshold, fraction
}

// DetectTimestamps flags samples where more than 30% of tokens look like
// Unix timestamps between the years 2000 and 2100. Thirteen-digit values
// are interpreted as milliseconds.
func DetectTimestamps(tokens []string) (bool, float64) {
	if len(tokens) == 0 {
		return false, 0
	}

	matches := 0
	for _, token := range tokens {
		if !timestampRE.MatchString(token) {
			continue
		}
		v, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			continue
		}
		if v > timestampMax {
			v /= 1000
		}
		if v >= timestampMin && v <= timestampMax {
			matches++
		}
	}

	fraction := float64(matches) / float64(len(tokens))
	return fraction > timestampThreshold, fraction
}

// CommonPrefix returns the longest prefix shared by every token.
func CommonPrefix(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	prefix := tokens[0]
	for _, token := range tokens[1:] {
		for len(prefix) > 0 && (len(token) < len(prefix) || token[:len(prefix)] != prefix) {
			prefix = prefix[:len(prefix)-1]
		}
		if prefix == "" {
			break
		}
	}
	return prefix
}

// CommonSuffix returns the longest suffix shared by every token.
func CommonSuffix(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	suffix := tokens[0]
	for _, token := range tokens[1:] {
		for len(suffix) > 0 && (len(token) < len(suffix) || token[len(token)-len(suffix):] != suffix) {
			suffix = suffix[1:]
		}
		if suffix == "" {
			break
		}
	}
	return suffix
}
