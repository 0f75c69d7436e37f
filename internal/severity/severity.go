// Package severity synthesizes all analysis signals into an overall
// security verdict. The rules are deterministic: each appends at most one
// string to the issue, warning or strength lists, and the overall rating
// is evaluated in strict CRITICAL, WARNING, EXCELLENT, GOOD precedence
// because the conditions overlap.
package severity

import (
	"fmt"

	"github.com/KodyMike/rndSequencer/internal/structure"
	"github.com/KodyMike/rndSequencer/pkg/report"
)

// RecommendedMinimumBits is the effective-security-bits level treated as
// adequate for session tokens.
const RecommendedMinimumBits = 128

// Degraded-report tags. Downstream consumers branch on these prefixes to
// avoid rendering statistics computed from zero samples.
const (
	TagParameterNotFound = "PARAMETER_NOT_FOUND:"
	TagRequestFailed     = "REQUEST_FAILED:"
	TagNoData            = "NO_DATA:"
)

// Input carries every signal the classifier consumes.
type Input struct {
	SampleSize          int
	EffectiveBits       float64
	BitBiasMinEntropy   float64
	ShannonCharEntropy  float64
	TotalBits           int
	ChiSquaredMedianP   float64
	RunsMedianP         float64
	SerialCorrelation   float64 // absolute value
	CompressionRatio    float64
	CompressionOK       bool
	NearDuplicates      int
	DuplicatePercentage float64
	Sequential          bool
	Timestamps          bool
	CommonPrefixLength  int
}

// sufficientBits gates the statistical-failure rules; below this the
// median p-values carry no weight.
const sufficientBits = 100

// PredictabilityScore accumulates pattern evidence on a 0-100 scale.
func PredictabilityScore(sequential, timestamps bool, duplicatePercentage float64, prefixLength int) int {
	score := 0
	if sequential {
		score += 40
	}
	if timestamps {
		score += 30
	}
	if duplicatePercentage > 10 {
		score += 20
	}
	if prefixLength > 3 {
		score += 10
	}
	return score
}

// Classify evaluates the rule table over the analysis signals.
func Classify(in Input) report.Verdict {
	v := report.Verdict{
		EffectiveBits:      in.EffectiveBits,
		RecommendedMinimum: RecommendedMinimumBits,
	}
	issue := func(format string, args ...any) {
		v.Issues = append(v.Issues, fmt.Sprintf(format, args...))
	}
	warning := func(format string, args ...any) {
		v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
	}
	strength := func(format string, args ...any) {
		v.Strengths = append(v.Strengths, fmt.Sprintf(format, args...))
	}

	switch {
	case in.EffectiveBits < 64:
		issue("effective security is only %.1f bits, far below the %d-bit recommendation", in.EffectiveBits, RecommendedMinimumBits)
	case in.EffectiveBits < 80:
		issue("effective security of %.1f bits is below the 80-bit floor for session tokens", in.EffectiveBits)
	case in.EffectiveBits < RecommendedMinimumBits:
		warning("effective security of %.1f bits is under the recommended %d bits", in.EffectiveBits, RecommendedMinimumBits)
	default:
		strength("effective security of %.1f bits meets the %d-bit recommendation", in.EffectiveBits, RecommendedMinimumBits)
	}

	switch {
	case in.BitBiasMinEntropy < 0.5:
		issue("severe bit bias: min-entropy %.2f bits per bit", in.BitBiasMinEntropy)
	case in.BitBiasMinEntropy < 0.8:
		warning("noticeable bit bias: min-entropy %.2f bits per bit", in.BitBiasMinEntropy)
	case in.BitBiasMinEntropy > 0.95:
		strength("bit distribution is well balanced (min-entropy %.2f bits per bit)", in.BitBiasMinEntropy)
	}

	switch {
	case in.ShannonCharEntropy < 3.0:
		warning("low character diversity: %.2f bits per character", in.ShannonCharEntropy)
	case in.ShannonCharEntropy >= 4.5:
		strength("high character diversity: %.2f bits per character", in.ShannonCharEntropy)
	}

	sufficient := in.TotalBits >= sufficientBits
	if sufficient {
		switch {
		case in.ChiSquaredMedianP < 0.01:
			issue("chi-squared test indicates biased bit distribution (median p %.4f)", in.ChiSquaredMedianP)
		case in.ChiSquaredMedianP < structure.AuxiliaryAlpha:
			warning("chi-squared test is marginal (median p %.4f)", in.ChiSquaredMedianP)
		default:
			strength("chi-squared test shows no bit-distribution bias")
		}
	}

	switch {
	case in.SerialCorrelation > 0.5:
		issue("strong serial correlation between adjacent bits (%.2f)", in.SerialCorrelation)
	case in.SerialCorrelation > 0.2:
		warning("noticeable serial correlation between adjacent bits (%.2f)", in.SerialCorrelation)
	default:
		strength("no significant serial correlation")
	}

	if sufficient {
		switch {
		case in.RunsMedianP < 0.01:
			issue("runs test indicates non-random bit transitions (median p %.4f)", in.RunsMedianP)
		case in.RunsMedianP < structure.AuxiliaryAlpha:
			warning("runs test is marginal (median p %.4f)", in.RunsMedianP)
		default:
			strength("runs test shows random bit transitions")
		}
	}

	if sufficient && in.CompressionOK {
		switch {
		case in.CompressionRatio > 1.5:
			issue("tokens are highly compressible (LZ ratio %.2f): strong latent structure", in.CompressionRatio)
		case in.CompressionRatio > 1.10:
			warning("tokens show compressible structure (LZ ratio %.2f)", in.CompressionRatio)
		default:
			strength("no latent structure found by compression analysis")
		}
	}

	if in.SampleSize > 0 && float64(in.NearDuplicates) > 0.01*float64(in.SampleSize) {
		warning("%d near-duplicate tokens found (Hamming distance 1-2)", in.NearDuplicates)
	} else if in.NearDuplicates == 0 {
		strength("no near-duplicate tokens")
	}

	switch {
	case in.DuplicatePercentage > 10:
		issue("%.1f%% of tokens are duplicates", in.DuplicatePercentage)
	case in.DuplicatePercentage > 5:
		warning("%.1f%% of tokens are duplicates", in.DuplicatePercentage)
	case in.DuplicatePercentage < 2:
		strength("virtually no duplicate tokens")
	}

	if in.Sequential {
		issue("tokens are sequential: trivially predictable")
	} else {
		strength("no sequential pattern")
	}
	if in.Timestamps {
		issue("tokens look like timestamps: predictable from request time")
	}

	score := PredictabilityScore(in.Sequential, in.Timestamps, in.DuplicatePercentage, in.CommonPrefixLength)
	switch {
	case score > 50:
		issue("predictability score %d/100", score)
	case score > 20:
		warning("predictability score %d/100", score)
	default:
		strength("no predictable generation pattern detected")
	}

	severe := in.SerialCorrelation > 0.5 ||
		(sufficient && (in.ChiSquaredMedianP < 0.001 || in.RunsMedianP < 0.001))

	switch {
	case in.EffectiveBits < 64 || (in.EffectiveBits < 80 && severe):
		v.OverallRating = report.RatingCritical
	case len(v.Warnings) > 0 || in.EffectiveBits < RecommendedMinimumBits || severe:
		v.OverallRating = report.RatingWarning
	case len(v.Strengths) >= 3:
		v.OverallRating = report.RatingExcellent
	default:
		v.OverallRating = report.RatingGood
	}
	return v
}

// Degraded builds the verdict for a sample with no analyzable tokens. The
// single issue begins with a machine-parseable tag distinguishing "the
// parameter was never found" from "every request failed" from generic
// absence of data.
func Degraded(failures report.FailureCounts) report.Verdict {
	var tag, detail string
	switch {
	case failures.NotFound > 0 && failures.NotFound >= failures.RequestFailed:
		tag = TagParameterNotFound
		detail = fmt.Sprintf("the parameter was not found in %d of %d responses", failures.NotFound, failures.Total())
	case failures.RequestFailed > 0:
		tag = TagRequestFailed
		detail = fmt.Sprintf("%d of %d requests failed", failures.RequestFailed, failures.Total())
	default:
		tag = TagNoData
		detail = "no tokens were captured"
	}
	return report.Verdict{
		OverallRating:      report.RatingWarning,
		Issues:             []string{tag + " " + detail},
		RecommendedMinimum: RecommendedMinimumBits,
	}
}
