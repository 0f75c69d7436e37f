package severity

import (
	"fmt"

	"github.com/KodyMike/rndSequencer/pkg/report"
)

// QuickInput carries the signals available on the cheap analysis path,
// which skips decoding, entropy estimation and the statistical battery.
type QuickInput struct {
	SampleSize          int
	ShannonCharEntropy  float64
	DuplicatePercentage float64
	NearDuplicates      int
	Sequential          bool
	Timestamps          bool
	CommonPrefixLength  int
}

// QuickClassify rates a sample on duplicate and pattern evidence alone.
// It never awards EXCELLENT: that requires the full entropy and
// statistical evidence. Unmeasured signals produce no strengths either,
// so the quick verdict is deliberately sparser than the full one.
func QuickClassify(in QuickInput) report.Verdict {
	v := report.Verdict{RecommendedMinimum: RecommendedMinimumBits}
	issue := func(format string, args ...any) {
		v.Issues = append(v.Issues, fmt.Sprintf(format, args...))
	}
	warning := func(format string, args ...any) {
		v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
	}

	if in.ShannonCharEntropy < 3.0 {
		warning("low character diversity: %.2f bits per character", in.ShannonCharEntropy)
	}

	switch {
	case in.DuplicatePercentage > 10:
		issue("%.1f%% of tokens are duplicates", in.DuplicatePercentage)
	case in.DuplicatePercentage > 5:
		warning("%.1f%% of tokens are duplicates", in.DuplicatePercentage)
	}
	if in.SampleSize > 0 && float64(in.NearDuplicates) > 0.01*float64(in.SampleSize) {
		warning("%d near-duplicate tokens found (Hamming distance 1-2)", in.NearDuplicates)
	}

	if in.Sequential {
		issue("tokens are sequential: trivially predictable")
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
	}

	switch {
	case in.Sequential || in.DuplicatePercentage > 50:
		v.OverallRating = report.RatingCritical
	case len(v.Issues) > 0 || len(v.Warnings) > 0:
		v.OverallRating = report.RatingWarning
	default:
		v.OverallRating = report.RatingGood
	}
	return v
}
