// Package analysis is the orchestrator: it takes a captured token sample,
// fans out to the decoders, entropy estimators, statistical tests and
// structural detectors, and synthesizes the severity verdict. Analyze is
// total and deterministic: it never fails for well-typed input, and
// identical samples produce identical reports.
package analysis

import (
	"context"
	"log/slog"
	"sort"

	"github.com/KodyMike/rndSequencer/internal/bitstream"
	"github.com/KodyMike/rndSequencer/internal/decode"
	"github.com/KodyMike/rndSequencer/internal/entropy"
	"github.com/KodyMike/rndSequencer/internal/featureflags"
	"github.com/KodyMike/rndSequencer/internal/severity"
	"github.com/KodyMike/rndSequencer/internal/sp80022"
	"github.com/KodyMike/rndSequencer/internal/stats"
	"github.com/KodyMike/rndSequencer/internal/structure"
	"github.com/KodyMike/rndSequencer/internal/utils"
	"github.com/KodyMike/rndSequencer/pkg/report"
	"github.com/KodyMike/rndSequencer/pkg/valuecounts"
)

// maxFrequencyEntries caps the character frequency table included in the
// result document.
const maxFrequencyEntries = 64

// Analyze runs the pipeline over a captured token sample. The input slice
// is snapshotted before any processing: the collector may still be
// appending to its own list, and the stride-sampling detectors assume a
// stable-length sample.
func Analyze(ctx context.Context, captures []report.TokenCapture, mode Mode) *report.Result {
	snapshot := make([]report.TokenCapture, len(captures))
	copy(snapshot, captures)

	failures := report.CountFailures(snapshot)
	tokens := report.ValidTokens(snapshot)
	slog.InfoContext(ctx, "Starting analysis",
		"mode", string(mode),
		"total_samples", len(snapshot),
		"valid_samples", len(tokens))

	result := &report.Result{}
	result.Summary = summarize(snapshot, tokens, failures)

	if len(tokens) == 0 {
		result.Security = severity.Degraded(failures)
		return result
	}

	result.Patterns = detectPatterns(tokens)
	result.CollisionAnalysis = structure.AnalyzeCollisions(tokens)
	result.Patterns.PredictabilityScore = severity.PredictabilityScore(
		result.Patterns.Sequential,
		result.Patterns.Timestamps,
		result.CollisionAnalysis.DuplicatePercentage,
		len(result.Patterns.CommonPrefix))

	if mode == Quick {
		result.Security = severity.QuickClassify(severity.QuickInput{
			SampleSize:          len(tokens),
			ShannonCharEntropy:  result.Summary.ShannonCharEntropy,
			DuplicatePercentage: result.CollisionAnalysis.DuplicatePercentage,
			NearDuplicates:      result.CollisionAnalysis.NearDuplicates,
			Sequential:          result.Patterns.Sequential,
			Timestamps:          result.Patterns.Timestamps,
			CommonPrefixLength:  len(result.Patterns.CommonPrefix),
		})
		return result
	}

	decoded := utils.Transform(tokens, func(token string) []byte {
		return decode.Decode(token).Bytes
	})
	pooled := pooledBits(decoded)

	result.CharacterAnalysis = analyzeCharacters(tokens)
	result.BitAnalysis = analyzeBits(decoded, pooled)
	result.EntropyAnalysis = analyzeEntropy(tokens, decoded, pooled, result.Summary)

	battery := runBattery(tokens)
	result.StatisticalTests = &battery

	result.Security = severity.Classify(severity.Input{
		SampleSize:          len(tokens),
		EffectiveBits:       result.EntropyAnalysis.EffectiveSecurityBits,
		BitBiasMinEntropy:   result.EntropyAnalysis.MinEntropyPerBit,
		ShannonCharEntropy:  result.Summary.ShannonCharEntropy,
		TotalBits:           result.BitAnalysis.TotalBits,
		ChiSquaredMedianP:   result.BitAnalysis.ChiSquaredMedianP,
		RunsMedianP:         result.BitAnalysis.RunsMedianP,
		SerialCorrelation:   result.BitAnalysis.SerialCorrelation,
		CompressionRatio:    compressionRatio(result.BitAnalysis.Compression),
		CompressionOK:       result.BitAnalysis.Compression != nil && result.BitAnalysis.Compression.Applicable,
		NearDuplicates:      result.CollisionAnalysis.NearDuplicates,
		DuplicatePercentage: result.CollisionAnalysis.DuplicatePercentage,
		Sequential:          result.Patterns.Sequential,
		Timestamps:          result.Patterns.Timestamps,
		CommonPrefixLength:  len(result.Patterns.CommonPrefix),
	})
	return result
}

func summarize(snapshot []report.TokenCapture, tokens []string, failures report.FailureCounts) report.Summary {
	lengths := utils.Transform(tokens, func(token string) int { return len(token) })

	summary := report.Summary{
		TotalSamples:       len(snapshot),
		ValidSamples:       len(tokens),
		Failures:           failures,
		UniqueTokens:       len(utils.RemoveDuplicates(tokens)),
		ShannonCharEntropy: entropy.ShannonChars(tokens),
		TokenLengths:       valuecounts.Count(lengths),
		LengthStats:        stats.NoData(),
	}
	if len(lengths) > 0 {
		summary.LengthStats = stats.Summarise(lengths)
	}
	return summary
}

func detectPatterns(tokens []string) report.Patterns {
	var p report.Patterns
	p.Sequential, p.SequentialFraction = structure.DetectSequential(tokens)
	p.Timestamps, p.TimestampFraction = structure.DetectTimestamps(tokens)
	p.CommonPrefix = structure.CommonPrefix(tokens)
	p.CommonSuffix = structure.CommonSuffix(tokens)
	return p
}

func analyzeCharacters(tokens []string) *report.CharacterAnalysis {
	counts := entropy.CharacterCounts(tokens)

	analysis := &report.CharacterAnalysis{
		DistinctChars: len(counts),
		Frequencies:   make([]report.CharCount, 0, len(counts)),
	}
	for char, count := range counts {
		analysis.TotalChars += int64(count)
		analysis.Frequencies = append(analysis.Frequencies, report.CharCount{
			Char:  string(char),
			Count: count,
		})
	}
	sort.Slice(analysis.Frequencies, func(i, j int) bool {
		a, b := analysis.Frequencies[i], analysis.Frequencies[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Char < b.Char
	})
	if len(analysis.Frequencies) > maxFrequencyEntries {
		analysis.Frequencies = analysis.Frequencies[:maxFrequencyEntries]
	}
	return analysis
}

func pooledBits(decoded [][]byte) bitstream.Bits {
	return bitstream.Concat(utils.Transform(decoded, bitstream.FromBytes)...)
}

func analyzeBits(decoded [][]byte, pooled bitstream.Bits) *report.BitAnalysis {
	checks := structure.RunBiasChecks(decoded)
	analysis := &report.BitAnalysis{
		TotalBits:         len(pooled),
		OnesFraction:      pooled.OnesFraction(),
		ShannonPerBit:     entropy.ShannonBits(pooled),
		ChiSquaredMedianP: checks.ChiSquaredMedianP,
		RunsMedianP:       checks.RunsMedianP,
		SerialCorrelation: checks.SerialCorrelation,
		Sufficient:        len(pooled) >= 100,
	}
	compression := structure.CompressionEstimate(pooled, analysis.ShannonPerBit)
	analysis.Compression = &compression
	return analysis
}

func analyzeEntropy(tokens []string, decoded [][]byte, pooled bitstream.Bits, summary report.Summary) *report.EntropyReport {
	perPosition := entropy.PerPositionMinEntropy(decoded)
	wholeToken := entropy.WholeTokenMinEntropy(tokens)
	duplicates := len(tokens) - summary.UniqueTokens

	r := &report.EntropyReport{
		ShannonPerChar:       summary.ShannonCharEntropy,
		ShannonPerBit:        entropy.ShannonBits(pooled),
		MinEntropyPerBit:     entropy.BitBiasMinEntropy(pooled),
		WholeTokenMinEntropy: wholeToken,
		AvgBitsPerToken:      float64(len(pooled)) / float64(len(tokens)),
	}
	r.EffectiveSecurityBits = entropy.EffectiveSecurityBits(
		r.MinEntropyPerBit, r.AvgBitsPerToken, perPosition, wholeToken, duplicates)

	position := &report.PositionEntropy{
		TotalBits:   perPosition.TotalBits,
		FixedLength: perPosition.FixedLength,
	}
	if featureflags.PositionChartData.Enabled() {
		position.Entropies = perPosition.Entropies
		position.Coverage = perPosition.Coverage
	}
	r.PerPosition = position
	return r
}

func runBattery(tokens []string) report.TestBattery {
	return sp80022.Aggregate(utils.Transform(tokens, sp80022.RunAll))
}

func compressionRatio(c *report.Compression) float64 {
	if c == nil {
		return 0
	}
	return c.Ratio
}
