package report

import (
	"time"

	"github.com/KodyMike/rndSequencer/internal/stats"
	"github.com/KodyMike/rndSequencer/pkg/valuecounts"
)

// Rating is the overall security verdict for a token sample.
type Rating string

const (
	RatingCritical  Rating = "CRITICAL"
	RatingWarning   Rating = "WARNING"
	RatingGood      Rating = "GOOD"
	RatingExcellent Rating = "EXCELLENT"
)

// Battery verdict strings derived from the aggregated statistical test
// results.
const (
	VerdictLooksRandom  = "Looks Random"
	VerdictMostlyRandom = "Mostly Random"
	VerdictShowsPattern = "Shows Patterns"
)

// Result is the top-level structure holding everything produced by one
// analysis of a captured token sample. All nested structs are JSON
// serialisable; the document is stored as-is by the result store.
type Result struct {
	Summary           Summary            `json:"summary"`
	Patterns          Patterns           `json:"patterns"`
	CharacterAnalysis *CharacterAnalysis `json:"characterAnalysis,omitempty"`
	BitAnalysis       *BitAnalysis       `json:"bitAnalysis,omitempty"`
	EntropyAnalysis   *EntropyReport     `json:"entropyAnalysis,omitempty"`
	CollisionAnalysis CollisionAnalysis  `json:"collisionAnalysis"`
	StatisticalTests  *TestBattery       `json:"statisticalTests,omitempty"`
	Security          Verdict            `json:"security"`
}

// Summary holds sample counts and basic token statistics.
type Summary struct {
	TotalSamples       int                     `json:"totalSamples"`
	ValidSamples       int                     `json:"validSamples"`
	Failures           FailureCounts           `json:"failures"`
	UniqueTokens       int                     `json:"uniqueTokens"`
	ShannonCharEntropy float64                 `json:"shannonCharEntropy"`
	TokenLengths       valuecounts.ValueCounts `json:"tokenLengths"`
	LengthStats        stats.SampleStatistics  `json:"lengthStats"`
}

// Patterns holds the structural pattern detector outputs.
type Patterns struct {
	Sequential          bool    `json:"sequential"`
	SequentialFraction  float64 `json:"sequentialFraction"`
	Timestamps          bool    `json:"timestamps"`
	TimestampFraction   float64 `json:"timestampFraction"`
	CommonPrefix        string  `json:"commonPrefix"`
	CommonSuffix        string  `json:"commonSuffix"`
	PredictabilityScore int     `json:"predictabilityScore"`
}

// CharCount pairs a character with its occurrence count across all tokens.
type CharCount struct {
	Char  string `json:"char"`
	Count int    `json:"count"`
}

// CharacterAnalysis describes the printable character distribution of the
// token sample.
type CharacterAnalysis struct {
	DistinctChars int         `json:"distinctChars"`
	TotalChars    int64       `json:"totalChars"`
	Frequencies   []CharCount `json:"frequencies"`
}

// Compression holds the LZ78 structure estimate for the pooled decoded
// bit stream. Ratio is the LZ78 entropy-rate estimate divided by the
// measured Shannon bit entropy; values above ~1.05 indicate latent
// structure. Inputs below 100 bits are not evaluated.
type Compression struct {
	Ratio       float64 `json:"ratio"`
	EntropyRate float64 `json:"entropyRate"`
	Applicable  bool    `json:"applicable"`
}

// BitAnalysis holds bit-bias checks computed on the decoded byte
// representation of each token. These are distinct from the SP 800-22
// battery, which runs on the printable token text; the per-token results
// are aggregated by median (chi-squared, runs) or length-weighted mean
// (serial correlation) to avoid artifacts from concatenating independent
// tokens into one artificial stream.
type BitAnalysis struct {
	TotalBits         int          `json:"totalBits"`
	OnesFraction      float64      `json:"onesFraction"`
	ShannonPerBit     float64      `json:"shannonPerBit"`
	ChiSquaredMedianP float64      `json:"chiSquaredMedianP"`
	RunsMedianP       float64      `json:"runsMedianP"`
	SerialCorrelation float64      `json:"serialCorrelation"`
	Sufficient        bool         `json:"sufficient"`
	Compression       *Compression `json:"compression,omitempty"`
}

// PositionEntropy holds byte-wise per-position min-entropy across tokens.
// Coverage[i] is the fraction of tokens long enough to contribute to
// position i. TotalBits is the sum over positions; it is a sound total
// estimate only when FixedLength is true, and a conservative informational
// bound otherwise.
type PositionEntropy struct {
	Entropies   []float64 `json:"entropies,omitempty"`
	Coverage    []float64 `json:"coverage,omitempty"`
	TotalBits   float64   `json:"totalBits"`
	FixedLength bool      `json:"fixedLength"`
}

// EntropyReport collects the entropy estimates for the sample.
// EffectiveSecurityBits is the conservative minimum across the applicable
// estimators (see the min-entropy gating rules).
type EntropyReport struct {
	ShannonPerChar        float64          `json:"shannonPerChar"`
	ShannonPerBit         float64          `json:"shannonPerBit"`
	MinEntropyPerBit      float64          `json:"minEntropyPerBit"`
	WholeTokenMinEntropy  float64          `json:"wholeTokenMinEntropy"`
	AvgBitsPerToken       float64          `json:"avgBitsPerToken"`
	PerPosition           *PositionEntropy `json:"perPosition,omitempty"`
	EffectiveSecurityBits float64          `json:"effectiveSecurityBits"`
}

// CollisionAnalysis holds exact and near duplicate statistics. Near
// duplicates and mean distances are computed on a systematic sample of
// token pairs (stride ceil(n/1000)) to bound the cost at O(n) comparisons;
// for very large samples this is an estimate, not an exact count.
type CollisionAnalysis struct {
	ExactDuplicates      int     `json:"exactDuplicates"`
	DuplicatePercentage  float64 `json:"duplicatePercentage"`
	NearDuplicates       int     `json:"nearDuplicates"`
	MeanHammingDistance  float64 `json:"meanHammingDistance"`
	MeanLevenshteinRatio float64 `json:"meanLevenshteinRatio"`
	SampledPairs         int     `json:"sampledPairs"`
	SampleStride         int     `json:"sampleStride"`
}

// AggregatedTest summarises one statistical test across the token sample.
// Tokens whose result was inapplicable are excluded from both the pass
// rate numerator and denominator; a test with zero applicable tokens
// reports PassRate 1.0 and MedianP 1.0 ("no evidence of failure").
type AggregatedTest struct {
	Name            string  `json:"name"`
	ApplicableCount int     `json:"applicableCount"`
	PassRate        float64 `json:"passRate"`
	MedianP         float64 `json:"medianP"`
}

// TestBattery holds the aggregated SP 800-22 test results for the sample.
type TestBattery struct {
	Alpha           float64          `json:"alpha"`
	Tests           []AggregatedTest `json:"tests"`
	OverallPassRate float64          `json:"overallPassRate"`
	OverallMedianP  float64          `json:"overallMedianP"`
	Verdict         string           `json:"verdict"`
}

// Verdict is the rule-engine output: an overall rating plus categorized
// findings and the effective-security-bits figure they derive from.
type Verdict struct {
	OverallRating      Rating   `json:"overallRating"`
	Issues             []string `json:"issues"`
	Warnings           []string `json:"warnings"`
	Strengths          []string `json:"strengths"`
	EffectiveBits      float64  `json:"effectiveBits"`
	RecommendedMinimum int      `json:"recommendedMinimum"`
}

// Document is the exported JSON envelope: the capture list together with
// its analysis, stamped with the export time.
type Document struct {
	Timestamp     time.Time      `json:"timestamp"`
	TokenCaptures []TokenCapture `json:"tokenCaptures"`
	Analysis      *Result        `json:"analysis"`
}
