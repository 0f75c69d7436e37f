package structure

import (
	"math"

	"github.com/KodyMike/rndSequencer/internal/bitstream"
	"github.com/KodyMike/rndSequencer/internal/mathx"
	"github.com/KodyMike/rndSequencer/internal/stats"
)

// AuxiliaryAlpha is the significance level of the bit-bias checks. It is
// deliberately looser than the statistical battery's 0.01 and the two
// must not be unified.
const AuxiliaryAlpha = 0.05

// biasMinBits is the minimum per-token bit count for the bias checks.
const biasMinBits = 8

// BiasChecks aggregates per-token bit-bias statistics. Each check is
// computed on every token's decoded bits separately and then aggregated,
// rather than on one concatenated stream, so that token boundaries do not
// manufacture artificial transitions.
type BiasChecks struct {
	ChiSquaredMedianP float64
	RunsMedianP       float64
	SerialCorrelation float64
}

// chiSquaredP tests the 0/1 balance of one token's bits against a fair
// coin, one degree of freedom.
func chiSquaredP(bits bitstream.Bits) float64 {
	n := float64(len(bits))
	excess := 2*float64(bits.Ones()) - n
	chiSquared := excess * excess / n
	return mathx.RegularizedGammaQ(0.5, chiSquared/2)
}

// runsP is the Wald-Wolfowitz runs p-value for one token's bits. Returns
// 1 when the variance degenerates (all-equal bits).
func runsP(bits bitstream.Bits) float64 {
	n := len(bits)
	pi := bits.OnesFraction()

	observed := 1
	for i := 1; i < n; i++ {
		if bits[i] != bits[i-1] {
			observed++
		}
	}
	expected := 2*float64(n)*pi*(1-pi) + 1
	variance := (expected - 1) * (expected - 2) / (float64(n) - 1)
	if variance <= 0 {
		return 1.0
	}
	z := (float64(observed) - expected) / math.Sqrt(variance)
	return 2 * (1 - mathx.NormalCDF(math.Abs(z)))
}

// serialCorrelation is the lag-1 autocorrelation coefficient of one
// token's bits. Returns 0 for constant sequences.
func serialCorrelation(bits bitstream.Bits) float64 {
	n := len(bits)
	mean := bits.OnesFraction()

	num := 0.0
	den := 0.0
	for i := 0; i < n; i++ {
		d := float64(bits[i]) - mean
		den += d * d
		if i+1 < n {
			num += d * (float64(bits[i+1]) - mean)
		}
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// RunBiasChecks computes the per-token checks over the decoded byte
// sequences and aggregates them: chi-squared and runs p-values by median,
// serial correlation by token-length-weighted mean of absolute values.
// Tokens under 8 bits are skipped.
func RunBiasChecks(decoded [][]byte) BiasChecks {
	var chiPs, runPs []float64
	weightedCorr := 0.0
	totalWeight := 0.0
	for _, d := range decoded {
		bits := bitstream.FromBytes(d)
		if len(bits) < biasMinBits {
			continue
		}
		chiPs = append(chiPs, chiSquaredP(bits))
		runPs = append(runPs, runsP(bits))
		weightedCorr += math.Abs(serialCorrelation(bits)) * float64(len(bits))
		totalWeight += float64(len(bits))
	}

	checks := BiasChecks{ChiSquaredMedianP: 1.0, RunsMedianP: 1.0}
	if len(chiPs) > 0 {
		checks.ChiSquaredMedianP = stats.Median(chiPs)
		checks.RunsMedianP = stats.Median(runPs)
	}
	if totalWeight > 0 {
		checks.SerialCorrelation = weightedCorr / totalWeight
	}
	return checks
}
