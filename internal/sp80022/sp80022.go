// Package sp80022 implements six tests derived from the NIST SP 800-22
// battery, run per token on the printable token text's bit sequence and
// aggregated across the sample. Each test gates on its own applicability
// precondition; inapplicable results are excluded from aggregation rather
// than counted as failures.
package sp80022

import (
	"math"

	"github.com/KodyMike/rndSequencer/internal/bitstream"
	"github.com/KodyMike/rndSequencer/internal/mathx"
)

// Alpha is the significance level of the battery.
const Alpha = 0.01

// Test names as they appear in results.
const (
	NameMonobit        = "Frequency (Monobit)"
	NameRuns           = "Runs"
	NameBlockFrequency = "Block Frequency (M=256)"
	NameSerial         = "Serial (m=2)"
	NameApproxEntropy  = "Approximate Entropy (m=2)"
	NameCumulativeSums = "Cumulative Sums (for/back)"
)

// Result is the outcome of one test on one token. Applicable=false means
// the precondition was not met and the result must be excluded from
// aggregation.
type Result struct {
	Name       string
	PValue     float64
	Applicable bool
}

func notApplicable(name string) Result {
	return Result{Name: name, PValue: 1.0, Applicable: false}
}

// Monobit is the frequency test: the normalized absolute sum of
// ±1-mapped bits. Requires at least 100 bits.
func Monobit(bits bitstream.Bits) Result {
	n := len(bits)
	if n < 100 {
		return notApplicable(NameMonobit)
	}

	sum := 2*bits.Ones() - n
	s := math.Abs(float64(sum)) / math.Sqrt(float64(n))
	return Result{
		Name:       NameMonobit,
		PValue:     mathx.Erfc(s / math.Sqrt2),
		Applicable: true,
	}
}

// Runs counts maximal runs of identical bits against the expectation for
// an unbiased sequence. Requires at least 100 bits and a bit bias within
// 2/sqrt(n) of one half; outside that band the run-count distribution
// assumption does not hold.
func Runs(bits bitstream.Bits) Result {
	n := len(bits)
	if n < 100 {
		return notApplicable(NameRuns)
	}
	pi := bits.OnesFraction()
	if math.Abs(pi-0.5) >= 2/math.Sqrt(float64(n)) {
		return notApplicable(NameRuns)
	}

	observed := 1
	for i := 1; i < n; i++ {
		if bits[i] != bits[i-1] {
			observed++
		}
	}

	expected := 2*float64(n)*pi*(1-pi) + 1
	variance := (expected - 1) * (expected - 2) / (float64(n) - 1)
	if variance <= 0 {
		return notApplicable(NameRuns)
	}

	z := (float64(observed) - expected) / math.Sqrt(variance)
	return Result{
		Name:       NameRuns,
		PValue:     2 * (1 - mathx.NormalCDF(math.Abs(z))),
		Applicable: true,
	}
}

// blockSize is the block length M of the block frequency test.
const blockSize = 256

// BlockFrequency splits the sequence into 256-bit blocks and chi-squares
// the per-block ones proportions. Requires at least one full block.
func BlockFrequency(bits bitstream.Bits) Result {
	n := len(bits)
	numBlocks := n / blockSize
	if numBlocks < 1 {
		return notApplicable(NameBlockFrequency)
	}

	chiSquared := 0.0
	for b := 0; b < numBlocks; b++ {
		block := bits[b*blockSize : (b+1)*blockSize]
		pi := block.OnesFraction()
		chiSquared += (pi - 0.5) * (pi - 0.5)
	}
	chiSquared *= 4 * blockSize

	return Result{
		Name:       NameBlockFrequency,
		PValue:     mathx.RegularizedGammaQ(float64(numBlocks)/2, chiSquared/2),
		Applicable: true,
	}
}

// psiSquared computes the psi-squared statistic over cyclic overlapping
// m-bit patterns. By convention psi(0) = 0.
func psiSquared(bits bitstream.Bits, m int) float64 {
	if m == 0 {
		return 0
	}
	n := len(bits)
	counts := make([]int, 1<<m)
	for i := 0; i < n; i++ {
		pattern := 0
		for j := 0; j < m; j++ {
			pattern = pattern<<1 | int(bits[(i+j)%n])
		}
		counts[pattern]++
	}

	sum := 0.0
	for _, c := range counts {
		sum += float64(c) * float64(c)
	}
	return sum*float64(int(1)<<m)/float64(n) - float64(n)
}

// serialM is the pattern length m of the serial test.
const serialM = 2

// Serial compares overlapping 2-bit pattern frequencies against the 1-bit
// and 0-bit base levels, with cyclic wraparound. Requires at least 1000
// bits. Two p-values result; the reported value is their minimum, so the
// test fails when either does.
func Serial(bits bitstream.Bits) Result {
	n := len(bits)
	if n < 1000 {
		return notApplicable(NameSerial)
	}

	psi2 := psiSquared(bits, serialM)
	psi1 := psiSquared(bits, serialM-1)
	psi0 := psiSquared(bits, serialM-2)

	delta1 := psi2 - psi1
	delta2 := psi2 - 2*psi1 + psi0

	p1 := mathx.RegularizedGammaQ(float64(int(1)<<(serialM-1)), delta1/2)
	p2 := mathx.RegularizedGammaQ(float64(int(1)<<(serialM-2)), delta2/2)
	return Result{
		Name:       NameSerial,
		PValue:     math.Min(p1, p2),
		Applicable: true,
	}
}

// approxEntropyM is the pattern length m of the approximate entropy test.
const approxEntropyM = 2

// phi computes the pattern-frequency log statistic of the approximate
// entropy test over cyclic overlapping m-bit patterns.
func phi(bits bitstream.Bits, m int) float64 {
	n := len(bits)
	counts := make([]int, 1<<m)
	for i := 0; i < n; i++ {
		pattern := 0
		for j := 0; j < m; j++ {
			pattern = pattern<<1 | int(bits[(i+j)%n])
		}
		counts[pattern]++
	}

	sum := 0.0
	for _, c := range counts {
		if c > 0 {
			p := float64(c) / float64(n)
			sum += p * math.Log(p)
		}
	}
	return sum
}

// ApproximateEntropy measures the regularity of overlapping 2-bit versus
// 3-bit patterns. Requires at least 10000 bits.
func ApproximateEntropy(bits bitstream.Bits) Result {
	n := len(bits)
	if n < 10000 {
		return notApplicable(NameApproxEntropy)
	}

	apEn := phi(bits, approxEntropyM) - phi(bits, approxEntropyM+1)
	chiSquared := 2 * float64(n) * (math.Ln2 - apEn)
	return Result{
		Name:       NameApproxEntropy,
		PValue:     mathx.RegularizedGammaQ(float64(int(1)<<(approxEntropyM-1)), chiSquared/2),
		Applicable: true,
	}
}

// cusumPValue evaluates the closed-form p-value for the maximum absolute
// partial sum z of n ±1-mapped bits.
func cusumPValue(z float64, n int) float64 {
	if z == 0 {
		return 1.0
	}
	sqrtN := math.Sqrt(float64(n))
	ratio := float64(n) / z

	p := 1.0
	for k := int(math.Floor((-ratio + 1) / 4)); k <= int(math.Floor((ratio - 1) / 4)); k++ {
		p -= mathx.NormalCDF((4*float64(k)+1)*z/sqrtN) - mathx.NormalCDF((4*float64(k)-1)*z/sqrtN)
	}
	for k := int(math.Floor((-ratio - 3) / 4)); k <= int(math.Floor((ratio - 1) / 4)); k++ {
		p += mathx.NormalCDF((4*float64(k)+3)*z/sqrtN) - mathx.NormalCDF((4*float64(k)+1)*z/sqrtN)
	}

	// numerical guard: the series can land epsilon outside [0, 1]
	return math.Min(math.Max(p, 0), 1)
}

// CumulativeSums tracks the maximum excursion of the ±1 random walk, once
// forward and once over the reversed sequence, and reports the smaller of
// the two p-values. Requires at least 1000 bits.
func CumulativeSums(bits bitstream.Bits) Result {
	n := len(bits)
	if n < 1000 {
		return notApplicable(NameCumulativeSums)
	}

	maxExcursion := func(b bitstream.Bits) float64 {
		sum := 0
		maxAbs := 0
		for _, bit := range b {
			sum += 2*int(bit) - 1
			abs := sum
			if abs < 0 {
				abs = -abs
			}
			if abs > maxAbs {
				maxAbs = abs
			}
		}
		return float64(maxAbs)
	}

	reversed := make(bitstream.Bits, n)
	for i, bit := range bits {
		reversed[n-1-i] = bit
	}

	pForward := cusumPValue(maxExcursion(bits), n)
	pBackward := cusumPValue(maxExcursion(reversed), n)
	return Result{
		Name:       NameCumulativeSums,
		PValue:     math.Min(pForward, pBackward),
		Applicable: true,
	}
}

// AllTests lists the battery in canonical order.
var AllTests = []func(bitstream.Bits) Result{
	Monobit,
	Runs,
	BlockFrequency,
	Serial,
	ApproximateEntropy,
	CumulativeSums,
}

// RunAll executes the battery on one token's printable-text bit sequence.
func RunAll(token string) []Result {
	bits := bitstream.FromText(token)
	results := make([]Result, 0, len(AllTests))
	for _, test := range AllTests {
		results = append(results, test(bits))
	}
	return results
}
