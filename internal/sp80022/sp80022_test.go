package sp80022

import (
	"testing"

	"github.com/KodyMike/rndSequencer/internal/bitstream"
	"github.com/KodyMike/rndSequencer/pkg/report"
)

// alternatingBits returns n bits of 0101...
func alternatingBits(n int) bitstream.Bits {
	bits := make(bitstream.Bits, n)
	for i := range bits {
		bits[i] = uint8(i % 2)
	}
	return bits
}

func TestMonobitAllZero(t *testing.T) {
	bits := bitstream.FromBytes(make([]byte, 125)) // 1000 zero bits
	r := Monobit(bits)
	if !r.Applicable {
		t.Fatal("all-zero 1000-bit sequence must be applicable")
	}
	if r.PValue > 1e-10 {
		t.Errorf("PValue = %v, want near 0", r.PValue)
	}
}

func TestMonobitBalanced(t *testing.T) {
	r := Monobit(alternatingBits(1000))
	if !r.Applicable {
		t.Fatal("not applicable")
	}
	if r.PValue != 1.0 {
		t.Errorf("PValue = %v, want 1 (zero excess)", r.PValue)
	}
}

func TestMonobitTooShort(t *testing.T) {
	r := Monobit(alternatingBits(99))
	if r.Applicable {
		t.Error("99 bits must not be applicable")
	}
	if r.PValue != 1.0 {
		t.Errorf("inapplicable PValue = %v, want 1", r.PValue)
	}
}

func TestRunsAlternatingFails(t *testing.T) {
	// perfectly alternating bits have the maximum possible run count,
	// far above expectation
	r := Runs(alternatingBits(1000))
	if !r.Applicable {
		t.Fatal("not applicable")
	}
	if r.PValue > 1e-10 {
		t.Errorf("PValue = %v, want near 0", r.PValue)
	}
}

func TestRunsBiasGate(t *testing.T) {
	// all-zero fails the |pi - 0.5| < 2/sqrt(n) precondition
	r := Runs(bitstream.FromBytes(make([]byte, 125)))
	if r.Applicable {
		t.Error("heavily biased sequence must not be applicable")
	}
}

func TestBlockFrequency(t *testing.T) {
	if r := BlockFrequency(alternatingBits(255)); r.Applicable {
		t.Error("255 bits must not be applicable")
	}

	// every 256-bit block of alternating bits is exactly half ones
	r := BlockFrequency(alternatingBits(512))
	if !r.Applicable {
		t.Fatal("not applicable")
	}
	if r.PValue != 1.0 {
		t.Errorf("balanced blocks PValue = %v, want 1", r.PValue)
	}

	// all-zero blocks give the maximal chi-squared
	r = BlockFrequency(bitstream.FromBytes(make([]byte, 64)))
	if !r.Applicable {
		t.Fatal("not applicable")
	}
	if r.PValue > 1e-10 {
		t.Errorf("all-zero PValue = %v, want near 0", r.PValue)
	}
}

func TestSerialAlternatingFails(t *testing.T) {
	// alternating bits contain only the patterns 01 and 10
	r := Serial(alternatingBits(1000))
	if !r.Applicable {
		t.Fatal("not applicable")
	}
	if r.PValue > 1e-10 {
		t.Errorf("PValue = %v, want near 0", r.PValue)
	}

	if r := Serial(alternatingBits(999)); r.Applicable {
		t.Error("999 bits must not be applicable")
	}
}

func TestApproximateEntropyAllZeroFails(t *testing.T) {
	r := ApproximateEntropy(bitstream.FromBytes(make([]byte, 1250)))
	if !r.Applicable {
		t.Fatal("not applicable")
	}
	if r.PValue > 1e-10 {
		t.Errorf("PValue = %v, want near 0", r.PValue)
	}

	if r := ApproximateEntropy(alternatingBits(9999)); r.Applicable {
		t.Error("9999 bits must not be applicable")
	}
}

func TestCumulativeSums(t *testing.T) {
	// an all-zero sequence walks straight to -n, the maximal excursion
	r := CumulativeSums(bitstream.FromBytes(make([]byte, 125)))
	if !r.Applicable {
		t.Fatal("not applicable")
	}
	if r.PValue > 1e-10 {
		t.Errorf("all-zero PValue = %v, want near 0", r.PValue)
	}

	// alternating bits never leave [-1, 1]; excursions this small are
	// overwhelmingly likely under the null, so the p-value is near 1
	r = CumulativeSums(alternatingBits(1000))
	if !r.Applicable {
		t.Fatal("not applicable")
	}
	if r.PValue < 0.9 {
		t.Errorf("alternating PValue = %v, want near 1", r.PValue)
	}

	if r := CumulativeSums(alternatingBits(999)); r.Applicable {
		t.Error("999 bits must not be applicable")
	}
}

func TestRunAllOrderAndNames(t *testing.T) {
	results := RunAll("short")
	wantNames := []string{
		NameMonobit,
		NameRuns,
		NameBlockFrequency,
		NameSerial,
		NameApproxEntropy,
		NameCumulativeSums,
	}
	if len(results) != len(wantNames) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(wantNames))
	}
	for i, r := range results {
		if r.Name != wantNames[i] {
			t.Errorf("results[%d].Name = %q, want %q", i, r.Name, wantNames[i])
		}
		// a 5-char token is 40 bits, below every precondition
		if r.Applicable {
			t.Errorf("%s applicable on a 40-bit token", r.Name)
		}
	}
}

func TestAggregateZeroApplicable(t *testing.T) {
	battery := Aggregate([][]Result{RunAll("tiny"), RunAll("also-tiny")})
	for _, agg := range battery.Tests {
		if agg.ApplicableCount != 0 {
			t.Errorf("%s: ApplicableCount = %d, want 0", agg.Name, agg.ApplicableCount)
		}
		if agg.PassRate != 1.0 || agg.MedianP != 1.0 {
			t.Errorf("%s: PassRate = %v, MedianP = %v, want 1.0/1.0", agg.Name, agg.PassRate, agg.MedianP)
		}
	}
	if battery.OverallPassRate != 1.0 || battery.OverallMedianP != 1.0 {
		t.Errorf("overall = %v/%v, want 1.0/1.0", battery.OverallPassRate, battery.OverallMedianP)
	}
	if battery.Verdict != report.VerdictLooksRandom {
		t.Errorf("Verdict = %q, want %q", battery.Verdict, report.VerdictLooksRandom)
	}
}

func TestAggregateMixedResults(t *testing.T) {
	perToken := [][]Result{
		{
			{Name: NameMonobit, PValue: 0.5, Applicable: true},
			{Name: NameRuns, PValue: 0.3, Applicable: true},
		},
		{
			{Name: NameMonobit, PValue: 0.001, Applicable: true}, // below alpha
			{Name: NameRuns, PValue: 1.0, Applicable: false},     // excluded entirely
		},
	}
	battery := Aggregate(perToken)

	var monobit, runs report.AggregatedTest
	for _, agg := range battery.Tests {
		switch agg.Name {
		case NameMonobit:
			monobit = agg
		case NameRuns:
			runs = agg
		}
	}
	if monobit.ApplicableCount != 2 || monobit.PassRate != 0.5 {
		t.Errorf("monobit = %+v, want count 2 pass rate 0.5", monobit)
	}
	if runs.ApplicableCount != 1 || runs.PassRate != 1.0 || runs.MedianP != 0.3 {
		t.Errorf("runs = %+v, want count 1 pass rate 1 median 0.3", runs)
	}
	// 2 of 3 applicable results passed
	if got := battery.OverallPassRate; got < 0.66 || got > 0.67 {
		t.Errorf("OverallPassRate = %v, want 2/3", got)
	}
	if battery.Verdict != report.VerdictShowsPattern {
		t.Errorf("Verdict = %q, want %q", battery.Verdict, report.VerdictShowsPattern)
	}
}

func TestVerdictThresholds(t *testing.T) {
	tests := []struct {
		passRate, medianP float64
		want              string
	}{
		{1.0, 0.5, report.VerdictLooksRandom},
		{0.95, 0.05, report.VerdictLooksRandom},
		{0.90, 0.05, report.VerdictMostlyRandom},
		{0.96, 0.02, report.VerdictMostlyRandom},
		{0.85, 0.005, report.VerdictShowsPattern},
		{0.5, 0.5, report.VerdictShowsPattern},
	}
	for _, test := range tests {
		if got := verdict(test.passRate, test.medianP); got != test.want {
			t.Errorf("verdict(%v, %v) = %q, want %q", test.passRate, test.medianP, got, test.want)
		}
	}
}
