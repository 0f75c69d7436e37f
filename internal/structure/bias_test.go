package structure

import (
	"bytes"
	"testing"

	"github.com/KodyMike/rndSequencer/internal/bitstream"
)

func TestRunBiasChecksEmpty(t *testing.T) {
	checks := RunBiasChecks(nil)
	if checks.ChiSquaredMedianP != 1.0 || checks.RunsMedianP != 1.0 {
		t.Errorf("empty sample medians = %v/%v, want 1/1", checks.ChiSquaredMedianP, checks.RunsMedianP)
	}
	if checks.SerialCorrelation != 0 {
		t.Errorf("SerialCorrelation = %v, want 0", checks.SerialCorrelation)
	}
}

func TestRunBiasChecksAllZeroTokens(t *testing.T) {
	decoded := [][]byte{
		make([]byte, 16),
		make([]byte, 16),
		make([]byte, 16),
	}
	checks := RunBiasChecks(decoded)
	// all-zero bits are maximally biased
	if checks.ChiSquaredMedianP > 1e-10 {
		t.Errorf("ChiSquaredMedianP = %v, want near 0", checks.ChiSquaredMedianP)
	}
	// constant sequences have no runs variance: safe default, not NaN
	if checks.RunsMedianP != 1.0 {
		t.Errorf("RunsMedianP = %v, want 1", checks.RunsMedianP)
	}
	if checks.SerialCorrelation != 0 {
		t.Errorf("SerialCorrelation = %v, want 0", checks.SerialCorrelation)
	}
}

func TestRunBiasChecksAlternating(t *testing.T) {
	// 0x55: 01010101, balanced but perfectly anti-correlated
	decoded := [][]byte{bytes.Repeat([]byte{0x55}, 32)}
	checks := RunBiasChecks(decoded)
	if checks.ChiSquaredMedianP != 1.0 {
		t.Errorf("balanced ChiSquaredMedianP = %v, want 1", checks.ChiSquaredMedianP)
	}
	if checks.RunsMedianP > 1e-10 {
		t.Errorf("alternating RunsMedianP = %v, want near 0", checks.RunsMedianP)
	}
	if checks.SerialCorrelation < 0.9 {
		t.Errorf("SerialCorrelation = %v, want near 1 (absolute value)", checks.SerialCorrelation)
	}
}

func TestRunBiasChecksSkipsEmptyTokens(t *testing.T) {
	// tokens that decode to nothing contribute nothing; defaults hold
	checks := RunBiasChecks([][]byte{nil, {}})
	if checks.ChiSquaredMedianP != 1.0 || checks.RunsMedianP != 1.0 || checks.SerialCorrelation != 0 {
		t.Errorf("checks = %+v, want defaults", checks)
	}
}

func TestSerialCorrelationBounds(t *testing.T) {
	constant := bitstream.FromBytes([]byte{0xFF, 0xFF})
	if r := serialCorrelation(constant); r != 0 {
		t.Errorf("constant sequence r = %v, want 0 guard", r)
	}
	alternating := bitstream.FromBytes(bytes.Repeat([]byte{0x55}, 8))
	if r := serialCorrelation(alternating); r > -0.9 {
		t.Errorf("alternating r = %v, want near -1", r)
	}
}
