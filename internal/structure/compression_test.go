package structure

import (
	"testing"

	"github.com/KodyMike/rndSequencer/internal/bitstream"
	"github.com/KodyMike/rndSequencer/pkg/report"
)

func TestCompressionEstimateTooShort(t *testing.T) {
	c := CompressionEstimate(make(bitstream.Bits, 99), 1.0)
	if c.Applicable {
		t.Error("99 bits must not be applicable")
	}
}

func TestCompressionEstimateRepetitive(t *testing.T) {
	// alternating bits compress far below their 1 bit/bit Shannon entropy
	bits := make(bitstream.Bits, 1024)
	for i := range bits {
		bits[i] = uint8(i % 2)
	}
	c := CompressionEstimate(bits, 1.0)
	if !c.Applicable {
		t.Fatal("not applicable")
	}
	if c.EntropyRate <= 0 || c.EntropyRate >= 1 {
		t.Errorf("EntropyRate = %v, want in (0, 1)", c.EntropyRate)
	}
	if c.Ratio >= 1 {
		t.Errorf("Ratio = %v, want < 1 for a compressible sequence", c.Ratio)
	}
}

func TestCompressionEstimateZeroEntropy(t *testing.T) {
	c := CompressionEstimate(make(bitstream.Bits, 256), 0)
	if !c.Applicable {
		t.Fatal("not applicable")
	}
	if c.Ratio != 0 {
		t.Errorf("Ratio = %v, want 0 guard when Shannon entropy is 0", c.Ratio)
	}
}

func TestHasLatentStructure(t *testing.T) {
	tests := []struct {
		c    report.Compression
		want bool
	}{
		{report.Compression{Ratio: 1.2, Applicable: true}, true},
		{report.Compression{Ratio: 1.05, Applicable: true}, false},
		{report.Compression{Ratio: 1.0, Applicable: true}, false},
		{report.Compression{Ratio: 2.0, Applicable: false}, false},
	}
	for _, test := range tests {
		if got := HasLatentStructure(test.c); got != test.want {
			t.Errorf("HasLatentStructure(%+v) = %v, want %v", test.c, got, test.want)
		}
	}
}
