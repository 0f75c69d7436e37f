package entropy

import (
	"math"
	"testing"

	"github.com/KodyMike/rndSequencer/internal/bitstream"
	"github.com/KodyMike/rndSequencer/internal/utils"
)

const tolerance = 1e-9

func TestShannonChars(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		expected float64
	}{
		{"empty", nil, 0},
		{"single char", []string{"aaaa"}, 0},
		{"two equally likely", []string{"ab", "ab"}, 1.0},
		{"four equally likely", []string{"abcd"}, 2.0},
	}
	for _, test := range tests {
		if got := ShannonChars(test.tokens); !utils.FloatEquals(got, test.expected, tolerance) {
			t.Errorf("%s: ShannonChars = %v, want %v", test.name, got, test.expected)
		}
	}
}

func TestShannonBits(t *testing.T) {
	balanced := bitstream.FromBytes([]byte{0xF0, 0x0F})
	if got := ShannonBits(balanced); !utils.FloatEquals(got, 1.0, tolerance) {
		t.Errorf("balanced ShannonBits = %v, want 1", got)
	}
	allZero := bitstream.FromBytes([]byte{0x00, 0x00})
	if got := ShannonBits(allZero); got != 0 {
		t.Errorf("all-zero ShannonBits = %v, want 0", got)
	}
	if got := ShannonBits(nil); got != 0 {
		t.Errorf("empty ShannonBits = %v, want 0", got)
	}
}

func TestBitBiasMinEntropy(t *testing.T) {
	balanced := bitstream.FromBytes([]byte{0xAA}) // 4 ones, 4 zeros
	if got := BitBiasMinEntropy(balanced); !utils.FloatEquals(got, 1.0, tolerance) {
		t.Errorf("balanced bias = %v, want 1", got)
	}
	// 0xFE: 7 ones of 8, pMax = 7/8
	biased := bitstream.FromBytes([]byte{0xFE})
	want := -math.Log2(7.0 / 8.0)
	if got := BitBiasMinEntropy(biased); !utils.FloatEquals(got, want, tolerance) {
		t.Errorf("biased = %v, want %v", got, want)
	}
}

func TestWholeTokenMinEntropy(t *testing.T) {
	// all identical: most frequent has probability 1
	if got := WholeTokenMinEntropy([]string{"x", "x", "x"}); got != 0 {
		t.Errorf("identical tokens = %v, want 0", got)
	}
	// all unique: saturates at log2(n)
	got := WholeTokenMinEntropy([]string{"a", "b", "c", "d"})
	if !utils.FloatEquals(got, 2.0, tolerance) {
		t.Errorf("unique tokens = %v, want 2", got)
	}
}

func TestPerPositionMinEntropy(t *testing.T) {
	pp := PerPositionMinEntropy([][]byte{[]byte("aaa"), []byte("aab"), []byte("aac")})
	if !pp.FixedLength {
		t.Error("FixedLength = false, want true")
	}
	if len(pp.Entropies) != 3 {
		t.Fatalf("len(Entropies) = %d, want 3", len(pp.Entropies))
	}
	for pos := 0; pos < 2; pos++ {
		if pp.Entropies[pos] != 0 {
			t.Errorf("position %d entropy = %v, want 0", pos, pp.Entropies[pos])
		}
	}
	want := math.Log2(3) // -log2(1/3)
	if !utils.FloatEquals(pp.Entropies[2], want, tolerance) {
		t.Errorf("position 2 entropy = %v, want %v", pp.Entropies[2], want)
	}
	if !utils.FloatEquals(pp.TotalBits, want, tolerance) {
		t.Errorf("TotalBits = %v, want %v", pp.TotalBits, want)
	}
	for pos, c := range pp.Coverage {
		if c != 1.0 {
			t.Errorf("coverage[%d] = %v, want 1", pos, c)
		}
	}
}

func TestPerPositionUnequalLengths(t *testing.T) {
	pp := PerPositionMinEntropy([][]byte{[]byte("ab"), []byte("a")})
	if pp.FixedLength {
		t.Error("FixedLength = true, want false")
	}
	if len(pp.Coverage) != 2 || pp.Coverage[0] != 1.0 || pp.Coverage[1] != 0.5 {
		t.Errorf("Coverage = %v, want [1 0.5]", pp.Coverage)
	}
}

func TestEffectiveSecurityBits(t *testing.T) {
	fixed := PerPosition{TotalBits: 64, FixedLength: true}
	varying := PerPosition{TotalBits: 64, FixedLength: false}

	// per-position total binds only when length is fixed
	if got := EffectiveSecurityBits(1.0, 128, fixed, 999, 0); got != 64 {
		t.Errorf("fixed-length = %v, want 64", got)
	}
	if got := EffectiveSecurityBits(1.0, 128, varying, 999, 0); got != 128 {
		t.Errorf("varying-length = %v, want 128", got)
	}
	// whole-token estimator binds only when duplicates exist
	if got := EffectiveSecurityBits(1.0, 128, varying, 3, 0); got != 128 {
		t.Errorf("no duplicates = %v, want 128", got)
	}
	if got := EffectiveSecurityBits(1.0, 128, varying, 3, 1); got != 3 {
		t.Errorf("with duplicates = %v, want 3", got)
	}
	// global bias scales the average token size
	if got := EffectiveSecurityBits(0.5, 128, varying, 999, 0); got != 64 {
		t.Errorf("biased bits = %v, want 64", got)
	}
}
