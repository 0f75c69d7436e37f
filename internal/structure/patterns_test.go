package structure

import "testing"

func TestDetectSequential(t *testing.T) {
	tests := []struct {
		name         string
		tokens       []string
		wantFlag     bool
		wantFraction float64
	}{
		{"counting", []string{"1", "2", "3", "4", "5"}, true, 1.0},
		{"non-numeric", []string{"abc", "def", "ghi"}, false, 0},
		{"minority incrementing", []string{"1", "2", "x", "y", "z"}, false, 0.25},
		{"single token", []string{"1"}, false, 0},
		{"empty", nil, false, 0},
		{"decrementing", []string{"5", "4", "3"}, false, 0},
		{"large ids", []string{"1000040", "1000041", "1000042"}, true, 1.0},
	}
	for _, test := range tests {
		flag, fraction := DetectSequential(test.tokens)
		if flag != test.wantFlag || fraction != test.wantFraction {
			t.Errorf("%s: DetectSequential = (%v, %v), want (%v, %v)",
				test.name, flag, fraction, test.wantFlag, test.wantFraction)
		}
	}
}

func TestDetectTimestamps(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		wantFlag bool
	}{
		{"unix seconds", []string{"1700000000", "1700000001", "1700000002"}, true},
		{"unix millis", []string{"1700000000123", "1700000001456"}, true},
		{"hex tokens", []string{"deadbeefcafe", "a3f8b2c1d4e5"}, false},
		{"too old", []string{"0900000000", "0900000001"}, false},
		{"minority timestamps", []string{"1700000000", "x", "y", "z"}, false},
		{"empty", nil, false},
	}
	for _, test := range tests {
		if flag, _ := DetectTimestamps(test.tokens); flag != test.wantFlag {
			t.Errorf("%s: DetectTimestamps = %v, want %v", test.name, flag, test.wantFlag)
		}
	}
}

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		tokens []string
		want   string
	}{
		{[]string{"sess_abc", "sess_def", "sess_123"}, "sess_"},
		{[]string{"abc", "xyz"}, ""},
		{[]string{"same", "same"}, "same"},
		{[]string{"ab", "abc"}, "ab"},
		{nil, ""},
	}
	for _, test := range tests {
		if got := CommonPrefix(test.tokens); got != test.want {
			t.Errorf("CommonPrefix(%v) = %q, want %q", test.tokens, got, test.want)
		}
	}
}

func TestCommonSuffix(t *testing.T) {
	tests := []struct {
		tokens []string
		want   string
	}{
		{[]string{"abc_end", "xyz_end"}, "_end"},
		{[]string{"abc", "xyz"}, ""},
		{[]string{"bc", "abc"}, "bc"},
		{nil, ""},
	}
	for _, test := range tests {
		if got := CommonSuffix(test.tokens); got != test.want {
			t.Errorf("CommonSuffix(%v) = %q, want %q", test.tokens, got, test.want)
		}
	}
}
