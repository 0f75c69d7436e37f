package utils

import (
	"reflect"
	"testing"
)

func TestCommaSeparatedFlags(t *testing.T) {
	modes := CommaSeparatedFlags("mode", []string{"full"}, "analysis modes to run")
	if got := modes.String(); got != "full" {
		t.Errorf("String() = %q; want %q", got, "full")
	}

	if err := modes.Set("quick,full"); err != nil {
		t.Fatalf("Set() = %v; want no error", err)
	}
	if want := []string{"quick", "full"}; !reflect.DeepEqual(modes.Values, want) {
		t.Errorf("Values = %v; want %v", modes.Values, want)
	}
	if got := modes.String(); got != "quick,full" {
		t.Errorf("String() = %q; want %q", got, "quick,full")
	}
}
