package valuecounts

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ValueCounts stores counts of integer values (e.g. token lengths or
// per-position byte values) as a map from value to count. It serializes
// to JSON as an array of (value, count) pairs sorted by value, so that
// the output is deterministic and chartable.
type ValueCounts struct {
	data map[int]int
}

// Pair holds a single value and its count.
type Pair struct {
	Value int `json:"value"`
	Count int `json:"count"`
}

// New creates a new empty ValueCounts.
func New() ValueCounts {
	return ValueCounts{
		data: map[int]int{},
	}
}

// FromMap initialises a ValueCounts from an existing value-to-count map.
func FromMap(data map[int]int) ValueCounts {
	vc := New()
	for value, count := range data {
		vc.data[value] = count
	}
	return vc
}

// Count tallies repetitions of each value in the input data.
func Count(data []int) ValueCounts {
	vc := New()
	for _, value := range data {
		vc.data[value] += 1
	}
	return vc
}

// Len returns the number of distinct values stored.
func (vc ValueCounts) Len() int {
	return len(vc.data)
}

func (vc ValueCounts) String() string {
	pairStrings := make([]string, 0, len(vc.data))
	for _, pair := range vc.ToPairs() {
		pairStrings = append(pairStrings, fmt.Sprintf("%d: %d", pair.Value, pair.Count))
	}
	return "[" + strings.Join(pairStrings, ", ") + " ]"
}

// ToPairs converts this ValueCounts into a list of (value, count) pairs,
// sorted by increasing value. An empty ValueCounts produces an empty slice.
func (vc ValueCounts) ToPairs() []Pair {
	pairs := make([]Pair, 0, len(vc.data))

	values := maps.Keys(vc.data)
	slices.Sort(values)

	for _, value := range values {
		pairs = append(pairs, Pair{Value: value, Count: vc.data[value]})
	}

	return pairs
}

// FromPairs converts a list of (value, count) pairs back into ValueCounts.
// A value occurring more than once in the list is an error.
func FromPairs(pairs []Pair) (ValueCounts, error) {
	vc := New()

	for _, item := range pairs {
		if _, seen := vc.data[item.Value]; seen {
			return ValueCounts{}, fmt.Errorf("value occurs multiple times: %d", item.Value)
		}
		vc.data[item.Value] = item.Count
	}

	return vc, nil
}

// MarshalJSON serialises this ValueCounts as a sorted array of {value, count} pairs.
func (vc ValueCounts) MarshalJSON() ([]byte, error) {
	return json.Marshal(vc.ToPairs())
}

// UnmarshalJSON restores a ValueCounts serialized by MarshalJSON.
// Existing counts are discarded. If any error occurs, the receiver
// is left unmodified.
func (vc *ValueCounts) UnmarshalJSON(data []byte) error {
	var pairs []Pair

	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}

	restored, err := FromPairs(pairs)
	if err != nil {
		return err
	}

	*vc = restored
	return nil
}
