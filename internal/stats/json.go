package stats

import (
	"encoding/json"
	"math"
)

// jsonSampleStatistics mirrors SampleStatistics with pointer fields so
// that NaN (undefined variance/skewness for tiny samples) can round-trip
// through JSON as null.
type jsonSampleStatistics struct {
	Size      int         `json:"size"`
	Mean      *float64    `json:"mean"`
	Variance  *float64    `json:"variance"`
	Skewness  *float64    `json:"skewness"`
	Quartiles [5]*float64 `json:"quartiles"`
}

func toNullable(x float64) *float64 {
	if math.IsNaN(x) {
		return nil
	}
	return &x
}

func fromNullable(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

func (s SampleStatistics) MarshalJSON() ([]byte, error) {
	j := jsonSampleStatistics{
		Size:     s.Size,
		Mean:     toNullable(s.Mean),
		Variance: toNullable(s.Variance),
		Skewness: toNullable(s.Skewness),
	}
	for i, q := range s.Quartiles {
		j.Quartiles[i] = toNullable(q)
	}
	return json.Marshal(j)
}

func (s *SampleStatistics) UnmarshalJSON(data []byte) error {
	var j jsonSampleStatistics
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	s.Size = j.Size
	s.Mean = fromNullable(j.Mean)
	s.Variance = fromNullable(j.Variance)
	s.Skewness = fromNullable(j.Skewness)
	for i, q := range j.Quartiles {
		s.Quartiles[i] = fromNullable(q)
	}
	return nil
}
