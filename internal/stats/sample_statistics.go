package stats

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"

	"github.com/KodyMike/rndSequencer/internal/utils"
)

type RealNumber interface {
	constraints.Integer | constraints.Float
}

// SampleStatistics summarises a sample of real values (token lengths,
// per-token p-values). Undefined quantities are NaN: variance needs at
// least 2 points, skewness at least 3.
type SampleStatistics struct {
	Size      int        `json:"size"`
	Mean      float64    `json:"mean"`
	Variance  float64    `json:"variance"`
	Skewness  float64    `json:"skewness"`
	Quartiles [5]float64 `json:"quartiles"`
}

func NoData() SampleStatistics {
	nan := math.NaN()
	return SampleStatistics{
		Size:      0,
		Mean:      nan,
		Variance:  nan,
		Skewness:  nan,
		Quartiles: [5]float64{nan, nan, nan, nan, nan},
	}
}

func (s SampleStatistics) Min() float64    { return s.Quartiles[0] }
func (s SampleStatistics) Q1() float64     { return s.Quartiles[1] }
func (s SampleStatistics) Median() float64 { return s.Quartiles[2] }
func (s SampleStatistics) Q3() float64     { return s.Quartiles[3] }
func (s SampleStatistics) Max() float64    { return s.Quartiles[4] }

func (s SampleStatistics) String() string {
	q := s.Quartiles
	return fmt.Sprintf("size: %d, mean: %f, variance: %f, skewness: %f, quartiles: [%f, %f, %f, %f, %f]",
		s.Size, s.Mean, s.Variance, s.Skewness, q[0], q[1], q[2], q[3], q[4])
}

func (s SampleStatistics) Equals(other SampleStatistics, absTol float64) bool {
	if s.Size != other.Size {
		return false
	}
	return utils.FloatEquals(s.Mean, other.Mean, absTol) &&
		utils.FloatEquals(s.Variance, other.Variance, absTol) &&
		utils.FloatEquals(s.Skewness, other.Skewness, absTol) &&
		utils.FloatEquals(s.Quartiles[0], other.Quartiles[0], absTol) &&
		utils.FloatEquals(s.Quartiles[1], other.Quartiles[1], absTol) &&
		utils.FloatEquals(s.Quartiles[2], other.Quartiles[2], absTol) &&
		utils.FloatEquals(s.Quartiles[3], other.Quartiles[3], absTol) &&
		utils.FloatEquals(s.Quartiles[4], other.Quartiles[4], absTol)
}

// mean computes the sample mean.
func mean[T RealNumber](sample []T) float64 {
	if len(sample) < 1 {
		return math.NaN()
	}
	sum := 0.0
	for _, x := range sample {
		sum += float64(x)
	}
	return sum / float64(len(sample))
}

// variance computes sample variance with bias correction.
func variance[T RealNumber](sample []T, mean float64) float64 {
	if len(sample) < 2 {
		return math.NaN()
	}
	n := float64(len(sample))
	sumSquares := 0.0
	for _, x := range sample {
		d := float64(x) - mean
		sumSquares += d * d
	}
	return sumSquares / (n - 1)
}

// skewness computes sample skewness using the G1 estimator from
// https://en.wikipedia.org/wiki/Skewness#Sample_skewness
func skewness[T RealNumber](sample []T, mean, variance float64) float64 {
	if len(sample) < 3 {
		return math.NaN()
	}
	n := float64(len(sample))
	sumCubes := 0.0
	for _, x := range sample {
		d := float64(x) - mean
		sumCubes += d * d * d
	}
	sd := math.Sqrt(variance)
	return sumCubes * n / (n - 1) / (n - 2) / (sd * sd * sd)
}

// quartile computes a sample quartile of sorted data; quartile 0 is the
// minimum and quartile 4 the maximum. Implements the 'type 2' calculation
// from https://en.wikipedia.org/wiki/Quartile, which is commonly used for
// discrete data such as token lengths.
func quartile[T RealNumber](sortedSample []T, whichQuartile int) float64 {
	if whichQuartile < 0 || whichQuartile > 4 {
		panic(fmt.Errorf("invalid quartile %d", whichQuartile))
	}
	n := len(sortedSample)
	if n == 0 {
		return math.NaN()
	}
	if whichQuartile == 0 {
		return float64(sortedSample[0])
	}
	if whichQuartile == 4 {
		return float64(sortedSample[n-1])
	}

	j := n * whichQuartile / 4
	if n*whichQuartile%4 == 0 && j > 0 {
		// empirical CDF is discontinuous here; average with the previous value
		return float64(sortedSample[j-1]+sortedSample[j]) / 2.0
	}
	return float64(sortedSample[j])
}

func quartiles[T RealNumber](sample []T) [5]float64 {
	nan := math.NaN()
	result := [5]float64{nan, nan, nan, nan, nan}

	if len(sample) > 0 {
		sortedSample := make([]T, len(sample))
		copy(sortedSample, sample)
		slices.Sort(sortedSample)

		for i := 0; i <= 4; i++ {
			result[i] = quartile(sortedSample, i)
		}
	}

	return result
}

// Median returns the sample median, or NaN for an empty sample.
func Median[T RealNumber](sample []T) float64 {
	return quartiles(sample)[2]
}

func Summarise[T RealNumber](sample []T) SampleStatistics {
	l := len(sample)
	m := mean(sample)
	v := variance(sample, m)
	s := skewness(sample, m, v)
	q := quartiles(sample)
	return SampleStatistics{Size: l, Mean: m, Variance: v, Skewness: s, Quartiles: q}
}
