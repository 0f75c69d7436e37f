package utils

import "math"

// FloatEquals compares two floats to within an absolute tolerance. Two
// NaNs compare equal, unlike with ==; statistics over empty samples are
// NaN-valued and still need to be comparable in tests.
func FloatEquals(x1, x2, absTol float64) bool {
	return x1 == x2 || math.Abs(x1-x2) < absTol || (math.IsNaN(x1) && math.IsNaN(x2))
}
