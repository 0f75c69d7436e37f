package utils

// Transform maps fn over ts and returns the results in order.
func Transform[T, R any](ts []T, fn func(T) R) []R {
	result := make([]R, len(ts))
	for i, t := range ts {
		result[i] = fn(t)
	}
	return result
}
