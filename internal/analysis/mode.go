package analysis

// Mode selects how much of the pipeline runs. Quick restricts analysis to
// summary statistics, pattern detectors and duplicate-based rating; Full
// adds decoding, entropy estimation, the statistical test battery and the
// bit-bias checks.
type Mode string

const (
	Quick Mode = "quick"
	Full  Mode = "full"
)

func AllModes() []Mode {
	return []Mode{Quick, Full}
}

func ModeFromString(s string) (Mode, bool) {
	switch Mode(s) {
	case Quick:
		return Quick, true
	case Full:
		return Full, true
	default:
		return "", false
	}
}
