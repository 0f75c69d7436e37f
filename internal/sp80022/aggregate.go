package sp80022

import (
	"github.com/KodyMike/rndSequencer/internal/stats"
	"github.com/KodyMike/rndSequencer/pkg/report"
)

// Aggregate combines per-token battery results into per-test pass rates
// and median p-values, plus an overall randomness verdict. perToken holds
// one RunAll result slice per token. A test with zero applicable tokens
// reports passRate=1.0, medianP=1.0: no evidence of failure, which the
// verdict rules treat the same as a clean pass.
func Aggregate(perToken [][]Result) report.TestBattery {
	names := []string{
		NameMonobit,
		NameRuns,
		NameBlockFrequency,
		NameSerial,
		NameApproxEntropy,
		NameCumulativeSums,
	}

	pValuesByName := make(map[string][]float64, len(names))
	for _, results := range perToken {
		for _, r := range results {
			if r.Applicable {
				pValuesByName[r.Name] = append(pValuesByName[r.Name], r.PValue)
			}
		}
	}

	battery := report.TestBattery{
		Alpha: Alpha,
		Tests: make([]report.AggregatedTest, 0, len(names)),
	}
	var allApplicable []float64
	totalPassed := 0
	for _, name := range names {
		pValues := pValuesByName[name]
		agg := report.AggregatedTest{
			Name:            name,
			ApplicableCount: len(pValues),
			PassRate:        1.0,
			MedianP:         1.0,
		}
		if len(pValues) > 0 {
			passed := 0
			for _, p := range pValues {
				if p >= Alpha {
					passed++
				}
			}
			agg.PassRate = float64(passed) / float64(len(pValues))
			agg.MedianP = stats.Median(pValues)
			allApplicable = append(allApplicable, pValues...)
			totalPassed += passed
		}
		battery.Tests = append(battery.Tests, agg)
	}

	battery.OverallPassRate = 1.0
	battery.OverallMedianP = 1.0
	if len(allApplicable) > 0 {
		battery.OverallPassRate = float64(totalPassed) / float64(len(allApplicable))
		battery.OverallMedianP = stats.Median(allApplicable)
	}
	battery.Verdict = verdict(battery.OverallPassRate, battery.OverallMedianP)
	return battery
}

// verdict maps the aggregate pass rate and median p-value to the overall
// randomness label.
func verdict(passRate, medianP float64) string {
	switch {
	case passRate >= 0.95 && medianP >= 0.05:
		return report.VerdictLooksRandom
	case passRate >= 0.80 && medianP >= 0.01:
		return report.VerdictMostlyRandom
	default:
		return report.VerdictShowsPattern
	}
}
