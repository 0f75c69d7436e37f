package featureflags

var (
	// SaveRawCaptures uploads the raw token capture document, and a flat
	// CSV export of it, next to the analysis results (if a results bucket
	// is configured), so a run can be re-analyzed or inspected later
	// without re-collecting tokens.
	SaveRawCaptures = new("SaveRawCaptures", true)

	// PubSubExtender determines whether the worker uses a real GCP extender
	// for keeping messages alive while large capture samples are analyzed.
	PubSubExtender = new("PubSubExtender", true)

	// PositionChartData includes the per-position entropy and coverage
	// arrays in the result JSON. Disable to shrink result documents for
	// very long tokens.
	PositionChartData = new("PositionChartData", true)
)
