package worker

import (
	"context"
	"log/slog"

	"github.com/KodyMike/rndSequencer/internal/log"
	"github.com/KodyMike/rndSequencer/pkg/report"
	"github.com/KodyMike/rndSequencer/pkg/runidentifier"
)

/*
NOTE: These strings are referenced externally by infrastructure for
dashboard reporting / metrics purposes, and so should be changed with
care.
*/
const analysisCompleteLogMsg = "Analysis completed successfully"
const analysisDegradedLogMsg = "Analysis produced a degraded report"
const gotRequestLogMsg = "Got request"

// LogRequest records that a request for analysis was received by the
// worker.
func LogRequest(ctx context.Context, run runidentifier.RunIdentifier, capturePath, resultsBucketOverride string) {
	slog.InfoContext(ctx, gotRequestLogMsg,
		log.LabelAttr("target", run.Target),
		log.LabelAttr("parameter", run.Parameter),
		log.LabelAttr("run_id", run.RunID),
		log.LabelAttr("capture_path", capturePath),
		log.LabelAttr("results_bucket_override", resultsBucketOverride),
	)
}

// LogAnalysisResult records the outcome of one analysis run. A degraded
// report (no analyzable tokens) is logged at warning level so failing
// collectors surface in the dashboards.
func LogAnalysisResult(ctx context.Context, run runidentifier.RunIdentifier, result *report.Result) {
	attrs := []any{
		log.LabelAttr("target", run.Target),
		log.LabelAttr("parameter", run.Parameter),
		log.LabelAttr("run_id", run.RunID),
		log.LabelAttr("rating", string(result.Security.OverallRating)),
		slog.Int("valid_samples", result.Summary.ValidSamples),
		slog.Int("issues", len(result.Security.Issues)),
	}
	if result.Summary.ValidSamples == 0 {
		slog.WarnContext(ctx, analysisDegradedLogMsg, attrs...)
		return
	}
	slog.InfoContext(ctx, analysisCompleteLogMsg, attrs...)
}
