// Package worker coordinates one analysis run: loading a capture
// document, running the analysis pipeline and persisting the results.
// It is shared by the pub/sub worker and the CLI.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gocloud.dev/blob"

	"github.com/KodyMike/rndSequencer/internal/analysis"
	"github.com/KodyMike/rndSequencer/internal/featureflags"
	"github.com/KodyMike/rndSequencer/internal/resultstore"
	"github.com/KodyMike/rndSequencer/pkg/report"
	"github.com/KodyMike/rndSequencer/pkg/runidentifier"
)

// ResultStores holds the storage destination for analysis results. Nil
// means results are not persisted (CLI runs that only print).
type ResultStores struct {
	AnalysisResults *resultstore.ResultStore
}

// LoadCaptures reads a capture document (a JSON array of TokenCapture)
// from a blob bucket.
func LoadCaptures(ctx context.Context, bucket *blob.Bucket, path string) ([]report.TokenCapture, error) {
	r, err := bucket.NewReader(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture document %s: %w", path, err)
	}
	defer r.Close()
	return decodeCaptures(r)
}

// LoadLocalCaptures reads a capture document from the local filesystem.
func LoadLocalCaptures(path string) ([]report.TokenCapture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture document %s: %w", path, err)
	}
	defer f.Close()
	return decodeCaptures(f)
}

func decodeCaptures(r io.Reader) ([]report.TokenCapture, error) {
	var captures []report.TokenCapture
	if err := json.NewDecoder(r).Decode(&captures); err != nil {
		return nil, fmt.Errorf("failed to decode capture document: %w", err)
	}
	return captures, nil
}

// RunAnalysis runs the pipeline over the captures and logs the outcome.
func RunAnalysis(ctx context.Context, run runidentifier.RunIdentifier, captures []report.TokenCapture, mode analysis.Mode) *report.Result {
	result := analysis.Analyze(ctx, captures, mode)
	LogAnalysisResult(ctx, run, result)
	return result
}

// SaveResults persists the analysis result, and the raw capture document
// plus its CSV export when the SaveRawCaptures feature is enabled.
func SaveResults(ctx context.Context, stores ResultStores, run runidentifier.RunIdentifier, captures []report.TokenCapture, result *report.Result) error {
	if stores.AnalysisResults == nil {
		return nil
	}

	if err := stores.AnalysisResults.Save(ctx, run, result); err != nil {
		return fmt.Errorf("failed to save analysis results: %w", err)
	}
	if featureflags.SaveRawCaptures.Enabled() {
		if err := stores.AnalysisResults.SaveCaptures(ctx, run, captures); err != nil {
			return fmt.Errorf("failed to save raw captures: %w", err)
		}
		if err := stores.AnalysisResults.SaveCSV(ctx, run, captures); err != nil {
			return fmt.Errorf("failed to save capture CSV export: %w", err)
		}
	}
	return nil
}
