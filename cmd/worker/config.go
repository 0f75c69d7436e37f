package main

import (
	"log/slog"
	"os"

	"github.com/KodyMike/rndSequencer/internal/resultstore"
	"github.com/KodyMike/rndSequencer/internal/worker"
)

type config struct {
	resultStores worker.ResultStores

	subURL               string
	capturesBucket       string
	notificationTopicURL string

	featureFlags   string
	enableProfiler bool
}

func (c *config) LogValue() slog.Value {
	resultsStore := "<none>"
	if c.resultStores.AnalysisResults != nil {
		resultsStore = c.resultStores.AnalysisResults.String()
	}
	return slog.GroupValue(
		slog.String("subscription", c.subURL),
		slog.String("captures_bucket", c.capturesBucket),
		slog.String("results_store", resultsStore),
		slog.String("topic_notification", c.notificationTopicURL),
		slog.String("feature_flags", c.featureFlags),
		slog.Bool("profiler", c.enableProfiler),
	)
}

func resultStoreForEnv(key string) *resultstore.ResultStore {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	return resultstore.New(val, resultstore.ConstructPath())
}

func configFromEnv() *config {
	return &config{
		resultStores: worker.ResultStores{
			AnalysisResults: resultStoreForEnv("RNDSEQ_ANALYSIS_RESULTS"),
		},
		subURL:               os.Getenv("RNDSEQ_WORKER_SUBSCRIPTION"),
		capturesBucket:       os.Getenv("RNDSEQ_CAPTURES_BUCKET"),
		notificationTopicURL: os.Getenv("RNDSEQ_NOTIFICATION_TOPIC"),
		featureFlags:         os.Getenv("RNDSEQ_FEATURE_FLAGS"),
		enableProfiler:       os.Getenv("RNDSEQ_ENABLE_PROFILER") != "",
	}
}
