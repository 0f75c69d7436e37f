package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/pubsub"
	_ "gocloud.dev/pubsub/gcppubsub"
	_ "gocloud.dev/pubsub/kafkapubsub"

	"github.com/KodyMike/rndSequencer/cmd/worker/pubsubextender"
	"github.com/KodyMike/rndSequencer/internal/analysis"
	"github.com/KodyMike/rndSequencer/internal/featureflags"
	"github.com/KodyMike/rndSequencer/internal/log"
	"github.com/KodyMike/rndSequencer/internal/notification"
	"github.com/KodyMike/rndSequencer/internal/resultstore"
	"github.com/KodyMike/rndSequencer/internal/worker"
	"github.com/KodyMike/rndSequencer/pkg/runidentifier"
)

func handleMessage(ctx context.Context, msg *pubsub.Message, extender *pubsubextender.Extender, capturesBucket *blob.Bucket, stores worker.ResultStores, notificationTopic *pubsub.Topic) error {
	target := msg.Metadata["target"]
	if target == "" {
		slog.WarnContext(ctx, "target is empty")
		msg.Ack()
		return nil
	}

	parameter := msg.Metadata["parameter"]
	if parameter == "" {
		slog.WarnContext(ctx, "parameter is empty",
			"target", target)
		msg.Ack()
		return nil
	}

	capturePath := msg.Metadata["capture_path"]
	if capturePath == "" {
		slog.WarnContext(ctx, "capture_path is empty",
			"target", target,
			"parameter", parameter)
		msg.Ack()
		return nil
	}

	run := runidentifier.RunIdentifier{
		Target:    target,
		Parameter: parameter,
		RunID:     msg.Metadata["run_id"],
	}

	mode := analysis.Full
	if modeName := msg.Metadata["mode"]; modeName != "" {
		var ok bool
		if mode, ok = analysis.ModeFromString(modeName); !ok {
			slog.WarnContext(ctx, "Unknown analysis mode",
				"target", target,
				"mode", modeName)
			msg.Ack()
			return nil
		}
	}

	resultsBucketOverride := msg.Metadata["results_bucket_override"]
	if resultsBucketOverride != "" {
		stores.AnalysisResults = resultstore.New(resultsBucketOverride, resultstore.ConstructPath())
	}

	worker.LogRequest(ctx, run, capturePath, resultsBucketOverride)

	if capturesBucket == nil {
		return fmt.Errorf("captures bucket not set, cannot load %s", capturePath)
	}
	captures, err := worker.LoadCaptures(ctx, capturesBucket, capturePath)
	if err != nil {
		return err
	}

	// Large capture samples can outlive the message ack deadline; keep
	// the message alive while the analysis runs.
	me, err := extender.Start(ctx, msg, func() {
		slog.InfoContext(ctx, "Message deadline extended",
			"target", target,
			"parameter", parameter)
	})
	if err != nil {
		return err
	}

	result := worker.RunAnalysis(ctx, run, captures, mode)

	if err := me.Stop(); err != nil {
		slog.WarnContext(ctx, "Error stopping message extender", "error", err)
	}

	if err := worker.SaveResults(ctx, stores, run, captures, result); err != nil {
		return err
	}

	if notificationTopic != nil {
		if err := notification.PublishAnalysisCompletion(ctx, notificationTopic, run); err != nil {
			return err
		}
	}

	msg.Ack()
	return nil
}

func messageLoop(ctx context.Context, cfg *config) error {
	sub, err := pubsub.OpenSubscription(ctx, cfg.subURL)
	if err != nil {
		return err
	}

	extender, err := pubsubextender.New(ctx, cfg.subURL, sub)
	if err != nil {
		return err
	}

	// the default value of the notificationTopic object is nil
	// if no environment variable for a notification topic is set,
	// we pass in a nil notificationTopic object to handleMessage
	// and continue with the analysis with no notifications published
	var notificationTopic *pubsub.Topic
	if cfg.notificationTopicURL != "" {
		notificationTopic, err = pubsub.OpenTopic(ctx, cfg.notificationTopicURL)
		if err != nil {
			return err
		}
		defer notificationTopic.Shutdown(ctx)
	}

	var capturesBucket *blob.Bucket
	if cfg.capturesBucket != "" {
		capturesBucket, err = blob.OpenBucket(ctx, cfg.capturesBucket)
		if err != nil {
			return err
		}
		defer capturesBucket.Close()
	}

	slog.InfoContext(ctx, "Listening for messages to process...")
	for {
		msg, err := sub.Receive(ctx)
		if err != nil {
			// All subsequent receive calls will return the same error, so we bail out.
			return fmt.Errorf("error receiving message: %w", err)
		}

		if err := handleMessage(ctx, msg, extender, capturesBucket, cfg.resultStores, notificationTopic); err != nil {
			slog.ErrorContext(ctx, "Failed to process message",
				"error", err)
		}
	}
}

func main() {
	ctx := context.Background()
	cfg := configFromEnv()

	log.Initialize(os.Getenv("LOGGER_ENV"))

	if err := featureflags.Update(cfg.featureFlags); err != nil {
		slog.ErrorContext(ctx, "Failed to parse feature flags", "error", err)
		os.Exit(1)
	}

	// If configured, start a webserver so that Go's pprof can be accessed
	// for debugging and profiling.
	if cfg.enableProfiler {
		go func() {
			slog.InfoContext(ctx, "Starting profiler")
			http.ListenAndServe(":6060", nil)
		}()
	}

	// Log the configuration of the worker at startup so we can observe it.
	slog.InfoContext(ctx, "Starting worker", "config", cfg)

	if err := messageLoop(ctx, cfg); err != nil {
		slog.ErrorContext(ctx, "Error encountered", "error", err)
	}
}
