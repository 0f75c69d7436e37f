// Package notification publishes analysis-completion messages so that
// downstream consumers (dashboards, report renderers) know when a run's
// results are available in the result bucket.
package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"gocloud.dev/pubsub"

	"github.com/KodyMike/rndSequencer/pkg/notification"
	"github.com/KodyMike/rndSequencer/pkg/runidentifier"
)

func PublishAnalysisCompletion(ctx context.Context, notificationTopic *pubsub.Topic, run runidentifier.RunIdentifier) error {
	notificationMsg, err := json.Marshal(notification.AnalysisCompletion{Run: run})
	if err != nil {
		return fmt.Errorf("failed to encode completion notification: %w", err)
	}
	err = notificationTopic.Send(ctx, &pubsub.Message{
		Body:     notificationMsg,
		Metadata: nil,
	})
	if err != nil {
		return fmt.Errorf("failed to send completion notification: %w", err)
	}
	return nil
}
