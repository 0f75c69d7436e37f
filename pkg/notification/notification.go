package notification

import (
	"encoding/json"
	"fmt"

	"gocloud.dev/pubsub"

	"github.com/KodyMike/rndSequencer/pkg/runidentifier"
)

// AnalysisCompletion is the message published to notify that analysis of a
// capture run has completed and its results have been stored.
type AnalysisCompletion struct {
	Run runidentifier.RunIdentifier
}

// ParseJSON decodes a completion notification message body.
func ParseJSON(msg *pubsub.Message) (AnalysisCompletion, error) {
	notification := AnalysisCompletion{}
	if err := json.Unmarshal(msg.Body, &notification); err != nil {
		return notification, fmt.Errorf("error unmarshalling json: %w", err)
	}
	return notification, nil
}
