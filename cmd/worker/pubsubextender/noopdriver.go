package pubsubextender

import (
	"context"
	"time"

	"gocloud.dev/pubsub"
)

// noopDriver is used when the extender feature is disabled or the
// subscription transport has no deadline concept (mempubsub, kafka).
// Extensions succeed without doing anything and the subscription
// deadline reads as unset, so the Extender falls back to its default.
type noopDriver struct{}

// ExtendMessageDeadline implements the driver interface.
func (d *noopDriver) ExtendMessageDeadline(ctx context.Context, msg *pubsub.Message, deadline time.Duration) error {
	return nil
}

// GetSubscriptionDeadline implements the driver interface.
func (d *noopDriver) GetSubscriptionDeadline(ctx context.Context) (time.Duration, error) {
	return 0, nil
}
