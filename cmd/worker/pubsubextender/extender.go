// Package pubsubextender keeps pubsub messages alive while an analysis
// runs. Capture documents with hundreds of thousands of tokens can take
// longer to analyze than the subscription's ack deadline, so the worker
// periodically extends the deadline of the message it is processing.
package pubsubextender

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"gocloud.dev/pubsub"
	"gocloud.dev/pubsub/gcppubsub"

	"github.com/KodyMike/rndSequencer/internal/featureflags"
)

const (
	defaultGracePeriod = 60 * time.Second
	defaultDeadline    = 300 * time.Second
)

var ErrInvalidGracePeriod = errors.New("invalid grace period")

type driver interface {
	// ExtendMessageDeadline asks the pubsub service to move the ack
	// deadline of msg to the supplied duration from now.
	ExtendMessageDeadline(ctx context.Context, msg *pubsub.Message, deadline time.Duration) error

	// GetSubscriptionDeadline reads the subscription's configured ack
	// deadline, used as the default extension length. Zero means the
	// transport has no configured deadline.
	GetSubscriptionDeadline(ctx context.Context) (time.Duration, error)
}

// Extender creates MessageExtenders for a single subscription. The
// Deadline is taken from the subscription when available; GracePeriod is
// how long before expiry the next extension is requested.
type Extender struct {
	driver      driver
	Deadline    time.Duration
	GracePeriod time.Duration
}

func getDriver(u *url.URL, sub *pubsub.Subscription) (driver, error) {
	if !featureflags.PubSubExtender.Enabled() {
		return &noopDriver{}, nil
	}

	switch u.Scheme {
	case gcppubsub.Scheme:
		return newGCPDriver(u, sub)
	default:
		return &noopDriver{}, nil
	}
}

// New builds an Extender for the subscription at subURL. Transports
// without deadline support get a noop driver, so callers never need to
// special-case them.
func New(ctx context.Context, subURL string, sub *pubsub.Subscription) (*Extender, error) {
	u, err := url.Parse(subURL)
	if err != nil {
		return nil, err
	}

	d, err := getDriver(u, sub)
	if err != nil {
		return nil, err
	}

	deadline, err := d.GetSubscriptionDeadline(ctx)
	if err != nil {
		return nil, err
	}
	if deadline == 0 {
		deadline = defaultDeadline
	}

	return &Extender{
		driver:      d,
		Deadline:    deadline,
		GracePeriod: defaultGracePeriod,
	}, nil
}

// MessageExtender is the keepalive for one in-flight message. Stop it
// once the analysis finishes; the returned error is the last extension
// failure, if any.
type MessageExtender struct {
	ticker   *time.Ticker
	msg      *pubsub.Message
	done     chan bool
	exited   chan error
	callback func()
	running  bool
}

// Start spawns the keepalive goroutine for msg. callback, if non-nil, is
// invoked after every successful extension (the worker uses it to log
// progress on long analyses).
func (e *Extender) Start(ctx context.Context, msg *pubsub.Message, callback func()) (*MessageExtender, error) {
	freq := e.Deadline - e.GracePeriod
	if freq < 0 {
		return nil, fmt.Errorf("%w: deadline %v is smaller than grace period %v", ErrInvalidGracePeriod, e.Deadline, e.GracePeriod)
	}

	me := &MessageExtender{
		ticker:   time.NewTicker(freq),
		msg:      msg,
		done:     make(chan bool),
		exited:   make(chan error),
		callback: callback,
		running:  true,
	}

	go func() {
		var err error
		for {
			select {
			case <-me.done:
				me.ticker.Stop()
				me.exited <- err
				return
			case <-me.ticker.C:
				err = e.driver.ExtendMessageDeadline(ctx, me.msg, e.Deadline)
				if err != nil {
					// Stop ticking and hold the error until Stop collects
					// it; reporting from here would race with the caller.
					me.ticker.Stop()
				} else if me.callback != nil {
					me.callback()
				}
			}
		}
	}()
	return me, nil
}

// IsRunning reports whether the keepalive goroutine is still active.
func (me *MessageExtender) IsRunning() bool {
	return me.running
}

// Stop shuts down the keepalive goroutine and returns any extension
// error it encountered. Calling Stop again is a no-op.
func (me *MessageExtender) Stop() error {
	if !me.running {
		return nil
	}
	me.done <- true
	err := <-me.exited
	me.running = false
	return err
}
