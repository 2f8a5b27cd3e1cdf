package notifier

import (
	"checkout-service/internal/config"
	"checkout-service/internal/entity"
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultTimeout = 10 * time.Second

// Result collects the per-channel outcomes of one dispatch.
type Result struct {
	Outcomes []entity.DeliveryOutcome
}

// Sent reports whether at least one channel accepted the message.
func (r Result) Sent() bool {
	for _, o := range r.Outcomes {
		if o.Sent {
			return true
		}
	}
	return false
}

// Dispatcher fans a message out over its channels. A channel failure, timeout or
// panic is recorded in the Result and never stops the other channels. Each
// attempt is bounded by the per-channel timeout.
type Dispatcher struct {
	notifiers []Notifier
	strategy  string
	timeout   time.Duration
}

func NewDispatcher(strategy string, timeout time.Duration, notifiers ...Notifier) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if strategy != config.StrategyFallback {
		strategy = config.StrategyBroadcast
	}
	return &Dispatcher{notifiers: notifiers, strategy: strategy, timeout: timeout}
}

// Channels lists the configured channel names in order.
func (d *Dispatcher) Channels() []string {
	names := make([]string, len(d.notifiers))
	for i, n := range d.notifiers {
		names[i] = n.Name()
	}
	return names
}

func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) Result {
	if d.strategy == config.StrategyFallback {
		return d.fallback(ctx, msg)
	}
	return d.broadcast(ctx, msg)
}

// broadcast attempts every channel concurrently.
func (d *Dispatcher) broadcast(ctx context.Context, msg Message) Result {
	outcomes := make([]entity.DeliveryOutcome, len(d.notifiers))

	var g errgroup.Group
	for i, n := range d.notifiers {
		i, n := i, n
		g.Go(func() error {
			outcomes[i] = d.attempt(ctx, n, msg)
			return nil
		})
	}
	_ = g.Wait()

	return Result{Outcomes: outcomes}
}

// fallback tries channels in order and stops at the first one that accepts.
func (d *Dispatcher) fallback(ctx context.Context, msg Message) Result {
	outcomes := make([]entity.DeliveryOutcome, 0, len(d.notifiers))
	for _, n := range d.notifiers {
		o := d.attempt(ctx, n, msg)
		outcomes = append(outcomes, o)
		if o.Sent {
			break
		}
	}
	return Result{Outcomes: outcomes}
}

func (d *Dispatcher) attempt(ctx context.Context, n Notifier, msg Message) entity.DeliveryOutcome {
	outcome := entity.DeliveryOutcome{Channel: n.Name()}
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	// buffered: Send may return after the deadline fired
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("panic: %v", r)
			}
		}()
		done <- n.Send(ctx, msg)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = fmt.Errorf("%s: %w", outcome.Channel, ctx.Err())
	}

	if err != nil {
		outcome.Error = err.Error()
		logger.Warn().Err(err).Str("channel", outcome.Channel).Str("order_number", msg.Summary.OrderNumber).Dur("elapsed", time.Since(start)).Msg("Notification channel failed")
		return outcome
	}

	outcome.Sent = true
	logger.Info().Str("channel", outcome.Channel).Str("order_number", msg.Summary.OrderNumber).Dur("elapsed", time.Since(start)).Msg("Notification sent")
	return outcome
}
