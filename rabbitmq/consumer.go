package rabbitmq

import (
	"context"

	"github.com/smartystreets/rabbitstream"
)

type defaultConsumer struct {
	config configuration
}

// NewConsumer returns a loop which subscribes to the queue with manual acknowledgement and reports
// each delivery after acknowledging it. Each call to Run uses its own broker connection.
func NewConsumer(options ...option) rabbitstream.Loop {
	var config configuration
	Options.apply(options...)(&config)
	return defaultConsumer{config: config}
}

func (this defaultConsumer) Run(ctx context.Context, sink rabbitstream.StatusSink) error {
	return run(ctx, sink, this.config, this.consume)
}
func (this defaultConsumer) consume(ctx context.Context, manager *connectionManager, sink rabbitstream.StatusSink) error {
	current, err := manager.Current(ctx)
	if err != nil {
		return err
	}

	consumerID := this.config.Identity()
	deliveries, err := current.channel.Consume(consumerID, current.queue)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			if err = current.channel.CancelConsumer(consumerID); err != nil {
				this.config.Logger.Printf("[WARN] Unable to cancel subscription [%s]: %s", consumerID, err)
			}
			return ctx.Err()
		case delivery, open := <-deliveries:
			if !open {
				return rabbitstream.ErrSubscriptionClosed
			}

			this.config.Monitor.DeliveryReceived()
			err = current.channel.Ack(delivery.DeliveryTag, false)
			this.config.Monitor.DeliveryAcknowledged(err)
			if err != nil {
				return err
			}

			sink.Report(rabbitstream.NewStatusEvent(rabbitstream.SeveritySuccess, "[x] Received: %s", delivery.Body))
		}
	}
}
