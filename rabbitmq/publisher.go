package rabbitmq

import (
	"context"
	"time"

	"github.com/smartystreets/rabbitstream"
	"github.com/streadway/amqp"
)

type defaultPublisher struct {
	config configuration
}

// NewPublisher returns a loop which publishes a durable, timestamped message to the queue at a fixed
// interval. Each call to Run uses its own broker connection.
func NewPublisher(options ...option) rabbitstream.Loop {
	var config configuration
	Options.apply(options...)(&config)
	return defaultPublisher{config: config}
}

func (this defaultPublisher) Run(ctx context.Context, sink rabbitstream.StatusSink) error {
	return run(ctx, sink, this.config, this.publish)
}
func (this defaultPublisher) publish(ctx context.Context, manager *connectionManager, sink rabbitstream.StatusSink) error {
	for {
		current, err := manager.Current(ctx)
		if err != nil {
			return err
		}

		now := this.config.Clock.UTCNow()
		payload := now.Format(time.RFC3339Nano)
		err = current.channel.Publish("", current.queue, this.toAMQPPublishing(payload, now))
		this.config.Monitor.MessagePublished(err)
		if err != nil {
			return err // writes are async, only channel unavailability causes errors here
		}

		sink.Report(rabbitstream.NewStatusEvent(rabbitstream.SeveritySuccess, "[x] Sent %s", payload))

		if !this.config.Sleep(ctx, this.config.PublishInterval) {
			return ctx.Err()
		}
	}
}
func (this defaultPublisher) toAMQPPublishing(payload string, now time.Time) amqp.Publishing {
	return amqp.Publishing{
		MessageId:    this.config.Identity(),
		ContentType:  "text/plain",
		Timestamp:    now,
		DeliveryMode: amqp.Persistent,
		Body:         []byte(payload),
	}
}
