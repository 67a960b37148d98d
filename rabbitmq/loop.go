package rabbitmq

import (
	"context"
	"errors"

	"github.com/smartystreets/rabbitstream"
)

type sessionFunc func(ctx context.Context, manager *connectionManager, sink rabbitstream.StatusSink) error

// run drives body until the context ends. Every failure is reported, the session is reset, and the
// body starts again from the top.
func run(ctx context.Context, sink rabbitstream.StatusSink, config configuration, body sessionFunc) error {
	if config.Credentials.Empty() {
		return abort(sink, config, rabbitstream.ErrNoBrokerEndpoint)
	}

	manager := newConnectionManager(config, sink)
	defer func() {
		if err := manager.Close(); err != nil {
			config.Logger.Println("[WARN] Unable to close broker connection:", err)
		}
	}()

	for isAlive(ctx) {
		err := body(ctx, manager, sink)
		if !isAlive(ctx) {
			break
		}

		if errors.Is(err, rabbitstream.ErrNoBrokerEndpoint) {
			return abort(sink, config, err)
		}

		config.Logger.Printf("[WARN] Restarting connection to [%s]: %s", config.QueueName, err)
		sink.Report(rabbitstream.NewStatusEvent(rabbitstream.SeverityWarning, "[WARNING] Restarting connection: %s", err))
		manager.Reset(ctx)
	}

	return ctx.Err()
}

// abort reports a failure that no amount of retrying can repair.
func abort(sink rabbitstream.StatusSink, config configuration, err error) error {
	config.Logger.Println("[ERROR] Unable to start:", err)
	sink.Report(rabbitstream.NewStatusEvent(rabbitstream.SeverityError, "[ERROR] %s", err))
	return err
}
