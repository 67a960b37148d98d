package rabbitmq

import (
	"context"
	"io"
	"time"

	"github.com/smartystreets/rabbitstream"
	"github.com/smartystreets/rabbitstream/rabbitmq/adapter"
)

type session struct {
	endpoint   BrokerEndpoint
	connection adapter.Connection
	channel    adapter.Channel
	queue      string
}

// connectionManager owns at most one session. It is created per loop invocation and is not safe
// for concurrent use.
type connectionManager struct {
	credentials rabbitstream.BrokerCredentials
	selector    endpointSelector
	dialer      brokerDialer
	connector   adapter.Connector
	queue       string
	prefetch    uint16
	heartbeat   time.Duration
	cooldown    time.Duration
	sleep       sleepFunc
	monitor     Monitor
	sink        rabbitstream.StatusSink

	current *session
}

func newConnectionManager(config configuration, sink rabbitstream.StatusSink) *connectionManager {
	return &connectionManager{
		credentials: config.Credentials,
		selector:    config.Selector,
		dialer:      newTLSDialer(config.Dialer, config.TLSClient),
		connector:   config.Connector,
		queue:       config.QueueName,
		prefetch:    config.PrefetchCount,
		heartbeat:   config.Heartbeat,
		cooldown:    config.ResetCooldown,
		sleep:       config.Sleep,
		monitor:     config.Monitor,
		sink:        sink,
	}
}

func (this *connectionManager) Current(ctx context.Context) (*session, error) {
	if this.current != nil {
		return this.current, nil
	}

	current, err := this.open(ctx)
	if err != nil {
		return nil, err
	}

	this.current = current
	return this.current, nil
}
func (this *connectionManager) open(ctx context.Context) (*session, error) {
	endpoint, err := this.selector.Select(this.credentials)
	if err != nil {
		return nil, err
	}

	this.sink.Report(connectionEvent(endpoint))

	socket, err := this.dialer.Dial(ctx, endpoint)
	if err != nil {
		this.monitor.ConnectionOpened(err)
		return nil, err
	}

	connection, err := this.connector.Connect(ctx, socket, this.adapterConfig(endpoint))
	this.monitor.ConnectionOpened(err)
	if err != nil {
		return nil, err
	}

	channel, err := this.openChannel(connection)
	if err != nil {
		this.abandon(connection)
		return nil, err
	}

	return &session{endpoint: endpoint, connection: connection, channel: channel, queue: this.queue}, nil
}
func (this *connectionManager) openChannel(connection adapter.Connection) (adapter.Channel, error) {
	channel, err := connection.Channel()
	if err != nil {
		return nil, err
	}

	if this.prefetch > 0 {
		if err = channel.BufferCapacity(this.prefetch); err != nil {
			return nil, err
		}
	}

	if err = channel.DeclareQueue(this.queue); err != nil {
		return nil, err
	}

	return channel, nil
}
func (this *connectionManager) adapterConfig(endpoint BrokerEndpoint) adapter.Config {
	return adapter.Config{
		Username:    endpoint.URI.Username,
		Password:    endpoint.URI.Password,
		VirtualHost: endpoint.URI.Vhost,
		Heartbeat:   this.heartbeat,
	}
}
func (this *connectionManager) abandon(connection io.Closer) {
	_ = connection.Close()
	this.monitor.ConnectionClosed()
}

// Reset discards the current session, reporting rather than returning any failure to close it,
// and then waits out the cooldown.
func (this *connectionManager) Reset(ctx context.Context) {
	this.release(func(err error) {
		this.sink.Report(rabbitstream.NewStatusEvent(rabbitstream.SeverityError, "[ERROR] %s", err))
	})
	this.monitor.SessionReset()
	this.sleep(ctx, this.cooldown)
}

func (this *connectionManager) Close() error {
	var closeError error
	this.release(func(err error) { closeError = err })
	return closeError
}
func (this *connectionManager) release(failure func(error)) {
	current := this.current
	this.current = nil

	if current == nil {
		return
	}

	if err := current.connection.Close(); err != nil {
		failure(err)
	}
	this.monitor.ConnectionClosed()
}

func connectionEvent(endpoint BrokerEndpoint) rabbitstream.StatusEvent {
	event := rabbitstream.NewStatusEvent(rabbitstream.SeverityConnection, "Starting connection to (%s)", endpoint.Host)
	event.Endpoint = endpoint.Index
	return event
}
