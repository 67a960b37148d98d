package rabbitmq

import (
	"context"
	"crypto/tls"
	"math/rand"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/smartystreets/clock"
	"github.com/smartystreets/logging"
	"github.com/smartystreets/rabbitstream"
	"github.com/smartystreets/rabbitstream/rabbitmq/adapter"
)

type configuration struct {
	Credentials     rabbitstream.BrokerCredentials
	QueueName       string
	TLSConfig       *tls.Config
	TLSClient       tlsClientFunc
	Dialer          netDialer
	Connector       adapter.Connector
	Selector        endpointSelector
	Logger          rabbitstream.Logger
	Monitor         Monitor
	Clock           *clock.Clock
	Sleep           sleepFunc
	Random          func(int) int
	Identity        func() string
	PublishInterval time.Duration
	ResetCooldown   time.Duration
	Heartbeat       time.Duration
	PrefetchCount   uint16
}

var Options singleton

type singleton struct{}
type option func(*configuration)

func (singleton) Credentials(value rabbitstream.BrokerCredentials) option {
	return func(this *configuration) { this.Credentials = value }
}
func (singleton) QueueName(value string) option {
	return func(this *configuration) { this.QueueName = value }
}
func (singleton) TLSConfig(value *tls.Config) option {
	return func(this *configuration) { this.TLSConfig = value }
}
func (singleton) TLSClient(value tlsClientFunc) option {
	return func(this *configuration) { this.TLSClient = value }
}
func (singleton) Dialer(value netDialer) option {
	return func(this *configuration) { this.Dialer = value }
}
func (singleton) Connector(value adapter.Connector) option {
	return func(this *configuration) { this.Connector = value }
}
func (singleton) Logger(value rabbitstream.Logger) option {
	return func(this *configuration) { this.Logger = value }
}
func (singleton) Monitor(value Monitor) option {
	return func(this *configuration) { this.Monitor = value }
}
func (singleton) Clock(value *clock.Clock) option {
	return func(this *configuration) { this.Clock = value }
}
func (singleton) Sleep(value func(context.Context, time.Duration) bool) option {
	return func(this *configuration) { this.Sleep = value }
}
func (singleton) Random(value func(int) int) option {
	return func(this *configuration) { this.Random = value }
}
func (singleton) Identity(value func() string) option {
	return func(this *configuration) { this.Identity = value }
}
func (singleton) PublishInterval(value time.Duration) option {
	return func(this *configuration) { this.PublishInterval = value }
}
func (singleton) ResetCooldown(value time.Duration) option {
	return func(this *configuration) { this.ResetCooldown = value }
}
func (singleton) Heartbeat(value time.Duration) option {
	return func(this *configuration) { this.Heartbeat = value }
}
func (singleton) PrefetchCount(value uint16) option {
	return func(this *configuration) { this.PrefetchCount = value }
}

func (singleton) apply(options ...option) option {
	return func(this *configuration) {
		for _, option := range Options.defaults(options...) {
			option(this)
		}

		if len(this.QueueName) == 0 {
			this.QueueName = defaultQueueName
		}

		if this.TLSClient == nil {
			this.TLSClient = this.defaultTLSClient
		}

		if this.Dialer == nil {
			this.Dialer = this.defaultDialer()
		}

		if this.Selector == nil {
			this.Selector = newEndpointSelector(*this)
		}
	}
}
func (singleton) defaults(options ...option) []option {
	const defaultPublishInterval = time.Second * 2
	const defaultResetCooldown = time.Second * 3
	const defaultHeartbeat = time.Second * 10
	var defaultLogger *logging.Logger // nil forwards to the standard library log package
	var defaultClock *clock.Clock     // nil reports the current time

	return append([]option{
		Options.QueueName(defaultQueueName),
		Options.Connector(adapter.New()),
		Options.Logger(defaultLogger),
		Options.Monitor(nop{}),
		Options.Clock(defaultClock),
		Options.Sleep(sleep),
		Options.Random(rand.Intn),
		Options.Identity(uuid.NewString),
		Options.PublishInterval(defaultPublishInterval),
		Options.ResetCooldown(defaultResetCooldown),
		Options.Heartbeat(defaultHeartbeat),
	}, options...)
}

const defaultQueueName = "testq"

func (this configuration) defaultTLSClient(conn net.Conn, config *tls.Config) tlsConn {
	return tls.Client(conn, config)
}
func (this configuration) defaultDialer() netDialer {
	return &net.Dialer{Timeout: time.Second * 30, KeepAlive: time.Second * 30}
}

func sleep(ctx context.Context, duration time.Duration) bool {
	if duration > 0 {
		sleeper, cancel := context.WithTimeout(ctx, duration)
		defer cancel()
		<-sleeper.Done()
	}

	return isAlive(ctx)
}
func isAlive(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	default:
		return true
	}
}
