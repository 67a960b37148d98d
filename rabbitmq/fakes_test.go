package rabbitmq

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/smartystreets/rabbitstream"
	"github.com/smartystreets/rabbitstream/rabbitmq/adapter"
	"github.com/streadway/amqp"
)

var errBroker = errors.New("broker failure")

// fakeBroker stands in for the network dialer, the AMQP connector and every connection and channel
// opened through it. Each failure counter makes that many calls fail before succeeding again.
type fakeBroker struct {
	actions []string

	dialContexts  []context.Context
	dialAddresses []string
	failDials     int

	connectConfigs []adapter.Config
	failConnects   int
	connections    []*fakeConnection

	failChannels int
	failDeclares int
	failCloses   int
	declared     []string
	prefetch     []uint16

	failPublishes int
	publishedTo   []string
	published     []amqp.Publishing

	subscriptions []chan amqp.Delivery
	failConsumes  int
	consumerIDs   []string
	consumedFrom  []string
	cancelled     []string
	failCancels   int

	failAcks int
	acked    []uint64
}

func (this *fakeBroker) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	this.actions = append(this.actions, "dial")
	this.dialContexts = append(this.dialContexts, ctx)
	this.dialAddresses = append(this.dialAddresses, network+"://"+address)
	if fail(&this.failDials) {
		return nil, errBroker
	}
	return fakeSocket{}, nil
}
func (this *fakeBroker) Connect(_ context.Context, _ net.Conn, config adapter.Config) (adapter.Connection, error) {
	this.connectConfigs = append(this.connectConfigs, config)
	if fail(&this.failConnects) {
		return nil, errBroker
	}

	connection := &fakeConnection{broker: this}
	this.connections = append(this.connections, connection)
	return connection, nil
}

func (this *fakeBroker) subscription() chan amqp.Delivery {
	if len(this.subscriptions) == 0 {
		return make(chan amqp.Delivery)
	}

	next := this.subscriptions[0]
	this.subscriptions = this.subscriptions[1:]
	return next
}

func fail(remaining *int) bool {
	if *remaining <= 0 {
		return false
	}

	*remaining--
	return true
}

////////////////////////////////////////////////////////////////////////////////////////////////////////////////////////

type fakeSocket struct{ net.Conn }

type fakeConnection struct {
	broker     *fakeBroker
	closeCount int
}

func (this *fakeConnection) Channel() (adapter.Channel, error) {
	if fail(&this.broker.failChannels) {
		return nil, errBroker
	}
	return fakeChannel{broker: this.broker}, nil
}
func (this *fakeConnection) Close() error {
	this.closeCount++
	this.broker.actions = append(this.broker.actions, "close")
	if fail(&this.broker.failCloses) {
		return errBroker
	}
	return nil
}

type fakeChannel struct{ broker *fakeBroker }

func (this fakeChannel) DeclareQueue(name string) error {
	this.broker.declared = append(this.broker.declared, name)
	if fail(&this.broker.failDeclares) {
		return errBroker
	}
	return nil
}
func (this fakeChannel) BufferCapacity(value uint16) error {
	this.broker.prefetch = append(this.broker.prefetch, value)
	return nil
}
func (this fakeChannel) Consume(consumerID, queue string) (<-chan amqp.Delivery, error) {
	this.broker.consumerIDs = append(this.broker.consumerIDs, consumerID)
	this.broker.consumedFrom = append(this.broker.consumedFrom, queue)
	if fail(&this.broker.failConsumes) {
		return nil, errBroker
	}
	return this.broker.subscription(), nil
}
func (this fakeChannel) Ack(deliveryTag uint64, _ bool) error {
	if fail(&this.broker.failAcks) {
		return errBroker
	}
	this.broker.acked = append(this.broker.acked, deliveryTag)
	this.broker.actions = append(this.broker.actions, "ack")
	return nil
}
func (this fakeChannel) CancelConsumer(consumerID string) error {
	this.broker.cancelled = append(this.broker.cancelled, consumerID)
	if fail(&this.broker.failCancels) {
		return errBroker
	}
	return nil
}
func (this fakeChannel) Publish(exchange, key string, envelope amqp.Publishing) error {
	if fail(&this.broker.failPublishes) {
		return errBroker
	}
	this.broker.publishedTo = append(this.broker.publishedTo, exchange+"/"+key)
	this.broker.published = append(this.broker.published, envelope)
	return nil
}
func (this fakeChannel) Close() error { panic("nop") }

////////////////////////////////////////////////////////////////////////////////////////////////////////////////////////

// fakeSink records every event and ends the loop once the configured number of success events
// has been reported.
type fakeSink struct {
	broker   *fakeBroker
	events   []rabbitstream.StatusEvent
	shutdown context.CancelFunc
	stopAt   int
	success  int
}

func (this *fakeSink) Report(event rabbitstream.StatusEvent) {
	this.events = append(this.events, event)
	if this.broker != nil {
		this.broker.actions = append(this.broker.actions, "report:"+event.Severity.String())
	}

	if event.Severity != rabbitstream.SeveritySuccess {
		return
	}

	if this.success++; this.success >= this.stopAt && this.shutdown != nil {
		this.shutdown()
	}
}
func (this *fakeSink) severities() (severities []rabbitstream.Severity) {
	for _, event := range this.events {
		severities = append(severities, event.Severity)
	}
	return severities
}

type fakeSleeper struct {
	broker *fakeBroker
	naps   []time.Duration
}

func (this *fakeSleeper) Sleep(ctx context.Context, duration time.Duration) bool {
	this.naps = append(this.naps, duration)
	if this.broker != nil {
		this.broker.actions = append(this.broker.actions, "sleep:"+duration.String())
	}
	return isAlive(ctx)
}

type fakeMonitor struct {
	opened       []error
	closed       int
	published    []error
	received     int
	acknowledged []error
	resets       int
}

func (this *fakeMonitor) ConnectionOpened(err error) { this.opened = append(this.opened, err) }
func (this *fakeMonitor) ConnectionClosed()          { this.closed++ }
func (this *fakeMonitor) MessagePublished(err error) { this.published = append(this.published, err) }
func (this *fakeMonitor) DeliveryReceived()          { this.received++ }
func (this *fakeMonitor) DeliveryAcknowledged(err error) {
	this.acknowledged = append(this.acknowledged, err)
}
func (this *fakeMonitor) SessionReset() { this.resets++ }
