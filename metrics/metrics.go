package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "rabbitstream"

// Collector owns the broker loop counters. Each loop reports through its own LoopMonitor so
// publishers and consumers are distinguished by the "loop" label.
type Collector struct {
	connectionsOpened      *prometheus.CounterVec
	connectionsClosed      *prometheus.CounterVec
	messagesPublished      *prometheus.CounterVec
	deliveriesReceived     *prometheus.CounterVec
	deliveriesAcknowledged *prometheus.CounterVec
	sessionResets          *prometheus.CounterVec
}

func New(registerer prometheus.Registerer) *Collector {
	this := &Collector{
		connectionsOpened: newCounterVec("connections_opened_total",
			"Broker connection attempts by result.", "loop", "result"),
		connectionsClosed: newCounterVec("connections_closed_total",
			"Broker connections closed.", "loop"),
		messagesPublished: newCounterVec("messages_published_total",
			"Messages published by result.", "loop", "result"),
		deliveriesReceived: newCounterVec("deliveries_received_total",
			"Deliveries received from the broker.", "loop"),
		deliveriesAcknowledged: newCounterVec("deliveries_acknowledged_total",
			"Delivery acknowledgements by result.", "loop", "result"),
		sessionResets: newCounterVec("session_resets_total",
			"Broker sessions discarded after a failure.", "loop"),
	}

	registerer.MustRegister(
		this.connectionsOpened,
		this.connectionsClosed,
		this.messagesPublished,
		this.deliveriesReceived,
		this.deliveriesAcknowledged,
		this.sessionResets,
	)

	return this
}
func newCounterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
}

func (this *Collector) Loop(name string) *LoopMonitor {
	return &LoopMonitor{
		openedSuccess:       this.connectionsOpened.WithLabelValues(name, resultSuccess),
		openedFailure:       this.connectionsOpened.WithLabelValues(name, resultFailure),
		closed:              this.connectionsClosed.WithLabelValues(name),
		publishedSuccess:    this.messagesPublished.WithLabelValues(name, resultSuccess),
		publishedFailure:    this.messagesPublished.WithLabelValues(name, resultFailure),
		received:            this.deliveriesReceived.WithLabelValues(name),
		acknowledgedSuccess: this.deliveriesAcknowledged.WithLabelValues(name, resultSuccess),
		acknowledgedFailure: this.deliveriesAcknowledged.WithLabelValues(name, resultFailure),
		resets:              this.sessionResets.WithLabelValues(name),
	}
}

const (
	resultSuccess = "success"
	resultFailure = "failure"
)
