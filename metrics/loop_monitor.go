package metrics

import "github.com/prometheus/client_golang/prometheus"

type LoopMonitor struct {
	openedSuccess       prometheus.Counter
	openedFailure       prometheus.Counter
	closed              prometheus.Counter
	publishedSuccess    prometheus.Counter
	publishedFailure    prometheus.Counter
	received            prometheus.Counter
	acknowledgedSuccess prometheus.Counter
	acknowledgedFailure prometheus.Counter
	resets              prometheus.Counter
}

func (this *LoopMonitor) ConnectionOpened(err error) {
	count(err, this.openedSuccess, this.openedFailure)
}
func (this *LoopMonitor) ConnectionClosed() {
	this.closed.Inc()
}
func (this *LoopMonitor) MessagePublished(err error) {
	count(err, this.publishedSuccess, this.publishedFailure)
}
func (this *LoopMonitor) DeliveryReceived() {
	this.received.Inc()
}
func (this *LoopMonitor) DeliveryAcknowledged(err error) {
	count(err, this.acknowledgedSuccess, this.acknowledgedFailure)
}
func (this *LoopMonitor) SessionReset() {
	this.resets.Inc()
}

func count(err error, success, failure prometheus.Counter) {
	if err == nil {
		success.Inc()
	} else {
		failure.Inc()
	}
}
