package rabbitstream

import (
	"context"
	"fmt"
	"strings"
)

// BrokerCredentials holds the candidate broker addresses for one service binding. URIs and Hosts are
// positionally correlated; URI and Host are the single pair used when URIs is empty.
type BrokerCredentials struct {
	URIs  []string
	Hosts []string
	URI   string
	Host  string
}

// Empty reports whether no address is present. Blank entries do not count as addresses.
func (this BrokerCredentials) Empty() bool {
	for _, uri := range this.URIs {
		if len(strings.TrimSpace(uri)) > 0 {
			return false
		}
	}
	return len(strings.TrimSpace(this.URI)) == 0
}

// Severity zero value is SeveritySuccess so an unset event renders as a plain line.
type Severity int

const (
	SeveritySuccess Severity = iota
	SeverityConnection
	SeverityWarning
	SeverityError
)

func (this Severity) String() string {
	switch this {
	case SeverityConnection:
		return "connection"
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

type StatusEvent struct {
	Severity Severity
	Message  string

	// The index of the selected broker endpoint for connection events, otherwise -1.
	Endpoint int
}

func NewStatusEvent(severity Severity, format string, args ...interface{}) StatusEvent {
	return StatusEvent{Severity: severity, Message: fmt.Sprintf(format, args...), Endpoint: -1}
}

type StatusSink interface {
	Report(StatusEvent)
}

// Loop runs until the context ends, reporting its progress to the sink.
type Loop interface {
	Run(ctx context.Context, sink StatusSink) error
}

type Logger interface {
	Printf(format string, args ...interface{})
	Println(args ...interface{})
}
