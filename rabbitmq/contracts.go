package rabbitmq

import (
	"context"
	"errors"
	"time"

	"github.com/smartystreets/rabbitstream"
)

type Monitor interface {
	ConnectionOpened(error)
	ConnectionClosed()
	MessagePublished(error)
	DeliveryReceived()
	DeliveryAcknowledged(error)
	SessionReset()
}

type endpointSelector interface {
	Select(rabbitstream.BrokerCredentials) (BrokerEndpoint, error)
}

type sleepFunc func(ctx context.Context, duration time.Duration) bool

var ErrInvalidCertificateAuthority = errors.New("unable to parse certificate authority")

type nop struct{}

func (nop) ConnectionOpened(error)     {}
func (nop) ConnectionClosed()          {}
func (nop) MessagePublished(error)     {}
func (nop) DeliveryReceived()          {}
func (nop) DeliveryAcknowledged(error) {}
func (nop) SessionReset()              {}
