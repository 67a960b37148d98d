package rabbitstream

import "errors"

var (
	ErrNoBrokerEndpoint   = errors.New("the broker credentials did not contain any endpoint")
	ErrSubscriptionClosed = errors.New("the broker closed the subscription")
)
