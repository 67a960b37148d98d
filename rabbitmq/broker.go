package rabbitmq

import (
	"crypto/tls"
	"net"
	"strconv"

	"github.com/streadway/amqp"
)

type BrokerEndpoint struct {
	Index     int
	Address   string
	URI       amqp.URI
	Host      string
	TLSConfig *tls.Config
}

func (this BrokerEndpoint) hostAddress() string {
	return net.JoinHostPort(this.URI.Host, strconv.Itoa(this.URI.Port))
}
func (this BrokerEndpoint) secure() bool {
	return this.URI.Scheme == "amqps"
}
