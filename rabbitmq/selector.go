package rabbitmq

import (
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/smartystreets/rabbitstream"
	"github.com/streadway/amqp"
)

type randomSelector struct {
	random    func(int) int
	tlsConfig *tls.Config
}

func newEndpointSelector(config configuration) endpointSelector {
	return randomSelector{random: config.Random, tlsConfig: config.TLSConfig}
}

// Select draws a single index and applies it to both the address and the display host so the
// reported host is always the one being dialed.
func (this randomSelector) Select(credentials rabbitstream.BrokerCredentials) (BrokerEndpoint, error) {
	index, address, host := this.choose(credentials)
	if len(address) == 0 {
		return BrokerEndpoint{}, rabbitstream.ErrNoBrokerEndpoint
	}

	uri, err := amqp.ParseURI(address)
	if err != nil {
		return BrokerEndpoint{}, fmt.Errorf("unable to parse broker address at index [%d]: %w", index, err)
	}

	if len(host) == 0 {
		host = uri.Host
	}

	return BrokerEndpoint{
		Index:     index,
		Address:   address,
		URI:       uri,
		Host:      host,
		TLSConfig: this.tlsConfig,
	}, nil
}
func (this randomSelector) choose(credentials rabbitstream.BrokerCredentials) (int, string, string) {
	candidates := usable(credentials.URIs)
	if len(candidates) == 0 {
		return -1, strings.TrimSpace(credentials.URI), credentials.Host
	}

	index := candidates[this.random(len(candidates))]
	if index < len(credentials.Hosts) {
		return index, credentials.URIs[index], credentials.Hosts[index]
	}

	return index, credentials.URIs[index], credentials.Host
}

// usable lists the positions of non-blank addresses; positions still index the host list.
func usable(addresses []string) (indexes []int) {
	for index, address := range addresses {
		if len(strings.TrimSpace(address)) > 0 {
			indexes = append(indexes, index)
		}
	}
	return indexes
}
