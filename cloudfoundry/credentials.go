package cloudfoundry

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/smartystreets/rabbitstream"
)

const DefaultServiceLabel = "p-rabbitmq"

var (
	ErrNoServices       = errors.New("no service bindings were provided")
	ErrServiceNotFound  = errors.New("the service binding was not found")
	ErrProtocolNotFound = errors.New("the service binding does not expose an amqp+ssl or amqp protocol")
)

// preferred protocols, most secure first
var protocolNames = []string{"amqp+ssl", "amqp"}

type serviceBinding struct {
	Credentials struct {
		Protocols map[string]protocolCredentials `json:"protocols"`
	} `json:"credentials"`
}
type protocolCredentials struct {
	URIs  []string `json:"uris"`
	Hosts []string `json:"hosts"`
	URI   string   `json:"uri"`
	Host  string   `json:"host"`
}

// ParseCredentials reads broker credentials for the first binding of the labeled service from the
// contents of VCAP_SERVICES.
func ParseCredentials(raw []byte, label string) (rabbitstream.BrokerCredentials, error) {
	if len(raw) == 0 {
		return rabbitstream.BrokerCredentials{}, ErrNoServices
	}

	var services map[string][]serviceBinding
	if err := json.Unmarshal(raw, &services); err != nil {
		return rabbitstream.BrokerCredentials{}, fmt.Errorf("unable to parse service bindings: %w", err)
	}

	bindings := services[label]
	if len(bindings) == 0 {
		return rabbitstream.BrokerCredentials{}, fmt.Errorf("%w [%s]", ErrServiceNotFound, label)
	}

	for _, name := range protocolNames {
		if protocol, found := bindings[0].Credentials.Protocols[name]; found {
			return protocol.toBrokerCredentials(), nil
		}
	}

	return rabbitstream.BrokerCredentials{}, ErrProtocolNotFound
}

func (this protocolCredentials) toBrokerCredentials() rabbitstream.BrokerCredentials {
	return rabbitstream.BrokerCredentials{URIs: this.URIs, Hosts: this.Hosts, URI: this.URI, Host: this.Host}
}
