package cloudfoundry

import (
	"errors"
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"
	"github.com/smartystreets/rabbitstream"
)

func TestCredentialsFixture(t *testing.T) {
	gunit.Run(new(CredentialsFixture), t)
}

type CredentialsFixture struct {
	*gunit.Fixture
}

const bothProtocols = `{
  "p-rabbitmq": [{
    "name": "rabbit",
    "credentials": {
      "protocols": {
        "amqp": {
          "uris": ["amqp://u:p@10.0.0.1/v", "amqp://u:p@10.0.0.2/v"],
          "hosts": ["10.0.0.1", "10.0.0.2"],
          "uri": "amqp://u:p@10.0.0.1/v",
          "host": "10.0.0.1"
        },
        "amqp+ssl": {
          "uris": ["amqps://u:p@rabbit-0.example.com/v", "amqps://u:p@rabbit-1.example.com/v"],
          "hosts": ["rabbit-0.example.com", "rabbit-1.example.com"],
          "uri": "amqps://u:p@rabbit-0.example.com/v",
          "host": "rabbit-0.example.com"
        }
      }
    }
  }]
}`

func (this *CredentialsFixture) TestSecureProtocolPreferred() {
	credentials, err := ParseCredentials([]byte(bothProtocols), DefaultServiceLabel)

	this.So(err, should.BeNil)
	this.So(credentials, should.Resemble, rabbitstream.BrokerCredentials{
		URIs:  []string{"amqps://u:p@rabbit-0.example.com/v", "amqps://u:p@rabbit-1.example.com/v"},
		Hosts: []string{"rabbit-0.example.com", "rabbit-1.example.com"},
		URI:   "amqps://u:p@rabbit-0.example.com/v",
		Host:  "rabbit-0.example.com",
	})
}
func (this *CredentialsFixture) TestPlainProtocolUsedWhenSecureAbsent() {
	raw := `{"p-rabbitmq":[{"credentials":{"protocols":{"amqp":{"uri":"amqp://single","host":"single"}}}}]}`

	credentials, err := ParseCredentials([]byte(raw), DefaultServiceLabel)

	this.So(err, should.BeNil)
	this.So(credentials.URIs, should.BeEmpty)
	this.So(credentials.URI, should.Equal, "amqp://single")
	this.So(credentials.Host, should.Equal, "single")
}
func (this *CredentialsFixture) TestCustomServiceLabel() {
	raw := `{"rabbitmq-ha":[{"credentials":{"protocols":{"amqp":{"uri":"amqp://custom"}}}}]}`

	credentials, err := ParseCredentials([]byte(raw), "rabbitmq-ha")

	this.So(err, should.BeNil)
	this.So(credentials.URI, should.Equal, "amqp://custom")
}

func (this *CredentialsFixture) TestEmptyInputFails() {
	_, err := ParseCredentials(nil, DefaultServiceLabel)

	this.So(err, should.Equal, ErrNoServices)
}
func (this *CredentialsFixture) TestMalformedInputFails() {
	_, err := ParseCredentials([]byte("{"), DefaultServiceLabel)

	this.So(err, should.NotBeNil)
	this.So(err.Error(), should.StartWith, "unable to parse service bindings")
}
func (this *CredentialsFixture) TestMissingServiceFails() {
	_, err := ParseCredentials([]byte(`{"p-mysql":[]}`), DefaultServiceLabel)

	this.So(errors.Is(err, ErrServiceNotFound), should.BeTrue)
}
func (this *CredentialsFixture) TestMissingProtocolFails() {
	raw := `{"p-rabbitmq":[{"credentials":{"protocols":{"mqtt":{"uri":"mqtt://x"}}}}]}`

	_, err := ParseCredentials([]byte(raw), DefaultServiceLabel)

	this.So(err, should.Equal, ErrProtocolNotFound)
}
