package adapter

import (
	"context"
	"net"

	"github.com/streadway/amqp"
)

type amqpConnector struct{}

// Connect runs the AMQP handshake over an established socket. The socket is closed if the context
// ends before the handshake completes.
func (this amqpConnector) Connect(ctx context.Context, socket net.Conn, config Config) (Connection, error) {
	simple := &amqp.PlainAuth{Username: config.Username, Password: config.Password}
	realConfig := amqp.Config{
		SASL:      []amqp.Authentication{simple},
		Vhost:     config.VirtualHost,
		Heartbeat: config.Heartbeat,
		Locale:    "en_US",
	}

	stop := context.AfterFunc(ctx, func() { _ = socket.Close() })
	connection, err := amqp.Open(socket, realConfig)
	if !stop() {
		if err == nil {
			_ = connection.Close()
		}
		return nil, ctx.Err()
	}

	if err != nil {
		_ = socket.Close()
		return nil, err
	}

	return amqpConnection{Connection: connection}, nil
}

type amqpConnection struct{ *amqp.Connection }

func (this amqpConnection) Channel() (Channel, error) {
	if channel, err := this.Connection.Channel(); err != nil {
		return nil, err
	} else {
		return amqpChannel{Channel: channel}, nil
	}
}

type amqpChannel struct{ *amqp.Channel }

func (this amqpChannel) DeclareQueue(name string) error {
	_, err := this.Channel.QueueDeclare(name, true, false, false, false, amqp.Table{})
	return err
}

func (this amqpChannel) BufferCapacity(value uint16) error {
	return this.Channel.Qos(int(value), 0, false) // false = per-consumer limit
}
func (this amqpChannel) Consume(consumerID, queue string) (<-chan amqp.Delivery, error) {
	return this.Channel.Consume(queue, consumerID, false, false, false, false, amqp.Table{})
}
func (this amqpChannel) Ack(deliveryTag uint64, multiple bool) error {
	return this.Channel.Ack(deliveryTag, multiple)
}
func (this amqpChannel) CancelConsumer(consumerID string) error {
	return this.Channel.Cancel(consumerID, false)
}

func (this amqpChannel) Publish(exchange, key string, envelope amqp.Publishing) error {
	return this.Channel.Publish(exchange, key, false, false, envelope)
}
