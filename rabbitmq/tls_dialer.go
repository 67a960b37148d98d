package rabbitmq

import (
	"context"
	"crypto/tls"
	"net"
)

type (
	netDialer interface {
		DialContext(ctx context.Context, network, address string) (net.Conn, error)
	}
	brokerDialer interface {
		Dial(ctx context.Context, endpoint BrokerEndpoint) (net.Conn, error)
	}
	tlsConn interface {
		net.Conn
		HandshakeContext(ctx context.Context) error
	}
	tlsClientFunc func(conn net.Conn, config *tls.Config) tlsConn
)

type tlsDialer struct {
	netDialer
	client tlsClientFunc
}

func newTLSDialer(dialer netDialer, client tlsClientFunc) brokerDialer {
	return tlsDialer{netDialer: dialer, client: client}
}

func (this tlsDialer) Dial(ctx context.Context, endpoint BrokerEndpoint) (net.Conn, error) {
	conn, err := this.netDialer.DialContext(ctx, "tcp", endpoint.hostAddress())
	if err != nil {
		return nil, err
	}

	if !endpoint.secure() {
		return conn, nil
	}

	config := &tls.Config{MinVersion: tls.VersionTLS12}
	if endpoint.TLSConfig != nil {
		config = endpoint.TLSConfig.Clone()
	}

	if len(config.ServerName) == 0 {
		config.ServerName = endpoint.URI.Host
	}

	tlsConn := this.client(conn, config)
	if err = tlsConn.HandshakeContext(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return tlsConn, nil
}
