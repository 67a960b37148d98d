package rabbitmq

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

type TLSFiles struct {
	CertificateFile string
	KeyFile         string
	AuthorityFiles  []string

	// When false the broker certificate chain and host name are not verified.
	VerifyPeer bool
}

// LoadTLSConfig builds a client-certificate TLS configuration from PEM files.
func LoadTLSConfig(files TLSFiles) (*tls.Config, error) {
	config := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: !files.VerifyPeer,
	}

	if len(files.CertificateFile) > 0 || len(files.KeyFile) > 0 {
		certificate, err := tls.LoadX509KeyPair(files.CertificateFile, files.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("unable to load client certificate: %w", err)
		}
		config.Certificates = []tls.Certificate{certificate}
	}

	if len(files.AuthorityFiles) == 0 {
		return config, nil
	}

	roots := x509.NewCertPool()
	for _, path := range files.AuthorityFiles {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read certificate authority: %w", err)
		}
		if !roots.AppendCertsFromPEM(raw) {
			return nil, fmt.Errorf("%w [%s]", ErrInvalidCertificateAuthority, path)
		}
	}
	config.RootCAs = roots

	return config, nil
}
