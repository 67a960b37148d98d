package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smartystreets/logging"
	"github.com/smartystreets/rabbitstream"
	"github.com/smartystreets/rabbitstream/cloudfoundry"
	"github.com/smartystreets/rabbitstream/metrics"
	"github.com/smartystreets/rabbitstream/rabbitmq"
	"github.com/smartystreets/rabbitstream/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the /write and /read streams",
	Long: `Serve the /write and /read streams against the RabbitMQ service bound through
VCAP_SERVICES. Every flag defaults to its environment variable when one is set.`,
	RunE: runServe,
}

func init() {
	flags := serveCmd.Flags()
	flags.String("bind", environment("BIND", "0.0.0.0"), "Address to listen on")
	flags.Int("port", environmentInt("PORT", 4567), "Port to listen on")
	flags.String("queue", environment("QUEUE_NAME", "testq"), "Durable queue to publish to and consume from")
	flags.String("service-label", environment("SERVICE_LABEL", cloudfoundry.DefaultServiceLabel), "VCAP_SERVICES label of the broker binding")
	flags.String("tls-certificate", environment("TLS_CERTIFICATE", "./tls/client_certificate.pem"), "Client certificate (PEM)")
	flags.String("tls-key", environment("TLS_KEY", "./tls/client_key.pem"), "Client private key (PEM)")
	flags.String("tls-authority", environment("TLS_AUTHORITY", "./tls/ca_certificate.pem"), "Certificate authority (PEM)")
	flags.Bool("tls-verify-peer", environmentBool("TLS_VERIFY_PEER", false), "Verify the broker certificate chain and host name")
	flags.Duration("shutdown-timeout", time.Second*5, "Time allowed for open streams to finish on shutdown")
}

func runServe(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	bind, _ := flags.GetString("bind")
	port, _ := flags.GetInt("port")
	queue, _ := flags.GetString("queue")
	label, _ := flags.GetString("service-label")
	certificate, _ := flags.GetString("tls-certificate")
	key, _ := flags.GetString("tls-key")
	authority, _ := flags.GetString("tls-authority")
	verifyPeer, _ := flags.GetBool("tls-verify-peer")
	shutdownTimeout, _ := flags.GetDuration("shutdown-timeout")

	log.SetFlags(log.Ldate | log.Lmicroseconds | log.Lshortfile)
	var logger *logging.Logger // nil forwards to the standard library log package

	credentials, err := cloudfoundry.ParseCredentials([]byte(os.Getenv("VCAP_SERVICES")), label)
	if errors.Is(err, cloudfoundry.ErrNoServices) {
		// Streams still start and report the missing endpoint to each client.
		logger.Printf("[WARN] Unable to read broker credentials: %s", err)
	} else if err != nil {
		return fmt.Errorf("unable to read broker credentials: %w", err)
	}

	tlsConfig, err := rabbitmq.LoadTLSConfig(rabbitmq.TLSFiles{
		CertificateFile: existing(certificate),
		KeyFile:         existing(key),
		AuthorityFiles:  nonEmpty(existing(authority)),
		VerifyPeer:      verifyPeer,
	})
	if err != nil {
		return fmt.Errorf("unable to load TLS configuration: %w", err)
	}

	collector := metrics.New(prometheus.DefaultRegisterer)
	publisher := rabbitmq.NewPublisher(
		rabbitmq.Options.Credentials(credentials),
		rabbitmq.Options.QueueName(queue),
		rabbitmq.Options.TLSConfig(tlsConfig),
		rabbitmq.Options.Logger(logger),
		rabbitmq.Options.Monitor(collector.Loop("publisher")),
	)
	consumer := rabbitmq.NewConsumer(
		rabbitmq.Options.Credentials(credentials),
		rabbitmq.Options.QueueName(queue),
		rabbitmq.Options.TLSConfig(tlsConfig),
		rabbitmq.Options.Logger(logger),
		rabbitmq.Options.Monitor(collector.Loop("consumer")),
	)

	router := web.NewRouter(web.Routes{
		Publisher: publisher,
		Consumer:  consumer,
		Metrics:   promhttp.Handler(),
		Logger:    logger,
	})

	return serve(net.JoinHostPort(bind, strconv.Itoa(port)), router, shutdownTimeout, logger)
}

func serve(address string, handler http.Handler, shutdownTimeout time.Duration, logger rabbitstream.Logger) error {
	ctx, shutdown := context.WithCancel(context.Background())
	defer shutdown()

	server := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: time.Second * 10,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		channel := make(chan os.Signal, 3)
		signal.Notify(channel, syscall.SIGTERM, syscall.SIGINT)
		logger.Printf("[INFO] Shutdown signal received [%s]", <-channel)
		signal.Stop(channel)

		shutdown() // open streams never finish on their own
		timeout, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(timeout); err != nil {
			logger.Printf("[WARN] Unable to shut down cleanly: %s", err)
		}
	}()

	logger.Printf("[INFO] Listening for HTTP requests on [%s]...", address)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	logger.Println("[INFO] Server concluded listening.")
	return nil
}
