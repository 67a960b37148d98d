package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set via ldflags during build.
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rabbitstream",
	Short: "Publish and consume RabbitMQ messages over streaming HTTP",
	Long: `rabbitstream exposes two long-lived HTTP responses:

  /write publishes a timestamp to the queue every two seconds
  /read  consumes and acknowledges every message on the queue

Each response renders connection attempts, successes and failures as they happen.
Lost connections are re-established after a short cooldown, indefinitely.`,
	Version: Version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
