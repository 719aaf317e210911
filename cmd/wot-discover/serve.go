package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/wot-discovery/discovery"
	"github.com/muurk/wot-discovery/internal/logging"
	"github.com/muurk/wot-discovery/internal/server"
	"github.com/muurk/wot-discovery/internal/ui"
)

// Serve command flags
var (
	serveHost    string
	servePort    int
	serveTLSCert string
	serveTLSKey  string
)

func init() {
	serveCmd.Flags().StringVar(&serveHost, "listen", "", "Address to listen on (default all interfaces)")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveTLSCert, "tls-cert", "", "Certificate file for https")
	serveCmd.Flags().StringVar(&serveTLSKey, "tls-key", "", "Private key file for https")

	rootCmd.AddCommand(serveCmd)
}

// serveCmd runs a discovery session and publishes its results
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Discover Things and publish them over HTTP and WebSocket",
	Long: `Run one discovery session and publish what it finds to other programs.

Endpoints:
  GET /things   JSON array of the Things found so far
  GET /status   counters for the session
  GET /events   WebSocket feed of Things and errors as they arrive

The server keeps running after the discovery timeout until interrupted.`,
	Example: `  # Discover for 30 seconds and serve on port 8080
  wot-discover serve --timeout 30s

  # Keep discovering until interrupted, over https
  wot-discover serve --timeout 0 --tls-cert cert.pem --tls-key key.pem`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	s := resolveSettings(cmd, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, err := s.options()
	if err != nil {
		return err
	}

	d, err := newCLIDiscoverer(opts...)
	if err != nil {
		return reportStartFailure(cmd.OutOrStdout(), s, err)
	}

	srvConfig := &server.Config{
		Host:     serveHost,
		Port:     servePort,
		CertPath: serveTLSCert,
		KeyPath:  serveTLSKey,
	}
	srv, err := server.New(srvConfig, logging.GetLogger())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(ctx)
		cancel()
	}()

	ui.NewPrinter(cmd.OutOrStdout()).PrintHeader(ui.NewHeader("Thing Discovery", "wot-discover serve",
		ui.Param{Key: "Listen", Value: srvConfig.Addr()},
		ui.Param{Key: "Service", Value: discovery.ServiceType},
		ui.Param{Key: "Timeout", Value: timeoutLabel(s)},
	))

	if err := publishThings(ctx, srv, d, s); err != nil {
		cancel()
		<-errChan
		return err
	}

	return <-errChan
}

// publishThings runs one discovery session and hands every outcome to srv
func publishThings(ctx context.Context, srv *server.Server, d *cliDiscoverer, s settings) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	stream, err := d.Stream(ctx)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}
	defer stream.Close()

	for rec, err := range stream.All() {
		if err != nil {
			logging.LogDiscoveryError(err)
			srv.Publish(server.Update{Type: server.UpdateError, Error: discovery.ShortMessage(err)})
			continue
		}

		logRecord(rec)
		data, err := json.Marshal(entryFromRecord(rec))
		if err != nil {
			logging.Warn("Failed to encode Thing", zap.String("url", rec.URL), zap.Error(err))
			continue
		}
		srv.Publish(server.Update{Type: server.UpdateThing, Thing: data})
	}

	srv.Publish(server.Update{Type: server.UpdateDone})
	logging.Info("Discovery session finished", zap.Any("status", srv.Status()))
	return nil
}
