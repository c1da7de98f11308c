package infrastructure

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsReadHeaderTimeout = 5 * time.Second

// MetricsServer exposes a Prometheus registry over HTTP at /metrics.
type MetricsServer struct {
	server   *http.Server
	listener net.Listener
}

// NewMetricsHandler returns the HTTP handler serving the gatherer's metrics.
func NewMetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}

// StartMetricsServer listens on address and serves metrics in the
// background.
func StartMetricsServer(address string, gatherer prometheus.Gatherer) (*MetricsServer, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Handler:           NewMetricsHandler(gatherer),
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server stopped", "error", err)
		}
	}()

	slog.Info("started metrics server", "address", listener.Addr().String())

	return &MetricsServer{server: server, listener: listener}, nil
}

// Addr returns the address the server is listening on.
func (s *MetricsServer) Addr() string {
	return s.listener.Addr().String()
}

// Shutdown stops the server, waiting for in-flight requests until ctx is done.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
