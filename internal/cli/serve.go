package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/tictactoe/internal/config"
	httpAdapter "github.com/aretw0/tictactoe/pkg/adapters/http"
	"github.com/aretw0/tictactoe/pkg/observability"
	"github.com/aretw0/tictactoe/pkg/persistence/middleware"
	"github.com/aretw0/tictactoe/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout is the grace period given to in-flight requests.
const ShutdownTimeout = 5 * time.Second

// ServeOptions configures the HTTP host.
type ServeOptions struct {
	Config config.Config
	Logger *slog.Logger
	// OnListen is called with the bound address of each server ("http" or
	// "metrics") once it accepts connections.
	OnListen func(name, addr string)
}

// RunServe hosts game sessions over HTTP until ctx is cancelled.
// Metrics are served on /metrics of the main server, or on a separate
// listener when Config.MetricsAddr is set.
func RunServe(ctx context.Context, opts ServeOptions) error {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = NewLogger(cfg.LogLevel)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)
	metricsHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

	store, closeStore, err := NewStore(ctx, cfg, logger,
		middleware.NewLoggingMiddleware(logger),
		middleware.NewMetricsMiddleware(middleware.NewStoreMetrics(reg)),
	)
	if err != nil {
		return err
	}
	defer closeStore()

	sessions := session.NewManager(store,
		session.WithLogger(logger),
		session.WithGameOptions(GameOptions(cfg, logger, metrics.Hooks(), observability.LogHooks(logger))...),
	)
	defer sessions.Close()

	handlerOpts := []httpAdapter.Option{httpAdapter.WithLogger(logger)}
	if cfg.MetricsAddr == "" {
		handlerOpts = append(handlerOpts, httpAdapter.WithMetricsHandler(metricsHandler))
	}

	servers := map[string]*http.Server{
		"http": {Addr: cfg.Addr, Handler: httpAdapter.NewHandler(sessions, handlerOpts...)},
	}
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metricsHandler)
		servers["metrics"] = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
	}

	listeners := make(map[string]net.Listener, len(servers))
	for name, srv := range servers {
		ln, err := net.Listen("tcp", srv.Addr)
		if err != nil {
			for _, l := range listeners {
				_ = l.Close()
			}
			return fmt.Errorf("%s listener: %w", name, err)
		}
		listeners[name] = ln
	}

	g, gctx := errgroup.WithContext(ctx)
	for name, srv := range servers {
		ln := listeners[name]
		logger.Info("server listening", "server", name, "addr", ln.Addr().String())
		if opts.OnListen != nil {
			opts.OnListen(name, ln.Addr().String())
		}

		g.Go(func() error {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("%s server: %w", name, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "timeout", ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		var errs []error
		for name, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("graceful shutdown did not complete", "server", name, "err", err)
				errs = append(errs, srv.Close())
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
