package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MarkCoder7/pktvisor/internal/service/elastic"
	pkgch "github.com/MarkCoder7/pktvisor/pkg/clickhouse"
	"github.com/MarkCoder7/pktvisor/pkg/config"
	xhttp "github.com/MarkCoder7/pktvisor/pkg/http"
	pkgkafka "github.com/MarkCoder7/pktvisor/pkg/kafka"
	applogger "github.com/MarkCoder7/pktvisor/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	l          *applogger.Logger
	handler    xhttp.Handler
	chClient   *pkgch.Client
	producer   *pkgkafka.Producer
	logPub     applogger.Publisher
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies. chClient, producer
// and logPub may be nil depending on configuration.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	logPub applogger.Publisher,
) *App {
	return &App{
		cfg:      cfg,
		l:        l,
		handler:  handler,
		chClient: chClient,
		producer: producer,
		logPub:   logPub,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One-shot index diagnostic: enumerate categorical values before any
	// session exists. Failure is logged, never fatal.
	if a.cfg.Elastic.URL != "" {
		es := elastic.New(a.cfg.Elastic.URL, a.cfg.Elastic.Timeout, a.l)
		diagCtx, diagCancel := context.WithTimeout(ctx, 15*time.Second)
		_ = es.LogVariables(diagCtx)
		diagCancel()
	}

	// Aggregate error logs onto a topic when a producer is around.
	if a.logPub != nil && a.cfg.Kafka.LogTopic != "" {
		a.l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          a.cfg.Kafka.LogTopic,
			Publisher:      a.logPub,
		})
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(
			orDuration(a.cfg.Server.ReadTimeout, 10*time.Second),
			orDuration(a.cfg.Server.WriteTimeout, 10*time.Second),
			a.shutdownTimeout(),
		),
	)

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}
	a.l.Info("dashboard ready",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.Strings("symbols", a.cfg.Dashboard.Symbols),
		applogger.String("backend", a.cfg.Backend.Type),
	)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

func (a *App) shutdownTimeout() time.Duration {
	return orDuration(a.cfg.Server.ShutdownTimeout, 10*time.Second)
}

func orDuration(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.shutdownTimeout())
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	a.l.RemoveCollector()

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.l.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.l.Info("shutdown complete")
	return nil
}
