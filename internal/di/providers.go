package di

import (
	"context"
	"fmt"
	"time"

	drepo "github.com/MarkCoder7/pktvisor/internal/domain/repository"
	"github.com/MarkCoder7/pktvisor/internal/handler/api"
	internalrepo "github.com/MarkCoder7/pktvisor/internal/repository"
	pkgcache "github.com/MarkCoder7/pktvisor/pkg/cache"
	pkgch "github.com/MarkCoder7/pktvisor/pkg/clickhouse"
	"github.com/MarkCoder7/pktvisor/pkg/config"
	xhttp "github.com/MarkCoder7/pktvisor/pkg/http"
	pkgkafka "github.com/MarkCoder7/pktvisor/pkg/kafka"
	applogger "github.com/MarkCoder7/pktvisor/pkg/logger"
	"github.com/MarkCoder7/pktvisor/pkg/metrics"
	"github.com/MarkCoder7/pktvisor/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lc := &applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Format == "" {
		lc.Format = "console"
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	return applogger.New(lc)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client when the clickhouse
// backend is selected; nil otherwise.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Backend.Type != "clickhouse" {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	table := chTable(cfg)
	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + cfg.ClickHouse.Database,
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (symbol String, d Date, c Float64) ENGINE=MergeTree ORDER BY (symbol, d)", table),
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideCacheService creates the shared source-row cache per configuration;
// nil when caching is disabled.
func ProvideCacheService(cfg *config.Config) (pkgcache.Service, error) {
	switch cfg.Cache.Type {
	case "", "none":
		return nil, nil
	case "memory":
		return pkgcache.NewMemoryCache(), nil
	case "redis":
		return pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
			pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
			pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		)
	case "layered":
		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
			pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
			pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, err
		}
		return pkgcache.NewLayeredCache(rc), nil
	default:
		return nil, fmt.Errorf("unknown cache.type '%s'", cfg.Cache.Type)
	}
}

// ProvideSeriesSource creates the backing source for the configured backend,
// wrapped with the row cache when one is configured.
func ProvideSeriesSource(cfg *config.Config, ch *pkgch.Client, cache pkgcache.Service, l *applogger.Logger) (drepo.SeriesSource, error) {
	var src drepo.SeriesSource
	switch cfg.Backend.Type {
	case "csv":
		src = internalrepo.NewCSVSeriesSource(cfg.Backend.DataDir)
	case "clickhouse":
		chSrc := internalrepo.NewCHSeriesSource(ch.DB(), chTable(cfg))
		chSrc.SetLogger(l)
		src = chSrc
	default:
		return nil, fmt.Errorf("unknown backend.type '%s'", cfg.Backend.Type)
	}

	if cache != nil {
		ttl := cfg.Cache.TTL
		if ttl <= 0 {
			ttl = 24 * time.Hour
		}
		src = internalrepo.NewCachedSeriesSource(src, cache, ttl)
	}
	return src, nil
}

// ProvideKafkaProducer creates a Kafka producer when fan-out is enabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideKafkaSink creates the recompute fan-out sink; nil without a producer.
func ProvideKafkaSink(producer *pkgkafka.Producer, cfg *config.Config) *internalrepo.KafkaSink {
	if producer == nil {
		return nil
	}
	topic := cfg.Kafka.Topic
	if topic == "" {
		topic = "dashboard.updates"
	}
	return internalrepo.NewKafkaSink(producer, topic)
}

// ProvideLogPublisher exposes the Kafka sink as a log-collector publisher.
func ProvideLogPublisher(sink *internalrepo.KafkaSink) applogger.Publisher {
	if sink == nil {
		return nil
	}
	return sink
}

// ProvideDashboardHandler creates the HTTP/WebSocket handler.
func ProvideDashboardHandler(
	cfg *config.Config,
	l *applogger.Logger,
	source drepo.SeriesSource,
	m drepo.Metrics,
	kafkaSink *internalrepo.KafkaSink,
) xhttp.Handler {
	var extra []drepo.Sink
	if kafkaSink != nil {
		extra = append(extra, kafkaSink)
	}
	return api.NewDashboardEchoHandler(
		l,
		source,
		m,
		cfg.Dashboard.Symbols,
		cfg.Dashboard.Default1,
		cfg.Dashboard.Default2,
		extra...,
	)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	ch *pkgch.Client,
	producer *pkgkafka.Producer,
	logPub applogger.Publisher,
) *server.App {
	return server.New(cfg, l, handler, ch, producer, logPub)
}

func chTable(cfg *config.Config) string {
	table := cfg.Backend.Table
	if table == "" {
		table = cfg.ClickHouse.Database + ".daily_close"
	}
	return table
}
