//go:build wireinject
// +build wireinject

package di

import (
	"github.com/MarkCoder7/pktvisor/pkg/config"
	"github.com/MarkCoder7/pktvisor/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient services
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideCacheService,
		ProvideKafkaProducer,

		// Repositories
		ProvideSeriesSource,
		ProvideKafkaSink,
		ProvideLogPublisher,

		// HTTP surface
		ProvideDashboardHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
