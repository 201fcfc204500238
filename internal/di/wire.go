//go:build wireinject
// +build wireinject

package di

import (
	"KIndex/pkg/config"
	"KIndex/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,
		ProvideCalendar,

		ProvideFetcher,
		ProvideIndexSource,
		ProvideFuturesSource,

		ProvideDashboardUseCase,
		ProvideFuturesUseCase,
		ProvideCountdown,

		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
