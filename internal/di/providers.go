package di

import (
	"fmt"

	"KIndex/internal/calendar"
	"KIndex/internal/domain/repository"
	"KIndex/internal/handler/api"
	icache "KIndex/internal/service/cache"
	"KIndex/internal/service/fetch"
	"KIndex/internal/service/krx"
	"KIndex/internal/service/naver"
	"KIndex/internal/usecase"
	"KIndex/pkg/config"
	xhttp "KIndex/pkg/http"
	applogger "KIndex/pkg/logger"
	"KIndex/pkg/metrics"
	"KIndex/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the byte cache configured by cache.backend.
func ProvideCache(cfg *config.Config) (icache.BytesCache, error) {
	switch cfg.Cache.Backend {
	case "redis":
		c, err := icache.NewRedisCache(cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB, "kindex")
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	default:
		return icache.NewTTLCache(), nil
	}
}

// ProvideCalendar builds the trading calendar from session bounds and
// configured extra holidays.
func ProvideCalendar(cfg *config.Config) (*calendar.Calendar, error) {
	cal, err := calendar.New(cfg.Session.Open, cfg.Session.Close, cfg.Calendar.Holidays)
	if err != nil {
		return nil, fmt.Errorf("calendar: %w", err)
	}
	return cal, nil
}

// ProvideFetcher creates the resilient upstream fetcher with the curl
// subprocess fallback.
func ProvideFetcher(cfg *config.Config, m repository.Metrics, l *applogger.Logger) *fetch.Fetcher {
	return fetch.New(
		fetch.WithProfiles(fetch.DefaultProfiles()),
		fetch.WithTimeouts(cfg.Fetch.Timeouts),
		fetch.WithFallback(fetch.NewCurlFallback(cfg.Fetch.CurlPath, cfg.Fetch.CurlTimeout)),
		fetch.WithMetrics(m),
		fetch.WithLogger(l),
	)
}

// ProvideIndexSource creates the Naver index source.
func ProvideIndexSource(cfg *config.Config, f *fetch.Fetcher, c icache.BytesCache, m repository.Metrics, l *applogger.Logger) repository.IndexSource {
	return naver.New(f, c, cfg.Naver.BaseURL, cfg.Naver.PageSize, cfg.Cache.TTL, m, l)
}

// ProvideFuturesSource creates the KRX futures source with its contract
// resolver.
func ProvideFuturesSource(cfg *config.Config, f *fetch.Fetcher, c icache.BytesCache, m repository.Metrics, l *applogger.Logger) repository.FuturesSource {
	resolver := krx.NewResolver(krx.ResolverConfig{
		ProductLabel:    cfg.KRX.ProductLabel,
		SessionLabel:    cfg.KRX.SessionLabel,
		NamePrefix:      cfg.KRX.NamePrefix,
		SessionSuffix:   cfg.KRX.SessionSuffix,
		LooseMonthMatch: cfg.KRX.LooseMonthMatch,
		PreferPast:      cfg.KRX.MonthTieBreak == "past",
	})
	return krx.NewClient(f, c, cfg.KRX.BaseURL, cfg.KRX.AuthKey, resolver, cfg.Cache.TTL, m, l)
}

// ProvideDashboardUseCase creates the dashboard use case.
func ProvideDashboardUseCase(cfg *config.Config, source repository.IndexSource, cal *calendar.Calendar, l *applogger.Logger) *usecase.DashboardUseCase {
	return usecase.NewDashboardUseCase(source, cal, cfg.Naver.Indices, cfg.LookbackDays, l)
}

// ProvideFuturesUseCase creates the futures use case.
func ProvideFuturesUseCase(cfg *config.Config, source repository.FuturesSource, l *applogger.Logger) *usecase.FuturesUseCase {
	return usecase.NewFuturesUseCase(source, cfg.LookbackDays, l)
}

// ProvideCountdown creates the session countdown.
func ProvideCountdown(cal *calendar.Calendar) *usecase.Countdown {
	return usecase.NewCountdown(cal)
}

// ProvideHandler creates the HTTP handler with all routes.
func ProvideHandler(
	l *applogger.Logger,
	dashboard *usecase.DashboardUseCase,
	futures *usecase.FuturesUseCase,
	countdown *usecase.Countdown,
) xhttp.Handler {
	return api.NewDashboardEchoHandler(l, dashboard, futures, countdown)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, h xhttp.Handler) *server.App {
	return server.New(cfg, l, h)
}
