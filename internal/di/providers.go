package di

import (
	"context"
	"fmt"
	"time"

	"CovidPulse/internal/domain/repository"
	"CovidPulse/internal/handler/api"
	internalrepo "CovidPulse/internal/repository"
	"CovidPulse/internal/service/cache"
	"CovidPulse/internal/service/desktop"
	"CovidPulse/internal/service/diseasesh"
	"CovidPulse/internal/service/notify"
	"CovidPulse/internal/service/ratelimit"
	"CovidPulse/internal/usecase"
	"CovidPulse/pkg/clock"
	"CovidPulse/pkg/config"
	xhttp "CovidPulse/pkg/http"
	pkgkafka "CovidPulse/pkg/kafka"
	xlogger "CovidPulse/pkg/logger"
	"CovidPulse/pkg/metrics"
	"CovidPulse/pkg/server"
)

// redisPingTimeout bounds the startup connectivity check.
const redisPingTimeout = 3 * time.Second

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	l, err := xlogger.New(&xlogger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(xlogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClock returns the wall clock.
func ProvideClock() clock.Clock {
	return clock.New()
}

// ProvideHTTPClient creates the statistics API client.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(
		xhttp.WithTimeout(cfg.Source.Timeout),
		xhttp.WithHeader("User-Agent", cfg.Source.UserAgent),
		xhttp.WithHeader("Accept", "application/json"),
	)
}

// ProvideStatsSource creates the disease.sh fetcher.
func ProvideStatsSource(cfg *config.Config, hc *xhttp.Client, m repository.Metrics, l *xlogger.Logger) repository.StatsSource {
	return diseasesh.New(diseasesh.Config{
		CountryURL:        cfg.Source.CountryURL,
		SubdivisionsURL:   cfg.Source.SubdivisionsURL,
		SubdivisionsField: cfg.Source.SubdivisionsField,
	}, hc, m, l)
}

// ProvideNotifier builds the fan-out over every enabled sink.
func ProvideNotifier(cfg *config.Config, l *xlogger.Logger) (repository.Notifier, error) {
	var sinks []notify.Sink
	if cfg.Notifier.Desktop {
		sinks = append(sinks, notify.Sink{
			Name:     "desktop",
			Notifier: desktop.New(cfg.Notifier.AppName, cfg.Notifier.IconPath, l),
		})
	}
	if cfg.Kafka.Enabled {
		producer, err := pkgkafka.NewProducer(
			pkgkafka.WithBrokers(cfg.Kafka.Brokers),
			pkgkafka.WithCompression(cfg.Kafka.Compression),
			pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
			pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		sinks = append(sinks, notify.Sink{
			Name:     "kafka",
			Notifier: internalrepo.NewKafkaNotifier(producer, cfg.Kafka.Topic),
		})
	}

	fan := notify.NewFanout(sinks...)
	if len(fan.Names()) == 0 {
		l.Warn("no notification sinks enabled; cycles will only be logged")
	} else {
		l.Info("notification sinks ready", xlogger.Strings("sinks", fan.Names()))
	}
	return fan, nil
}

// ProvideBytesCache picks the snapshot cache backend. An unreachable Redis
// falls back to the in-memory cache so the tracker keeps running.
func ProvideBytesCache(cfg *config.Config, l *xlogger.Logger) cache.BytesCache {
	if cfg.Cache.Backend != "redis" {
		return cache.NewTTLCache()
	}

	rc := cache.NewRedisCache(cache.RedisConfig{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		l.Warn("redis unavailable, using in-memory snapshot cache",
			xlogger.String("addr", cfg.Cache.Redis.Addr), xlogger.Error(err))
		_ = rc.Close()
		return cache.NewTTLCache()
	}
	return rc
}

// ProvideSnapshotStore keeps the latest snapshot for one update interval.
func ProvideSnapshotStore(c cache.BytesCache, cfg *config.Config) repository.SnapshotStore {
	return internalrepo.NewCacheSnapshotStore(c, cfg.Cache.Prefix, cfg.Schedule.UpdateInterval)
}

// ProvideRenderer creates the notification text renderer.
func ProvideRenderer(cfg *config.Config) *usecase.Renderer {
	return usecase.NewRenderer(cfg.Country.Name, cfg.Country.Flag, cfg.Country.SubdivisionLabel)
}

// ProvideTracker creates the loop controller.
func ProvideTracker(
	cfg *config.Config,
	r *usecase.Renderer,
	src repository.StatsSource,
	n repository.Notifier,
	store repository.SnapshotStore,
	m repository.Metrics,
	clk clock.Clock,
	l *xlogger.Logger,
) *usecase.Tracker {
	return usecase.NewTracker(usecase.TrackerConfig{
		Country:         cfg.Country.Name,
		Monitored:       cfg.Country.Monitored,
		UpdateInterval:  cfg.Schedule.UpdateInterval,
		RetryInterval:   cfg.Schedule.RetryInterval,
		NotificationGap: cfg.Schedule.NotificationGap,
		DisplayTimeout:  cfg.Notifier.Timeout,
	}, r, src, n, store, m, clk, l)
}

// ProvideStatusServer returns nil when the status endpoint is disabled.
func ProvideStatusServer(cfg *config.Config, t *usecase.Tracker, store repository.SnapshotStore, l *xlogger.Logger) *xhttp.Server {
	if !cfg.Server.Enabled {
		return nil
	}
	var limiter *ratelimit.Limiter
	if rl := cfg.Server.RateLimit; rl.RequestsPerSecond > 0 && rl.Burst > 0 {
		limiter = ratelimit.New(float64(rl.Burst), rl.RequestsPerSecond)
	}
	return xhttp.NewServer(api.NewStatusEchoHandler(l, t, store, limiter), l,
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
	)
}

// ProvideApp assembles the application.
func ProvideApp(
	t *usecase.Tracker,
	n repository.Notifier,
	store repository.SnapshotStore,
	srv *xhttp.Server,
	l *xlogger.Logger,
) *server.App {
	return server.New(t, n, store, srv, l)
}
