package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"CovidPulse/internal/domain/models"
	drepo "CovidPulse/internal/domain/repository"
	"CovidPulse/pkg/clock"
	xlogger "CovidPulse/pkg/logger"
)

// TrackerConfig is the immutable schedule and selection input of a Tracker.
type TrackerConfig struct {
	Country         string
	Monitored       []string
	UpdateInterval  time.Duration
	RetryInterval   time.Duration
	NotificationGap time.Duration
	DisplayTimeout  time.Duration
}

// Tracker runs the fetch, notify and sleep loop.
type Tracker struct {
	cfg      TrackerConfig
	render   *Renderer
	source   drepo.StatsSource
	notifier drepo.Notifier
	store    drepo.SnapshotStore
	metrics  drepo.Metrics
	clock    clock.Clock
	logger   *xlogger.Logger

	state atomic.Int32
}

// NewTracker creates a Tracker. store may be nil.
func NewTracker(
	cfg TrackerConfig,
	render *Renderer,
	source drepo.StatsSource,
	notifier drepo.Notifier,
	store drepo.SnapshotStore,
	metrics drepo.Metrics,
	clk clock.Clock,
	logger *xlogger.Logger,
) *Tracker {
	cfg.Monitored = append([]string(nil), cfg.Monitored...)
	return &Tracker{
		cfg:      cfg,
		render:   render,
		source:   source,
		notifier: notifier,
		store:    store,
		metrics:  metrics,
		clock:    clk,
		logger:   logger,
	}
}

// State reports the current phase; safe to call from other goroutines.
func (t *Tracker) State() models.TrackerState {
	return models.TrackerState(t.state.Load())
}

func (t *Tracker) setState(s models.TrackerState) { t.state.Store(int32(s)) }

// Run loops until ctx is cancelled. Cancellation is the only way out and is
// not an error.
func (t *Tracker) Run(ctx context.Context) error {
	t.logger.Info("COVID-19 Tracker Started")
	t.logger.Info(fmt.Sprintf("Monitoring: %s, and states with highest cases/deaths",
		strings.Join(append([]string{t.cfg.Country}, t.cfg.Monitored...), ", ")))

	for {
		outcome := t.RunCycle(ctx)
		if outcome.Kind == models.CycleInterrupted || ctx.Err() != nil {
			return t.stop()
		}

		delay := t.cfg.UpdateInterval
		if outcome.Kind == models.CycleFailed {
			t.logger.Error(fmt.Sprintf("Error: %v", outcome.Err), xlogger.Error(outcome.Err))
			t.logger.Info(fmt.Sprintf("Retrying in %s...", describeInterval(t.cfg.RetryInterval)))
			delay = t.cfg.RetryInterval
		} else {
			t.logger.Info(fmt.Sprintf("Next update in %s...", describeInterval(t.cfg.UpdateInterval)),
				xlogger.String("outcome", string(outcome.Kind)),
				xlogger.Int("sent", outcome.Sent),
				xlogger.Int("failed", outcome.Failed))
		}

		t.setState(models.StateSleeping)
		if err := t.clock.Sleep(ctx, delay); err != nil {
			return t.stop()
		}
	}
}

func (t *Tracker) stop() error {
	t.setState(models.StateStopped)
	t.logger.Info("Stopping COVID tracker...")
	return nil
}

// RunCycle performs one fetch and the notifications that follow from it.
// Panics raised inside the cycle are reported as CycleFailed.
func (t *Tracker) RunCycle(ctx context.Context) (outcome models.CycleOutcome) {
	start := t.clock.Now()
	defer func() {
		if r := recover(); r != nil {
			outcome.Kind = models.CycleFailed
			outcome.Err = fmt.Errorf("panic during cycle: %v", r)
		}
		outcome.Duration = t.clock.Now().Sub(start)
		t.metrics.RecordCycle(outcome.Kind)
		t.metrics.RecordLatency("cycle", outcome.Duration.Seconds())
	}()

	t.setState(models.StateFetching)
	res, err := t.source.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			outcome.Kind = models.CycleInterrupted
			return outcome
		}
		t.logger.Warn("Skipping cycle: fetch failed", xlogger.Error(err))
		outcome.Kind = models.CycleSkipped
		outcome.Err = err
		return outcome
	}

	t.setState(models.StateNotifyingCountry)
	countryStats := CalculateStats(res.Country.AggregateRecord)
	t.metrics.RecordRegion(t.cfg.Country, res.Country.AggregateRecord)
	snapshot := &models.Snapshot{
		UpdatedAt: res.FetchedAt,
		Country: models.RegionReport{
			Name:   t.cfg.Country,
			Record: res.Country.AggregateRecord,
			Stats:  countryStats,
		},
	}
	t.dispatch(ctx, models.Notification{
		Kind:    models.NotificationCountry,
		Region:  t.cfg.Country,
		Title:   t.render.CountryTitle(),
		Message: t.render.CountryMessage(countryStats),
	}, &outcome)
	if err := t.clock.Sleep(ctx, t.cfg.NotificationGap); err != nil {
		outcome.Kind = models.CycleInterrupted
		return outcome
	}

	if len(res.Subdivisions) == 0 {
		outcome.Kind = models.CycleFailed
		outcome.Err = models.ErrNoSubdivisions
		return outcome
	}

	t.setState(models.StateNotifyingSubdivisions)
	for _, sel := range SelectSubdivisions(res.Subdivisions, t.cfg.Monitored) {
		stats := CalculateStats(sel.AggregateRecord)
		t.metrics.RecordRegion(sel.Name, sel.AggregateRecord)
		snapshot.Subdivisions = append(snapshot.Subdivisions, models.RegionReport{
			Name:          sel.Name,
			Record:        sel.AggregateRecord,
			Stats:         stats,
			HighestCases:  sel.HighestCases,
			HighestDeaths: sel.HighestDeaths,
		})

		t.dispatch(ctx, models.Notification{
			Kind:    models.NotificationSubdivision,
			Region:  sel.Name,
			Title:   t.render.SubdivisionTitle(sel),
			Message: t.render.SubdivisionMessage(sel.Name, stats),
		}, &outcome)
		if err := t.clock.Sleep(ctx, t.cfg.NotificationGap); err != nil {
			outcome.Kind = models.CycleInterrupted
			return outcome
		}
	}

	if t.store != nil {
		if err := t.store.Save(ctx, snapshot); err != nil {
			t.logger.Warn("snapshot not saved", xlogger.Error(err))
		}
	}

	outcome.Kind = models.CycleCompleted
	return outcome
}

// dispatch sends n and records the result. Failures never leave this function.
func (t *Tracker) dispatch(ctx context.Context, n models.Notification, outcome *models.CycleOutcome) {
	n.Timeout = t.cfg.DisplayTimeout
	n.SentAt = t.clock.Now()

	start := time.Now()
	err := t.notifier.Notify(ctx, n)
	t.metrics.RecordLatency("notify", time.Since(start).Seconds())

	if err != nil {
		outcome.Failed++
		t.metrics.RecordNotification(n.Kind, "error")
		t.logger.Error("Error sending notification", xlogger.String("title", n.Title), xlogger.Error(err))
		return
	}
	outcome.Sent++
	t.metrics.RecordNotification(n.Kind, "ok")
	t.logger.Info("Sent: " + n.Title)
}

// describeInterval renders whole hours, minutes or seconds in words, e.g.
// "1 hour" or "30 minutes", and falls back to time.Duration formatting.
func describeInterval(d time.Duration) string {
	units := []struct {
		size time.Duration
		name string
	}{
		{time.Hour, "hour"},
		{time.Minute, "minute"},
		{time.Second, "second"},
	}
	for _, u := range units {
		if d >= u.size && d%u.size == 0 {
			n := int64(d / u.size)
			if n == 1 {
				return "1 " + u.name
			}
			return fmt.Sprintf("%d %ss", n, u.name)
		}
	}
	return d.String()
}
