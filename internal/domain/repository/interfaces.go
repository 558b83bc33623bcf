package repository

import (
	"context"

	"CovidPulse/internal/domain/models"
)

// StatsSource fetches the country aggregate and the subdivision list in one
// all-or-nothing operation. Failures are *models.FetchError.
type StatsSource interface {
	Fetch(ctx context.Context) (*models.FetchResult, error)
}

// Notifier delivers one rendered notification.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
	Close() error
}

// SnapshotStore keeps the latest completed cycle for read-only consumers.
type SnapshotStore interface {
	Save(ctx context.Context, s *models.Snapshot) error
	Latest(ctx context.Context) (*models.Snapshot, error)
	Close() error
}

type Metrics interface {
	RecordFetch(endpoint, result string)
	RecordNotification(kind models.NotificationKind, result string)
	RecordCycle(outcome models.CycleOutcomeKind)
	RecordRegion(region string, rec models.AggregateRecord)
	RecordLatency(op string, seconds float64)
}
