package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"CovidPulse/internal/domain/models"
	xlogger "CovidPulse/pkg/logger"
)

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
	// onSleep runs before the context check; tests use it to cancel.
	onSleep func(n int, d time.Duration)
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	n := len(c.sleeps)
	c.now = c.now.Add(d)
	hook := c.onSleep
	c.mu.Unlock()
	if hook != nil {
		hook(n, d)
	}
	return ctx.Err()
}

type fakeSource struct {
	res   *models.FetchResult
	err   error
	calls int
	panic bool
}

func (s *fakeSource) Fetch(ctx context.Context) (*models.FetchResult, error) {
	s.calls++
	if s.panic {
		panic("boom")
	}
	return s.res, s.err
}

type fakeNotifier struct {
	sent   []models.Notification
	failOn map[string]bool
}

func (n *fakeNotifier) Notify(ctx context.Context, note models.Notification) error {
	n.sent = append(n.sent, note)
	if n.failOn[note.Region] {
		return errors.New("notification daemon unavailable")
	}
	return nil
}

func (n *fakeNotifier) Close() error { return nil }

type fakeStore struct {
	saved []*models.Snapshot
}

func (s *fakeStore) Save(ctx context.Context, snap *models.Snapshot) error {
	s.saved = append(s.saved, snap)
	return nil
}

func (s *fakeStore) Latest(ctx context.Context) (*models.Snapshot, error) {
	if len(s.saved) == 0 {
		return nil, models.ErrSnapshotNotFound
	}
	return s.saved[len(s.saved)-1], nil
}

func (s *fakeStore) Close() error { return nil }

type nopMetrics struct {
	cycles []models.CycleOutcomeKind
}

func (m *nopMetrics) RecordFetch(string, string)                         {}
func (m *nopMetrics) RecordNotification(models.NotificationKind, string) {}
func (m *nopMetrics) RecordCycle(k models.CycleOutcomeKind)              { m.cycles = append(m.cycles, k) }
func (m *nopMetrics) RecordRegion(string, models.AggregateRecord)        {}
func (m *nopMetrics) RecordLatency(string, float64)                      {}

var testTrackerConfig = TrackerConfig{
	Country:         "India",
	Monitored:       []string{"Kerala"},
	UpdateInterval:  time.Hour,
	RetryInterval:   time.Minute,
	NotificationGap: 2 * time.Second,
	DisplayTimeout:  10 * time.Second,
}

func sampleResult() *models.FetchResult {
	return &models.FetchResult{
		Country: models.Country{Name: "India", AggregateRecord: models.AggregateRecord{Cases: 1000, Deaths: 10}},
		Subdivisions: []models.Subdivision{
			sub("Kerala", 100, 1),
			sub("Maharashtra", 500, 2),
			sub("Delhi", 50, 9),
			sub("Goa", 10, 0),
		},
		FetchedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestTracker(src *fakeSource, n *fakeNotifier, st *fakeStore, m *nopMetrics, clk *fakeClock) *Tracker {
	return NewTracker(testTrackerConfig, NewRenderer("India", "🇮🇳", "STATE"), src, n, st, m, clk, xlogger.Nop())
}

func TestRunCycleCompleted(t *testing.T) {
	src := &fakeSource{res: sampleResult()}
	n := &fakeNotifier{}
	st := &fakeStore{}
	clk := &fakeClock{}
	tr := newTestTracker(src, n, st, &nopMetrics{}, clk)

	out := tr.RunCycle(context.Background())
	if out.Kind != models.CycleCompleted {
		t.Fatalf("kind: got %s (%v)", out.Kind, out.Err)
	}
	if out.Sent != 4 || out.Failed != 0 {
		t.Fatalf("sent/failed: got %d/%d", out.Sent, out.Failed)
	}

	wantRegions := []string{"India", "Kerala", "Maharashtra", "Delhi"}
	for i, r := range wantRegions {
		if n.sent[i].Region != r {
			t.Fatalf("notification %d: got %s want %s", i, n.sent[i].Region, r)
		}
		if n.sent[i].Timeout != 10*time.Second {
			t.Fatalf("timeout not propagated: %v", n.sent[i].Timeout)
		}
	}
	if n.sent[0].Kind != models.NotificationCountry || n.sent[1].Kind != models.NotificationSubdivision {
		t.Fatalf("unexpected kinds %s %s", n.sent[0].Kind, n.sent[1].Kind)
	}
	if n.sent[2].Title != "📊 COVID-19: Maharashtra ⚠️ Highest Cases" {
		t.Fatalf("title: got %q", n.sent[2].Title)
	}

	if len(clk.sleeps) != 4 {
		t.Fatalf("expected a gap after each notification, got %v", clk.sleeps)
	}
	for _, d := range clk.sleeps {
		if d != 2*time.Second {
			t.Fatalf("unexpected gap %v", d)
		}
	}

	if len(st.saved) != 1 || len(st.saved[0].Subdivisions) != 3 {
		t.Fatalf("snapshot not saved as expected: %+v", st.saved)
	}
}

func TestRunCycleFetchFailureSendsNothing(t *testing.T) {
	src := &fakeSource{err: &models.FetchError{Endpoint: "country", Kind: models.FetchTimeout, Err: context.DeadlineExceeded}}
	n := &fakeNotifier{}
	st := &fakeStore{}
	tr := newTestTracker(src, n, st, &nopMetrics{}, &fakeClock{})

	out := tr.RunCycle(context.Background())
	if out.Kind != models.CycleSkipped {
		t.Fatalf("kind: got %s", out.Kind)
	}
	if len(n.sent) != 0 {
		t.Fatalf("expected no notifications, got %d", len(n.sent))
	}
	if len(st.saved) != 0 {
		t.Fatalf("expected no snapshot")
	}
}

func TestRunCycleNotificationFailureDoesNotStopOthers(t *testing.T) {
	src := &fakeSource{res: sampleResult()}
	n := &fakeNotifier{failOn: map[string]bool{"Kerala": true}}
	tr := newTestTracker(src, n, &fakeStore{}, &nopMetrics{}, &fakeClock{})

	out := tr.RunCycle(context.Background())
	if out.Kind != models.CycleCompleted {
		t.Fatalf("kind: got %s", out.Kind)
	}
	if out.Sent != 3 || out.Failed != 1 {
		t.Fatalf("sent/failed: got %d/%d", out.Sent, out.Failed)
	}
	if len(n.sent) != 4 {
		t.Fatalf("expected every notification attempted, got %d", len(n.sent))
	}
}

func TestRunCycleEmptySubdivisionsFails(t *testing.T) {
	res := sampleResult()
	res.Subdivisions = nil
	n := &fakeNotifier{}
	tr := newTestTracker(&fakeSource{res: res}, n, &fakeStore{}, &nopMetrics{}, &fakeClock{})

	out := tr.RunCycle(context.Background())
	if out.Kind != models.CycleFailed || !errors.Is(out.Err, models.ErrNoSubdivisions) {
		t.Fatalf("got %s %v", out.Kind, out.Err)
	}
	if len(n.sent) != 1 || n.sent[0].Kind != models.NotificationCountry {
		t.Fatalf("expected only the country notification, got %+v", n.sent)
	}
}

func TestRunCyclePanicIsFailure(t *testing.T) {
	m := &nopMetrics{}
	tr := newTestTracker(&fakeSource{panic: true}, &fakeNotifier{}, &fakeStore{}, m, &fakeClock{})

	out := tr.RunCycle(context.Background())
	if out.Kind != models.CycleFailed || out.Err == nil {
		t.Fatalf("got %s %v", out.Kind, out.Err)
	}
	if len(m.cycles) != 1 || m.cycles[0] != models.CycleFailed {
		t.Fatalf("cycle metric: %v", m.cycles)
	}
}

func TestRunFetchFailureSleepsUpdateInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clk := &fakeClock{onSleep: func(int, time.Duration) { cancel() }}
	src := &fakeSource{err: &models.FetchError{Endpoint: "subdivisions", Kind: models.FetchStatus, Err: errors.New("503")}}
	tr := newTestTracker(src, &fakeNotifier{}, &fakeStore{}, &nopMetrics{}, clk)

	if err := tr.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(clk.sleeps) != 1 || clk.sleeps[0] != time.Hour {
		t.Fatalf("expected one update-interval sleep, got %v", clk.sleeps)
	}
	if tr.State() != models.StateStopped {
		t.Fatalf("state: got %s", tr.State())
	}
}

func TestRunFailedCycleSleepsRetryInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clk := &fakeClock{onSleep: func(_ int, d time.Duration) {
		if d == time.Minute {
			cancel()
		}
	}}
	res := sampleResult()
	res.Subdivisions = nil
	tr := newTestTracker(&fakeSource{res: res}, &fakeNotifier{}, &fakeStore{}, &nopMetrics{}, clk)

	if err := tr.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []time.Duration{2 * time.Second, time.Minute}
	if len(clk.sleeps) != len(want) {
		t.Fatalf("sleeps: got %v want %v", clk.sleeps, want)
	}
	for i := range want {
		if clk.sleeps[i] != want[i] {
			t.Fatalf("sleeps: got %v want %v", clk.sleeps, want)
		}
	}
}

func TestRunRepeatsAfterUpdateInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hours := 0
	clk := &fakeClock{onSleep: func(_ int, d time.Duration) {
		if d == time.Hour {
			hours++
			if hours == 2 {
				cancel()
			}
		}
	}}
	src := &fakeSource{res: sampleResult()}
	tr := newTestTracker(src, &fakeNotifier{}, &fakeStore{}, &nopMetrics{}, clk)

	if err := tr.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if src.calls != 2 {
		t.Fatalf("expected two cycles, got %d", src.calls)
	}
}

func TestRunInterruptedDuringGap(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clk := &fakeClock{onSleep: func(n int, _ time.Duration) {
		if n == 2 {
			cancel()
		}
	}}
	n := &fakeNotifier{}
	st := &fakeStore{}
	tr := newTestTracker(&fakeSource{res: sampleResult()}, n, st, &nopMetrics{}, clk)

	if err := tr.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(n.sent) != 2 {
		t.Fatalf("expected dispatch to stop after cancel, got %d", len(n.sent))
	}
	if len(st.saved) != 0 {
		t.Fatalf("interrupted cycle must not save a snapshot")
	}
}

func TestNewTrackerCopiesMonitored(t *testing.T) {
	monitored := []string{"Kerala"}
	cfg := testTrackerConfig
	cfg.Monitored = monitored
	tr := NewTracker(cfg, NewRenderer("India", "", "STATE"), &fakeSource{}, &fakeNotifier{}, nil, &nopMetrics{}, &fakeClock{}, xlogger.Nop())

	monitored[0] = "Goa"
	if tr.cfg.Monitored[0] != "Kerala" {
		t.Fatalf("monitored list aliased caller slice")
	}
}

func TestDescribeInterval(t *testing.T) {
	cases := map[time.Duration]string{
		time.Hour:               "1 hour",
		2 * time.Hour:           "2 hours",
		time.Minute:             "1 minute",
		90 * time.Minute:        "90 minutes",
		45 * time.Second:        "45 seconds",
		1500 * time.Millisecond: "1.5s",
	}
	for d, want := range cases {
		if got := describeInterval(d); got != want {
			t.Errorf("%v: got %q want %q", d, got, want)
		}
	}
}
