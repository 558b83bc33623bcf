package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"CovidPulse/internal/domain/models"
	"CovidPulse/internal/repository"
	"CovidPulse/internal/service/cache"
	"CovidPulse/internal/service/ratelimit"
	xhttp "CovidPulse/pkg/http"
	xlogger "CovidPulse/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
)

type fixedState models.TrackerState

func (s fixedState) State() models.TrackerState { return models.TrackerState(s) }

func setup(t *testing.T) (*xhttp.Server, func(*models.Snapshot)) {
	t.Helper()
	return setupWithLimiter(t, nil)
}

func setupWithLimiter(t *testing.T, l *ratelimit.Limiter) (*xhttp.Server, func(*models.Snapshot)) {
	t.Helper()
	store := repository.NewCacheSnapshotStore(cache.NewTTLCache(), "test:", time.Hour)
	h := NewStatusEchoHandler(xlogger.Nop(), fixedState(models.StateSleeping), store, l)
	reg := prometheus.NewRegistry()
	srv := xhttp.NewServer(h, xlogger.Nop(), xhttp.WithRegistry(reg, reg))
	save := func(s *models.Snapshot) {
		if err := store.Save(context.Background(), s); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	return srv, save
}

func do(srv *xhttp.Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthReportsTrackerState(t *testing.T) {
	srv, _ := setup(t)

	rec := do(srv, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	var body struct {
		Data healthResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.State != "sleeping" {
		t.Fatalf("state: %q", body.Data.State)
	}
}

func TestSnapshotNotFoundBeforeFirstCycle(t *testing.T) {
	srv, _ := setup(t)

	rec := do(srv, "/api/snapshot")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: %d body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "ERR_NOT_FOUND") {
		t.Fatalf("body: %s", rec.Body.String())
	}
}

func TestSnapshotReturnsLatest(t *testing.T) {
	srv, save := setup(t)
	save(&models.Snapshot{
		Country: models.RegionReport{Name: "India", Stats: models.DerivedStats{DeathRate: "1.23%"}},
	})

	rec := do(srv, "/api/snapshot")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	var body struct {
		Data models.Snapshot `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Country.Name != "India" || body.Data.Country.Stats.DeathRate != "1.23%" {
		t.Fatalf("snapshot: %+v", body.Data)
	}
}

func TestMetricsEndpointExposesHTTPCounters(t *testing.T) {
	srv, _ := setup(t)
	_ = do(srv, "/health")

	rec := do(srv, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `covidpulse_http_requests_total{method="GET",route="/health",status="200"} 1`) {
		t.Fatalf("metrics body missing request counter:\n%s", rec.Body.String())
	}
}

func TestSnapshotRateLimited(t *testing.T) {
	srv, _ := setupWithLimiter(t, ratelimit.New(1, 0.001))

	if rec := do(srv, "/api/snapshot"); rec.Code != http.StatusNotFound {
		t.Fatalf("first request: %d", rec.Code)
	}
	if rec := do(srv, "/api/snapshot"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: %d", rec.Code)
	}
	if rec := do(srv, "/health"); rec.Code != http.StatusOK {
		t.Fatalf("health must not be limited: %d", rec.Code)
	}
}
