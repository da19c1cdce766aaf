package diag

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vovakirdan/twinpass/internal/sim"
)

func TestHealthz(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name       string
		stats      *Stats
		wantStatus int
		wantBody   string
	}{
		{"no sample yet", nil, http.StatusServiceUnavailable, "starting"},
		{"fresh sample", &Stats{UpdatedAt: now.Add(-time.Second)}, http.StatusOK, "ok"},
		{"stale sample", &Stats{UpdatedAt: now.Add(-time.Minute)}, http.StatusServiceUnavailable, "stalled"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pub := NewPublisher()
			if tc.stats != nil {
				pub.Publish(tc.stats)
			}
			h := NewHandler(pub)
			h.now = func() time.Time { return now }

			rec := httptest.NewRecorder()
			NewRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, expected %d", rec.Code, tc.wantStatus)
			}
			var body health
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("cannot decode body: %v", err)
			}
			if body.Status != tc.wantBody {
				t.Errorf("status field = %q, expected %q", body.Status, tc.wantBody)
			}
		})
	}
}

func TestStats(t *testing.T) {
	pub := NewPublisher()
	router := NewRouter(NewHandler(pub))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status before first sample = %d, expected %d", rec.Code, http.StatusNoContent)
	}

	gap2 := sim.Gap{Start: 170, End: 241}
	pub.Publish(&Stats{
		Frontend:    "headless",
		Seed:        7,
		Round:       sim.Snapshot{Score: 3, MaxScore: 5, Tick: 120, Rounds: 2, Ticks: 9000, Gap1: sim.Gap{Start: 40, End: 111}, Gap2: &gap2},
		TicksPerSec: 4321,
		Frames:      60,
		Scroll:      60,
		UpdatedAt:   time.Now(),
	})

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var got Stats
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("cannot decode body: %v", err)
	}
	if got.Frontend != "headless" || got.TicksPerSec != 4321 || got.Round.MaxScore != 5 {
		t.Errorf("decoded stats = %+v", got)
	}
	if got.Round.Gap2 == nil || *got.Round.Gap2 != gap2 {
		t.Errorf("gap2 = %+v, expected %+v", got.Round.Gap2, gap2)
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRouter(NewHandler(NewPublisher())).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, expected 404", rec.Code)
	}
}
