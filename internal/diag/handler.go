package diag

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// StaleAfter is how old the latest sample may be before /healthz reports
// the loop as stalled.
const StaleAfter = 5 * time.Second

// Handler serves the diagnostics routes.
type Handler struct {
	stats *Publisher
	now   func() time.Time
}

// NewHandler creates a handler reading from stats.
func NewHandler(stats *Publisher) *Handler {
	return &Handler{stats: stats, now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.healthz)
	r.Get("/stats", h.statsJSON)
}

// NewRouter returns a router with the standard middleware stack and the
// diagnostics routes mounted.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))
	h.RegisterRoutes(r)
	return r
}

type health struct {
	Status string `json:"status"`
	Age    string `json:"age,omitempty"`
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	s := h.stats.Latest()
	switch {
	case s == nil:
		writeJSON(w, http.StatusServiceUnavailable, health{Status: "starting"})
	case h.now().Sub(s.UpdatedAt) > StaleAfter:
		writeJSON(w, http.StatusServiceUnavailable, health{Status: "stalled", Age: h.now().Sub(s.UpdatedAt).String()})
	default:
		writeJSON(w, http.StatusOK, health{Status: "ok"})
	}
}

func (h *Handler) statsJSON(w http.ResponseWriter, r *http.Request) {
	s := h.stats.Latest()
	if s == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
