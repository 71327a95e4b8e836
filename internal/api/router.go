package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"glances-hub/internal/hub/version"
	"glances-hub/internal/metrics"
	"glances-hub/internal/model"
)

// Service is satisfied by *collector.Aggregator.
type Service interface {
	Overview(ctx context.Context) []model.HostSummary
	Detail(ctx context.Context, id string) (model.RawRecord, error)
}

type HealthReporter interface {
	Snapshot() map[string]any
}

type Handler struct {
	logger  *slog.Logger
	svc     Service
	health  HealthReporter
	version func() *version.GetVersionResponse
}

func NewHandler(logger *slog.Logger, svc Service, health HealthReporter, versionFn func() *version.GetVersionResponse) *Handler {
	return &Handler{
		logger:  logger,
		svc:     svc,
		health:  health,
		version: versionFn,
	}
}

// Router returns the full HTTP surface with CORS applied outermost so
// preflight requests never reach the method-restricted routes.
func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(metrics.HTTPMetricsMiddleware(metrics.HTTPRequestsTotal, metrics.HTTPRequestDuration))

	r.HandleFunc("/servers", h.handleOverview).Methods(http.MethodGet)
	r.HandleFunc("/servers/{id}", h.handleDetail).Methods(http.MethodGet)
	r.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/version", h.handleVersion).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return addCORS(r)
}

// CORS middleware for the browser dashboard
func addCORS(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		handler.ServeHTTP(w, r)
	})
}
