package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"glances-hub/internal/collector"
	"glances-hub/internal/glances"
)

const detailNotFound = "Server not found"

type errorBody struct {
	Detail string `json:"detail"`
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	rows := h.svc.Overview(r.Context())
	h.writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) handleDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	rec, err := h.svc.Detail(r.Context(), id)
	if err != nil {
		status, detail := classify(err)
		if status != http.StatusNotFound {
			h.logger.Warn("server detail failed", "host", id, "status", status, "error", err)
		}
		h.writeJSON(w, status, errorBody{Detail: detail})
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{}
	if h.health != nil {
		for k, v := range h.health.Snapshot() {
			body[k] = v
		}
	}
	body["status"] = "ok"
	h.writeJSON(w, http.StatusOK, body)
}

func (h *Handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if h.version == nil {
		h.writeJSON(w, http.StatusNotFound, errorBody{Detail: "version unavailable"})
		return
	}
	h.writeJSON(w, http.StatusOK, h.version())
}

// classify maps a detail error onto its HTTP status and response detail.
func classify(err error) (int, string) {
	if errors.Is(err, collector.ErrHostNotFound) {
		return http.StatusNotFound, detailNotFound
	}

	var fe *glances.FetchError
	if errors.As(err, &fe) {
		if fe.Timeout() {
			return http.StatusGatewayTimeout, fe.Detail
		}
		return http.StatusInternalServerError, fe.Detail
	}

	var ie *collector.InternalError
	if errors.As(err, &ie) {
		return http.StatusInternalServerError, ie.Detail
	}
	return http.StatusInternalServerError, fmt.Sprintf("Unexpected error: %v", err)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
