package monitor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// ConsoleHandler serves the operator surface: the open-alert listing and
// the resolution submission.
type ConsoleHandler struct {
	book *AlertBook
	log  *zap.Logger
}

func NewConsoleHandler(book *AlertBook, log *zap.Logger) *ConsoleHandler {
	return &ConsoleHandler{book: book, log: log}
}

func (h *ConsoleHandler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/alerts", h.ListAlerts)
	mux.HandleFunc("/alerts/resolve", h.ResolveAlert)
	mux.HandleFunc("/healthz", h.Health)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// ListAlerts handles GET /alerts.
func (h *ConsoleHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	alerts, err := h.book.ListOpen()
	if err != nil {
		h.log.Error("list open alerts", zap.Error(err))
		http.Error(w, "Failed to list alerts", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"count":  len(alerts),
		"alerts": alerts,
	})
}

type resolveRequest struct {
	AlertID         uint   `json:"alert_id"`
	MaintenanceType string `json:"maintenance_type"`
	Notes           string `json:"notes"`
}

// ResolveAlert handles POST /alerts/resolve.
func (h *ConsoleHandler) ResolveAlert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.AlertID == 0 {
		http.Error(w, "alert_id is required", http.StatusBadRequest)
		return
	}

	err := h.book.Resolve(req.AlertID, MaintenanceType(req.MaintenanceType), req.Notes)
	switch {
	case errors.Is(err, ErrInvalidMaintenanceType):
		http.Error(w, "maintenance_type must be Scheduled or Unscheduled", http.StatusBadRequest)
		return
	case errors.Is(err, ErrAlertNotFound):
		http.Error(w, "Alert not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrAlertAlreadyResolved):
		http.Error(w, "Alert already resolved", http.StatusConflict)
		return
	case err != nil:
		h.log.Error("resolve alert", zap.Uint("alert_id", req.AlertID), zap.Error(err))
		http.Error(w, "Failed to resolve alert", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   "resolved",
		"alert_id": req.AlertID,
	})
}

func (h *ConsoleHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
