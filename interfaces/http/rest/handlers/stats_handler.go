package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"creativerse-backend/application/services"
)

// StatsHandler handles workspace stats and notification feed requests
type StatsHandler struct {
	stats    *services.StatsService
	notifier *services.NotificationService
	logger   *zap.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(stats *services.StatsService, notifier *services.NotificationService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, notifier: notifier, logger: logger}
}

// GetStats handles GET /stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.stats.Snapshot(r.Context()))
}

// ListNotifications handles GET /notifications
func (h *StatsHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.notifier.List(r.Context()))
}
