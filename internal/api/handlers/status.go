package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"kinowatch/internal/models"
	"kinowatch/internal/scrapers"
)

// StatusHandler handles status requests
type StatusHandler struct {
	db       *models.Database
	registry *scrapers.Registry
	logger   *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(db *models.Database, registry *scrapers.Registry, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		db:       db,
		registry: registry,
		logger:   logger,
	}
}

// SourceStatus summarizes one monitored source.
type SourceStatus struct {
	DisplayName string     `json:"display_name"`
	Subscribers int        `json:"subscribers"`
	Films       int        `json:"films"`
	LastChecked *time.Time `json:"last_checked,omitempty"`
}

// StatusResponse represents the status response
type StatusResponse struct {
	TotalSubscribers int                     `json:"total_subscribers"`
	Sources          map[string]SourceStatus `json:"sources"`
}

// ServeHTTP handles the status endpoint
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	total, err := h.db.GetSubscriberCount()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count subscribers")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := StatusResponse{
		TotalSubscribers: total,
		Sources:          make(map[string]SourceStatus),
	}

	for _, scraper := range h.registry.List() {
		sourceID := scraper.SourceID()

		count, err := h.db.GetSourceSubscriberCount(sourceID)
		if err != nil {
			h.logger.WithError(err).Error("Failed to count source subscribers")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		status := SourceStatus{
			DisplayName: scraper.DisplayName(),
			Subscribers: count,
		}

		snap, err := h.db.LoadSnapshot(sourceID)
		if err != nil {
			h.logger.WithError(err).WithField("source", sourceID).Warn("Failed to load snapshot for status")
		} else if snap != nil {
			status.Films = len(snap.Films)
			ts := snap.Timestamp
			status.LastChecked = &ts
		}

		response.Sources[sourceID] = status
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
