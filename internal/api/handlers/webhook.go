package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"kinowatch/internal/services/telegram"
)

// UpdateHandler processes one decoded Telegram update.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update telegram.Update)
}

// WebhookHandler handles Telegram webhook callbacks
type WebhookHandler struct {
	bot    UpdateHandler
	logger *logrus.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(bot UpdateHandler, logger *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{
		bot:    bot,
		logger: logger,
	}
}

// ServeHTTP handles the webhook endpoint. Telegram redelivers updates until
// it sees a 2xx, so handler-level failures are swallowed after decoding: a
// broken command must not be retried forever.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.logger.WithError(err).Error("Failed to decode webhook payload")
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	h.bot.HandleUpdate(r.Context(), update)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
