package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"kinowatch/internal/models"
	"kinowatch/internal/scrapers"
	"kinowatch/internal/services/telegram"
)

type recordingBot struct {
	updates []telegram.Update
}

func (r *recordingBot) HandleUpdate(ctx context.Context, update telegram.Update) {
	r.updates = append(r.updates, update)
}

type stubScraper struct {
	id   string
	name string
}

func (s *stubScraper) SourceID() string    { return s.id }
func (s *stubScraper) DisplayName() string { return s.name }
func (s *stubScraper) URL() string         { return "https://example.com/" + s.id }
func (s *stubScraper) Scrape(ctx context.Context) ([]models.Film, error) {
	return nil, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestHealthHandler(t *testing.T) {
	handler := NewHealthHandler(quietLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %q", body["status"])
	}
}

func TestWebhookHandlerDispatchesUpdate(t *testing.T) {
	bot := &recordingBot{}
	handler := NewWebhookHandler(bot, quietLogger())

	payload := `{"update_id":7,"message":{"message_id":1,"chat":{"id":100},"text":"/start"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/webhook/telegram", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
	if len(bot.updates) != 1 {
		t.Fatalf("Expected 1 dispatched update, got %d", len(bot.updates))
	}
	if bot.updates[0].Message == nil || bot.updates[0].Message.Text != "/start" {
		t.Errorf("Update not decoded, got %+v", bot.updates[0])
	}
}

func TestWebhookHandlerRejectsBadPayload(t *testing.T) {
	bot := &recordingBot{}
	handler := NewWebhookHandler(bot, quietLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/webhook/telegram", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
	if len(bot.updates) != 0 {
		t.Error("Broken payload must not reach the bot")
	}
}

func TestWebhookHandlerRejectsGet(t *testing.T) {
	handler := NewWebhookHandler(&recordingBot{}, quietLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/webhook/telegram", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}

func TestStatusHandler(t *testing.T) {
	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	registry := scrapers.NewRegistry()
	registry.Register(&stubScraper{id: "meisengeige", name: "Meisengeige"})

	if _, err := db.AddSubscription(100, "meisengeige"); err != nil {
		t.Fatalf("AddSubscription failed: %v", err)
	}
	if err := db.SaveSnapshot("meisengeige", []models.Film{{Title: "Amelie"}}); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	handler := NewStatusHandler(db, registry, quietLogger())

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body StatusResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.TotalSubscribers != 1 {
		t.Errorf("Expected 1 subscriber, got %d", body.TotalSubscribers)
	}
	source, ok := body.Sources["meisengeige"]
	if !ok {
		t.Fatal("Expected meisengeige in sources")
	}
	if source.Films != 1 || source.Subscribers != 1 || source.LastChecked == nil {
		t.Errorf("Unexpected source status: %+v", source)
	}
}
