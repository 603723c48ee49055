// Package telegram is a hand-rolled client for the Telegram Bot API methods
// the bot needs.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"kinowatch/internal/config"
)

const baseURL = "https://api.telegram.org"

// APIError is a Bot API-level failure (ok=false response).
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram API error %d: %s", e.Code, e.Description)
}

// IsPermanent reports whether retrying the same call can never succeed:
// the chat blocked the bot, the chat is gone, or the request itself is bad.
func (e *APIError) IsPermanent() bool {
	return e.Code == http.StatusForbidden || e.Code == http.StatusBadRequest
}

// IsRecipientGone reports whether the error means this chat is unreachable
// for good (blocked bot, deleted account, invalid chat).
func IsRecipientGone(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsPermanent()
}

// Client handles communication with the Telegram Bot API
type Client struct {
	token      string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new Telegram Bot API client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.TelegramBotToken == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	return &Client{
		token:      cfg.TelegramBotToken,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}, nil
}

// MessageOptions carries the optional parts of an outgoing message.
type MessageOptions struct {
	ParseMode   string // e.g. "HTML"
	ReplyMarkup *InlineKeyboardMarkup
}

// SendMessage sends a text message to the chat.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, opts *MessageOptions) error {
	payload := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	}
	applyOptions(payload, opts)
	return c.call(ctx, "sendMessage", payload)
}

// SendPhoto sends a photo by URL with a caption.
func (c *Client) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, opts *MessageOptions) error {
	payload := map[string]interface{}{
		"chat_id": chatID,
		"photo":   photoURL,
		"caption": caption,
	}
	applyOptions(payload, opts)
	return c.call(ctx, "sendPhoto", payload)
}

// AnswerCallbackQuery acknowledges a button press, clearing the client-side
// loading state.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackQueryID string) error {
	return c.call(ctx, "answerCallbackQuery", map[string]interface{}{
		"callback_query_id": callbackQueryID,
	})
}

// SetMyCommands installs the command menu for one language. An empty
// languageCode sets the default menu.
func (c *Client) SetMyCommands(ctx context.Context, commands []BotCommand, languageCode string) error {
	payload := map[string]interface{}{
		"commands": commands,
	}
	if languageCode != "" {
		payload["language_code"] = languageCode
	}
	return c.call(ctx, "setMyCommands", payload)
}

func applyOptions(payload map[string]interface{}, opts *MessageOptions) {
	if opts == nil {
		return
	}
	if opts.ParseMode != "" {
		payload["parse_mode"] = opts.ParseMode
	}
	if opts.ReplyMarkup != nil {
		payload["reply_markup"] = opts.ReplyMarkup
	}
}

// call performs one Bot API method, retrying transient failures (network
// errors, 429, 5xx) with exponential backoff. Permanent API errors are
// returned as *APIError without retry.
func (c *Client) call(ctx context.Context, method string, payload interface{}) error {
	operation := func() error {
		err := c.doRequest(ctx, method, payload)
		if err == nil {
			return nil
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsPermanent() {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	return backoff.Retry(operation, policy)
}

func (c *Client) doRequest(ctx context.Context, method string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to marshal request body: %w", err))
	}

	url := fmt.Sprintf("%s/bot%s/%s", baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.WithField("method", method).Debug("Making Telegram API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("failed to decode telegram response: %w", err)
	}

	if !apiResp.OK {
		code := apiResp.ErrorCode
		if code == 0 {
			code = resp.StatusCode
		}
		return &APIError{Code: code, Description: apiResp.Description}
	}

	return nil
}
