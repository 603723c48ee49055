package telegram

import (
	"errors"
	"fmt"
	"testing"

	"kinowatch/internal/config"
)

func TestAPIErrorClassification(t *testing.T) {
	cases := []struct {
		code      int
		permanent bool
	}{
		{403, true},  // bot blocked by user
		{400, true},  // chat not found
		{429, false}, // rate limited
		{500, false},
		{502, false},
	}
	for _, tc := range cases {
		err := &APIError{Code: tc.code, Description: "test"}
		if err.IsPermanent() != tc.permanent {
			t.Errorf("Code %d: IsPermanent() = %v, want %v", tc.code, err.IsPermanent(), tc.permanent)
		}
	}
}

func TestIsRecipientGone(t *testing.T) {
	blocked := &APIError{Code: 403, Description: "Forbidden: bot was blocked by the user"}
	if !IsRecipientGone(blocked) {
		t.Error("403 must classify as recipient gone")
	}
	if !IsRecipientGone(fmt.Errorf("sending failed: %w", blocked)) {
		t.Error("Wrapped 403 must classify as recipient gone")
	}
	if IsRecipientGone(&APIError{Code: 429, Description: "Too Many Requests"}) {
		t.Error("429 must not classify as recipient gone")
	}
	if IsRecipientGone(errors.New("connection refused")) {
		t.Error("Network errors must not classify as recipient gone")
	}
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient(&config.Config{}, nil)
	if err == nil {
		t.Error("Expected error for empty token")
	}
}
