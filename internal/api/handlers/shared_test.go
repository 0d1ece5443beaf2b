package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/Trading-Journal-Backend/internal/api/request"
)

// TestParseJSON tests the parseJSON helper function.
// This is an internal test (package handlers, not handlers_test) because
// parseJSON is unexported.
func TestParseJSON(t *testing.T) {
	t.Run("decodes a valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"date":"2024-01-02","type":"deposit","amount":100}`))

		got, err := parseJSON[request.CreateTransferRequest](req)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got.Type != "deposit" || got.Amount != 100 {
			t.Errorf("Unexpected result: %+v", got)
		}
	})

	t.Run("rejects an empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))

		if _, err := parseJSON[request.CreateTransferRequest](req); err == nil {
			t.Error("Expected error for empty body")
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":1,"bogus":true}`))

		if _, err := parseJSON[request.CreateTransferRequest](req); err == nil {
			t.Error("Expected error for unknown field")
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":`))

		if _, err := parseJSON[request.CreateTransferRequest](req); err == nil {
			t.Error("Expected error for malformed JSON")
		}
	})
}
