package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
	"github.com/ndewijer/Trading-Journal-Backend/internal/testutil"
)

func setupTradeHandler(t *testing.T) (*TradeHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ts := testutil.NewTestTradeService(t, db)
	return NewTradeHandler(ts), db
}

func validTradeBody() map[string]any {
	return map[string]any{
		"instrumentName": "NIFTY",
		"instrumentType": "index",
		"bias":           "bullish",
		"setup":          "Support bounce",
		"strategy":       model.StrategyBullPutSpread,
		"capital":        "₹1,00,000",
		"createdDate":    "2024-01-10",
		"notes":          "0",
		"strikes": []map[string]any{
			{"strike": 22000, "optionType": "PE", "position": "SELL", "lots": 1, "expiry": "2024-01-25", "ltp": 120},
			{"strike": 21900, "optionType": "PE", "position": "BUY", "lots": 1, "expiry": "2024-01-25", "ltp": 70},
		},
	}
}

func TestTradeHandler_Trades(t *testing.T) {
	t.Run("returns empty list when no trades exist", func(t *testing.T) {
		handler, _ := setupTradeHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/trade", nil)
		w := httptest.NewRecorder()

		handler.Trades(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Trade
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response == nil || len(response) != 0 {
			t.Errorf("Expected empty array, got %v", response)
		}
	})

	t.Run("filters by status", func(t *testing.T) {
		handler, db := setupTradeHandler(t)
		testutil.NewTrade().Build(t, db)
		closed := testutil.NewTrade().WithProfitLoss("500").Closed(testutil.MustDate(t, "2024-01-20")).Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/trade", map[string]string{"status": "closed"})
		w := httptest.NewRecorder()

		handler.Trades(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Trade
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 1 || response[0].ID != closed.ID {
			t.Errorf("Expected only the closed trade, got %+v", response)
		}
	})

	t.Run("returns 400 for unknown status", func(t *testing.T) {
		handler, _ := setupTradeHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/trade", map[string]string{"status": "pending"})
		w := httptest.NewRecorder()

		handler.Trades(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTradeHandler_GetTrade(t *testing.T) {
	t.Run("returns trade with strikes", func(t *testing.T) {
		handler, db := setupTradeHandler(t)
		trade := testutil.NewTrade().WithStrikes(testutil.CreditSpreadLegs()...).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/trade/"+trade.ID, map[string]string{"uuid": trade.ID})
		w := httptest.NewRecorder()

		handler.GetTrade(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Trade
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.ID != trade.ID {
			t.Errorf("Expected ID %s, got %s", trade.ID, response.ID)
		}
		if len(response.Strikes) != 2 {
			t.Errorf("Expected 2 strikes, got %d", len(response.Strikes))
		}
	})

	t.Run("returns 404 for missing trade", func(t *testing.T) {
		handler, _ := setupTradeHandler(t)
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/trade/"+id, map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.GetTrade(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTradeHandler_CreateTrade(t *testing.T) {
	t.Run("creates trade and computes estimate", func(t *testing.T) {
		handler, db := setupTradeHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/trade", validTradeBody(), nil)
		w := httptest.NewRecorder()

		handler.CreateTrade(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Trade
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.CalculatedMaxProfit == nil || *response.CalculatedMaxProfit != 3750 {
			t.Errorf("Expected calculated max profit 3750, got %v", response.CalculatedMaxProfit)
		}
		if response.Notes != nil {
			t.Errorf("Expected null notes, got %q", *response.Notes)
		}
		testutil.AssertRowCount(t, db, "trade", 1)
	})

	t.Run("accepts numeric capital", func(t *testing.T) {
		handler, _ := setupTradeHandler(t)
		body := validTradeBody()
		body["capital"] = 75000

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/trade", body, nil)
		w := httptest.NewRecorder()

		handler.CreateTrade(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Trade
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Capital != "75000" {
			t.Errorf("Expected capital '75000', got '%s'", response.Capital)
		}
	})

	t.Run("returns field errors for invalid body", func(t *testing.T) {
		handler, db := setupTradeHandler(t)
		body := validTradeBody()
		body["bias"] = "sideways"
		delete(body, "strikes")

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/trade", body, nil)
		w := httptest.NewRecorder()

		handler.CreateTrade(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}

		var response struct {
			Details map[string]string `json:"details"`
		}
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if _, ok := response.Details["bias"]; !ok {
			t.Errorf("Expected bias error, got %v", response.Details)
		}
		if _, ok := response.Details["strikes"]; !ok {
			t.Errorf("Expected strikes error, got %v", response.Details)
		}
		testutil.AssertRowCount(t, db, "trade", 0)
	})

	t.Run("rejects trade created as closed", func(t *testing.T) {
		handler, db := setupTradeHandler(t)
		body := validTradeBody()
		body["status"] = model.TradeStatusClosed
		body["closingDate"] = "2024-01-20"

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/trade", body, nil)
		w := httptest.NewRecorder()

		handler.CreateTrade(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}

		var response struct {
			Details map[string]string `json:"details"`
		}
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if _, ok := response.Details["status"]; !ok {
			t.Errorf("Expected status error, got %v", response.Details)
		}
		testutil.AssertRowCount(t, db, "trade", 0)
	})

	t.Run("returns 400 for malformed JSON", func(t *testing.T) {
		handler, _ := setupTradeHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/trade", `{"instrumentName":`, nil)
		w := httptest.NewRecorder()

		handler.CreateTrade(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTradeHandler_UpdateTrade(t *testing.T) {
	t.Run("updates trade", func(t *testing.T) {
		handler, db := setupTradeHandler(t)
		trade := testutil.NewTrade().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/trade/"+trade.ID,
			map[string]any{"setup": "Breakout", "capital": "₹80,000"},
			map[string]string{"uuid": trade.ID})
		w := httptest.NewRecorder()

		handler.UpdateTrade(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Trade
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Setup != "Breakout" || response.Capital != "₹80,000" {
			t.Errorf("Expected updated setup and capital, got %s / %s", response.Setup, response.Capital)
		}
	})

	t.Run("returns 404 for missing trade", func(t *testing.T) {
		handler, _ := setupTradeHandler(t)
		id := testutil.MakeID()

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/trade/"+id,
			map[string]any{"setup": "Breakout"}, map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.UpdateTrade(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 when a spread loses its strikes", func(t *testing.T) {
		handler, db := setupTradeHandler(t)
		trade := testutil.NewTrade().WithStrikes(testutil.CreditSpreadLegs()...).Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/trade/"+trade.ID,
			map[string]any{"strikes": []any{}}, map[string]string{"uuid": trade.ID})
		w := httptest.NewRecorder()

		handler.UpdateTrade(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}

		var response struct {
			Details map[string]string `json:"details"`
		}
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if _, ok := response.Details["strikes"]; !ok {
			t.Errorf("Expected strikes error, got %v", response.Details)
		}
		testutil.AssertRowCount(t, db, "trade_strike", 2)
	})

	t.Run("returns 400 when closing date precedes creation", func(t *testing.T) {
		handler, db := setupTradeHandler(t)
		trade := testutil.NewTrade().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/trade/"+trade.ID,
			map[string]any{"closingDate": "2023-12-31"}, map[string]string{"uuid": trade.ID})
		w := httptest.NewRecorder()

		handler.UpdateTrade(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTradeHandler_CloseTrade(t *testing.T) {
	t.Run("closes active trade", func(t *testing.T) {
		handler, db := setupTradeHandler(t)
		trade := testutil.NewTrade().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/trade/"+trade.ID+"/close",
			map[string]any{"closingDate": "2024-01-20", "profitLoss": "₹2,500", "isProfit": true},
			map[string]string{"uuid": trade.ID})
		w := httptest.NewRecorder()

		handler.CloseTrade(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Trade
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Status != model.TradeStatusClosed {
			t.Errorf("Expected status closed, got %s", response.Status)
		}
	})

	t.Run("returns 409 when already closed", func(t *testing.T) {
		handler, db := setupTradeHandler(t)
		trade := testutil.NewTrade().Closed(testutil.MustDate(t, "2024-01-20")).Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/trade/"+trade.ID+"/close",
			map[string]any{"profitLoss": "100"}, map[string]string{"uuid": trade.ID})
		w := httptest.NewRecorder()

		handler.CloseTrade(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 without profitLoss", func(t *testing.T) {
		handler, db := setupTradeHandler(t)
		trade := testutil.NewTrade().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/trade/"+trade.ID+"/close",
			map[string]any{"closingDate": "2024-01-20"}, map[string]string{"uuid": trade.ID})
		w := httptest.NewRecorder()

		handler.CloseTrade(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for missing trade", func(t *testing.T) {
		handler, _ := setupTradeHandler(t)
		id := testutil.MakeID()

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/trade/"+id+"/close",
			map[string]any{"profitLoss": "100"}, map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.CloseTrade(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTradeHandler_DeleteTrade(t *testing.T) {
	t.Run("deletes trade", func(t *testing.T) {
		handler, db := setupTradeHandler(t)
		trade := testutil.NewTrade().WithStrikes(testutil.CreditSpreadLegs()...).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/trade/"+trade.ID, map[string]string{"uuid": trade.ID})
		w := httptest.NewRecorder()

		handler.DeleteTrade(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "trade", 0)
		testutil.AssertRowCount(t, db, "trade_strike", 0)
	})

	t.Run("returns 404 for missing trade", func(t *testing.T) {
		handler, _ := setupTradeHandler(t)
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/trade/"+id, map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.DeleteTrade(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
