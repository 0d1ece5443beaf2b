package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
)

const dateLayout = "2006-01-02"

// MustDate parses a "2006-01-02" date or fails the test.
func MustDate(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := time.Parse(dateLayout, s)
	if err != nil {
		t.Fatalf("Failed to parse date %q: %v", s, err)
	}
	return d
}

// TradeBuilder provides a fluent interface for creating test trades.
//
// Example usage:
//
//	// Simple creation with defaults (active NIFTY bull put spread)
//	trade := testutil.NewTrade().Build(t, db)
//
//	// Customized trade
//	trade := testutil.NewTrade().
//	    WithCapital("₹50,000").
//	    WithProfitLoss("₹2,500").
//	    Closed(testutil.MustDate(t, "2024-03-15")).
//	    Build(t, db)
type TradeBuilder struct {
	trade model.Trade
}

// NewTrade creates a TradeBuilder with sensible defaults.
func NewTrade() *TradeBuilder {
	return &TradeBuilder{
		trade: model.Trade{
			ID:             MakeID(),
			Status:         model.TradeStatusActive,
			InstrumentName: "NIFTY",
			InstrumentType: model.InstrumentTypeIndex,
			Bias:           "bullish",
			Setup:          "Support bounce",
			Strategy:       model.StrategyBullPutSpread,
			Capital:        "₹1,00,000",
			ProfitLoss:     "",
			CreatedDate:    time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		},
	}
}

// WithID sets a custom ID.
func (b *TradeBuilder) WithID(id string) *TradeBuilder {
	b.trade.ID = id
	return b
}

// WithInstrument sets the instrument name.
func (b *TradeBuilder) WithInstrument(name string) *TradeBuilder {
	b.trade.InstrumentName = name
	return b
}

// WithStrategy sets the strategy.
func (b *TradeBuilder) WithStrategy(strategy string) *TradeBuilder {
	b.trade.Strategy = strategy
	return b
}

// WithCapital sets the deployed capital as entered.
func (b *TradeBuilder) WithCapital(capital string) *TradeBuilder {
	b.trade.Capital = capital
	return b
}

// WithProfitLoss sets the realized P&L as entered.
func (b *TradeBuilder) WithProfitLoss(pnl string) *TradeBuilder {
	b.trade.ProfitLoss = pnl
	return b
}

// WithIsProfit sets the explicit profit flag.
func (b *TradeBuilder) WithIsProfit(isProfit bool) *TradeBuilder {
	b.trade.IsProfit = &isProfit
	return b
}

// WithMaxProfitLoss sets the stored max profit and max loss fields.
func (b *TradeBuilder) WithMaxProfitLoss(maxProfit, maxLoss string) *TradeBuilder {
	b.trade.MaxProfit = maxProfit
	b.trade.MaxLoss = maxLoss
	return b
}

// WithCalculated sets the calculated max profit and max loss.
func (b *TradeBuilder) WithCalculated(maxProfit, maxLoss float64) *TradeBuilder {
	b.trade.CalculatedMaxProfit = &maxProfit
	b.trade.CalculatedMaxLoss = &maxLoss
	return b
}

// WithCreatedDate sets the creation date.
func (b *TradeBuilder) WithCreatedDate(d time.Time) *TradeBuilder {
	b.trade.CreatedDate = d
	return b
}

// WithNotes sets the notes.
func (b *TradeBuilder) WithNotes(notes string) *TradeBuilder {
	b.trade.Notes = &notes
	return b
}

// WithStrikes sets the strike legs. Missing leg IDs are generated on Build.
func (b *TradeBuilder) WithStrikes(strikes ...model.StrikeLeg) *TradeBuilder {
	b.trade.Strikes = strikes
	return b
}

// Closed marks the trade as closed on the given date.
func (b *TradeBuilder) Closed(closingDate time.Time) *TradeBuilder {
	b.trade.Status = model.TradeStatusClosed
	b.trade.ClosingDate = &closingDate
	return b
}

// Build creates the trade and its strike legs in the database and returns it.
func (b *TradeBuilder) Build(t *testing.T, db *sql.DB) model.Trade {
	t.Helper()

	tr := b.trade
	now := time.Now().UTC().Truncate(time.Second)
	tr.CreatedAt = now
	tr.UpdatedAt = now

	var closingDate any
	if tr.ClosingDate != nil {
		closingDate = tr.ClosingDate.Format(dateLayout)
	}
	var isProfit any
	if tr.IsProfit != nil {
		isProfit = *tr.IsProfit
	}
	var calcProfit, calcLoss any
	if tr.CalculatedMaxProfit != nil {
		calcProfit = *tr.CalculatedMaxProfit
	}
	if tr.CalculatedMaxLoss != nil {
		calcLoss = *tr.CalculatedMaxLoss
	}
	var notes any
	if tr.Notes != nil {
		notes = *tr.Notes
	}

	query := `
		INSERT INTO trade (
			id, status, instrument_name, instrument_type, bias, setup, strategy,
			capital, profit_loss, is_profit, max_profit, max_profit_percentage,
			max_loss, max_loss_percentage, calculated_max_profit, calculated_max_loss,
			created_date, closing_date, notes, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		tr.ID, tr.Status, tr.InstrumentName, tr.InstrumentType, tr.Bias, tr.Setup, tr.Strategy,
		tr.Capital, tr.ProfitLoss, isProfit, tr.MaxProfit, tr.MaxProfitPercentage,
		tr.MaxLoss, tr.MaxLossPercentage, calcProfit, calcLoss,
		tr.CreatedDate.Format(dateLayout), closingDate, notes,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test trade: %v", err)
	}

	strikes := make([]model.StrikeLeg, len(tr.Strikes))
	for i, s := range tr.Strikes {
		if s.ID == "" {
			s.ID = MakeID()
		}
		s.TradeID = tr.ID
		_, err := db.Exec(`
			INSERT INTO trade_strike (id, trade_id, strike, option_type, position, lots, expiry, ltp)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, s.ID, s.TradeID, s.Strike, s.OptionType, s.Position, s.Lots, s.Expiry.Format(dateLayout), s.LTP)
		if err != nil {
			t.Fatalf("Failed to create test trade strike: %v", err)
		}
		strikes[i] = s
	}
	tr.Strikes = strikes

	return tr
}

// CreditSpreadLegs returns a NIFTY bull put spread: SELL 22000 PE at 120 and
// BUY 21900 PE at 70, one lot each. With a lot size of 75 the estimate is a
// max profit of 3750 and a max loss of 3750.
func CreditSpreadLegs() []model.StrikeLeg {
	expiry := time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC)
	return []model.StrikeLeg{
		{Strike: 22000, OptionType: model.OptionTypePut, Position: model.PositionSell, Lots: 1, Expiry: expiry, LTP: 120},
		{Strike: 21900, OptionType: model.OptionTypePut, Position: model.PositionBuy, Lots: 1, Expiry: expiry, LTP: 70},
	}
}

// TransferBuilder provides a fluent interface for creating test transfers.
//
// Example usage:
//
//	transfer := testutil.NewTransfer().
//	    Withdrawal().
//	    WithAmount(25000).
//	    WithDate(testutil.MustDate(t, "2024-02-01")).
//	    Build(t, db)
type TransferBuilder struct {
	transfer model.Transfer
}

// NewTransfer creates a TransferBuilder for a deposit with sensible defaults.
func NewTransfer() *TransferBuilder {
	return &TransferBuilder{
		transfer: model.Transfer{
			ID:     MakeID(),
			Date:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Type:   model.TransferTypeDeposit,
			Amount: 10000,
			Method: "Bank transfer",
		},
	}
}

// WithDate sets the transfer date.
func (b *TransferBuilder) WithDate(d time.Time) *TransferBuilder {
	b.transfer.Date = d
	return b
}

// WithAmount sets the amount.
func (b *TransferBuilder) WithAmount(amount float64) *TransferBuilder {
	b.transfer.Amount = amount
	return b
}

// Withdrawal marks the transfer as a withdrawal.
func (b *TransferBuilder) Withdrawal() *TransferBuilder {
	b.transfer.Type = model.TransferTypeWithdrawal
	return b
}

// Build creates the transfer in the database and returns it.
func (b *TransferBuilder) Build(t *testing.T, db *sql.DB) model.Transfer {
	t.Helper()

	tr := b.transfer
	tr.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := db.Exec(`
		INSERT INTO transfer (id, date, type, amount, method, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, tr.ID, tr.Date.Format(dateLayout), tr.Type, tr.Amount, tr.Method, nil, tr.CreatedAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test transfer: %v", err)
	}

	return tr
}

// SnapshotBuilder provides a fluent interface for creating stored metrics snapshots.
//
// Example usage:
//
//	testutil.NewSnapshot().
//	    WithView("closed").
//	    WithDate(testutil.MustDate(t, "2024-03-01")).
//	    WithTotalPnL(1500).
//	    Build(t, db)
type SnapshotBuilder struct {
	snapshot model.MetricsSnapshot
}

// NewSnapshot creates a SnapshotBuilder for an active-view snapshot.
func NewSnapshot() *SnapshotBuilder {
	return &SnapshotBuilder{
		snapshot: model.MetricsSnapshot{
			ID:           MakeID(),
			Date:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			View:         model.TradeStatusActive,
			TotalCapital: 100000,
		},
	}
}

// WithDate sets the snapshot date.
func (b *SnapshotBuilder) WithDate(d time.Time) *SnapshotBuilder {
	b.snapshot.Date = d
	return b
}

// WithView sets the view (active or closed).
func (b *SnapshotBuilder) WithView(view string) *SnapshotBuilder {
	b.snapshot.View = view
	return b
}

// WithTotalPnL sets the total P&L.
func (b *SnapshotBuilder) WithTotalPnL(pnl float64) *SnapshotBuilder {
	b.snapshot.TotalPnL = pnl
	return b
}

// Build creates the snapshot in the database and returns it.
func (b *SnapshotBuilder) Build(t *testing.T, db *sql.DB) model.MetricsSnapshot {
	t.Helper()

	s := b.snapshot
	s.CalculatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := db.Exec(`
		INSERT INTO metrics_snapshot (
			id, date, view, trade_count, total_pnl, percentage_return, total_capital,
			total_max_profit, total_max_loss, buying_power_percentage, total_risk,
			win_rate, cumulative_return, final_capital, calculated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.Date.Format(dateLayout), s.View, s.TradeCount, s.TotalPnL, s.PercentageReturn, s.TotalCapital,
		s.TotalMaxProfit, s.TotalMaxLoss, s.BuyingPowerPercentage, s.TotalRisk,
		s.WinRate, s.CumulativeReturn, s.FinalCapital, s.CalculatedAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test snapshot: %v", err)
	}

	return s
}
