package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Trading-Journal-Backend/internal/config"
	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
	"github.com/ndewijer/Trading-Journal-Backend/internal/repository"
	"github.com/ndewijer/Trading-Journal-Backend/internal/service"
)

// Default account figures used by the test services.
const (
	TestInitialCapital = 100000.0
	TestBuyingPower    = 500000.0
)

// TestInstruments returns a small instrument catalogue: NIFTY with lot size 75
// and BANKNIFTY with lot size 35. Unknown instruments fall back to lot size 1.
func TestInstruments(t *testing.T) *config.Instruments {
	t.Helper()

	instruments, err := config.NewInstruments([]model.Instrument{
		{Name: "NIFTY", Type: model.InstrumentTypeIndex, LotSize: 75, ReferencePrice: 24500},
		{Name: "BANKNIFTY", Type: model.InstrumentTypeIndex, LotSize: 35, ReferencePrice: 52000},
	}, 1)
	if err != nil {
		t.Fatalf("Failed to build test instruments: %v", err)
	}
	return instruments
}

// TestSettings returns the account settings used by NewTestMetricsService.
func TestSettings() service.JournalSettings {
	return service.JournalSettings{
		InitialCapital: TestInitialCapital,
		BuyingPower:    TestBuyingPower,
	}
}

func NewTestTradeService(t *testing.T, db *sql.DB) *service.TradeService {
	t.Helper()

	return service.NewTradeService(
		db,
		repository.NewTradeRepository(db, zerolog.Nop()),
		TestInstruments(t),
		zerolog.Nop(),
	)
}

func NewTestTransferService(t *testing.T, db *sql.DB) *service.TransferService {
	t.Helper()

	return service.NewTransferService(
		repository.NewTransferRepository(db, zerolog.Nop()),
		zerolog.Nop(),
	)
}

func NewTestMetricsService(t *testing.T, db *sql.DB) *service.MetricsService {
	t.Helper()

	return service.NewMetricsService(
		repository.NewTradeRepository(db, zerolog.Nop()),
		repository.NewTransferRepository(db, zerolog.Nop()),
		TestInstruments(t),
		TestSettings(),
		zerolog.Nop(),
	)
}

func NewTestSnapshotService(t *testing.T, db *sql.DB) *service.SnapshotService {
	t.Helper()

	return service.NewSnapshotService(
		NewTestMetricsService(t, db),
		repository.NewSnapshotRepository(db, zerolog.Nop()),
		zerolog.Nop(),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, map[string]bool{"strike_estimates": true})
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
