package model

import (
	"math"
	"time"
)

// Transfer types. The amount of a transfer is never negative; direction is
// carried by the type.
const (
	TransferTypeDeposit    = "deposit"
	TransferTypeWithdrawal = "withdrawal"
)

// Transfer represents one capital movement into or out of the trading account.
type Transfer struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// SignedAmount returns the amount as a balance delta: positive for deposits,
// negative for withdrawals and zero for unknown types. The sign of Amount
// itself is ignored.
func (t Transfer) SignedAmount() float64 {
	switch t.Type {
	case TransferTypeDeposit:
		return math.Abs(t.Amount)
	case TransferTypeWithdrawal:
		return -math.Abs(t.Amount)
	default:
		return 0
	}
}
