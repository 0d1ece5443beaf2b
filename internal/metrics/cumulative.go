package metrics

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
)

// EventKind tags an entry in the chronological event stream.
type EventKind string

const (
	EventTransfer EventKind = "transfer"
	EventTrade    EventKind = "trade"
)

// eventRank orders kinds that fall on the same day: transfers first.
var eventRank = map[EventKind]int{
	EventTransfer: 0,
	EventTrade:    1,
}

// ReturnEvent is one step of the capital walk.
type ReturnEvent struct {
	Date          time.Time `json:"date"`
	Kind          EventKind `json:"kind"`
	ReferenceID   string    `json:"referenceId"`
	Amount        float64   `json:"amount"`
	CapitalBefore float64   `json:"capitalBefore"`
	CapitalAfter  float64   `json:"capitalAfter"`
	ReturnPercent float64   `json:"returnPercent"`
}

// CumulativeReturn is the result of walking trades and transfers in date order.
type CumulativeReturn struct {
	CumulativeReturn float64       `json:"cumulativeReturn"`
	FinalCapital     float64       `json:"finalCapital"`
	Events           []ReturnEvent `json:"events"`
}

type event struct {
	day    time.Time
	kind   EventKind
	id     string
	amount decimal.Decimal
}

// ComputeCumulativeReturn merges closed trades and transfers into one stream
// ordered by date and walks it with a running capital balance that starts at
// initialCapital.
//
// A transfer moves the balance by its signed amount. A trade contributes
// pnl/balance*100 (0 when the balance is not positive) to the cumulative return
// and then adds its P&L to the balance. Per-trade returns are summed, not
// compounded.
//
// Events are compared by UTC calendar day. On the same day transfers come
// before trades, and events of the same kind keep their input order.
//
// closedTrades must already be restricted to closed trades.
func ComputeCumulativeReturn(closedTrades []model.Trade, transfers []model.Transfer, initialCapital float64) CumulativeReturn {
	events := make([]event, 0, len(closedTrades)+len(transfers))
	for _, tr := range transfers {
		events = append(events, event{
			day:    truncateDay(tr.Date),
			kind:   EventTransfer,
			id:     tr.ID,
			amount: decimalOf(tr.SignedAmount()),
		})
	}
	for _, t := range closedTrades {
		events = append(events, event{
			day:    truncateDay(t.EventDate()),
			kind:   EventTrade,
			id:     t.ID,
			amount: signedPnL(t),
		})
	}

	slices.SortStableFunc(events, func(a, b event) int {
		if c := a.day.Compare(b.day); c != 0 {
			return c
		}
		return cmp.Compare(eventRank[a.kind], eventRank[b.kind])
	})

	balance := decimalOf(initialCapital)
	cumulative := decimal.Zero
	steps := make([]ReturnEvent, 0, len(events))

	for _, e := range events {
		step := ReturnEvent{
			Date:          e.day,
			Kind:          e.kind,
			ReferenceID:   e.id,
			Amount:        e.amount.InexactFloat64(),
			CapitalBefore: balance.InexactFloat64(),
		}

		if e.kind == EventTrade {
			ret := percentOf(e.amount, balance)
			cumulative = cumulative.Add(ret)
			step.ReturnPercent = ret.InexactFloat64()
		}
		balance = balance.Add(e.amount)

		step.CapitalAfter = balance.InexactFloat64()
		steps = append(steps, step)
	}

	return CumulativeReturn{
		CumulativeReturn: cumulative.InexactFloat64(),
		FinalCapital:     balance.InexactFloat64(),
		Events:           steps,
	}
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
