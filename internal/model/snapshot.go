package model

import "time"

// MetricsSnapshot is a persisted copy of the summary figures for one view
// (active or closed) on one date. Rows are rebuilt by the snapshot job and read
// back for the history endpoint.
type MetricsSnapshot struct {
	ID                    string    `json:"id"`
	Date                  time.Time `json:"date"`
	View                  string    `json:"view"`
	TradeCount            int       `json:"tradeCount"`
	TotalPnL              float64   `json:"totalPnL"`
	PercentageReturn      float64   `json:"percentageReturn"`
	TotalCapital          float64   `json:"totalCapital"`
	TotalMaxProfit        float64   `json:"totalMaxProfit"`
	TotalMaxLoss          float64   `json:"totalMaxLoss"`
	BuyingPowerPercentage float64   `json:"buyingPowerPercentage"`
	TotalRisk             float64   `json:"totalRisk"`
	WinRate               float64   `json:"winRate"`
	CumulativeReturn      float64   `json:"cumulativeReturn"`
	FinalCapital          float64   `json:"finalCapital"`
	CalculatedAt          time.Time `json:"calculatedAt"`
}

// HistoryFilters narrows the snapshot history. Nil dates are filled in by the service.
type HistoryFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	View      string
	SortDir   string
}
