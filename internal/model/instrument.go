package model

// Instrument describes a tradable underlying. LotSize is the contract
// multiplier applied to strike legs; ReferencePrice replaces the index prices
// that used to be hardcoded in the dashboard.
type Instrument struct {
	Name           string  `json:"name" yaml:"name"`
	Type           string  `json:"type" yaml:"type"`
	LotSize        float64 `json:"lotSize" yaml:"lot_size"`
	ReferencePrice float64 `json:"referencePrice" yaml:"reference_price"`
}

// Instrument types.
const (
	InstrumentTypeIndex = "index"
	InstrumentTypeStock = "stock"
)
