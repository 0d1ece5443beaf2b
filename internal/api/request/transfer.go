package request

type CreateTransferRequest struct {
	Date   string  `json:"date"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
	Notes  *string `json:"notes,omitempty"`
}
