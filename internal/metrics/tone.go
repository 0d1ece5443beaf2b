package metrics

import "github.com/ndewijer/Trading-Journal-Backend/internal/model"

// ToneKind names a colour treatment for a headline figure.
type ToneKind string

const (
	ToneProfit ToneKind = "profit"
	ToneLoss   ToneKind = "loss"
)

// Tone is the presentation treatment for a signed figure.
type Tone struct {
	Name       ToneKind `json:"name"`
	Background string   `json:"background"`
	Accent     string   `json:"accent"`
}

var tones = map[ToneKind]Tone{
	ToneProfit: {Name: ToneProfit, Background: "#ecfdf5", Accent: "#059669"},
	ToneLoss:   {Name: ToneLoss, Background: "#fef2f2", Accent: "#dc2626"},
}

// ToneFor picks the treatment for a value: non-negative is profit, negative is loss.
func ToneFor(value float64) Tone {
	if finite(value) < 0 {
		return tones[ToneLoss]
	}
	return tones[ToneProfit]
}

// ToneForTrade picks the treatment for one trade, honouring IsProfit when set.
func ToneForTrade(t model.Trade) Tone {
	if t.IsProfit != nil {
		if *t.IsProfit {
			return tones[ToneProfit]
		}
		return tones[ToneLoss]
	}
	return ToneFor(SignedPnL(t))
}
