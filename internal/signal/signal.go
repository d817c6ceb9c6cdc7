// Package signal standardizes payloads shared between data ingestion,
// strategy, and notification layers.
package signal

import "time"

// Direction is the side of a proposed trade.
type Direction string

const (
	// Long indicates a buy-side signal.
	Long Direction = "long"
	// Short indicates a sell-side signal.
	Short Direction = "short"
)

// Bar models a single one-minute OHLCV bar.
type Bar struct {
	Ts     time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Signal expresses a directional setup produced by exactly one evaluator per
// scan. It carries the raw entry and protective stop; sizing happens later.
type Signal struct {
	Symbol    string
	Direction Direction
	Strategy  string
	Entry     float64
	Stop      float64
	Reason    string
	Ts        time.Time
}

// TradeAlert is the risk-sized payload dispatched to the notification sinks.
// ID exists for log correlation only; alerts have no identity beyond one scan.
type TradeAlert struct {
	ID           string    `json:"id"`
	Symbol       string    `json:"symbol"`
	Direction    Direction `json:"direction"`
	Strategy     string    `json:"strategy"`
	Entry        float64   `json:"entry_price"`
	StopDistance float64   `json:"stop_dist"`
	Contracts    int       `json:"contracts"`
	RiskAmount   float64   `json:"risk"`
	Notes        string    `json:"notes"`
	Ts           time.Time `json:"ts"`
}

// StopPrice derives the protective stop from entry and stop distance.
func (a TradeAlert) StopPrice() float64 {
	if a.Direction == Short {
		return a.Entry + a.StopDistance
	}
	return a.Entry - a.StopDistance
}
