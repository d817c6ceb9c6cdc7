package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ikickm2025/futures-alert-bot/internal/signal"
)

// Sheets posts the machine-readable risk/size row to a spreadsheet webhook
// (an Apps Script endpoint in the usual deployment).
type Sheets struct {
	webhookURL string
	client     *http.Client
}

type sheetRow struct {
	Symbol     string  `json:"symbol"`
	Direction  string  `json:"direction"`
	EntryPrice float64 `json:"entry_price"`
	StopDist   float64 `json:"stop_dist"`
	Contracts  int     `json:"contracts"`
	Risk       float64 `json:"risk"`
	Notes      string  `json:"notes"`
}

// NewSheets builds the sink; an empty webhook URL disables it.
func NewSheets(webhookURL string) *Sheets {
	return &Sheets{webhookURL: webhookURL, client: &http.Client{}}
}

// Name returns the sink label used in logs and metrics.
func (s *Sheets) Name() string { return "sheets" }

// Send posts one structured row. It is a no-op when the webhook is
// unconfigured.
func (s *Sheets) Send(ctx context.Context, alert signal.TradeAlert) error {
	if s == nil || s.webhookURL == "" {
		return nil
	}

	row := sheetRow{
		Symbol:     alert.Symbol,
		Direction:  string(alert.Direction),
		EntryPrice: alert.Entry,
		StopDist:   alert.StopDistance,
		Contracts:  alert.Contracts,
		Risk:       alert.RiskAmount,
		Notes:      alert.Notes,
	}
	body, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("marshal row: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
