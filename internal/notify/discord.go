package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ikickm2025/futures-alert-bot/internal/signal"
)

const (
	colorLong  = 0x00ff00
	colorShort = 0xff0000
)

// Discord posts the human-readable alert as a single webhook embed.
type Discord struct {
	webhookURL string
	client     *http.Client
}

type discordEmbed struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Color       int           `json:"color"`
	Footer      discordFooter `json:"footer"`
}

type discordFooter struct {
	Text string `json:"text"`
}

type discordPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

// NewDiscord builds the sink; an empty webhook URL disables it.
func NewDiscord(webhookURL string) *Discord {
	return &Discord{webhookURL: webhookURL, client: &http.Client{}}
}

// Name returns the sink label used in logs and metrics.
func (d *Discord) Name() string { return "discord" }

// Send posts the embed. It is a no-op when the webhook is unconfigured.
func (d *Discord) Send(ctx context.Context, alert signal.TradeAlert) error {
	if d == nil || d.webhookURL == "" {
		return nil
	}

	title := fmt.Sprintf("🟢 LONG %s", alert.Symbol)
	color := colorLong
	if alert.Direction == signal.Short {
		title = fmt.Sprintf("🔴 SHORT %s", alert.Symbol)
		color = colorShort
	}
	description := fmt.Sprintf(
		"Entry: %.1f\nStop: %.1f\nStop Dist: %.1f pts\nContracts: %d",
		alert.Entry, alert.StopPrice(), alert.StopDistance, alert.Contracts,
	)
	payload := discordPayload{Embeds: []discordEmbed{{
		Title:       title,
		Description: description,
		Color:       color,
		Footer: discordFooter{Text: fmt.Sprintf(
			"%s • risk $%.2f • volume confirmed", strings.ReplaceAll(alert.Strategy, "_", " "), alert.RiskAmount,
		)},
	}}}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal embed: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
