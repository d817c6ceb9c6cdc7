package gates

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Calendar checks an economic-calendar feed for imminent high-impact events.
// Any network or parse failure is treated as "no blackout" — the gate fails
// open on purpose so a dead calendar API never silences the scanner.
type Calendar struct {
	url    string
	window time.Duration
	client *http.Client
	log    zerolog.Logger
}

type calendarEvent struct {
	Title   string `json:"title"`
	Country string `json:"country"`
	Date    string `json:"date"`
	Impact  string `json:"impact"`
}

// NewCalendar builds a calendar gate with a bounded request timeout.
func NewCalendar(url string, window, timeout time.Duration, log zerolog.Logger) *Calendar {
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &Calendar{
		url:    url,
		window: window,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// HighImpactNews reports whether any high-impact event is scheduled within
// [now, now+window], boundaries inclusive.
func (c *Calendar) HighImpactNews(ctx context.Context, now time.Time) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		c.log.Warn().Err(err).Msg("calendar request build failed")
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("calendar fetch failed, assuming no blackout")
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Msg("calendar fetch failed, assuming no blackout")
		return false
	}

	var events []calendarEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		c.log.Warn().Err(err).Msg("calendar decode failed, assuming no blackout")
		return false
	}

	for _, e := range events {
		if e.Impact != "High" || e.Date == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, e.Date)
		if err != nil {
			continue
		}
		diff := ts.Sub(now)
		if diff >= 0 && diff <= c.window {
			c.log.Info().Str("event", e.Title).Str("country", e.Country).Time("at", ts).Msg("high-impact news blackout")
			return true
		}
	}
	return false
}
