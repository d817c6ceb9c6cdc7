package gates

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/ikickm2025/futures-alert-bot/internal/signal"
)

// NeutralIndex is the midpoint returned when the sentiment feed is down.
const NeutralIndex = 50

// Sentiment fetches the Fear & Greed index (0 extreme fear, 100 extreme
// greed). It is only ever used as a post-hoc veto, never to flip direction.
type Sentiment struct {
	url          string
	fearFloor    int
	greedCeiling int
	client       *http.Client
	log          zerolog.Logger
}

type sentimentResponse struct {
	Data []struct {
		Value string `json:"value"`
	} `json:"data"`
}

// NewSentiment builds the sentiment gate with a bounded request timeout.
func NewSentiment(url string, fearFloor, greedCeiling int, timeout time.Duration, log zerolog.Logger) *Sentiment {
	return &Sentiment{
		url:          url,
		fearFloor:    fearFloor,
		greedCeiling: greedCeiling,
		client:       &http.Client{Timeout: timeout},
		log:          log,
	}
}

// Index returns the current index value, or NeutralIndex on any failure.
func (s *Sentiment) Index(ctx context.Context) int {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return NeutralIndex
	}
	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn().Err(err).Msg("sentiment fetch failed, using neutral")
		return NeutralIndex
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		s.log.Warn().Int("status", resp.StatusCode).Msg("sentiment fetch failed, using neutral")
		return NeutralIndex
	}

	var payload sentimentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || len(payload.Data) == 0 {
		s.log.Warn().Msg("sentiment decode failed, using neutral")
		return NeutralIndex
	}
	value, err := strconv.Atoi(payload.Data[0].Value)
	if err != nil || value < 0 || value > 100 {
		return NeutralIndex
	}
	return value
}

// Vetoed reports whether a signal in the given direction is suppressed at the
// given index: longs below the fear floor, shorts above the greed ceiling.
// Both bounds are exclusive (index == floor or == ceiling passes).
func (s *Sentiment) Vetoed(direction signal.Direction, index int) bool {
	switch direction {
	case signal.Long:
		return index < s.fearFloor
	case signal.Short:
		return index > s.greedCeiling
	default:
		return false
	}
}
