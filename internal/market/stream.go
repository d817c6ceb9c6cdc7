package market

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/ikickm2025/futures-alert-bot/internal/signal"
)

const defaultStreamURL = "wss://stream.data.alpaca.markets/v1beta3/crypto/us"

// StreamSource keeps a rolling in-memory window of one-minute bars fed by the
// Alpaca market-data websocket. Bars returns a snapshot, so the scan pipeline
// still reads a fresh immutable window each cycle.
type StreamSource struct {
	url      string
	key      string
	secret   string
	symbol   string
	capacity int
	log      zerolog.Logger

	mu   sync.RWMutex
	bars signal.Window
}

type streamMessage struct {
	Type    string    `json:"T"`
	Msg     string    `json:"msg"`
	Symbol  string    `json:"S"`
	Open    float64   `json:"o"`
	High    float64   `json:"h"`
	Low     float64   `json:"l"`
	Close   float64   `json:"c"`
	Volume  float64   `json:"v"`
	BarTime time.Time `json:"t"`
}

type streamRequest struct {
	Action string   `json:"action"`
	Key    string   `json:"key,omitempty"`
	Secret string   `json:"secret,omitempty"`
	Bars   []string `json:"bars,omitempty"`
}

// NewStreamSource builds a websocket-backed source. capacity bounds the
// retained window (bars beyond it are discarded oldest first).
func NewStreamSource(url, key, secret, symbol string, capacity int, log zerolog.Logger) *StreamSource {
	if url == "" {
		url = defaultStreamURL
	}
	if capacity <= 0 {
		capacity = 120
	}
	return &StreamSource{
		url:      url,
		key:      key,
		secret:   secret,
		symbol:   symbol,
		capacity: capacity,
		log:      log,
	}
}

// Bars returns the retained bars within lookback of the newest bar, oldest
// first. The symbol argument must match the subscribed symbol.
func (s *StreamSource) Bars(_ context.Context, symbol string, lookback time.Duration) (signal.Window, error) {
	if symbol != s.symbol {
		return nil, fmt.Errorf("stream subscribed to %s, asked for %s", s.symbol, symbol)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.bars) == 0 {
		return nil, nil
	}
	cutoff := s.bars[len(s.bars)-1].Ts.Add(-lookback)
	start := 0
	for i, b := range s.bars {
		if b.Ts.After(cutoff) {
			start = i
			break
		}
		start = i + 1
	}
	out := make(signal.Window, len(s.bars)-start)
	copy(out, s.bars[start:])
	return out, nil
}

// Run connects and consumes bar messages until the context is canceled,
// reconnecting with capped backoff on failure.
func (s *StreamSource) Run(ctx context.Context) error {
	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.consume(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Warn().Err(err).Msg("bar stream disconnected, retrying")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff = time.Duration(math.Min(float64(maxBackoff), float64(backoff)*1.8))
			continue
		}
		return nil
	}
}

func (s *StreamSource) consume(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.WriteJSON(streamRequest{Action: "auth", Key: s.key, Secret: s.secret}); err != nil {
		return fmt.Errorf("auth write: %w", err)
	}
	if err := conn.WriteJSON(streamRequest{Action: "subscribe", Bars: []string{s.symbol}}); err != nil {
		return fmt.Errorf("subscribe write: %w", err)
	}

	s.log.Info().Str("provider", ProviderStream).Str("symbol", s.symbol).Msg("connected bar stream")

	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	pingCtx, pingCancel := context.WithCancel(ctx)
	defer pingCancel()
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					s.log.Warn().Err(err).Msg("bar stream ping failed")
					return
				}
			case <-pingCtx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var batch []streamMessage
		if err := json.Unmarshal(message, &batch); err != nil {
			s.log.Warn().Err(err).Msg("failed to decode stream message")
			continue
		}
		for _, m := range batch {
			switch m.Type {
			case "b":
				if m.Symbol != s.symbol {
					continue
				}
				conn.SetReadDeadline(time.Now().Add(90 * time.Second))
				s.push(signal.Bar{
					Ts:     m.BarTime,
					Open:   m.Open,
					High:   m.High,
					Low:    m.Low,
					Close:  m.Close,
					Volume: m.Volume,
				})
			case "error":
				return fmt.Errorf("stream error: %s", m.Msg)
			}
		}
	}
}

// push appends a bar, replacing the previous one when the feed re-sends the
// same minute, and trims to capacity.
func (s *StreamSource) push(b signal.Bar) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.bars)
	if n > 0 && s.bars[n-1].Ts.Equal(b.Ts) {
		s.bars[n-1] = b
	} else {
		s.bars = append(s.bars, b)
	}
	if len(s.bars) > s.capacity {
		s.bars = s.bars[len(s.bars)-s.capacity:]
	}
}
