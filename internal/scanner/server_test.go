package scanner

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testHandler(t *testing.T, sink *captureSink) http.Handler {
	t.Helper()
	s := testScanner(t, fakeSource{window: breakoutTape(t)}, quietCalendar(t).URL, sentimentAt(t, 50).URL, sink)
	return s.Handler()
}

func TestRootReportsLiveness(t *testing.T) {
	rec := httptest.NewRecorder()
	testHandler(t, &captureSink{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "MNQ/USD") {
		t.Errorf("liveness line should name the symbol: %q", rec.Body.String())
	}
}

func TestTriggerRunsScan(t *testing.T) {
	sink := &captureSink{}
	rec := httptest.NewRecorder()
	testHandler(t, sink).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/trigger", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var result Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if result.Status != StatusAlert {
		t.Fatalf("expected alert status, got %q", result.Status)
	}
	if result.Alert == nil || result.Alert.Strategy != "generic_breakout" {
		t.Errorf("expected breakout alert in response, got %+v", result.Alert)
	}
	if len(sink.alerts) != 1 {
		t.Errorf("expected one dispatched alert, got %d", len(sink.alerts))
	}
}

func TestTriggerRejectsGet(t *testing.T) {
	rec := httptest.NewRecorder()
	testHandler(t, &captureSink{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trigger", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestWebhookSizesAndDispatches(t *testing.T) {
	sink := &captureSink{}
	body := `{"symbol":"MNQ","direction":"short","entry":18020,"stop":18028,"notes":"desk call"}`
	rec := httptest.NewRecorder()
	testHandler(t, sink).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if result.Status != StatusAlert || result.Alert == nil {
		t.Fatalf("expected alert result, got %+v", result)
	}
	alert := *result.Alert
	if alert.Symbol != "MNQ" || alert.Direction != "short" {
		t.Errorf("unexpected alert identity: %+v", alert)
	}
	// 8-point stop at $2/point against $250 risk: 15 contracts.
	if alert.StopDistance != 8 || alert.Contracts != 15 {
		t.Errorf("unexpected sizing: dist=%.2f contracts=%d", alert.StopDistance, alert.Contracts)
	}
	if alert.Notes != "desk call" {
		t.Errorf("expected caller notes preserved, got %q", alert.Notes)
	}
	if len(sink.alerts) != 1 {
		t.Errorf("expected one dispatched alert, got %d", len(sink.alerts))
	}
}

func TestWebhookRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{not json`},
		{"missing symbol", `{"direction":"long","entry":18000,"stop":17995}`},
		{"bad direction", `{"symbol":"MNQ","direction":"sideways","entry":18000,"stop":17995}`},
		{"zero entry", `{"symbol":"MNQ","direction":"long","entry":0,"stop":17995}`},
		{"equal entry and stop", `{"symbol":"MNQ","direction":"long","entry":18000,"stop":18000}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sink := &captureSink{}
			rec := httptest.NewRecorder()
			testHandler(t, sink).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(tc.body)))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("bad error body: %v", err)
			}
			if resp["error"] == "" {
				t.Error("expected an error message in the response")
			}
			if len(sink.alerts) != 0 {
				t.Error("rejected payload must not dispatch")
			}
		})
	}
}
