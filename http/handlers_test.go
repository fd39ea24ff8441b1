package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/NYTimes/activity"
)

func TestCountedHandler(t *testing.T) {
	tr := activity.New()

	var during int
	h := CountedHandler(tr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = tr.NumActive()
		w.WriteHeader(http.StatusNoContent)
	}))

	if got := tr.NumActive(); got != 0 {
		t.Fatalf("expected wrapping alone to leave 0 in flight, got %d", got)
	}

	r, _ := http.NewRequest("GET", "/things", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected the response to pass through, got status %d", w.Code)
	}
	if during != 1 {
		t.Errorf("expected 1 in flight while the request was served, got %d", during)
	}
	if got := tr.NumActive(); got != 0 {
		t.Errorf("expected 0 in flight after the request, got %d", got)
	}
}

func TestStatusHandler(t *testing.T) {
	tests := []struct {
		name       string
		givenCount int

		want Status
	}{
		{
			name: "idle",
			want: Status{Active: false, Count: 0},
		},
		{
			name:       "two in flight",
			givenCount: 2,
			want:       Status{Active: true, Count: 2},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tr := activity.New()
			for i := 0; i < test.givenCount; i++ {
				tr.Begin()
			}

			r, _ := http.NewRequest("GET", "/activity/status", nil)
			w := httptest.NewRecorder()
			StatusHandler(tr).ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected a JSON content type, got %q", ct)
			}

			var got Status
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("unable to decode response: %s", err)
			}
			if got != test.want {
				t.Errorf("expected %+v, got %+v", test.want, got)
			}
		})
	}
}

func TestRegisterHandlers(t *testing.T) {
	tr := activity.New()
	cfg := setConfigDefaults(Config{})

	mx := mux.NewRouter()
	RegisterHandlers(cfg, tr, mx)

	r, _ := http.NewRequest("GET", cfg.StatusPath, nil)
	w := httptest.NewRecorder()
	mx.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("expected the status handler to be mounted, got %d", w.Code)
	}

	// a plain GET to the stream path should be rejected by the upgrader
	r, _ = http.NewRequest("GET", cfg.StreamPath, nil)
	w = httptest.NewRecorder()
	mx.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected a plain request to the stream path to fail the upgrade, got %d", w.Code)
	}
}
