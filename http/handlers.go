// Package http provides handlers to expose a Tracker over HTTP: a counting
// middleware for plain http.Handlers, a JSON snapshot of the current state
// and a websocket stream of the activity signal.
package http // import "github.com/NYTimes/activity/http"

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/NYTimes/activity"
)

// Status is the snapshot payload served by StatusHandler.
type Status struct {
	Active bool `json:"active"`
	Count  int  `json:"count"`
}

// CountedHandler will wrap h so every request to it counts as one
// independent in-flight operation on t for as long as the request is being
// served. Put it around the handlers whose work should show up in the
// activity signal.
func CountedHandler(t *activity.Tracker, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		op := t.Begin()
		defer op.End(nil)
		h.ServeHTTP(w, r)
	})
}

// StatusHandler will return a handler that reports the tracker's current
// state as JSON.
func StatusHandler(t *activity.Tracker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count := t.NumActive()
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(Status{
			Active: count > 0,
			Count:  count,
		}); err != nil {
			activity.Log.WithField("error", err).Error("unable to write activity status")
		}
	})
}

// RegisterHandlers will mount the status and stream handlers on the given
// router at the paths in cfg.
func RegisterHandlers(cfg Config, t *activity.Tracker, mx *mux.Router) {
	mx.Handle(cfg.StatusPath, StatusHandler(t)).Methods(http.MethodGet)
	mx.Handle(cfg.StreamPath, StreamHandler(cfg, t)).Methods(http.MethodGet)
}
