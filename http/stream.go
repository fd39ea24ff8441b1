package http

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/NYTimes/activity"
)

// Update is a single frame pushed to websocket clients by StreamHandler.
type Update struct {
	Active bool `json:"active"`
}

// StreamHandler will return a handler that upgrades the request to a
// websocket connection and pushes the tracker's activity signal to the
// client as it changes. The first frame is always the current state.
func StreamHandler(cfg Config, t *activity.Tracker) http.Handler {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin(cfg.OriginSuffix),
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			activity.Log.WithField("error", err).Error("unable to upgrade activity stream")
			return
		}
		defer func() {
			if err := ws.Close(); err != nil {
				activity.Log.WithField("error", err).Error("unable to close activity stream")
			}
		}()

		sub := t.Subscribe()
		defer sub.Stop()

		// watch for the client going away
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := ws.NextReader(); err != nil {
					return
				}
			}
		}()

		pings := time.NewTicker(cfg.PingInterval)
		defer pings.Stop()

		for {
			select {
			case active, ok := <-sub.Updates():
				if !ok {
					return
				}
				if err := ws.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout)); err != nil {
					activity.Log.WithField("error", err).Error("unable to set write deadline")
				}
				if err := ws.WriteJSON(Update{Active: active}); err != nil {
					activity.Log.WithField("error", err).Error("unable to write activity update")
					return
				}
			case <-pings.C:
				if err := ws.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout)); err != nil {
					activity.Log.WithField("error", err).Error("unable to set write deadline")
				}
				if err := ws.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	})
}

func checkOrigin(suffix string) func(*http.Request) bool {
	if suffix == "" {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.HasSuffix(u.Hostname(), suffix)
	}
}
