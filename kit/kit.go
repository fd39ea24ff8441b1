// Package kit integrates activity tracking with go-kit: an endpoint
// middleware that counts invocations in flight and a metrics hookup that
// mirrors the tracker's signal into a go-kit metrics provider.
package kit // import "github.com/NYTimes/activity/kit"

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/metrics/provider"

	"github.com/NYTimes/activity"
)

// Middleware returns an endpoint middleware that counts every invocation of
// the wrapped endpoint as one independent in-flight operation on t. Wrapping
// an endpoint alone has no effect on the tracker.
func Middleware(t *activity.Tracker) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (interface{}, error) {
			op := t.Begin()
			response, err := next(ctx, request)
			op.End(err)
			return response, err
		}
	}
}

// Instrument will keep two metrics in step with the tracker's signal: an
// "activity_active" gauge holding 0 or 1, and an "activity_transitions"
// counter incremented on every change after the initial state. The returned
// stop func detaches the instrumentation; stopping the provider is left to
// the caller.
func Instrument(t *activity.Tracker, p provider.Provider) func() {
	var (
		active      = p.NewGauge("activity_active")
		transitions = p.NewCounter("activity_transitions")
	)
	sub := t.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		seeded := false
		for v := range sub.Updates() {
			if seeded {
				transitions.Add(1)
			}
			seeded = true
			if v {
				active.Set(1)
			} else {
				active.Set(0)
			}
		}
	}()
	return func() {
		sub.Stop()
		<-done
	}
}
