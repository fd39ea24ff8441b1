// Package observe exports a tracker's activity signal as OpenCensus stats
// so it can be shipped wherever a stats exporter is registered.
package observe // import "github.com/NYTimes/activity/observe"

import (
	"context"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"

	"github.com/NYTimes/activity"
)

var (
	// ActiveMeasure holds 1 while any tracked operation is in flight and 0
	// while the tracker is idle.
	ActiveMeasure = stats.Int64(
		"activity/active",
		"Whether any tracked operation is in flight",
		stats.UnitDimensionless)

	// TransitionsMeasure counts changes of the activity signal.
	TransitionsMeasure = stats.Int64(
		"activity/transitions",
		"Number of activity signal transitions",
		stats.UnitDimensionless)
)

// Views returns the standard views over this package's measures, ready to
// hand to view.Register.
func Views() []*view.View {
	return []*view.View{
		{
			Name:        "activity/active",
			Description: "Whether any tracked operation is in flight",
			Measure:     ActiveMeasure,
			Aggregation: view.LastValue(),
		},
		{
			Name:        "activity/transitions",
			Description: "Number of activity signal transitions",
			Measure:     TransitionsMeasure,
			Aggregation: view.Count(),
		},
	}
}

// Export will subscribe to t and record this package's measures on every
// change of the activity signal until the returned stop func is called.
func Export(t *activity.Tracker) func() {
	sub := t.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		ctx := context.Background()
		seeded := false
		for v := range sub.Updates() {
			if seeded {
				stats.Record(ctx, TransitionsMeasure.M(1))
			}
			seeded = true
			var active int64
			if v {
				active = 1
			}
			stats.Record(ctx, ActiveMeasure.M(active))
		}
	}()
	return func() {
		sub.Stop()
		<-done
	}
}
