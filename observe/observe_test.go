package observe

import (
	"testing"
	"time"

	"go.opencensus.io/stats/view"

	"github.com/NYTimes/activity"
)

func lastValue(t *testing.T, name string) (float64, bool) {
	t.Helper()
	rows, err := view.RetrieveData(name)
	if err != nil {
		t.Fatalf("unable to retrieve view data: %s", err)
	}
	if len(rows) == 0 {
		return 0, false
	}
	data, ok := rows[0].Data.(*view.LastValueData)
	if !ok {
		t.Fatalf("unexpected data type %T", rows[0].Data)
	}
	return data.Value, true
}

func waitForActive(t *testing.T, want float64) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if v, ok := lastValue(t, "activity/active"); ok && v == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("active measure never reached %v", want)
}

func TestExport(t *testing.T) {
	views := Views()
	if err := view.Register(views...); err != nil {
		t.Fatalf("unable to register views: %s", err)
	}
	defer view.Unregister(views...)

	tr := activity.New()
	stop := Export(tr)
	defer stop()

	waitForActive(t, 0)

	op := tr.Begin()
	waitForActive(t, 1)

	op.End(nil)
	waitForActive(t, 0)

	rows, err := view.RetrieveData("activity/transitions")
	if err != nil {
		t.Fatalf("unable to retrieve view data: %s", err)
	}
	if len(rows) == 0 {
		t.Fatal("expected transition data to have been recorded")
	}
	count, ok := rows[0].Data.(*view.CountData)
	if !ok {
		t.Fatalf("unexpected data type %T", rows[0].Data)
	}
	if count.Value != 2 {
		t.Errorf("expected 2 transitions, got %d", count.Value)
	}
}
