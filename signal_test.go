package activity

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// collect reads n values off the subscription, failing the test if they do
// not show up.
func collect(t *testing.T, sub *Subscription, n int) []bool {
	t.Helper()
	got := make([]bool, 0, n)
	timeout := time.After(time.Second)
	for len(got) < n {
		select {
		case v, ok := <-sub.Updates():
			if !ok {
				t.Fatalf("subscription closed after %d of %d values", len(got), n)
			}
			got = append(got, v)
		case <-timeout:
			t.Fatalf("timed out after %d of %d values", len(got), n)
		}
	}
	return got
}

func TestSubscribeDeliversCurrentState(t *testing.T) {
	tr := New()

	sub := tr.Subscribe()
	defer sub.Stop()

	if got := collect(t, sub, 1); got[0] {
		t.Error("expected an idle tracker to deliver false first")
	}

	tr.Begin() // 1
	tr.Begin() // 2

	late := tr.Subscribe()
	defer late.Stop()

	if got := collect(t, late, 1); !got[0] {
		t.Error("expected a late subscriber to immediately see true")
	}
}

func TestSignalSuppressesDuplicates(t *testing.T) {
	tr := New()

	sub := tr.Subscribe()
	defer sub.Stop()

	op1 := tr.Begin() // -> true
	op2 := tr.Begin()
	op3 := tr.Begin()
	op2.End(nil)
	op1.End(nil)
	op3.End(nil)      // -> false
	op4 := tr.Begin() // -> true
	op4.End(nil)      // -> false

	want := []bool{false, true, false, true, false}
	got := collect(t, sub, len(want))
	if !cmp.Equal(got, want) {
		t.Errorf("signal did not match expectations: %s", cmp.Diff(got, want))
	}
}

func TestSignalOrderIsSharedBySubscribers(t *testing.T) {
	tr := New()

	a := tr.Subscribe()
	defer a.Stop()
	b := tr.Subscribe()
	defer b.Stop()

	for i := 0; i < 3; i++ {
		tr.Begin().End(nil)
	}

	want := []bool{false, true, false, true, false, true, false}
	if got := collect(t, a, len(want)); !cmp.Equal(got, want) {
		t.Errorf("first subscriber did not match expectations: %s", cmp.Diff(got, want))
	}
	if got := collect(t, b, len(want)); !cmp.Equal(got, want) {
		t.Errorf("second subscriber did not match expectations: %s", cmp.Diff(got, want))
	}
}

func TestSlowSubscriberDoesNotBlockTheTracker(t *testing.T) {
	tr := New()

	slow := tr.Subscribe()
	defer slow.Stop()

	sub := tr.Subscribe()
	defer sub.Stop()

	// nobody reads slow; the tracker and other subscribers keep moving
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 2; i++ {
			tr.Begin().End(nil)
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tracker blocked on an unread subscriber")
	}

	want := []bool{false, true, false, true, false}
	if got := collect(t, sub, len(want)); !cmp.Equal(got, want) {
		t.Errorf("signal did not match expectations: %s", cmp.Diff(got, want))
	}
}

func TestSubscriptionStop(t *testing.T) {
	tr := New()

	sub := tr.Subscribe()
	collect(t, sub, 1)
	sub.Stop()
	sub.Stop() // stopping twice is fine

	select {
	case _, ok := <-sub.Updates():
		if ok {
			t.Error("expected the channel to close after Stop")
		}
	case <-time.After(time.Second):
		t.Fatal("channel never closed after Stop")
	}

	// a stopped subscription no longer hears from the tracker
	tr.Begin()
}

func TestTrackerStop(t *testing.T) {
	tr := New()

	a := tr.Subscribe()
	b := tr.Subscribe()

	tr.Stop()
	tr.Stop() // stopping twice is fine

	for _, sub := range []*Subscription{a, b} {
		timeout := time.After(time.Second)
		for closed := false; !closed; {
			select {
			case _, ok := <-sub.Updates():
				closed = !ok
			case <-timeout:
				t.Fatal("channel never closed after tracker Stop")
			}
		}
	}

	// counting still works after Stop so in-flight work can drain
	op := tr.Begin()
	if got := tr.NumActive(); got != 1 {
		t.Errorf("expected 1 in flight after Stop, got %d", got)
	}
	op.End(nil)

	// subscribing after Stop hands back a closed channel
	late := tr.Subscribe()
	select {
	case _, ok := <-late.Updates():
		if ok {
			t.Error("expected a closed channel from a stopped tracker")
		}
	case <-time.After(time.Second):
		t.Fatal("channel from a stopped tracker never closed")
	}
}
