package activity

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Log is the structured logger used throughout the package. It only speaks
// up when a Tracker is misused, like an operation ending with nothing in
// flight.
var Log = logrus.New()

type (
	// Tracker keeps a count of in-flight operations and derives a boolean
	// activity signal from it: true while at least one operation is in
	// flight, false otherwise. Use New to get a usable Tracker.
	Tracker struct {
		mu      sync.Mutex
		count   int
		subs    map[*Subscription]struct{}
		idle    chan struct{}
		stopped bool
	}

	// Op is a handle for a single tracked operation returned by Begin and
	// BeginSequential. The operation's terminal outcome is reported by
	// calling End exactly once.
	Op struct {
		t            *Tracker
		decOnErrOnly bool
		once         sync.Once
	}
)

// New will return an idle Tracker with no subscribers.
func New() *Tracker {
	idle := make(chan struct{})
	close(idle)
	return &Tracker{
		subs: map[*Subscription]struct{}{},
		idle: idle,
	}
}

// Active reports whether at least one tracked operation is in flight.
func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count > 0
}

// NumActive returns the number of operations currently in flight.
func (t *Tracker) NumActive() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Begin will register the start of an independent operation and increment
// the in-flight count. The returned Op must be finished with End once the
// operation reaches its terminal outcome.
func (t *Tracker) Begin() *Op {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setCount(t.count + 1)
	return &Op{t: t}
}

// BeginSequential will register the start of one step in a chain of
// dependent operations. The whole chain holds a single reference: the count
// is incremented only when the Tracker is idle at the time the step starts,
// and a successful step releases the reference only when it is the last in
// its chain. A failed step always releases it.
//
// Callers must mark exactly the final step of a chain with lastInChain and
// must follow every successful intermediate step with a next step; a chain
// abandoned after an intermediate success keeps the signal true forever.
func (t *Tracker) BeginSequential(lastInChain bool) *Op {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.count == 0 {
		t.setCount(1)
	}
	return &Op{t: t, decOnErrOnly: !lastInChain}
}

// End will report the operation's terminal outcome. A nil err means success;
// any non-nil err, context cancellation included, means the operation did
// not complete. Only the first call has an effect.
func (op *Op) End(err error) {
	op.once.Do(func() {
		if err == nil && op.decOnErrOnly {
			return
		}
		op.t.decrement()
	})
}

// Do will run fn as a single tracked operation, incrementing the in-flight
// count for the duration of the call. It returns fn's error untouched.
func (t *Tracker) Do(ctx context.Context, fn func(context.Context) error) (err error) {
	op := t.Begin()
	defer func() { op.End(err) }()
	return fn(ctx)
}

// DoSequential will run fn as one step in a chain of dependent operations,
// under the same counting rules as BeginSequential. It returns fn's error
// untouched.
func (t *Tracker) DoSequential(ctx context.Context, lastInChain bool, fn func(context.Context) error) (err error) {
	op := t.BeginSequential(lastInChain)
	defer func() { op.End(err) }()
	return fn(ctx)
}

// Wait will block until no operations are in flight, returning right away
// if the Tracker is already idle. If the context ends first, Wait returns
// its error.
func (t *Tracker) Wait(ctx context.Context) error {
	t.mu.Lock()
	idle := t.idle
	t.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop will shut down the signal side of the Tracker, closing the channel
// of every live Subscription. Counting continues to work afterwards so
// callers can drain remaining operations, but no further signal is emitted.
// Stop may be called more than once.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	for s := range t.subs {
		s.close()
		delete(t.subs, s)
	}
}

func (t *Tracker) decrement() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.count == 0 {
		Log.WithField("misuse", "unbalanced_end").Error("activity: operation ended with none in flight")
		return
	}
	t.setCount(t.count - 1)
}

// setCount updates the count and, when the boolean state flips, hands the
// new state to every subscriber. Callers must hold t.mu.
func (t *Tracker) setCount(n int) {
	wasActive := t.count > 0
	t.count = n
	active := n > 0
	switch {
	case active && !wasActive:
		t.idle = make(chan struct{})
	case !active && wasActive:
		close(t.idle)
	default:
		return
	}
	if t.stopped {
		return
	}
	for s := range t.subs {
		s.push(active)
	}
}
