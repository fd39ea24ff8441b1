package activity

import (
	"context"
	"sync"
)

// Stream is a generic interface to encapsulate how we expect asynchronous
// operations to behave: started lazily, delivering zero or more values on a
// channel, then reaching exactly one terminal outcome. A closed channel with
// a nil Err is success; a closed channel with a non-nil Err is failure;
// teardown before the channel closes, via Stop or the start context, is
// cancellation. Streams are single use.
type Stream interface {
	// Start will begin the operation and return its value channel. No work
	// may happen before Start is called.
	Start(ctx context.Context) <-chan interface{}
	// Err will contain the operation's failure, checked after the value
	// channel closes.
	Err() error
	// Stop will initiate an early teardown of the operation.
	Stop() error
}

// trackedStream mirrors an underlying Stream while reporting its lifecycle
// to a Tracker. Values and errors pass through untouched.
type trackedStream struct {
	t    *Tracker
	s    Stream
	seq  bool
	last bool

	mu      sync.Mutex
	started bool
	op      *Op
	out     chan interface{}
}

// Track will wrap s so it counts as one independent in-flight operation on
// t. Wrapping alone has no effect: the count is incremented when the
// returned stream is started and released exactly once when it reaches a
// terminal outcome, whatever that outcome is.
func (t *Tracker) Track(s Stream) Stream {
	return &trackedStream{t: t, s: s}
}

// TrackSequential will wrap s as one step in a chain of dependent
// operations sharing a single in-flight reference, under the same counting
// rules as BeginSequential. Like Track, it has no effect until the returned
// stream is started.
func (t *Tracker) TrackSequential(s Stream, lastInChain bool) Stream {
	return &trackedStream{t: t, s: s, seq: true, last: lastInChain}
}

func (ts *trackedStream) Start(ctx context.Context) <-chan interface{} {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.started {
		return ts.out
	}
	ts.started = true
	if ts.seq {
		ts.op = ts.t.BeginSequential(ts.last)
	} else {
		ts.op = ts.t.Begin()
	}
	in := ts.s.Start(ctx)
	ts.out = make(chan interface{})
	go ts.pipe(ctx, in)
	return ts.out
}

func (ts *trackedStream) Err() error {
	return ts.s.Err()
}

// Stop tears the stream down early. If it was already started this counts
// as a cancellation, releasing the in-flight reference. The reference is
// released before the underlying stream is stopped so the close that
// follows a teardown can never be mistaken for a success.
func (ts *trackedStream) Stop() error {
	ts.mu.Lock()
	op := ts.op
	ts.mu.Unlock()
	if op != nil {
		op.End(context.Canceled)
	}
	return ts.s.Stop()
}

// pipe forwards values until the underlying stream ends or the context is
// done, then reports the terminal outcome. The Op's End guard keeps a close
// racing a cancellation from counting twice.
func (ts *trackedStream) pipe(ctx context.Context, in <-chan interface{}) {
	defer close(ts.out)
	for {
		select {
		case v, ok := <-in:
			if !ok {
				ts.op.End(ts.s.Err())
				return
			}
			select {
			case ts.out <- v:
			case <-ctx.Done():
				ts.op.End(ctx.Err())
				return
			}
		case <-ctx.Done():
			ts.op.End(ctx.Err())
			return
		}
	}
}
