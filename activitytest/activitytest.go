// Package activitytest provides scriptable implementations of the
// activity.Stream interface to help mock out asynchronous operations in
// tests.
package activitytest // import "github.com/NYTimes/activity/activitytest"

import (
	"context"
	"sync"

	"github.com/NYTimes/activity"
)

// TestStream is a simple implementation of activity.Stream meant to help
// mock out any implementations.
type TestStream struct {
	// Values will be delivered on the stream's channel, in order, once the
	// stream has been started.
	Values []interface{}

	// GivenErrError will be returned by the TestStream on Err().
	// Good for testing failure scenarios.
	GivenErrError error

	// GivenStopError will be returned by the TestStream on Stop().
	// Good for testing error scenarios.
	GivenStopError error

	// KeepOpen will hold the stream open after the scripted values have
	// been delivered, until Finish or Stop is called or the start context
	// ends.
	KeepOpen bool

	initOnce   sync.Once
	finishOnce sync.Once
	finish     chan struct{}

	mu  sync.Mutex
	err error
	set bool
}

var _ activity.Stream = &TestStream{}

func (s *TestStream) init() {
	s.initOnce.Do(func() {
		s.finish = make(chan struct{})
	})
}

func (s *TestStream) record(err error) {
	s.mu.Lock()
	if !s.set {
		s.set, s.err = true, err
	}
	s.mu.Unlock()
}

// Start will populate and return the test channel for the stream. With
// KeepOpen set the channel stays open after the scripted values until the
// stream is finished, stopped or the context ends.
func (s *TestStream) Start(ctx context.Context) <-chan interface{} {
	s.init()
	out := make(chan interface{}, len(s.Values))
	for _, v := range s.Values {
		out <- v
	}
	if !s.KeepOpen {
		close(out)
		return out
	}
	go func() {
		defer close(out)
		select {
		case <-ctx.Done():
			s.record(ctx.Err())
		case <-s.finish:
		}
	}()
	return out
}

// Finish will end a KeepOpen stream with the given terminal outcome. Calls
// after the first are no-ops.
func (s *TestStream) Finish(err error) {
	s.init()
	s.record(err)
	s.finishOnce.Do(func() {
		close(s.finish)
	})
}

// Err will contain the error handed to Finish, the start context's error if
// that ended the stream, or GivenErrError.
func (s *TestStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set {
		return s.err
	}
	return s.GivenErrError
}

// Stop will end the stream early and return GivenStopError.
func (s *TestStream) Stop() error {
	s.init()
	s.finishOnce.Do(func() {
		close(s.finish)
	})
	return s.GivenStopError
}
