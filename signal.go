package activity

import "sync"

// Subscription is one subscriber's view of a Tracker's activity signal.
// Values arrive on the Updates channel in the order the state changes
// happened, with consecutive duplicates suppressed. The first value is
// always the Tracker's state at the time Subscribe was called.
type Subscription struct {
	t       *Tracker
	updates chan bool
	wake    chan struct{}
	done    chan struct{}

	mu      sync.Mutex
	queue   []bool
	stopped bool
}

// Subscribe will register a new subscriber and immediately queue the current
// state as its first value. Subscribers that are done listening must call
// Stop to release the subscription. Subscribing to a stopped Tracker returns
// a Subscription whose channel is already closed.
func (t *Tracker) Subscribe() *Subscription {
	s := &Subscription{
		t:       t,
		updates: make(chan bool),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go s.flush()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		s.close()
		return s
	}
	t.subs[s] = struct{}{}
	s.push(t.count > 0)
	return s
}

// Updates returns the channel the activity signal is delivered on. The
// channel is closed when the Subscription is stopped or the Tracker shuts
// down.
func (s *Subscription) Updates() <-chan bool {
	return s.updates
}

// Stop will detach the Subscription from its Tracker and close the Updates
// channel. It may be called more than once.
func (s *Subscription) Stop() {
	s.t.unsubscribe(s)
	s.close()
}

func (t *Tracker) unsubscribe(s *Subscription) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.subs, s)
}

// push queues a value for delivery. The Tracker's lock serializes callers,
// so every subscriber sees transitions in the order they happened. Delivery
// itself is handled by the flush goroutine: a slow subscriber never blocks
// the Tracker or its other subscribers.
func (s *Subscription) push(v bool) {
	s.mu.Lock()
	s.queue = append(s.queue, v)
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	close(s.done)
}

// flush drains the queue into the updates channel in order, blocking on the
// subscriber until each value is consumed.
func (s *Subscription) flush() {
	for {
		s.mu.Lock()
		var (
			v  bool
			ok bool
		)
		if len(s.queue) > 0 {
			v, ok = s.queue[0], true
			s.queue = s.queue[1:]
		}
		s.mu.Unlock()

		if !ok {
			select {
			case <-s.wake:
				continue
			case <-s.done:
				close(s.updates)
				return
			}
		}

		select {
		case s.updates <- v:
		case <-s.done:
			close(s.updates)
			return
		}
	}
}
