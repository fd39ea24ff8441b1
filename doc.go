/*
Package activity provides a reference-counting tracker for in-flight
asynchronous operations and a single deduplicated boolean signal derived from
it. It exists so application code can answer "is anything still loading?"
without hand-tracking every concurrent request.

A Tracker counts operations as they start and end. Whenever the count moves
between zero and non-zero, every subscriber is handed the new state:

    t := activity.New()

    sub := t.Subscribe()
    defer sub.Stop()
    go func() {
        for active := range sub.Updates() {
            spinner.SetVisible(active)
        }
    }()

The first value delivered on a subscription is always the current state, and
consecutive duplicate values are never delivered.

Plain function calls are tracked with Do:

    err := t.Do(ctx, func(ctx context.Context) error {
        return client.FetchProfile(ctx, id)
    })

Value-producing operations implement the Stream interface and are wrapped
with Track, which leaves the stream's values and errors untouched while
counting it in flight from Start until its terminal outcome:

    // Stream is a lazily started asynchronous operation that delivers zero
    // or more values and then reaches exactly one terminal outcome.
    type Stream interface {
        // Start will begin the operation and return its value channel.
        Start(ctx context.Context) <-chan interface{}
        // Err will contain the operation's failure once the channel closes.
        Err() error
        // Stop will initiate an early teardown of the operation.
        Stop() error
    }

For a chain of dependent steps that should read as one continuous period of
activity, wrap each step with TrackSequential (or run it with DoSequential).
A chain takes a single reference when its first step starts and releases it
when the step marked lastInChain ends, or earlier if any step fails or is
torn down. Callers must mark exactly the final step lastInChain and must
follow every successful intermediate step with a next step, otherwise the
signal stays true forever.

Integrations for net/http handlers, go-kit endpoints and metrics, gRPC
interceptors and OpenCensus stats live in the subpackages.
*/
package activity // import "github.com/NYTimes/activity"
