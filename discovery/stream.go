package discovery

import (
	"context"
	"iter"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/muurk/wot-discovery/thing"
)

// Result is one item of a discovery stream: a record or a per-item error
type Result[E thing.List] struct {
	Record *Record[E]
	Err    error
}

// Stream is an unbounded sequence of discovery results backed by one browse
// session. Nothing is fetched until the stream is first consumed. Results
// arrive in fetch completion order, not announcement order.
//
// A Stream has a single consumer. Close releases the browse session and
// cancels any fetch still in flight.
type Stream[E thing.List] struct {
	ctx    context.Context
	cancel context.CancelFunc
	events <-chan Event
	client *http.Client
	logger *zap.Logger

	results chan Result[E]
	done    chan struct{}
	start   sync.Once
	stop    sync.Once
	fetches sync.WaitGroup
}

func newStream[E thing.List](ctx context.Context, cancel context.CancelFunc, events <-chan Event, client *http.Client, logger *zap.Logger) *Stream[E] {
	return &Stream[E]{
		ctx:     ctx,
		cancel:  cancel,
		events:  events,
		client:  client,
		logger:  logger,
		results: make(chan Result[E]),
		done:    make(chan struct{}),
	}
}

// Results returns the channel results are delivered on. The channel is
// closed after Close, after the parent context ends, or when the browse
// session terminates.
func (s *Stream[E]) Results() <-chan Result[E] {
	s.start.Do(func() { go s.run() })
	return s.results
}

// Next blocks until the next result is available.
// It returns ErrStreamClosed once the stream is closed, or ctx's error.
func (s *Stream[E]) Next(ctx context.Context) (Result[E], error) {
	select {
	case r, ok := <-s.Results():
		if !ok {
			return Result[E]{}, ErrStreamClosed
		}
		return r, nil
	case <-ctx.Done():
		return Result[E]{}, ctx.Err()
	}
}

// All returns an iterator over the stream. Breaking out of the loop closes
// the stream.
func (s *Stream[E]) All() iter.Seq2[*Record[E], error] {
	return func(yield func(*Record[E], error) bool) {
		for r := range s.Results() {
			if !yield(r.Record, r.Err) {
				s.Close()
				return
			}
		}
	}
}

// Close ends the browse session, cancels in-flight fetches and waits for the
// stream's goroutines to exit. It is safe to call more than once.
func (s *Stream[E]) Close() {
	s.stop.Do(func() {
		s.cancel()
		s.start.Do(func() { go s.run() })
		<-s.done
	})
}

// run pumps events into fetches until the session or the stream ends
func (s *Stream[E]) run() {
	defer close(s.done)
	defer close(s.results)

	s.logger.Debug("Discovery stream started")

loop:
	for {
		select {
		case <-s.ctx.Done():
			break loop
		case ev, ok := <-s.events:
			if !ok {
				s.logger.Debug("Browse session ended")
				break loop
			}
			s.handle(ev)
		}
	}

	s.fetches.Wait()
	s.logger.Debug("Discovery stream stopped")
}

// handle starts a fetch for resolved announcements and drops everything else
func (s *Stream[E]) handle(ev Event) {
	if ev.Kind != EventResolved || ev.Info == nil {
		s.logger.Debug("Ignoring announcement", zap.Stringer("event", ev.Kind))
		return
	}

	info := ev.Info
	s.logger.Debug("Service resolved",
		zap.String("instance", info.Instance),
		zap.String("hostname", info.HostName),
		zap.Int("port", info.Port),
		zap.Int("addresses", len(info.Addresses)),
	)

	s.fetches.Add(1)
	go func() {
		defer s.fetches.Done()

		rec, err := fetch[E](s.ctx, s.client, info, s.logger)
		if s.ctx.Err() != nil {
			// closed while fetching; the consumer is gone
			return
		}
		if err != nil {
			s.logger.Debug("Discovery failed",
				zap.String("instance", info.Instance),
				zap.Error(err),
			)
		}

		select {
		case s.results <- Result[E]{Record: rec, Err: err}:
		case <-s.ctx.Done():
		}
	}()
}
