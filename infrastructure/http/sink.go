package httpserver

import (
	"context"
	"forum-lab/contract"
	"forum-lab/domain/event"
	"forum-lab/errors"
	"sync"
)

var _ contract.ClosableSink = (*ConnectionSink)(nil)

// ConnectionSink is the subscriber of one event stream or WebSocket connection.
// It is a buffered hand-off between the registry and the connection writer:
// Consume never touches the network, so a slow client only fills its own buffer.
type ConnectionSink struct {
	events    chan event.Envelope
	done      chan struct{}
	closeOnce sync.Once
}

func NewConnectionSink(size int) *ConnectionSink {
	if size < 1 {
		size = 1
	}
	return &ConnectionSink{events: make(chan event.Envelope, size), done: make(chan struct{})}
}

func (s *ConnectionSink) Consume(ctx context.Context, e event.Envelope) error {
	select {
	case <-s.done:
		return errors.ErrSubscriberClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	select {
	case s.events <- e:
		return nil
	default:
		return errors.ErrSubscriberBacklogged
	}
}

// Close marks the subscriber as gone. It is called by the handler when the
// client leaves and by the registry when a delivery fails; later deliveries
// fail with ErrSubscriberClosed.
func (s *ConnectionSink) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Done is closed once the sink is closed; the connection writer must then hang up.
func (s *ConnectionSink) Done() <-chan struct{} {
	return s.done
}

// Events is drained by the connection writer.
func (s *ConnectionSink) Events() <-chan event.Envelope {
	return s.events
}
