package runtime

import (
	"context"
	"forum-lab/contract"
	"forum-lab/domain"
	"forum-lab/domain/event"
	"forum-lab/errors"
	"forum-lab/observability"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"
)

var _ contract.IRegistry = (*Registry)(nil)

type channel struct {
	subscribers []contract.EventSink // registration order
}

// Registry keeps, for each channel key, the live subscribers interested in its events.
// A channel exists only while it has subscribers, and a subscriber belongs to one channel at most.
// Registry is safe for concurrent use by connection handlers and publishers.
type Registry struct {
	mu              sync.RWMutex
	log             *slog.Logger
	channels        map[domain.ChannelKey]*channel
	owners          map[contract.EventSink]domain.ChannelKey
	deliveryTimeout time.Duration
	metrics         *observability.Metrics
}

func NewRegistry(log *slog.Logger, deliveryTimeout time.Duration, metrics *observability.Metrics) *Registry {
	return &Registry{
		log:             log,
		channels:        make(map[domain.ChannelKey]*channel),
		owners:          make(map[contract.EventSink]domain.ChannelKey),
		deliveryTimeout: deliveryTimeout,
		metrics:         metrics,
	}
}

// Subscribe registers a sink under the given channel, creating the channel on the fly.
// Registering the same sink twice is a no-op. A sink already registered under
// another channel is moved.
func (r *Registry) Subscribe(key domain.ChannelKey, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.owners[sink]; ok {
		if current == key {
			return
		}
		r.removeLocked(current, sink)
	}

	ch, ok := r.channels[key]
	if !ok {
		ch = &channel{}
		r.channels[key] = ch
	}
	ch.subscribers = append(ch.subscribers, sink)
	r.owners[sink] = key
	r.refreshLocked()

	r.log.Debug("Subscriber added", "room_id", key, "total", len(ch.subscribers))
}

// Unsubscribe removes the sink from the channel and drops the channel once empty.
// Unknown channels or sinks are ignored, so it is safe to call more than once.
func (r *Registry) Unsubscribe(key domain.ChannelKey, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.removeLocked(key, sink) {
		r.refreshLocked()
		r.log.Debug("Subscriber removed", "room_id", key, "remaining", r.countLocked(key))
	}
}

// Publish delivers the event to every sink registered at call time.
// Each sink is served in its own goroutine bounded by the delivery timeout, and Publish
// returns once all of them are done, which keeps consecutive publishes ordered per sink.
// A sink whose delivery fails is evicted; the failure never reaches the caller.
func (r *Registry) Publish(ctx context.Context, key domain.ChannelKey, name event.Name, payload any) {
	sinks := r.Subscribers(key)
	if len(sinks) == 0 {
		r.log.Debug("No subscriber for channel", "room_id", key, "event", name)
		return
	}

	evt := event.New(name, payload)
	r.metrics.EventPublished(string(name))

	errs := r.deliver(ctx, evt, sinks)
	if ctx.Err() != nil {
		// Deliveries aborted by the caller say nothing about the subscribers.
		return
	}
	for i, err := range errs {
		if err == nil {
			continue
		}
		r.log.Warn("Delivery failed, removing subscriber",
			"room_id", key, "event", name, "error", err)
		r.metrics.DeliveryFailed(string(name))
		r.evict(key, sinks[i])
	}
}

// evict unsubscribes a sink whose delivery failed and, when it owns a
// connection, closes it so that the client is not left on a silent stream.
func (r *Registry) evict(key domain.ChannelKey, sink contract.EventSink) {
	r.Unsubscribe(key, sink)
	if closable, ok := sink.(contract.ClosableSink); ok {
		closable.Close()
	}
}

// CloseChannel evicts every subscriber of a channel, closing the connections
// they own, and returns how many were evicted.
func (r *Registry) CloseChannel(key domain.ChannelKey) int {
	sinks := r.Subscribers(key)
	for _, sink := range sinks {
		r.evict(key, sink)
	}
	if len(sinks) > 0 {
		r.log.Info("Channel closed", "room_id", key, "evicted", len(sinks))
	}
	return len(sinks)
}

func (r *Registry) deliver(ctx context.Context, evt event.Envelope, sinks []contract.EventSink) []error {
	errs := make([]error, len(sinks))
	var wg sync.WaitGroup
	for i, sink := range sinks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					errs[i] = errors.ErrSubscriberClosed
				}
			}()
			sinkCtx, cancel := context.WithTimeout(ctx, r.deliveryTimeout)
			defer cancel()
			errs[i] = sink.Consume(sinkCtx, evt)
		}()
	}
	wg.Wait()
	return errs
}

// Channels lists the keys having at least one subscriber, sorted.
func (r *Registry) Channels() []domain.ChannelKey {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.channels))
}

// Subscribers returns a snapshot of the channel's sinks in registration order.
func (r *Registry) Subscribers(key domain.ChannelKey) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.channels[key]
	if !ok {
		return nil
	}
	return slices.Clone(ch.subscribers)
}

// Len is the number of live subscribers across all channels.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.owners)
}

func (r *Registry) removeLocked(key domain.ChannelKey, sink contract.EventSink) bool {
	ch, ok := r.channels[key]
	if !ok {
		return false
	}
	idx := slices.Index(ch.subscribers, sink)
	if idx < 0 {
		return false
	}
	ch.subscribers = slices.Delete(ch.subscribers, idx, idx+1)
	delete(r.owners, sink)

	// If no one is left in the channel, remove the entry entirely
	if len(ch.subscribers) == 0 {
		delete(r.channels, key)
	}
	return true
}

func (r *Registry) countLocked(key domain.ChannelKey) int {
	if ch, ok := r.channels[key]; ok {
		return len(ch.subscribers)
	}
	return 0
}

func (r *Registry) refreshLocked() {
	r.metrics.SetLive(len(r.channels), len(r.owners))
}
