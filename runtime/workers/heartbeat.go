package workers

import (
	"context"
	"forum-lab/contract"
	"forum-lab/domain/event"
	"forum-lab/observability"
	"log/slog"
	"time"
)

var _ contract.Worker = (*HeartbeatWorker)(nil)

// HeartbeatWorker pings every live channel at a fixed interval.
// A subscriber whose connection died without the transport noticing fails
// the delivery and is evicted by the registry.
type HeartbeatWorker struct {
	log        *slog.Logger
	registry   contract.IRegistry
	monitoring *observability.MonitoringManager
	interval   time.Duration
}

func NewHeartbeatWorker(
	log *slog.Logger,
	registry contract.IRegistry,
	monitoring *observability.MonitoringManager,
	interval time.Duration,
) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, registry: registry, monitoring: monitoring, interval: interval}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case at := <-ticker.C:
			w.sweep(ctx, at.UTC())
		}
	}
}

func (w *HeartbeatWorker) sweep(ctx context.Context, at time.Time) {
	channels := w.registry.Channels()
	for _, key := range channels {
		if ctx.Err() != nil {
			return
		}
		w.registry.Publish(ctx, key, event.Ping, event.PingPayload{At: at})
	}
	if w.monitoring != nil {
		w.monitoring.UpdateLive(len(w.registry.Channels()), w.registry.Len())
	}
	w.log.Debug("Heartbeat sent", "channels", len(channels))
}
