package runtime

import (
	"context"
	"forum-lab/contract"
	"forum-lab/domain"
	"forum-lab/domain/event"
	"forum-lab/errors"
	"forum-lab/observability"
	"log/slog"
)

var _ contract.IDispatcher = (*Dispatcher)(nil)

const notificationQueue = "notification_jobs"

// Dispatcher is called once a post or reply is durably stored.
// It pushes the live event to the room viewers and hands the notification
// work to the pool. Neither step can fail the caller.
type Dispatcher struct {
	log      *slog.Logger
	registry contract.IRegistry
	notifier contract.INotifier
	jobs     chan<- domain.NotificationJob
	metrics  *observability.Metrics
}

func NewDispatcher(
	log *slog.Logger,
	registry contract.IRegistry,
	notifier contract.INotifier,
	jobs chan<- domain.NotificationJob,
	metrics *observability.Metrics,
) *Dispatcher {
	return &Dispatcher{log: log, registry: registry, notifier: notifier, jobs: jobs, metrics: metrics}
}

func (d *Dispatcher) OnPostCreated(ctx context.Context, evt domain.PostCreated) {
	d.publish(ctx, evt.Room.ID, event.NewPostCreated(evt.Post, evt.Author))
	d.enqueue(domain.NotificationJob{Room: evt.Room, Post: evt.Post, Author: evt.Author})
}

func (d *Dispatcher) OnReplyCreated(ctx context.Context, evt domain.ReplyCreated) {
	d.publish(ctx, evt.Room.ID, event.NewReplyCreated(evt.Reply, evt.Author))
	parent := evt.Parent
	d.enqueue(domain.NotificationJob{Room: evt.Room, Post: evt.Reply, Author: evt.Author, Parent: &parent})
}

// OnAnnouncement pushes a system message to the viewers. Announcements are
// not subscribed to, so no notification job is queued.
func (d *Dispatcher) OnAnnouncement(ctx context.Context, evt domain.PostCreated) {
	d.publish(ctx, evt.Room.ID, event.NewPostCreated(evt.Post, evt.Author))
}

// NotifySync runs the notification step inline and returns the number of notifications created.
func (d *Dispatcher) NotifySync(ctx context.Context, job domain.NotificationJob) int {
	return d.notifier.Notify(ctx, job)
}

// publish detaches delivery from the request: a client hanging up right after
// posting must not abort the push to the other viewers.
func (d *Dispatcher) publish(ctx context.Context, key domain.ChannelKey, evt event.Envelope) {
	d.registry.Publish(context.WithoutCancel(ctx), key, evt.Name, evt.Payload)
}

// enqueue never blocks the request path: a full queue loses the job.
func (d *Dispatcher) enqueue(job domain.NotificationJob) {
	select {
	case d.jobs <- job:
	default:
		d.log.Warn("Notification job dropped",
			"room_id", job.Room.ID, "post_id", job.Post.ID, "error", errors.ErrQueueFull)
		d.metrics.JobDropped()
	}
}
