package workers

import (
	"context"
	"forum-lab/contract"
	"forum-lab/domain"
	"log/slog"
	"time"
)

var _ contract.Worker = (*NotificationWorker)(nil)

// NotificationWorker is one unit of the notification pool.
// Several of them drain the same jobs channel; each job is bounded by timeout.
type NotificationWorker struct {
	log      *slog.Logger
	jobs     <-chan domain.NotificationJob
	notifier contract.INotifier
	timeout  time.Duration
}

func NewNotificationWorker(
	log *slog.Logger,
	jobs <-chan domain.NotificationJob,
	notifier contract.INotifier,
	timeout time.Duration) *NotificationWorker {
	return &NotificationWorker{log: log, jobs: jobs, notifier: notifier, timeout: timeout}
}

func (w *NotificationWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping notification worker")
			return ctx.Err()
		case job, ok := <-w.jobs:
			if !ok {
				w.log.Debug("Notification jobs channel is closed")
				return nil
			}
			w.handle(ctx, job)
		}
	}
}

func (w *NotificationWorker) handle(ctx context.Context, job domain.NotificationJob) {
	jobCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	start := time.Now()
	created := w.notifier.Notify(jobCtx, job)
	w.log.Debug("Notification job done",
		"room_id", job.Room.ID,
		"post_id", job.Post.ID,
		"reply", job.IsReply(),
		"created", created,
		"duration", time.Since(start))
}
