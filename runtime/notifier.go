package runtime

import (
	"context"
	"fmt"
	"forum-lab/contract"
	"forum-lab/domain"
	"forum-lab/infrastructure/storage"
	"forum-lab/observability"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

var _ contract.INotifier = (*Notifier)(nil)

const (
	roomPath  = "room"
	replyPath = "reply"

	excerptLength = 60
)

// Notifier turns a stored post or reply into durable notifications.
// Two independent paths may fire for one reply: the room-wide path for every
// user having notify enabled on the room, and the direct path for the author
// of the parent post. Unless deduplicate is set, a user covered by both
// receives two notifications.
type Notifier struct {
	log           *slog.Logger
	preferences   storage.IPreferenceRepository
	notifications storage.INotificationRepository
	metrics       *observability.Metrics
	deduplicate   bool
	now           func() time.Time
	newID         func() string
}

func NewNotifier(
	log *slog.Logger,
	preferences storage.IPreferenceRepository,
	notifications storage.INotificationRepository,
	metrics *observability.Metrics,
	deduplicate bool,
) *Notifier {
	return &Notifier{
		log:           log,
		preferences:   preferences,
		notifications: notifications,
		metrics:       metrics,
		deduplicate:   deduplicate,
		now:           func() time.Time { return time.Now().UTC() },
		newID:         uuid.NewString,
	}
}

// Notify creates the notifications of one job and returns how many were stored.
// Each recipient is handled on its own: a failure is logged and the loop goes on.
func (n *Notifier) Notify(ctx context.Context, job domain.NotificationJob) int {
	log := n.log.With("room_id", job.Room.ID, "post_id", job.Post.ID, "author_id", job.Author.UserID)
	notified := n.notifyRoom(ctx, log, job)
	created := len(notified)

	if job.IsReply() && n.notifyParentAuthor(ctx, log, job, notified) {
		created++
	}
	return created
}

// notifyRoom creates one notification per room subscriber except the author
// and returns the set of users it reached.
func (n *Notifier) notifyRoom(ctx context.Context, log *slog.Logger, job domain.NotificationJob) map[string]struct{} {
	notified := make(map[string]struct{})

	prefs, err := n.preferences.ListSubscribers(job.Room.ID)
	if err != nil {
		log.Error("Unable to list room subscribers", "error", err)
		n.metrics.NotificationFailed(roomPath)
		return notified
	}

	verb := "posted in"
	if job.IsReply() {
		verb = "replied in"
	}
	message := fmt.Sprintf("%s %s %s", job.Author.Username, verb, job.Room.Name)
	url := job.Room.PostURL(job.Post.ID)

	recipients := lo.Uniq(lo.FilterMap(prefs, func(p domain.NotificationPreference, _ int) (string, bool) {
		return p.UserID, p.Notify && p.UserID != job.Author.UserID
	}))
	for i, userID := range recipients {
		if ctx.Err() != nil {
			log.Warn("Notification fan-out interrupted", "remaining", len(recipients)-i, "error", ctx.Err())
			break
		}
		if err := n.create(userID, message, url); err != nil {
			log.Error("Unable to create notification", "recipient_id", userID, "path", roomPath, "error", err)
			n.metrics.NotificationFailed(roomPath)
			continue
		}
		n.metrics.NotificationCreated(roomPath)
		notified[userID] = struct{}{}
	}
	return notified
}

// notifyParentAuthor tells the parent's author about the reply when they opted in on the room.
func (n *Notifier) notifyParentAuthor(ctx context.Context, log *slog.Logger, job domain.NotificationJob, notified map[string]struct{}) bool {
	parentAuthor := job.Parent.AuthorID
	if parentAuthor == "" || parentAuthor == job.Author.UserID || ctx.Err() != nil {
		return false
	}
	if _, ok := notified[parentAuthor]; ok && n.deduplicate {
		log.Debug("Parent author already notified for this reply", "recipient_id", parentAuthor)
		return false
	}

	pref, err := n.preferences.GetPreference(parentAuthor, job.Room.ID)
	if err != nil {
		log.Error("Unable to read parent author preference", "recipient_id", parentAuthor, "error", err)
		n.metrics.NotificationFailed(replyPath)
		return false
	}
	if !pref.Notify {
		return false
	}

	message := fmt.Sprintf("%s replied to %q", job.Author.Username, excerpt(job.Parent.Content))
	if err = n.create(parentAuthor, message, job.Room.PostURL(job.Post.ID)); err != nil {
		log.Error("Unable to create notification", "recipient_id", parentAuthor, "path", replyPath, "error", err)
		n.metrics.NotificationFailed(replyPath)
		return false
	}
	n.metrics.NotificationCreated(replyPath)
	return true
}

func (n *Notifier) create(userID, message, url string) error {
	return n.notifications.CreateNotification(domain.Notification{
		ID:        n.newID(),
		UserID:    userID,
		Message:   message,
		URL:       url,
		CreatedAt: n.now(),
	})
}

func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLength {
		return content
	}
	return string(runes[:excerptLength]) + "…"
}
