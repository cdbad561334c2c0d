// Package runtime handles live delivery and the background fan-out of the forum.
// It owns the channel registry, the notification pool and the supervised workers.
package runtime

import (
	"context"
	stderrors "errors"
	"fmt"
	"forum-lab/contract"
	"forum-lab/domain"
	"forum-lab/domain/search"
	"forum-lab/errors"
	"forum-lab/infrastructure/storage"
	"forum-lab/moderation"
	"forum-lab/observability"
	"forum-lab/runtime/workers"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"
	"github.com/google/uuid"
)

type Settings struct {
	NumberOfWorkers     int
	BufferSize          int
	NotificationTimeout time.Duration
	HeartbeatInterval   time.Duration
	MetricInterval      time.Duration
	MaxContentLength    int
}

type Orchestrator struct {
	mu         sync.Mutex
	log        *slog.Logger
	settings   Settings
	supervisor contract.ISupervisor
	registry   *Registry
	notifier   contract.INotifier
	dispatcher *Dispatcher
	monitoring *observability.MonitoringManager
	jobs       chan domain.NotificationJob
	posts      storage.IPostRepository
	rooms      storage.IRoomRepository
	users      storage.IUserRepository
	filter     *moderation.WordFilter
	started    bool
	now        func() time.Time
	newID      func() string
}

func NewOrchestrator(
	log *slog.Logger,
	settings Settings,
	supervisor contract.ISupervisor,
	registry *Registry,
	notifier contract.INotifier,
	monitoring *observability.MonitoringManager,
	posts storage.IPostRepository,
	rooms storage.IRoomRepository,
	users storage.IUserRepository,
	filter *moderation.WordFilter,
) *Orchestrator {
	jobs := make(chan domain.NotificationJob, settings.BufferSize)
	return &Orchestrator{
		log:        log,
		settings:   settings,
		supervisor: supervisor,
		registry:   registry,
		notifier:   notifier,
		dispatcher: NewDispatcher(log, registry, notifier, jobs, monitoring.Metrics()),
		monitoring: monitoring,
		jobs:       jobs,
		posts:      posts,
		rooms:      rooms,
		users:      users,
		filter:     filter,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
}

func (o *Orchestrator) Registry() *Registry {
	return o.registry
}

func (o *Orchestrator) Dispatcher() *Dispatcher {
	return o.dispatcher
}

// RegisterSubscriber attaches a live connection to the channel of a room.
func (o *Orchestrator) RegisterSubscriber(key domain.ChannelKey, sink contract.EventSink) {
	o.registry.Subscribe(key, sink)
}

// UnregisterSubscriber detaches a live connection; safe to call more than once.
func (o *Orchestrator) UnregisterSubscriber(key domain.ChannelKey, sink contract.EventSink) {
	o.registry.Unsubscribe(key, sink)
}

// CreatePost validates and stores a top-level post, then hands it to the dispatcher.
// Once the post is stored the call succeeds whatever happens to the fan-out.
func (o *Orchestrator) CreatePost(ctx context.Context, cmd domain.CreatePostCommand) (domain.Post, error) {
	room, author, err := o.prepare(cmd)
	if err != nil {
		return domain.Post{}, err
	}

	post := o.newPost(cmd, "")
	if err = o.posts.StorePost(post); err != nil {
		return domain.Post{}, fmt.Errorf("store post: %w", err)
	}

	o.dispatcher.OnPostCreated(ctx, domain.PostCreated{Room: room, Post: post, Author: author})
	return post, nil
}

// CreateReply does the same for a reply; the parent must belong to the same room.
func (o *Orchestrator) CreateReply(ctx context.Context, cmd domain.CreateReplyCommand) (domain.Post, error) {
	if strings.TrimSpace(cmd.ParentID) == "" {
		return domain.Post{}, errors.ErrParentRequired
	}
	room, author, err := o.prepare(cmd.CreatePostCommand)
	if err != nil {
		return domain.Post{}, err
	}

	parent, err := o.posts.GetPost(cmd.ParentID)
	if stderrors.Is(err, errors.ErrPostNotFound) {
		return domain.Post{}, errors.ErrParentNotFound
	}
	if err != nil {
		return domain.Post{}, fmt.Errorf("get parent: %w", err)
	}
	if parent.Room != room.ID {
		return domain.Post{}, errors.ErrParentNotFound
	}

	reply := o.newPost(cmd.CreatePostCommand, parent.ID)
	if err = o.posts.StorePost(reply); err != nil {
		return domain.Post{}, fmt.Errorf("store reply: %w", err)
	}

	o.dispatcher.OnReplyCreated(ctx, domain.ReplyCreated{Room: room, Reply: reply, Parent: parent, Author: author})
	return reply, nil
}

// Announce stores a system message written on behalf of author and pushes it
// to the viewers. It skips the content checks and the notification fan-out.
func (o *Orchestrator) Announce(ctx context.Context, room domain.Room, author domain.User, content string) (domain.Post, error) {
	post := o.newPost(domain.CreatePostCommand{Room: room.ID, UserID: author.ID, Content: content}, "")
	if err := o.posts.StorePost(post); err != nil {
		return domain.Post{}, fmt.Errorf("store announcement: %w", err)
	}
	o.dispatcher.OnAnnouncement(ctx, domain.PostCreated{Room: room, Post: post, Author: author.Summary()})
	return post, nil
}

// CloseRoom disconnects every live viewer of a room that is going away.
func (o *Orchestrator) CloseRoom(key domain.ChannelKey) int {
	return o.registry.CloseChannel(key)
}

func (o *Orchestrator) GetPosts(cmd domain.GetPostsCommand) ([]domain.Post, *string, error) {
	if _, err := o.rooms.GetRoom(cmd.Room); err != nil {
		return nil, nil, err
	}
	return o.posts.GetPosts(cmd.Room, cmd.Cursor)
}

func (o *Orchestrator) SearchPosts(ctx context.Context, query search.Query) ([]domain.Post, uint64, error) {
	if _, err := o.rooms.GetRoom(domain.ChannelKey(query.RoomID)); err != nil {
		return nil, 0, err
	}
	return o.posts.SearchPosts(ctx, query)
}

// prepare runs the checks shared by posts and replies and resolves room and author.
func (o *Orchestrator) prepare(cmd domain.CreatePostCommand) (domain.Room, domain.Author, error) {
	if err := o.validateContent(cmd.Content); err != nil {
		return domain.Room{}, domain.Author{}, err
	}
	room, err := o.rooms.GetRoom(cmd.Room)
	if err != nil {
		return domain.Room{}, domain.Author{}, err
	}
	user, err := o.users.GetUserByID(cmd.UserID)
	if err != nil {
		return domain.Room{}, domain.Author{}, fmt.Errorf("%w: %v", errors.ErrUnauthenticated, err)
	}
	return room, user.Summary(), nil
}

func (o *Orchestrator) validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content is empty", errors.ErrInvalidRequest)
	}
	if o.settings.MaxContentLength > 0 && utf8.RuneCountInString(content) > o.settings.MaxContentLength {
		return errors.ErrContentTooLong
	}
	if o.filter != nil {
		if _, words := o.filter.Censor(content); len(words) > 0 {
			o.log.Debug("Post rejected by word filter", "words", words)
			return errors.ErrBannedWords
		}
	}
	return nil
}

func (o *Orchestrator) newPost(cmd domain.CreatePostCommand, parentID string) domain.Post {
	createdAt := cmd.CreatedAt
	if createdAt.IsZero() {
		createdAt = o.now()
	}
	return domain.Post{
		ID:           o.newID(),
		Room:         cmd.Room,
		AuthorID:     cmd.UserID,
		ParentID:     parentID,
		Content:      cmd.Content,
		ImageURL:     cmd.ImageURL,
		ThumbnailURL: cmd.ThumbnailURL,
		Lang:         detectLang(cmd.Content),
		CreatedAt:    createdAt,
	}
}

// detectLang returns the ISO 639-1 code of the content, or "" when unsure.
func detectLang(content string) string {
	info := whatlanggo.Detect(content)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}

// Start registers the supervised workers and blocks until the context is
// cancelled or Stop is called.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	if o.started {
		o.mu.Unlock()
		return fmt.Errorf("orchestrator already started")
	}
	o.started = true
	o.supervisor.Add(o.prepareWorkers()...)
	o.mu.Unlock()

	o.log.Info("Starting orchestrator and all supervised workers",
		"notification_workers", o.settings.NumberOfWorkers)
	o.supervisor.Run(ctx)
	return nil
}

func (o *Orchestrator) prepareWorkers() []contract.Worker {
	var res []contract.Worker
	for range o.settings.NumberOfWorkers {
		res = append(res, workers.NewNotificationWorker(o.log, o.jobs, o.notifier, o.settings.NotificationTimeout))
	}
	res = append(res,
		workers.NewHeartbeatWorker(o.log, o.registry, o.monitoring, o.settings.HeartbeatInterval),
		workers.NewChannelCapacityWorker(o.log, []workers.NamedChannel{
			{Name: notificationQueue, Channel: o.jobs},
		}, o.monitoring, o.settings.MetricInterval),
		workers.NewHealthMonitoringWorker(o.log, o.monitoring, o.settings.MetricInterval),
	)
	return res
}

// Stop cancels the supervised context. Pending notification jobs are dropped.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}
