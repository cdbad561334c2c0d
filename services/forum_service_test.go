package services

import (
	"context"
	"forum-lab/domain"
	"forum-lab/domain/event"
	"forum-lab/domain/search"
	"forum-lab/errors"
	"forum-lab/mocks"
	"forum-lab/runtime"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type nopSink struct{ name string }

func (*nopSink) Consume(context.Context, event.Envelope) error { return nil }

type forumFixture struct {
	service       *ForumService
	orchestrator  *runtime.Orchestrator
	rooms         *mocks.MockIRoomRepository
	members       *mocks.MockIMemberRepository
	posts         *mocks.MockIPostRepository
	users         *mocks.MockIUserRepository
	preferences   *mocks.MockIPreferenceRepository
	notifications *mocks.MockINotificationRepository
}

func newForumFixture(t *testing.T) forumFixture {
	ctrl := gomock.NewController(t)
	log := slog.Default()
	f := forumFixture{
		rooms:         mocks.NewMockIRoomRepository(ctrl),
		members:       mocks.NewMockIMemberRepository(ctrl),
		posts:         mocks.NewMockIPostRepository(ctrl),
		users:         mocks.NewMockIUserRepository(ctrl),
		preferences:   mocks.NewMockIPreferenceRepository(ctrl),
		notifications: mocks.NewMockINotificationRepository(ctrl),
	}
	registry := runtime.NewRegistry(log, 50*time.Millisecond, nil)
	notifier := mocks.NewMockINotifier(ctrl)
	f.orchestrator = runtime.NewOrchestrator(log, runtime.Settings{BufferSize: 4, MaxContentLength: 100},
		mocks.NewMockISupervisor(ctrl), registry, notifier, nil, f.posts, f.rooms, f.users, nil)
	f.service = NewForumService(f.orchestrator, f.rooms, f.members, f.preferences, f.posts, f.users, f.notifications)
	return f
}

var (
	lobby   = domain.NewRoom("R1", domain.PublicRoom, "Lobby", "", "admin", time.Now().UTC())
	private = domain.NewRoom("P1", domain.PrivateRoom, "Alice & Bob", "", "alice", time.Now().UTC())
	alice   = domain.User{ID: "alice", Email: "alice@example.com", Username: "Alice"}
	bob     = domain.User{ID: "bob", Email: "bob@example.com", Username: "Bob"}
	admin   = domain.User{ID: "root", Username: "Root", Roles: []string{domain.AdminRole}}
)

func TestForumService_CreateRoom(t *testing.T) {
	req := require.New(t)
	f := newForumFixture(t)

	// Given
	var stored domain.Room
	f.rooms.EXPECT().CreateRoom(gomock.Any()).DoAndReturn(func(room domain.Room) error {
		stored = room
		return nil
	})
	f.members.EXPECT().AddMember(gomock.Any(), "alice", gomock.Any()).Return(nil)

	// When
	room, err := f.service.CreateRoom("alice", domain.PrivateRoom, "  ", "memo")

	// Then
	req.NoError(err)
	req.Equal(stored, room)
	req.NotEmpty(room.ID)
	req.Equal(domain.PrivateRoom, room.Kind)
	req.Equal("Untitled", room.Name)
	req.Equal("alice", room.CreatedBy)
}

func TestForumService_GetRoom_Checks_Kind(t *testing.T) {
	req := require.New(t)
	f := newForumFixture(t)
	f.rooms.EXPECT().GetRoom(private.ID).Return(private, nil).Times(2)
	f.members.EXPECT().IsMember(private.ID, "alice").Return(true, nil)

	room, err := f.service.GetRoom("alice", domain.PrivateRoom, private.ID)
	req.NoError(err)
	req.Equal(private, room)

	// A private conversation is not reachable under /rooms
	_, err = f.service.GetRoom("alice", domain.PublicRoom, private.ID)
	req.ErrorIs(err, errors.ErrRoomNotFound)
}

func TestForumService_SetNotify(t *testing.T) {
	req := require.New(t)
	f := newForumFixture(t)

	// Given
	f.rooms.EXPECT().GetRoom(lobby.ID).Return(lobby, nil)
	f.preferences.EXPECT().
		SetPreference(domain.NotificationPreference{UserID: "alice", Room: lobby.ID, Notify: true}).
		Return(nil)

	// When / Then
	req.NoError(f.service.SetNotify("alice", domain.PublicRoom, lobby.ID, true))
}

func TestForumService_SetNotify_Unknown_Room(t *testing.T) {
	req := require.New(t)
	f := newForumFixture(t)

	f.rooms.EXPECT().GetRoom(domain.ChannelKey("nope")).Return(domain.Room{}, errors.ErrRoomNotFound)
	f.preferences.EXPECT().SetPreference(gomock.Any()).Times(0)

	req.ErrorIs(f.service.SetNotify("alice", domain.PublicRoom, "nope", true), errors.ErrRoomNotFound)
}

func TestForumService_GetNotify(t *testing.T) {
	req := require.New(t)
	f := newForumFixture(t)

	f.preferences.EXPECT().GetPreference("alice", lobby.ID).
		Return(domain.NotificationPreference{UserID: "alice", Room: lobby.ID, Notify: true}, nil)

	notify, err := f.service.GetNotify("alice", lobby.ID)
	req.NoError(err)
	req.True(notify)
}

func TestForumService_CreatePost_Wrong_Kind_Stores_Nothing(t *testing.T) {
	req := require.New(t)
	f := newForumFixture(t)

	// Given a public room addressed as a private conversation
	f.rooms.EXPECT().GetRoom(lobby.ID).Return(lobby, nil)
	f.posts.EXPECT().StorePost(gomock.Any()).Times(0)

	// When
	_, err := f.service.CreatePost(context.Background(), domain.PrivateRoom, domain.CreatePostCommand{
		Room: lobby.ID, UserID: "alice", Content: "hello",
	})

	// Then
	req.ErrorIs(err, errors.ErrRoomNotFound)
}

func TestForumService_CreatePost_Delegates(t *testing.T) {
	req := require.New(t)
	f := newForumFixture(t)

	f.rooms.EXPECT().GetRoom(lobby.ID).Return(lobby, nil).Times(2)
	f.users.EXPECT().GetUserByID("alice").Return(domain.User{ID: "alice", Username: "Alice"}, nil)
	f.posts.EXPECT().StorePost(gomock.Any()).Return(nil)

	post, err := f.service.CreatePost(context.Background(), domain.PublicRoom, domain.CreatePostCommand{
		Room: lobby.ID, UserID: "alice", Content: "hello",
	})

	req.NoError(err)
	req.Equal("hello", post.Content)
	req.Equal(lobby.ID, post.Room)
}

func TestForumService_Join_And_Leave(t *testing.T) {
	req := require.New(t)
	f := newForumFixture(t)
	sink := &nopSink{name: "alice"}

	f.rooms.EXPECT().GetRoom(lobby.ID).Return(lobby, nil)
	f.rooms.EXPECT().GetRoom(domain.ChannelKey("nope")).Return(domain.Room{}, errors.ErrRoomNotFound)

	req.NoError(f.service.JoinRoom("alice", domain.PublicRoom, lobby.ID, sink))
	req.Len(f.orchestrator.Registry().Subscribers(lobby.ID), 1)

	req.ErrorIs(f.service.JoinRoom("bob", domain.PublicRoom, "nope", &nopSink{name: "bob"}), errors.ErrRoomNotFound)
	req.Equal(1, f.orchestrator.Registry().Len())

	f.service.LeaveRoom(lobby.ID, sink)
	f.service.LeaveRoom(lobby.ID, sink)
	req.Empty(f.orchestrator.Registry().Channels())
}

func TestForumService_SearchPosts_Parses_Query(t *testing.T) {
	req := require.New(t)
	f := newForumFixture(t)

	f.rooms.EXPECT().GetRoom(lobby.ID).Return(lobby, nil).Times(2)
	var query search.Query
	f.posts.EXPECT().SearchPosts(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q search.Query) ([]domain.Post, uint64, error) {
			query = q
			return []domain.Post{{ID: "p1"}}, 1, nil
		})

	posts, total, err := f.service.SearchPosts(context.Background(), "alice", domain.PublicRoom, lobby.ID, "badger --limit 5")
	req.NoError(err)
	req.Equal(uint64(1), total)
	req.Len(posts, 1)
	req.Equal("badger", query.Terms)
	req.Equal(5, query.Limit)
	req.Equal(string(lobby.ID), query.RoomID)
}

func TestForumService_Private_Access(t *testing.T) {
	tests := []struct {
		name    string
		user    domain.User
		member  bool
		wantErr error
	}{
		{"member", bob, true, nil},
		{"outsider", bob, false, errors.ErrForbidden},
		{"admin", admin, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			f := newForumFixture(t)
			f.rooms.EXPECT().GetRoom(private.ID).Return(private, nil)
			f.members.EXPECT().IsMember(private.ID, tt.user.ID).Return(tt.member, nil)
			f.users.EXPECT().GetUserByID(tt.user.ID).Return(tt.user, nil).AnyTimes()

			_, err := f.service.GetRoom(tt.user.ID, domain.PrivateRoom, private.ID)

			if tt.wantErr != nil {
				req.ErrorIs(err, tt.wantErr)
				return
			}
			req.NoError(err)
		})
	}
}

func TestForumService_Outsider_Cannot_Post_In_Private(t *testing.T) {
	req := require.New(t)
	f := newForumFixture(t)

	// Given bob is not a member
	f.rooms.EXPECT().GetRoom(private.ID).Return(private, nil)
	f.members.EXPECT().IsMember(private.ID, "bob").Return(false, nil)
	f.users.EXPECT().GetUserByID("bob").Return(bob, nil)
	f.posts.EXPECT().StorePost(gomock.Any()).Times(0)

	// When
	_, err := f.service.CreatePost(context.Background(), domain.PrivateRoom, domain.CreatePostCommand{
		Room: private.ID, UserID: "bob", Content: "let me in",
	})

	// Then
	req.ErrorIs(err, errors.ErrForbidden)
}

func TestForumService_ListRooms_Private_Only_Membership(t *testing.T) {
	req := require.New(t)
	f := newForumFixture(t)
	newer := domain.NewRoom("P2", domain.PrivateRoom, "Later", "", "bob", private.CreatedAt.Add(time.Hour))

	// Given alice belongs to two conversations and a deleted one
	f.members.EXPECT().ListRoomsOf("alice").Return([]domain.ChannelKey{private.ID, "gone", newer.ID}, nil)
	f.rooms.EXPECT().GetRoom(private.ID).Return(private, nil)
	f.rooms.EXPECT().GetRoom(domain.ChannelKey("gone")).Return(domain.Room{}, errors.ErrRoomNotFound)
	f.rooms.EXPECT().GetRoom(newer.ID).Return(newer, nil)
	f.rooms.EXPECT().ListRooms(gomock.Any()).Times(0)

	// When
	rooms, err := f.service.ListRooms("alice", domain.PrivateRoom)

	// Then they come newest first
	req.NoError(err)
	req.Equal([]domain.Room{newer, private}, rooms)
}

func TestForumService_Invite(t *testing.T) {
	req := require.New(t)
	f := newForumFixture(t)

	// Given
	f.rooms.EXPECT().GetRoom(private.ID).Return(private, nil)
	f.users.EXPECT().GetUserByID("alice").Return(alice, nil)
	f.users.EXPECT().GetUserByEmail("bob@example.com").Return(bob, nil)
	f.members.EXPECT().AddMember(private.ID, "bob", gomock.Any()).Return(nil)
	var announcement domain.Post
	f.posts.EXPECT().StorePost(gomock.Any()).DoAndReturn(func(post domain.Post) error {
		announcement = post
		return nil
	})
	var notification domain.Notification
	f.notifications.EXPECT().CreateNotification(gomock.Any()).DoAndReturn(func(n domain.Notification) error {
		notification = n
		return nil
	})

	// When
	invitee, err := f.service.Invite(context.Background(), "alice", private.ID, " bob@example.com ")

	// Then bob is in, the room sees it and bob is told
	req.NoError(err)
	req.Equal(bob, invitee)
	req.Equal(private.ID, announcement.Room)
	req.Equal("alice", announcement.AuthorID)
	req.Equal("Alice invited Bob.", announcement.Content)
	req.Equal("bob", notification.UserID)
	req.Equal(`Alice invited you to the private room "Alice & Bob"`, notification.Message)
	req.Equal("/privates/P1", notification.URL)
	req.False(notification.IsRead)
}

func TestForumService_Invite_Rejections(t *testing.T) {
	t.Run("not the creator", func(t *testing.T) {
		req := require.New(t)
		f := newForumFixture(t)
		f.rooms.EXPECT().GetRoom(private.ID).Return(private, nil)
		f.members.EXPECT().AddMember(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := f.service.Invite(context.Background(), "bob", private.ID, "clara@example.com")
		req.ErrorIs(err, errors.ErrForbidden)
	})
	t.Run("public room", func(t *testing.T) {
		req := require.New(t)
		f := newForumFixture(t)
		f.rooms.EXPECT().GetRoom(lobby.ID).Return(lobby, nil)

		_, err := f.service.Invite(context.Background(), "admin", lobby.ID, "bob@example.com")
		req.ErrorIs(err, errors.ErrRoomNotFound)
	})
	t.Run("already a member", func(t *testing.T) {
		req := require.New(t)
		f := newForumFixture(t)
		f.rooms.EXPECT().GetRoom(private.ID).Return(private, nil)
		f.users.EXPECT().GetUserByID("alice").Return(alice, nil)
		f.users.EXPECT().GetUserByEmail("bob@example.com").Return(bob, nil)
		f.members.EXPECT().AddMember(private.ID, "bob", gomock.Any()).Return(errors.ErrAlreadyMember)
		f.posts.EXPECT().StorePost(gomock.Any()).Times(0)
		f.notifications.EXPECT().CreateNotification(gomock.Any()).Times(0)

		_, err := f.service.Invite(context.Background(), "alice", private.ID, "bob@example.com")
		req.ErrorIs(err, errors.ErrAlreadyMember)
	})
	t.Run("unknown email", func(t *testing.T) {
		req := require.New(t)
		f := newForumFixture(t)
		f.rooms.EXPECT().GetRoom(private.ID).Return(private, nil)
		f.users.EXPECT().GetUserByID("alice").Return(alice, nil)
		f.users.EXPECT().GetUserByEmail("nobody@example.com").Return(domain.User{}, errors.ErrUserNotFound)

		_, err := f.service.Invite(context.Background(), "alice", private.ID, "nobody@example.com")
		req.ErrorIs(err, errors.ErrUserNotFound)
	})
}

func TestForumService_Exit_Notifies_Creator(t *testing.T) {
	req := require.New(t)
	f := newForumFixture(t)

	// Given
	f.rooms.EXPECT().GetRoom(private.ID).Return(private, nil)
	f.users.EXPECT().GetUserByID("bob").Return(bob, nil)
	f.members.EXPECT().RemoveMember(private.ID, "bob").Return(nil)
	f.posts.EXPECT().StorePost(gomock.Any()).Return(nil)
	var notification domain.Notification
	f.notifications.EXPECT().CreateNotification(gomock.Any()).DoAndReturn(func(n domain.Notification) error {
		notification = n
		return nil
	})

	// When
	err := f.service.Exit(context.Background(), "bob", private.ID)

	// Then
	req.NoError(err)
	req.Equal("alice", notification.UserID)
	req.Equal(`Bob left the private room "Alice & Bob"`, notification.Message)
	req.Equal("/privates/P1", notification.URL)
}

func TestForumService_Exit_By_Creator_Notifies_Nobody(t *testing.T) {
	req := require.New(t)
	f := newForumFixture(t)

	f.rooms.EXPECT().GetRoom(private.ID).Return(private, nil)
	f.users.EXPECT().GetUserByID("alice").Return(alice, nil)
	f.members.EXPECT().RemoveMember(private.ID, "alice").Return(nil)
	f.posts.EXPECT().StorePost(gomock.Any()).Return(nil)
	f.notifications.EXPECT().CreateNotification(gomock.Any()).Times(0)

	req.NoError(f.service.Exit(context.Background(), "alice", private.ID))
}

func TestForumService_Exit_Not_A_Member(t *testing.T) {
	req := require.New(t)
	f := newForumFixture(t)

	f.rooms.EXPECT().GetRoom(private.ID).Return(private, nil)
	f.users.EXPECT().GetUserByID("bob").Return(bob, nil)
	f.members.EXPECT().RemoveMember(private.ID, "bob").Return(errors.ErrNotMember)
	f.posts.EXPECT().StorePost(gomock.Any()).Times(0)

	req.ErrorIs(f.service.Exit(context.Background(), "bob", private.ID), errors.ErrNotMember)
}

func TestForumService_DeleteRoom(t *testing.T) {
	t.Run("public room by a stranger", func(t *testing.T) {
		req := require.New(t)
		f := newForumFixture(t)
		f.rooms.EXPECT().GetRoom(lobby.ID).Return(lobby, nil)
		f.rooms.EXPECT().DeleteRoom(gomock.Any()).Times(0)

		req.ErrorIs(f.service.DeleteRoom("alice", domain.PublicRoom, lobby.ID), errors.ErrForbidden)
	})
	t.Run("public room by its creator", func(t *testing.T) {
		req := require.New(t)
		f := newForumFixture(t)
		viewer := &nopSink{name: "bob"}
		f.orchestrator.RegisterSubscriber(lobby.ID, viewer)

		f.rooms.EXPECT().GetRoom(lobby.ID).Return(lobby, nil)
		f.rooms.EXPECT().DeleteRoom(lobby.ID).Return(nil)
		f.posts.EXPECT().DeletePosts(lobby.ID).Return(3, nil)
		f.members.EXPECT().DeleteMembers(gomock.Any()).Times(0)

		req.NoError(f.service.DeleteRoom("admin", domain.PublicRoom, lobby.ID))
		req.Zero(f.orchestrator.Registry().Len())
	})
	t.Run("private by an admin", func(t *testing.T) {
		req := require.New(t)
		f := newForumFixture(t)
		f.rooms.EXPECT().GetRoom(private.ID).Return(private, nil)
		f.users.EXPECT().GetUserByID("root").Return(admin, nil)
		f.rooms.EXPECT().DeleteRoom(private.ID).Return(nil)
		f.posts.EXPECT().DeletePosts(private.ID).Return(0, nil)
		f.members.EXPECT().DeleteMembers(private.ID).Return(2, nil)

		req.NoError(f.service.DeleteRoom("root", domain.PrivateRoom, private.ID))
	})
	t.Run("private by a member", func(t *testing.T) {
		req := require.New(t)
		f := newForumFixture(t)
		f.rooms.EXPECT().GetRoom(private.ID).Return(private, nil)
		f.users.EXPECT().GetUserByID("bob").Return(bob, nil)
		f.rooms.EXPECT().DeleteRoom(gomock.Any()).Times(0)

		req.ErrorIs(f.service.DeleteRoom("bob", domain.PrivateRoom, private.ID), errors.ErrForbidden)
	})
}

func TestForumService_UpdateMemo_Creator_Only(t *testing.T) {
	req := require.New(t)
	f := newForumFixture(t)
	updated := private
	updated.Memo = "weekly sync"

	f.rooms.EXPECT().GetRoom(private.ID).Return(private, nil).Times(2)
	f.rooms.EXPECT().UpdateMemo(private.ID, "weekly sync").Return(updated, nil)

	room, err := f.service.UpdateMemo("alice", domain.PrivateRoom, private.ID, "  weekly sync ")
	req.NoError(err)
	req.Equal("weekly sync", room.Memo)

	_, err = f.service.UpdateMemo("bob", domain.PrivateRoom, private.ID, "mine now")
	req.ErrorIs(err, errors.ErrForbidden)
}
