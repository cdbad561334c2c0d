//go:generate go run go.uber.org/mock/mockgen -source=forum_service.go -destination=../mocks/mock_forum_service.go -package=mocks
package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"forum-lab/contract"
	"forum-lab/domain"
	"forum-lab/domain/search"
	"forum-lab/errors"
	"forum-lab/infrastructure/storage"
	"forum-lab/runtime"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IForumService serves rooms and private conversations alike; kind tells them
// apart and a room looked up under the wrong kind does not exist.
// A private conversation is only visible to its members and to admins.
type IForumService interface {
	CreateRoom(userID string, kind domain.RoomKind, name, memo string) (domain.Room, error)
	ListRooms(userID string, kind domain.RoomKind) ([]domain.Room, error)
	GetRoom(userID string, kind domain.RoomKind, roomID domain.ChannelKey) (domain.Room, error)
	UpdateMemo(userID string, kind domain.RoomKind, roomID domain.ChannelKey, memo string) (domain.Room, error)
	DeleteRoom(userID string, kind domain.RoomKind, roomID domain.ChannelKey) error
	Invite(ctx context.Context, userID string, roomID domain.ChannelKey, email string) (domain.User, error)
	Exit(ctx context.Context, userID string, roomID domain.ChannelKey) error
	GetNotify(userID string, roomID domain.ChannelKey) (bool, error)
	SetNotify(userID string, kind domain.RoomKind, roomID domain.ChannelKey, notify bool) error
	CreatePost(ctx context.Context, kind domain.RoomKind, cmd domain.CreatePostCommand) (domain.Post, error)
	CreateReply(ctx context.Context, kind domain.RoomKind, cmd domain.CreateReplyCommand) (domain.Post, error)
	GetPosts(userID string, kind domain.RoomKind, cmd domain.GetPostsCommand) ([]domain.Post, *string, error)
	SearchPosts(ctx context.Context, userID string, kind domain.RoomKind, roomID domain.ChannelKey, input string) ([]domain.Post, uint64, error)
	JoinRoom(userID string, kind domain.RoomKind, roomID domain.ChannelKey, sink contract.EventSink) error
	LeaveRoom(roomID domain.ChannelKey, sink contract.EventSink)
}

type ForumService struct {
	orchestrator  *runtime.Orchestrator
	rooms         storage.IRoomRepository
	members       storage.IMemberRepository
	preferences   storage.IPreferenceRepository
	posts         storage.IPostRepository
	users         storage.IUserRepository
	notifications storage.INotificationRepository
	now           func() time.Time
}

func NewForumService(
	o *runtime.Orchestrator,
	rooms storage.IRoomRepository,
	members storage.IMemberRepository,
	preferences storage.IPreferenceRepository,
	posts storage.IPostRepository,
	users storage.IUserRepository,
	notifications storage.INotificationRepository) *ForumService {
	return &ForumService{
		orchestrator:  o,
		rooms:         rooms,
		members:       members,
		preferences:   preferences,
		posts:         posts,
		users:         users,
		notifications: notifications,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// CreateRoom stores a new room. The creator of a private conversation is its first member.
func (s *ForumService) CreateRoom(userID string, kind domain.RoomKind, name, memo string) (domain.Room, error) {
	room := domain.NewRoom(domain.ChannelKey(uuid.NewString()), kind,
		strings.TrimSpace(name), strings.TrimSpace(memo), userID, s.now())
	if err := s.rooms.CreateRoom(room); err != nil {
		return domain.Room{}, fmt.Errorf("create room: %w", err)
	}
	if room.Kind == domain.PrivateRoom {
		if err := s.members.AddMember(room.ID, userID, room.CreatedAt); err != nil {
			return domain.Room{}, fmt.Errorf("add creator: %w", err)
		}
	}
	return room, nil
}

// ListRooms returns every public room, or the private conversations userID belongs to.
// Both come newest first.
func (s *ForumService) ListRooms(userID string, kind domain.RoomKind) ([]domain.Room, error) {
	if kind != domain.PrivateRoom {
		return s.rooms.ListRooms(kind)
	}
	ids, err := s.members.ListRoomsOf(userID)
	if err != nil {
		return nil, err
	}
	rooms := make([]domain.Room, 0, len(ids))
	for _, id := range ids {
		room, err := s.rooms.GetRoom(id)
		if stderrors.Is(err, errors.ErrRoomNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	slices.SortFunc(rooms, func(a, b domain.Room) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return rooms, nil
}

func (s *ForumService) GetRoom(userID string, kind domain.RoomKind, roomID domain.ChannelKey) (domain.Room, error) {
	room, err := s.lookup(kind, roomID)
	if err != nil {
		return domain.Room{}, err
	}
	if err = s.checkAccess(userID, room); err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

// UpdateMemo is reserved to the creator of the room.
func (s *ForumService) UpdateMemo(userID string, kind domain.RoomKind, roomID domain.ChannelKey, memo string) (domain.Room, error) {
	room, err := s.lookup(kind, roomID)
	if err != nil {
		return domain.Room{}, err
	}
	if room.CreatedBy != userID {
		return domain.Room{}, errors.ErrForbidden
	}
	return s.rooms.UpdateMemo(roomID, strings.TrimSpace(memo))
}

// DeleteRoom removes a room with its posts and memberships and disconnects its
// viewers. A public room can only be deleted by its creator, a private
// conversation by its creator or an admin.
func (s *ForumService) DeleteRoom(userID string, kind domain.RoomKind, roomID domain.ChannelKey) error {
	room, err := s.lookup(kind, roomID)
	if err != nil {
		return err
	}
	allowed := room.CreatedBy == userID
	if !allowed && room.Kind == domain.PrivateRoom {
		if allowed, err = s.isAdmin(userID); err != nil {
			return err
		}
	}
	if !allowed {
		return errors.ErrForbidden
	}

	if err = s.rooms.DeleteRoom(roomID); err != nil {
		return err
	}
	if _, err = s.posts.DeletePosts(roomID); err != nil {
		return err
	}
	if room.Kind == domain.PrivateRoom {
		if _, err = s.members.DeleteMembers(roomID); err != nil {
			return err
		}
	}
	s.orchestrator.CloseRoom(roomID)
	return nil
}

// Invite adds the user registered under email to a private conversation.
// Only the creator invites. The members see a system message and the invitee
// gets a notification.
func (s *ForumService) Invite(ctx context.Context, userID string, roomID domain.ChannelKey, email string) (domain.User, error) {
	room, err := s.lookup(domain.PrivateRoom, roomID)
	if err != nil {
		return domain.User{}, err
	}
	if room.CreatedBy != userID {
		return domain.User{}, errors.ErrForbidden
	}
	inviter, err := s.users.GetUserByID(userID)
	if err != nil {
		return domain.User{}, err
	}
	invitee, err := s.users.GetUserByEmail(strings.TrimSpace(email))
	if err != nil {
		return domain.User{}, err
	}
	if err = s.members.AddMember(roomID, invitee.ID, s.now()); err != nil {
		return domain.User{}, err
	}

	if _, err = s.orchestrator.Announce(ctx, room, inviter,
		fmt.Sprintf("%s invited %s.", inviter.Username, invitee.Username)); err != nil {
		return domain.User{}, err
	}
	if err = s.notify(invitee.ID, room,
		fmt.Sprintf("%s invited you to the private room %q", inviter.Username, room.Name)); err != nil {
		return domain.User{}, err
	}
	return invitee, nil
}

// Exit removes userID from a private conversation and tells its creator.
func (s *ForumService) Exit(ctx context.Context, userID string, roomID domain.ChannelKey) error {
	room, err := s.lookup(domain.PrivateRoom, roomID)
	if err != nil {
		return err
	}
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return err
	}
	if err = s.members.RemoveMember(roomID, userID); err != nil {
		return err
	}

	if _, err = s.orchestrator.Announce(ctx, room, user,
		fmt.Sprintf("%s left the private room.", user.Username)); err != nil {
		return err
	}
	if room.CreatedBy == userID {
		return nil
	}
	return s.notify(room.CreatedBy, room,
		fmt.Sprintf("%s left the private room %q", user.Username, room.Name))
}

func (s *ForumService) GetNotify(userID string, roomID domain.ChannelKey) (bool, error) {
	pref, err := s.preferences.GetPreference(userID, roomID)
	if err != nil {
		return false, err
	}
	return pref.Notify, nil
}

// SetNotify upserts the preference read by the notification fan-out.
func (s *ForumService) SetNotify(userID string, kind domain.RoomKind, roomID domain.ChannelKey, notify bool) error {
	if _, err := s.GetRoom(userID, kind, roomID); err != nil {
		return err
	}
	return s.preferences.SetPreference(domain.NotificationPreference{UserID: userID, Room: roomID, Notify: notify})
}

func (s *ForumService) CreatePost(ctx context.Context, kind domain.RoomKind, cmd domain.CreatePostCommand) (domain.Post, error) {
	if _, err := s.GetRoom(cmd.UserID, kind, cmd.Room); err != nil {
		return domain.Post{}, err
	}
	return s.orchestrator.CreatePost(ctx, cmd)
}

func (s *ForumService) CreateReply(ctx context.Context, kind domain.RoomKind, cmd domain.CreateReplyCommand) (domain.Post, error) {
	if _, err := s.GetRoom(cmd.UserID, kind, cmd.Room); err != nil {
		return domain.Post{}, err
	}
	return s.orchestrator.CreateReply(ctx, cmd)
}

func (s *ForumService) GetPosts(userID string, kind domain.RoomKind, cmd domain.GetPostsCommand) ([]domain.Post, *string, error) {
	if _, err := s.GetRoom(userID, kind, cmd.Room); err != nil {
		return nil, nil, err
	}
	return s.orchestrator.GetPosts(cmd)
}

func (s *ForumService) SearchPosts(ctx context.Context, userID string, kind domain.RoomKind, roomID domain.ChannelKey, input string) ([]domain.Post, uint64, error) {
	if _, err := s.GetRoom(userID, kind, roomID); err != nil {
		return nil, 0, err
	}
	return s.orchestrator.SearchPosts(ctx, search.NewSearchQuery(string(roomID), input))
}

// JoinRoom registers a live connection once the room is known to exist and
// userID may read it.
func (s *ForumService) JoinRoom(userID string, kind domain.RoomKind, roomID domain.ChannelKey, sink contract.EventSink) error {
	if _, err := s.GetRoom(userID, kind, roomID); err != nil {
		return err
	}
	s.orchestrator.RegisterSubscriber(roomID, sink)
	return nil
}

func (s *ForumService) LeaveRoom(roomID domain.ChannelKey, sink contract.EventSink) {
	s.orchestrator.UnregisterSubscriber(roomID, sink)
}

func (s *ForumService) lookup(kind domain.RoomKind, roomID domain.ChannelKey) (domain.Room, error) {
	room, err := s.rooms.GetRoom(roomID)
	if err != nil {
		return domain.Room{}, err
	}
	if room.Kind != kind {
		return domain.Room{}, errors.ErrRoomNotFound
	}
	return room, nil
}

func (s *ForumService) checkAccess(userID string, room domain.Room) error {
	if room.Kind != domain.PrivateRoom {
		return nil
	}
	member, err := s.members.IsMember(room.ID, userID)
	if err != nil {
		return err
	}
	if member {
		return nil
	}
	admin, err := s.isAdmin(userID)
	if err != nil {
		return err
	}
	if !admin {
		return errors.ErrForbidden
	}
	return nil
}

func (s *ForumService) isAdmin(userID string) (bool, error) {
	user, err := s.users.GetUserByID(userID)
	if stderrors.Is(err, errors.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

func (s *ForumService) notify(userID string, room domain.Room, message string) error {
	notification := domain.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Message:   message,
		URL:       room.BasePath() + string(room.ID),
		CreatedAt: s.now(),
	}
	if err := s.notifications.CreateNotification(notification); err != nil {
		return fmt.Errorf("notify %s: %w", userID, err)
	}
	return nil
}
