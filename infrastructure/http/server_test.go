package httpserver

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"forum-lab/auth"
	"forum-lab/contract"
	"forum-lab/domain"
	"forum-lab/domain/event"
	"forum-lab/errors"
	"forum-lab/mocks"
	"forum-lab/runtime"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type serverFixture struct {
	server        *httptest.Server
	registry      *runtime.Registry
	forum         *mocks.MockIForumService
	auth          *mocks.MockIAuthService
	notifications *mocks.MockINotificationService
	token         string
}

func newServerFixture(t *testing.T) serverFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	issuer := auth.NewTokenIssuer("test-secret-with-enough-entropy", time.Hour)
	token, err := issuer.GenerateToken("alice", []string{"user"})
	require.NoError(t, err)

	f := serverFixture{
		registry:      runtime.NewRegistry(log, 100*time.Millisecond, nil),
		forum:         mocks.NewMockIForumService(ctrl),
		auth:          mocks.NewMockIAuthService(ctrl),
		notifications: mocks.NewMockINotificationService(ctrl),
		token:         token,
	}
	f.server = httptest.NewServer(NewRouter(Dependencies{
		Log:                  log,
		Auth:                 f.auth,
		Forum:                f.forum,
		Notifications:        f.notifications,
		Issuer:               issuer,
		ConnectionBufferSize: 8,
	}))
	t.Cleanup(f.server.Close)
	return f
}

// joinThroughRegistry lets the mocked service subscribe for real.
func (f serverFixture) joinThroughRegistry(key domain.ChannelKey) {
	f.forum.EXPECT().JoinRoom("alice", domain.PublicRoom, key, gomock.Any()).
		DoAndReturn(func(_ string, _ domain.RoomKind, key domain.ChannelKey, sink contract.EventSink) error {
			f.registry.Subscribe(key, sink)
			return nil
		})
	f.forum.EXPECT().LeaveRoom(key, gomock.Any()).
		Do(func(key domain.ChannelKey, sink contract.EventSink) {
			f.registry.Unsubscribe(key, sink)
		})
}

func (f serverFixture) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	r, err := http.NewRequest(method, f.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	r.Header.Set("Authorization", "Bearer "+f.token)
	r.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(r)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func readEvent(t *testing.T, reader *bufio.Reader) (string, string) {
	t.Helper()
	var name, data string
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			return name, data
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestEvents_Streams_Connected_Then_Published_Events(t *testing.T) {
	req := require.New(t)
	f := newServerFixture(t)
	f.joinThroughRegistry("R1")

	// Given a viewer connected with a query token, as EventSource does
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, f.server.URL+"/rooms/R1/events?token="+f.token, nil)
	req.NoError(err)
	resp, err := http.DefaultClient.Do(r)
	req.NoError(err)
	defer func() { _ = resp.Body.Close() }()
	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal("text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	name, data := readEvent(t, reader)
	req.Equal("connected", name)
	req.Equal("ok", data)

	// When a post is published on the channel
	req.Eventually(func() bool { return f.registry.Len() == 1 }, time.Second, 10*time.Millisecond)
	evt := event.NewPostCreated(domain.Post{ID: "p1", Content: "hello"}, domain.Author{UserID: "C", Username: "carol"})
	f.registry.Publish(context.Background(), "R1", evt.Name, evt.Payload)

	// Then the viewer reads it
	name, data = readEvent(t, reader)
	req.Equal("postCreated", name)
	var payload event.PostCreatedPayload
	req.NoError(json.Unmarshal([]byte(data), &payload))
	req.Equal("hello", payload.Content)
	req.Equal("carol", payload.User.Username)

	// And leaving the page removes the subscriber
	cancel()
	req.Eventually(func() bool { return f.registry.Len() == 0 }, time.Second, 10*time.Millisecond)
	req.Empty(f.registry.Channels())
}

func TestEvents_Unknown_Room(t *testing.T) {
	req := require.New(t)
	f := newServerFixture(t)
	f.forum.EXPECT().JoinRoom("alice", domain.PublicRoom, domain.ChannelKey("nope"), gomock.Any()).Return(errors.ErrRoomNotFound)

	resp := f.do(t, http.MethodGet, "/rooms/nope/events", "")

	req.Equal(http.StatusNotFound, resp.StatusCode)
}

func TestWebSocket_Streams_Json_Frames(t *testing.T) {
	req := require.New(t)
	f := newServerFixture(t)
	f.joinThroughRegistry("R1")

	// Given
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/rooms/R1/ws?token=" + f.token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	req.NoError(err)

	var frame struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	req.NoError(conn.ReadJSON(&frame))
	req.Equal("connected", frame.Event)

	// When
	req.Eventually(func() bool { return f.registry.Len() == 1 }, time.Second, 10*time.Millisecond)
	f.registry.Publish(context.Background(), "R1", event.Ping, event.PingPayload{At: time.Now().UTC()})

	// Then
	req.NoError(conn.ReadJSON(&frame))
	req.Equal("ping", frame.Event)

	_ = conn.Close()
	req.Eventually(func() bool { return f.registry.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestCreatePost_Responses(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{"created", `{"content":"hello"}`, nil, http.StatusCreated},
		{"banned words", `{"content":"spam"}`, errors.ErrBannedWords, http.StatusBadRequest},
		{"unknown room", `{"content":"hello"}`, errors.ErrRoomNotFound, http.StatusNotFound},
		{"storage down", `{"content":"hello"}`, fmt.Errorf("store post: %w", context.DeadlineExceeded), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			f := newServerFixture(t)
			f.forum.EXPECT().CreatePost(gomock.Any(), domain.PublicRoom, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ domain.RoomKind, cmd domain.CreatePostCommand) (domain.Post, error) {
					if tt.serviceErr != nil {
						return domain.Post{}, tt.serviceErr
					}
					return domain.Post{ID: "p1", Room: cmd.Room, AuthorID: cmd.UserID, Content: cmd.Content}, nil
				})

			resp := f.do(t, http.MethodPost, "/rooms/R1/posts", tt.body)

			req.Equal(tt.wantStatus, resp.StatusCode)
			if tt.serviceErr == nil {
				var post postResponse
				req.NoError(json.NewDecoder(resp.Body).Decode(&post))
				req.Equal("alice", post.AuthorID)
				req.Equal("R1", post.RoomID)
			}
		})
	}
}

func TestCreatePost_Rejects_Bad_Requests(t *testing.T) {
	req := require.New(t)
	f := newServerFixture(t)
	f.forum.EXPECT().CreatePost(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	resp := f.do(t, http.MethodPost, "/rooms/R1/posts", `{"content":"hi","unknown":1}`)
	req.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/rooms/R1/posts", `{"content":"hi","imageUrl":"not a url"}`)
	req.Equal(http.StatusBadRequest, resp.StatusCode)

	r, err := http.NewRequest(http.MethodPost, f.server.URL+"/rooms/R1/posts", strings.NewReader(`{"content":"hi"}`))
	req.NoError(err)
	anonymous, err := http.DefaultClient.Do(r)
	req.NoError(err)
	defer func() { _ = anonymous.Body.Close() }()
	req.Equal(http.StatusUnauthorized, anonymous.StatusCode)
}

func TestCreateReply_Forwards_Parent(t *testing.T) {
	req := require.New(t)
	f := newServerFixture(t)
	f.forum.EXPECT().CreateReply(gomock.Any(), domain.PrivateRoom, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.RoomKind, cmd domain.CreateReplyCommand) (domain.Post, error) {
			if cmd.ParentID == "" {
				return domain.Post{}, errors.ErrParentRequired
			}
			return domain.Post{ID: "r1", Room: cmd.Room, ParentID: cmd.ParentID}, nil
		}).Times(2)

	resp := f.do(t, http.MethodPost, "/privates/P1/replies", `{"parentId":"p1","content":"sure"}`)
	req.Equal(http.StatusCreated, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/privates/P1/replies", `{"content":"sure"}`)
	req.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestRoom_Detail_And_Notify(t *testing.T) {
	req := require.New(t)
	f := newServerFixture(t)
	room := domain.NewRoom("R1", domain.PublicRoom, "Lobby", "", "bob", time.Now().UTC())

	f.forum.EXPECT().GetRoom("alice", domain.PublicRoom, room.ID).Return(room, nil)
	f.forum.EXPECT().GetNotify("alice", room.ID).Return(true, nil)
	f.forum.EXPECT().SetNotify("alice", domain.PublicRoom, room.ID, false).Return(nil)

	resp := f.do(t, http.MethodGet, "/rooms/R1", "")
	req.Equal(http.StatusOK, resp.StatusCode)
	var detail roomDetailResponse
	req.NoError(json.NewDecoder(resp.Body).Decode(&detail))
	req.True(detail.Notify)
	req.Equal("/rooms/R1", detail.Room.URL)

	resp = f.do(t, http.MethodPost, "/rooms/R1/notify", `{"notify":false}`)
	req.Equal(http.StatusNoContent, resp.StatusCode)

	// notify is mandatory
	resp = f.do(t, http.MethodPost, "/rooms/R1/notify", `{}`)
	req.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestRoom_Delete_And_Memo(t *testing.T) {
	req := require.New(t)
	f := newServerFixture(t)
	room := domain.NewRoom("R1", domain.PublicRoom, "Lobby", "rules", "alice", time.Now().UTC())

	f.forum.EXPECT().UpdateMemo("alice", domain.PublicRoom, room.ID, "rules").Return(room, nil)
	f.forum.EXPECT().DeleteRoom("alice", domain.PublicRoom, room.ID).Return(nil)
	f.forum.EXPECT().DeleteRoom("alice", domain.PublicRoom, domain.ChannelKey("R2")).Return(errors.ErrForbidden)

	resp := f.do(t, http.MethodPut, "/rooms/R1/memo", `{"memo":"rules"}`)
	req.Equal(http.StatusOK, resp.StatusCode)
	var updated roomResponse
	req.NoError(json.NewDecoder(resp.Body).Decode(&updated))
	req.Equal("rules", updated.Memo)

	resp = f.do(t, http.MethodDelete, "/rooms/R1", "")
	req.Equal(http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodDelete, "/rooms/R2", "")
	req.Equal(http.StatusForbidden, resp.StatusCode)
}

func TestPrivate_Invite_And_Exit(t *testing.T) {
	req := require.New(t)
	f := newServerFixture(t)
	bob := domain.User{ID: "bob", Email: "bob@example.com", Username: "Bob"}

	f.forum.EXPECT().Invite(gomock.Any(), "alice", domain.ChannelKey("P1"), "bob@example.com").Return(bob, nil)
	f.forum.EXPECT().Invite(gomock.Any(), "alice", domain.ChannelKey("P1"), "bob@example.com").Return(domain.User{}, errors.ErrAlreadyMember)
	f.forum.EXPECT().Exit(gomock.Any(), "alice", domain.ChannelKey("P1")).Return(nil)

	resp := f.do(t, http.MethodPost, "/privates/P1/invitations", `{"email":"bob@example.com"}`)
	req.Equal(http.StatusCreated, resp.StatusCode)
	var member memberResponse
	req.NoError(json.NewDecoder(resp.Body).Decode(&member))
	req.Equal("bob", member.UserID)
	req.Equal("Bob", member.Username)

	resp = f.do(t, http.MethodPost, "/privates/P1/invitations", `{"email":"bob@example.com"}`)
	req.Equal(http.StatusConflict, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/privates/P1/invitations", `{"email":"not an email"}`)
	req.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/privates/P1/exit", "")
	req.Equal(http.StatusNoContent, resp.StatusCode)

	// Public rooms have no members to invite
	resp = f.do(t, http.MethodPost, "/rooms/R1/invitations", `{"email":"bob@example.com"}`)
	req.Equal(http.StatusNotFound, resp.StatusCode)
}

func TestNotifications_MarkRead_Forbidden(t *testing.T) {
	req := require.New(t)
	f := newServerFixture(t)
	f.notifications.EXPECT().MarkRead("alice", "n1").Return(errors.ErrForbidden)
	f.notifications.EXPECT().CountUnread("alice").Return(3, nil)

	resp := f.do(t, http.MethodPost, "/notifications/n1/read", "")
	req.Equal(http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/notifications/count", "")
	req.Equal(http.StatusOK, resp.StatusCode)
	var count countResponse
	req.NoError(json.NewDecoder(resp.Body).Decode(&count))
	req.Equal(3, count.Count)
}

func TestAuth_Register_Conflict(t *testing.T) {
	req := require.New(t)
	f := newServerFixture(t)
	f.auth.EXPECT().Register("bob@example.com", "ComplexPass123!", "bob").Return("", errors.ErrUserAlreadyExists)

	resp := f.do(t, http.MethodPost, "/auth/register",
		`{"email":"bob@example.com","password":"ComplexPass123!","username":"bob"}`)

	req.Equal(http.StatusConflict, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	req := require.New(t)
	f := newServerFixture(t)

	resp, err := http.Get(f.server.URL + "/healthz")
	req.NoError(err)
	defer func() { _ = resp.Body.Close() }()
	req.Equal(http.StatusOK, resp.StatusCode)
}
