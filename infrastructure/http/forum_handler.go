package httpserver

import (
	"forum-lab/domain"
	"forum-lab/services"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ForumHandler serves one kind of room: public rooms under /rooms and
// private conversations under /privates share every route.
type ForumHandler struct {
	log   *slog.Logger
	forum services.IForumService
	kind  domain.RoomKind
}

func NewForumHandler(log *slog.Logger, forum services.IForumService, kind domain.RoomKind) *ForumHandler {
	return &ForumHandler{log: log.With("kind", kind), forum: forum, kind: kind}
}

func roomID(r *http.Request) domain.ChannelKey {
	return domain.ChannelKey(chi.URLParam(r, "roomID"))
}

func (h *ForumHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var body createRoomRequest
	if err = decode(r, w, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	room, err := h.forum.CreateRoom(userID, h.kind, body.Name, body.Memo)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.Info("Room created", "room_id", room.ID, "user_id", userID)
	writeJSON(w, http.StatusCreated, toRoomResponse(room))
}

func (h *ForumHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	rooms, err := h.forum.ListRooms(userID, h.kind)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response := make([]roomResponse, 0, len(rooms))
	for _, room := range rooms {
		response = append(response, toRoomResponse(room))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *ForumHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	room, err := h.forum.GetRoom(userID, h.kind, roomID(r))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	notify, err := h.forum.GetNotify(userID, room.ID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, roomDetailResponse{Room: toRoomResponse(room), Notify: notify})
}

func (h *ForumHandler) UpdateMemo(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var body memoRequest
	if err = decode(r, w, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	room, err := h.forum.UpdateMemo(userID, h.kind, roomID(r), body.Memo)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomResponse(room))
}

// DeleteRoom drops the room with its posts and closes its live streams.
func (h *ForumHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err = h.forum.DeleteRoom(userID, h.kind, roomID(r)); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.Info("Room deleted", "room_id", roomID(r), "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}

// Invite is only routed for private conversations.
func (h *ForumHandler) Invite(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var body inviteRequest
	if err = decode(r, w, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	invitee, err := h.forum.Invite(r.Context(), userID, roomID(r), body.Email)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.Info("Member invited", "room_id", roomID(r), "user_id", userID, "invitee_id", invitee.ID)
	writeJSON(w, http.StatusCreated, toMemberResponse(invitee))
}

func (h *ForumHandler) Exit(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err = h.forum.Exit(r.Context(), userID, roomID(r)); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.Info("Member left", "room_id", roomID(r), "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ForumHandler) SetNotify(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var body notifyRequest
	if err = decode(r, w, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err = h.forum.SetNotify(userID, h.kind, roomID(r), *body.Notify); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ForumHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var cursor *string
	if c := r.URL.Query().Get("cursor"); c != "" {
		cursor = &c
	}
	posts, next, err := h.forum.GetPosts(userID, h.kind, domain.GetPostsCommand{Room: roomID(r), Cursor: cursor})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if next != nil && *next == "" {
		next = nil
	}
	writeJSON(w, http.StatusOK, postsResponse{Posts: toPostResponses(posts), Cursor: next})
}

func (h *ForumHandler) SearchPosts(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	posts, total, err := h.forum.SearchPosts(r.Context(), userID, h.kind, roomID(r), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{Posts: toPostResponses(posts), Total: total})
}

// CreatePost answers as soon as the post is stored; live delivery and
// notifications never change the response.
func (h *ForumHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var body createPostRequest
	if err = decode(r, w, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	post, err := h.forum.CreatePost(r.Context(), h.kind, domain.CreatePostCommand{
		Room:         roomID(r),
		UserID:       userID,
		Content:      strings.TrimSpace(body.Content),
		ImageURL:     body.ImageURL,
		ThumbnailURL: body.ThumbnailURL,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPostResponse(post))
}

func (h *ForumHandler) CreateReply(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var body createReplyRequest
	if err = decode(r, w, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	reply, err := h.forum.CreateReply(r.Context(), h.kind, domain.CreateReplyCommand{
		CreatePostCommand: domain.CreatePostCommand{
			Room:         roomID(r),
			UserID:       userID,
			Content:      strings.TrimSpace(body.Content),
			ImageURL:     body.ImageURL,
			ThumbnailURL: body.ThumbnailURL,
		},
		ParentID: body.ParentID,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPostResponse(reply))
}
