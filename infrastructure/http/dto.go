package httpserver

import (
	"forum-lab/domain"
	"time"

	"github.com/samber/lo"
)

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type createRoomRequest struct {
	Name string `json:"name" validate:"max=100"`
	Memo string `json:"memo" validate:"max=1000"`
}

type memoRequest struct {
	Memo string `json:"memo" validate:"max=1000"`
}

type inviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type memberResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	IconURL  string `json:"iconUrl,omitempty"`
}

func toMemberResponse(user domain.User) memberResponse {
	return memberResponse{UserID: user.ID, Username: user.Username, IconURL: user.IconURL}
}

type notifyRequest struct {
	Notify *bool `json:"notify" validate:"required"`
}

type createPostRequest struct {
	Content      string `json:"content"`
	ImageURL     string `json:"imageUrl" validate:"omitempty,url"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"omitempty,url"`
}

type createReplyRequest struct {
	ParentID     string `json:"parentId"`
	Content      string `json:"content"`
	ImageURL     string `json:"imageUrl" validate:"omitempty,url"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"omitempty,url"`
}

type roomResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Memo      string    `json:"memo,omitempty"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	URL       string    `json:"url"`
}

type roomDetailResponse struct {
	Room   roomResponse `json:"room"`
	Notify bool         `json:"notify"`
}

type postResponse struct {
	ID           string    `json:"id"`
	RoomID       string    `json:"roomId"`
	AuthorID     string    `json:"authorId"`
	ParentID     string    `json:"parentId,omitempty"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	Lang         string    `json:"lang,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type postsResponse struct {
	Posts  []postResponse `json:"posts"`
	Cursor *string        `json:"cursor,omitempty"`
}

type searchResponse struct {
	Posts []postResponse `json:"posts"`
	Total uint64         `json:"total"`
}

type notificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	URL       string    `json:"url"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type countResponse struct {
	Count int `json:"count"`
}

func toRoomResponse(room domain.Room) roomResponse {
	return roomResponse{
		ID:        string(room.ID),
		Kind:      string(room.Kind),
		Name:      room.Name,
		Memo:      room.Memo,
		CreatedBy: room.CreatedBy,
		CreatedAt: room.CreatedAt,
		URL:       room.BasePath() + string(room.ID),
	}
}

func toPostResponse(post domain.Post) postResponse {
	return postResponse{
		ID:           post.ID,
		RoomID:       string(post.Room),
		AuthorID:     post.AuthorID,
		ParentID:     post.ParentID,
		Content:      post.Content,
		ImageURL:     post.ImageURL,
		ThumbnailURL: post.ThumbnailURL,
		Lang:         post.Lang,
		CreatedAt:    post.CreatedAt,
	}
}

func toPostResponses(posts []domain.Post) []postResponse {
	return lo.Map(posts, func(p domain.Post, _ int) postResponse { return toPostResponse(p) })
}

func toNotificationResponse(n domain.Notification, _ int) notificationResponse {
	return notificationResponse{ID: n.ID, Message: n.Message, URL: n.URL, IsRead: n.IsRead, CreatedAt: n.CreatedAt}
}
