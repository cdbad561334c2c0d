// Package event defines what travels through the live channels.
// Events are transient: they are relayed to connected clients, never stored.
package event

import (
	"encoding/json"
	"forum-lab/domain"
	"strings"
	"time"
)

type Name string

const (
	Connected    Name = "connected"
	PostCreated  Name = "postCreated"
	ReplyCreated Name = "replyCreated"
	Ping         Name = "ping"
)

// Envelope is a named event plus its JSON-serialisable payload.
type Envelope struct {
	Name    Name `json:"event"`
	Payload any  `json:"data"`
}

func New(name Name, payload any) Envelope {
	return Envelope{Name: name, Payload: payload}
}

// Data serialises the payload alone, as written on an event stream "data:" line.
// Only the connected handshake goes out raw, as `connected: ok`. Every other
// payload is JSON, which never spans several lines.
func (e Envelope) Data() ([]byte, error) {
	if s, ok := e.Payload.(string); ok && e.Name == Connected && !strings.ContainsAny(s, "\r\n") {
		return []byte(s), nil
	}
	return json.Marshal(e.Payload)
}

type User struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	IconURL  string `json:"iconUrl,omitempty"`
}

type PostCreatedPayload struct {
	PostID       string    `json:"postId"`
	User         User      `json:"user"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	Lang         string    `json:"lang,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ReplyCreatedPayload struct {
	ReplyID      string    `json:"replyId"`
	ParentID     string    `json:"parentId"`
	User         User      `json:"user"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	Lang         string    `json:"lang,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type PingPayload struct {
	At time.Time `json:"at"`
}

func ToUser(a domain.Author) User {
	return User{UserID: a.UserID, Username: a.Username, IconURL: a.IconURL}
}

func NewPostCreated(post domain.Post, author domain.Author) Envelope {
	return New(PostCreated, PostCreatedPayload{
		PostID:       post.ID,
		User:         ToUser(author),
		Content:      post.Content,
		ImageURL:     post.ImageURL,
		ThumbnailURL: post.ThumbnailURL,
		Lang:         post.Lang,
		CreatedAt:    post.CreatedAt,
	})
}

func NewReplyCreated(reply domain.Post, author domain.Author) Envelope {
	return New(ReplyCreated, ReplyCreatedPayload{
		ReplyID:      reply.ID,
		ParentID:     reply.ParentID,
		User:         ToUser(author),
		Content:      reply.Content,
		ImageURL:     reply.ImageURL,
		ThumbnailURL: reply.ThumbnailURL,
		Lang:         reply.Lang,
		CreatedAt:    reply.CreatedAt,
	})
}
