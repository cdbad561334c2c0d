package domain

import "time"

type CreatePostCommand struct {
	Room         ChannelKey
	UserID       string
	Content      string
	ImageURL     string
	ThumbnailURL string
	CreatedAt    time.Time
}

type CreateReplyCommand struct {
	CreatePostCommand
	ParentID string
}

type GetPostsCommand struct {
	Room   ChannelKey
	Cursor *string
}

