// Package domain contains core concepts of the forum.
// Posts are immutable once stored; a reply is a post with a parent.
package domain

import "time"

type Post struct {
	ID           string
	Room         ChannelKey
	AuthorID     string
	ParentID     string
	Content      string
	ImageURL     string
	ThumbnailURL string
	Lang         string
	CreatedAt    time.Time
}

func (p Post) IsReply() bool {
	return p.ParentID != ""
}

// Author is the public summary of a user attached to live events.
type Author struct {
	UserID   string
	Username string
	IconURL  string
}
