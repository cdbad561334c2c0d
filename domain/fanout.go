package domain

// PostCreated is handed to the dispatcher once a top-level post is durably stored.
type PostCreated struct {
	Room   Room
	Post   Post
	Author Author
}

// ReplyCreated is handed to the dispatcher once a reply is durably stored.
type ReplyCreated struct {
	Room   Room
	Reply  Post
	Parent Post
	Author Author
}

// NotificationJob is the unit of work of the notification pool.
// Parent is nil for top-level posts.
type NotificationJob struct {
	Room   Room
	Post   Post
	Author Author
	Parent *Post
}

func (j NotificationJob) IsReply() bool {
	return j.Parent != nil
}
