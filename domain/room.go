package domain

import "time"

// ChannelKey identifies a live channel. It is the id of the room or private
// conversation whose viewers subscribe to it.
type ChannelKey string

type RoomKind string

const (
	PublicRoom   RoomKind = "room"
	PrivateRoom  RoomKind = "private"
	defaultTitle          = "Untitled"
)

type Room struct {
	ID        ChannelKey
	Kind      RoomKind
	Name      string
	Memo      string
	CreatedBy string
	CreatedAt time.Time
}

func NewRoom(id ChannelKey, kind RoomKind, name, memo, createdBy string, at time.Time) Room {
	if name == "" {
		name = defaultTitle
	}
	if kind == "" {
		kind = PublicRoom
	}
	return Room{ID: id, Kind: kind, Name: name, Memo: memo, CreatedBy: createdBy, CreatedAt: at}
}

// BasePath is the URL prefix under which the room is served.
func (r Room) BasePath() string {
	if r.Kind == PrivateRoom {
		return "/privates/"
	}
	return "/rooms/"
}

// PostURL deep-links to a post anchor inside the room page.
func (r Room) PostURL(postID string) string {
	return r.BasePath() + string(r.ID) + "#post-" + postID
}
