package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRoom_PostURL_DependsOnKind(t *testing.T) {
	req := require.New(t)
	at := time.Now().UTC()

	room := NewRoom("R1", PublicRoom, "General", "", "alice", at)
	private := NewRoom("P1", PrivateRoom, "Secret", "", "alice", at)

	req.Equal("/rooms/R1#post-42", room.PostURL("42"))
	req.Equal("/privates/P1#post-42", private.PostURL("42"))
}

func TestNewRoom_Defaults(t *testing.T) {
	req := require.New(t)

	// Given a room created without name nor kind
	room := NewRoom("R1", "", "", "", "alice", time.Now())

	// Then it falls back to a public untitled room
	req.Equal(PublicRoom, room.Kind)
	req.Equal("Untitled", room.Name)
}
