package event

import (
	"encoding/json"
	"forum-lab/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEnvelope_Data_RawString(t *testing.T) {
	req := require.New(t)
	data, err := New(Connected, "ok").Data()
	req.NoError(err)
	req.Equal("ok", string(data))
}

func TestEnvelope_Data_Strings_Stay_On_One_Line(t *testing.T) {
	tests := []struct {
		name     string
		envelope Envelope
		expected string
	}{
		{"other events are JSON encoded", New(Ping, "ok"), `"ok"`},
		{"line breaks are escaped", New(PostCreated, "hi\nevent: forged"), `"hi\nevent: forged"`},
		{"a multi-line handshake is escaped too", New(Connected, "ok\r\ndata: x"), `"ok\r\ndata: x"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			data, err := tt.envelope.Data()
			req.NoError(err)
			req.Equal(tt.expected, string(data))
			req.NotContains(string(data), "\n")
		})
	}
}

func TestNewReplyCreated_CarriesParent(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	reply := domain.Post{ID: "r1", ParentID: "p1", Content: "hi", CreatedAt: at}
	author := domain.Author{UserID: "u1", Username: "Carol"}

	evt := NewReplyCreated(reply, author)
	req.Equal(ReplyCreated, evt.Name)

	data, err := evt.Data()
	req.NoError(err)

	var decoded map[string]any
	req.NoError(json.Unmarshal(data, &decoded))
	req.Equal("r1", decoded["replyId"])
	req.Equal("p1", decoded["parentId"])
	req.Equal("Carol", decoded["user"].(map[string]any)["username"])
}
