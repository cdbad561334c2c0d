package httpserver

import (
	"fmt"
	"forum-lab/domain/event"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	connectedData = "ok"
	writeWait     = 10 * time.Second
)

// Events streams the room events with Server-Sent Events. The first event is
// always `connected: ok`. The stream ends once the client goes away, a write
// fails or the registry evicts the subscriber; the client then reconnects.
func (h *ForumHandler) Events(bufferSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := w.(http.Flusher); !ok {
			http.Error(w, "streaming not supported", http.StatusInternalServerError)
			return
		}
		userID, err := currentUser(r)
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}

		key := roomID(r)
		sink := NewConnectionSink(bufferSize)
		if err = h.forum.JoinRoom(userID, h.kind, key, sink); err != nil {
			writeError(w, r, h.log, err)
			return
		}
		defer func() {
			sink.Close()
			h.forum.LeaveRoom(key, sink)
		}()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		// A client that stops reading must not pin this goroutine inside Write.
		rc := http.NewResponseController(w)
		write := func(evt event.Envelope) error {
			_ = rc.SetWriteDeadline(time.Now().Add(writeWait))
			if err := writeSSE(w, evt); err != nil {
				return err
			}
			return rc.Flush()
		}

		if err = write(event.New(event.Connected, connectedData)); err != nil {
			return
		}
		h.log.Debug("Event stream opened", "room_id", key, "user_id", userID)

		for {
			select {
			case <-r.Context().Done():
				h.log.Debug("Event stream closed by client", "room_id", key)
				return
			case <-sink.Done():
				h.log.Debug("Event stream evicted", "room_id", key, "user_id", userID)
				return
			case evt := <-sink.Events():
				if err = write(evt); err != nil {
					h.log.Debug("Event stream write failed", "room_id", key, "error", err)
					return
				}
			}
		}
	}
}

func writeSSE(w http.ResponseWriter, evt event.Envelope) error {
	data, err := evt.Data()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Name, data)
	return err
}

// WebSocket streams the same events as JSON text frames. Messages sent by
// the client are ignored; reading only serves to notice the close.
func (h *ForumHandler) WebSocket(upgrader websocket.Upgrader, bufferSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUser(r)
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}

		key := roomID(r)
		sink := NewConnectionSink(bufferSize)
		if err = h.forum.JoinRoom(userID, h.kind, key, sink); err != nil {
			writeError(w, r, h.log, err)
			return
		}
		defer func() {
			sink.Close()
			h.forum.LeaveRoom(key, sink)
		}()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Debug("WebSocket upgrade failed", "room_id", key, "error", err)
			return
		}
		defer func() { _ = conn.Close() }()

		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		write := func(evt event.Envelope) error {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			return conn.WriteJSON(evt)
		}
		if err = write(event.New(event.Connected, connectedData)); err != nil {
			return
		}
		h.log.Debug("WebSocket opened", "room_id", key, "user_id", userID)

		for {
			select {
			case <-closed:
				h.log.Debug("WebSocket closed by client", "room_id", key)
				return
			case <-r.Context().Done():
				return
			case <-sink.Done():
				h.log.Debug("WebSocket evicted", "room_id", key, "user_id", userID)
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "subscriber evicted"),
					time.Now().Add(writeWait))
				return
			case evt := <-sink.Events():
				if err = write(evt); err != nil {
					h.log.Debug("WebSocket write failed", "room_id", key, "error", err)
					return
				}
			}
		}
	}
}
