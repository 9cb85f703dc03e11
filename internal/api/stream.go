package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"deeptrader/internal/game"
)

const (
	writeDeadline = 5 * time.Second
	pongWait      = 30 * time.Second
	pingInterval  = 20 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// streamMessage is one frame sent to a stream client: a summary after each
// transition, or the rejection of an action the client sent.
type streamMessage struct {
	Summary *game.Summary `json:"summary,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// handleStream pushes summaries of the slot's session. Clients may also send
// action envelopes over the socket.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	runner, ok := s.runner(w, r)
	if !ok {
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("stream upgrade failed", "err", err)
		return
	}
	s.metrics.StreamOpened()
	defer s.metrics.StreamClosed()

	updates, unsubscribe := runner.Subscribe()
	defer unsubscribe()

	rejections := make(chan string, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		readActions(conn, runner.Apply, rejections)
	}()

	first := runner.Summary()
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()
	if err := writeStream(conn, streamMessage{Summary: &first}); err != nil {
		return
	}
	for {
		select {
		case sum, open := <-updates:
			if !open {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session stopped"),
					time.Now().Add(writeDeadline))
				return
			}
			if err := writeStream(conn, streamMessage{Summary: &sum}); err != nil {
				return
			}
		case msg := <-rejections:
			if err := writeStream(conn, streamMessage{Error: msg}); err != nil {
				return
			}
		case <-done:
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readActions applies every envelope the client sends until the connection
// fails. Accepted actions show up on the summary feed.
func readActions(conn *websocket.Conn, apply func(game.Action) (game.Summary, error), rejections chan<- string) {
	conn.SetReadLimit(maxBodyBytes)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))
		action, err := game.DecodeAction(raw)
		if err == nil {
			_, err = apply(action)
		}
		if err != nil {
			select {
			case rejections <- err.Error():
			default:
			}
		}
	}
}

func writeStream(conn *websocket.Conn, msg streamMessage) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return conn.WriteMessage(websocket.TextMessage, raw)
}
