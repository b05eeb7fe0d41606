package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/steering/internal/core/observability/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleWebSocket streams one JSON frame per tick, starting with the current state.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}

	initial, err := json.Marshal(s.world.Snapshot())
	if err != nil {
		s.logger.Error("encode frame", log.Error(err))
		_ = conn.Close()
		return
	}

	client := &wsClient{conn: conn, send: make(chan []byte, s.config.BroadcastBuffer)}
	client.send <- initial
	if !s.hub.add(client) {
		_ = conn.Close()
		return
	}
	s.logger.Debug("viewer connected", log.String("remote", conn.RemoteAddr().String()), log.Int("viewers", s.hub.len()))

	// Reader: viewers are receive-only, reading just surfaces the close.
	go func() {
		defer s.hub.remove(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		dropped := s.hub.remove(client)
		_ = conn.Close()
		s.logger.Debug("viewer disconnected",
			log.String("remote", conn.RemoteAddr().String()),
			log.Int64("dropped_frames", int64(dropped)),
		)
	}()
	for frame := range client.send {
		_ = conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}
}
