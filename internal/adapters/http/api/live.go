// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/evpulse/evpulse/pkg/logger"
)

// Websocket timing constants.
const (
	wsWriteTimeout = 5 * time.Second
	wsPingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{ //nolint:gochecknoglobals // shared upgrader config
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// LiveHandler exposes the simulated sensor console.
type LiveHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewLiveHandler creates a new live console handler.
func NewLiveHandler(deps Dependencies) *LiveHandler {
	return &LiveHandler{deps: deps, log: logger.Get().Named("live")}
}

// HandleStart handles POST /api/v1/live/start requests.
func (h *LiveHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	h.deps.FeedEnable()
	writeJSON(w, http.StatusOK, map[string]bool{"running": true})
}

// HandleStop handles POST /api/v1/live/stop requests.
func (h *LiveHandler) HandleStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	h.deps.FeedDisable()
	writeJSON(w, http.StatusOK, map[string]bool{"running": false})
}

// HandleLatest handles GET /api/v1/live/latest requests.
func (h *LiveHandler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sample, ok := h.deps.FeedLatest()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"running": h.deps.FeedRunning(), "sample": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"running": h.deps.FeedRunning(), "sample": sample})
}

// HandleStream upgrades GET /api/v1/live/ws to a websocket and streams
// samples to the client while the feed runs. The subscription ends when the
// client disconnects.
func (h *LiveHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the response.
		h.log.Warn(r.Context(), "websocket upgrade failed", logger.Error(err))
		return
	}

	samples, cancel := h.deps.FeedSubscribe()
	defer cancel()
	defer func() { _ = conn.Close() }()

	// Reader goroutine drains control frames and signals disconnect.
	disconnect := make(chan struct{})
	go func() {
		defer close(disconnect)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(wsPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-disconnect:
			return
		case <-r.Context().Done():
			return
		case sample, ok := <-samples:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(sample); err != nil {
				h.log.Debug(r.Context(), "websocket write failed", logger.Error(err))
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
