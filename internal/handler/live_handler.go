package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/auditrain/auditrain-backend/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 54 * time.Second
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// LiveHandler streams newly persisted submissions to connected admin
// dashboards over WebSocket, fed by the Redis submission channel.
type LiveHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewLiveHandler creates a new LiveHandler.
func NewLiveHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *LiveHandler {
	return &LiveHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "live_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// SubmissionStream godoc
// WS /ws/v1/admin/submissions?token=...
// Upgrades to WebSocket and forwards every submission published on the feed
// channel. Each connection holds its own Redis subscription, so fan-out works
// across multiple dashboards.
func (h *LiveHandler) SubmissionStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	pubsub := h.rdb.Subscribe(ctx, config.CacheKey.SubmissionFeedChannel())
	defer pubsub.Close()

	h.log.Info().Str("remote", c.ClientIP()).Msg("Admin dashboard connected")

	// Reader goroutine: we never expect client messages, but reading drives
	// pong handling and detects closed connections.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				h.log.Debug().Err(err).Msg("Dashboard write failed, closing")
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}
