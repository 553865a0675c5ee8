package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var logStreamUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The UI may be served cross-origin in development; the feed carries
	// log lines only, credentials are filtered out at the hook.
	CheckOrigin: func(*http.Request) bool { return true },
}

// StreamLogs upgrades to a websocket and feeds the diagnostics panel recent
// and live log entries.
func (h *Handler) StreamLogs(c *gin.Context) {
	if h.logHub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": gin.H{"message": "log streaming disabled", "type": "unavailable"},
		})
		return
	}
	conn, err := logStreamUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Debug("log stream upgrade failed")
		return
	}
	h.logHub.Add(conn)

	// Reader loop: discard client frames, notice disconnects.
	go func() {
		defer h.logHub.Remove(conn)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Time{})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
