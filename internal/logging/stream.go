package logging

import (
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// StreamHub fans log entries out to connected websocket clients so the UI
// diagnostics panel can show a live feed. A bounded ring of recent entries is
// replayed to newly connected clients. Slow clients are dropped, never
// waited on.
type StreamHub struct {
	mu         sync.RWMutex
	clients    map[*websocket.Conn]chan StreamEntry
	history    []StreamEntry
	historyCap int
	seq        uint64
}

// StreamEntry is one log line as sent to the diagnostics panel.
type StreamEntry struct {
	ID        uint64         `json:"id"`
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

const (
	streamHistoryCap  = 200
	streamClientQueue = 64
)

// NewStreamHub creates an empty hub.
func NewStreamHub() *StreamHub {
	return &StreamHub{
		clients:    make(map[*websocket.Conn]chan StreamEntry),
		history:    make([]StreamEntry, 0, streamHistoryCap),
		historyCap: streamHistoryCap,
	}
}

// Add registers a client, replays recent history, and starts its writer.
// The connection is closed and removed when writing fails.
func (h *StreamHub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	ch := make(chan StreamEntry, streamClientQueue)
	h.clients[conn] = ch
	replay := make([]StreamEntry, len(h.history))
	copy(replay, h.history)
	h.mu.Unlock()

	go func() {
		for _, entry := range replay {
			if err := conn.WriteJSON(entry); err != nil {
				h.Remove(conn)
				return
			}
		}
		for entry := range ch {
			if err := conn.WriteJSON(entry); err != nil {
				h.Remove(conn)
				return
			}
		}
	}()
}

// Remove drops a client and closes its connection.
func (h *StreamHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	ch, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
	}
	h.mu.Unlock()
	if ok {
		close(ch)
		_ = conn.Close()
	}
}

// Publish appends an entry to history and offers it to every client. A client
// whose queue is full misses the entry instead of blocking the caller.
func (h *StreamHub) Publish(entry StreamEntry) {
	h.mu.Lock()
	h.seq++
	entry.ID = h.seq
	if len(h.history) >= h.historyCap {
		h.history = h.history[1:]
	}
	h.history = append(h.history, entry)
	for _, ch := range h.clients {
		select {
		case ch <- entry:
		default:
		}
	}
	h.mu.Unlock()
}

// ClientCount reports currently connected clients.
func (h *StreamHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// hubHook feeds logrus entries into a StreamHub.
type hubHook struct {
	hub *StreamHub
}

func (hh *hubHook) Levels() []log.Level {
	return []log.Level{log.ErrorLevel, log.WarnLevel, log.InfoLevel, log.DebugLevel}
}

func (hh *hubHook) Fire(entry *log.Entry) error {
	fields := make(map[string]any, len(entry.Data))
	for k, v := range entry.Data {
		// Never leak secrets to the panel, whatever field name they hide under.
		if strings.Contains(strings.ToLower(k), "key") || strings.Contains(strings.ToLower(k), "credential") {
			continue
		}
		fields[k] = v
	}
	hh.hub.Publish(StreamEntry{
		Timestamp: entry.Time.Format(time.RFC3339Nano),
		Level:     entry.Level.String(),
		Message:   entry.Message,
		Fields:    fields,
	})
	return nil
}

// InstallStreamHook attaches a hub-feeding hook to the global logger and
// returns the hub for the HTTP layer to expose.
func InstallStreamHook() *StreamHub {
	hub := NewStreamHub()
	log.AddHook(&hubHook{hub: hub})
	return hub
}
