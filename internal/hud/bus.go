package hud

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is one pipeline update pushed to HUD clients.
type Event struct {
	Kind    string `json:"kind"` // "state" | "heard" | "reply" | "error"
	Content string `json:"content"`
	At      int64  `json:"at"`
}

// Bus broadcasts pipeline events to every connected websocket client.
// Clients that cannot keep up are dropped; the HUD is decoration, not a
// dependency.
type Bus struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]chan Event
}

func NewBus() *Bus {
	return &Bus{
		upgrader: websocket.Upgrader{
			// HUD clients are local tools, not browsers
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]chan Event),
	}
}

// Serve starts the websocket endpoint. Errors after startup only lose the
// HUD, never the assistant.
func (b *Bus) Serve(addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", b.handleWS)

	go func() {
		slog.Info("hud bus listening", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Warn("hud bus stopped", "err", err)
		}
	}()
}

func (b *Bus) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("hud upgrade failed", "err", err)
		return
	}

	ch := make(chan Event, 16)

	b.mu.Lock()
	b.clients[conn] = ch
	b.mu.Unlock()

	slog.Info("hud client connected", "remote", conn.RemoteAddr())

	go b.writer(conn, ch)

	// drain reads so pings and close frames are processed
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			b.drop(conn)
			return
		}
	}
}

func (b *Bus) writer(conn *websocket.Conn, ch chan Event) {
	for ev := range ch {
		data, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			b.drop(conn)
			return
		}
	}
}

// Publish fans an event out to all clients without blocking the pipeline.
func (b *Bus) Publish(kind, content string) {
	ev := Event{Kind: kind, Content: content, At: time.Now().Unix()}

	b.mu.Lock()
	defer b.mu.Unlock()

	for conn, ch := range b.clients {
		select {
		case ch <- ev:
		default:
			// slow client; cut it loose
			delete(b.clients, conn)
			close(ch)
			conn.Close()
		}
	}
}

func (b *Bus) drop(conn *websocket.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.clients[conn]; ok {
		delete(b.clients, conn)
		close(ch)
	}
	conn.Close()
}

// ClientCount is used by the status IPC verb.
func (b *Bus) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}
