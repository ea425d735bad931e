package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

// sheriff-hud tails the daemon's event bus: every state change, transcript
// and reply, printed as it happens.
func main() {
	wsURL := os.Getenv("HUD_URL")
	if wsURL == "" {
		wsURL = "ws://127.0.0.1:8092/ws"
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		slog.Error("failed to connect to bus", "url", wsURL, "err", err)
		os.Exit(1)
	}
	defer conn.Close()

	slog.Info("Connected to bus", "url", wsURL)

	type event struct {
		Kind    string `json:"kind"`
		Content string `json:"content"`
		At      int64  `json:"at"`
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			slog.Error("bus read failed", "err", err)
			os.Exit(1)
		}

		var ev event
		if err := json.Unmarshal(msg, &ev); err != nil {
			slog.Warn("bad event", "err", err)
			continue
		}

		ts := time.Unix(ev.At, 0).Format("15:04:05")
		fmt.Printf("%s  %-6s %s\n", ts, ev.Kind, ev.Content)
	}
}
