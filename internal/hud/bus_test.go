package hud

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialTestBus(t *testing.T, b *Bus) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(b.handleWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestPublishReachesClient(t *testing.T) {
	b := NewBus()
	conn := dialTestBus(t, b)

	// wait for the server side to register the client
	deadline := time.Now().Add(2 * time.Second)
	for b.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	b.Publish("heard", "jarvis what time is it")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Kind != "heard" || ev.Content != "jarvis what time is it" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.At == 0 {
		t.Fatalf("event timestamp missing")
	}
}

func TestPublishWithoutClients(t *testing.T) {
	b := NewBus()
	// must not block or panic
	b.Publish("state", "idle")
	if b.ClientCount() != 0 {
		t.Fatalf("client count = %d", b.ClientCount())
	}
}

func TestClientDroppedOnClose(t *testing.T) {
	b := NewBus()
	conn := dialTestBus(t, b)

	deadline := time.Now().Add(2 * time.Second)
	for b.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	conn.Close()

	deadline = time.Now().Add(2 * time.Second)
	for b.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never dropped")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
