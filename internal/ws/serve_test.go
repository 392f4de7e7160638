package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// 通过真实的升级握手验证转发路径：A 发出的信令帧原样到达 B。
func TestServe_EndToEndRelay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	go hub.Run()
	r := gin.New()
	r.GET("/ws", Serve(hub, NewRouter(hub)))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	a, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial a: %v", err)
	}
	defer a.Close()
	b, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial b: %v", err)
	}
	defer b.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Online() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("connections not admitted, online = %d", hub.Online())
		}
		time.Sleep(5 * time.Millisecond)
	}

	raw := `{"type":"call_offer","roomId":"room1","offer":"o1"}`
	if err := a.WriteMessage(websocket.TextMessage, []byte(raw)); err != nil {
		t.Fatalf("write: %v", err)
	}

	_ = b.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := b.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(msg) != raw {
		t.Errorf("relayed frame = %s, want verbatim %s", msg, raw)
	}

	// 服务器主动广播两端都能收到
	hub.Broadcast(Event{Type: EventEmployeeStatus, Data: []string{"alice"}})
	for name, conn := range map[string]*websocket.Conn{"a": a, "b": b} {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read broadcast on %s: %v", name, err)
		}
		if !strings.Contains(string(msg), EventEmployeeStatus) {
			t.Errorf("broadcast on %s = %s, want %s event", name, msg, EventEmployeeStatus)
		}
	}
}
