package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taskhub/internal/config"
	"taskhub/internal/db"
	"taskhub/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// 走完整链路验证：注册登录建房发消息，实时连接上恰好收到
// 一条 new_message，且携带正确的房间 id。
func TestSendMessage_BroadcastsOnce(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Config{Port: "0", JWTSecret: "secret", Env: "dev", AccessTokenTTLMinutes: 15, RefreshTokenTTLDays: 7}
	gdb, err := db.Connect("host=localhost user=postgres password=postgres dbname=taskhub port=5432 sslmode=disable TimeZone=UTC")
	if err != nil {
		t.Skipf("skip: db not available: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Skipf("skip: migrate failed: %v", err)
	}
	hub := ws.NewHub()
	go hub.Run()
	engine := SetupRouter(cfg, gdb, hub)
	srv := httptest.NewServer(engine)
	defer srv.Close()

	username := fmt.Sprintf("bcast_%d", time.Now().UnixNano())
	decodeJSON(t, postJSON(t, srv.URL+"/api/v1/auth/register", "", map[string]any{
		"username": username, "password": "pass1234",
	}), &struct{}{})
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, postJSON(t, srv.URL+"/api/v1/auth/login", "", map[string]any{
		"username": username, "password": "pass1234",
	}), &login)

	var created struct {
		Room struct {
			ID uint `json:"id"`
		} `json:"room"`
	}
	decodeJSON(t, postJSON(t, srv.URL+"/api/v1/rooms", login.AccessToken, map[string]any{
		"name": "broadcast check",
	}), &created)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial ws: %v", err)
	}
	defer conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Online() < 1 {
		if time.Now().After(deadline) {
			t.Fatal("ws connection not admitted")
		}
		time.Sleep(5 * time.Millisecond)
	}

	decodeJSON(t, postJSON(t, fmt.Sprintf("%s/api/v1/rooms/%d/messages", srv.URL, created.Room.ID), login.AccessToken, map[string]any{
		"content": "hello",
	}), &struct{}{})

	// 收集一小段时间内的所有帧，new_message 必须恰好一条
	var newMessages int
	for {
		_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var evt struct {
			Type string `json:"type"`
			Data struct {
				RoomID uint `json:"room_id"`
			} `json:"data"`
		}
		if err := json.Unmarshal(raw, &evt); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if evt.Type == ws.EventNewMessage {
			newMessages++
			if evt.Data.RoomID != created.Room.ID {
				t.Errorf("new_message room_id = %d, want %d", evt.Data.RoomID, created.Room.ID)
			}
		}
	}
	if newMessages != 1 {
		t.Errorf("new_message broadcasts = %d, want exactly 1", newMessages)
	}
}

func postJSON(t *testing.T, url, token string, payload map[string]any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST %s: status %d", url, resp.StatusCode)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
