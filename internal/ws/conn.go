package ws

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Conn 是一条已接入的实时连接。协议层不绑定用户身份，
// 也没有 ping/pong 保活：连接只在传输层关闭或出错时被清理。
type Conn struct {
	ws     *websocket.Conn
	send   chan []byte
	closed atomic.Bool
}

func newConn(wsc *websocket.Conn) *Conn {
	return &Conn{ws: wsc, send: make(chan []byte, 256)}
}

func (c *Conn) isOpen() bool { return !c.closed.Load() }

func (c *Conn) readPump(h *Hub, r *Router) {
	defer func() {
		c.closed.Store(true)
		h.unregister <- c
		_ = c.ws.Close()
	}()
	c.ws.SetReadLimit(1 << 20) // 1MB
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			break
		}
		r.OnFrame(c, data)
	}
}

func (c *Conn) writePump() {
	defer func() {
		_ = c.ws.Close()
	}()
	for msg := range c.send {
		_ = c.ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
		w, err := c.ws.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		_, _ = w.Write(msg)
		_ = w.Close()
	}
	// send 被 hub 关闭，礼貌地发一个关闭帧
	_ = c.ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
	_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
}
