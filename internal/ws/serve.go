package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Serve 处理 /ws 升级握手。通道本身是匿名的：身份只存在于
// 产生广播的那些 REST 会话里，这里不做任何鉴权。
func Serve(h *Hub, router *Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		wsc, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		conn := newConn(wsc)
		h.register <- conn

		go conn.writePump()
		conn.readPump(h, router)
	}
}
