package ws

import (
	"encoding/json"

	"taskhub/internal/metrics"

	"github.com/rs/zerolog/log"
)

// Router 解析入站帧并按 type 分发。解析失败只记日志丢弃，
// 不向发送方回错误（fire-and-forget）。
type Router struct {
	hub *Hub
}

func NewRouter(h *Hub) *Router { return &Router{hub: h} }

// frame 只解出分发需要的字段，call_* 帧的其余内容服务器不关心。
type frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func (r *Router) OnFrame(c *Conn, raw []byte) {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		log.Debug().Err(err).Msg("drop malformed ws frame")
		return
	}
	metrics.WsFramesTotal.WithLabelValues(f.Type).Inc()
	switch f.Type {
	case frameSubscribe:
		// 预留：将来按房间过滤订阅，目前接受即忽略
	case frameAuxUpdate:
		var payload any
		if len(f.Payload) > 0 {
			payload = f.Payload
		}
		r.hub.relayEvent(Event{Type: EventAuxStatusUpdate, Data: payload}, c)
	case frameCallOffer, frameCallAnswer, frameICE, frameCallEnd:
		// 原样转发给其他连接。服务器不记录通话状态，也不校验 roomId
		// 归属，收到的客户端对照自己绑定的通话房间自行取舍。
		r.hub.relay(raw, c)
	default:
		// 未知类型静默忽略
	}
}
