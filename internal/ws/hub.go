package ws

import (
	"encoding/json"
	"sync/atomic"

	"taskhub/internal/metrics"

	"github.com/rs/zerolog/log"
)

// outbound 是一次待下发的数据帧；skip 不为空时跳过来源连接（转发场景）。
type outbound struct {
	data []byte
	skip *Conn
}

// Hub 管理全部实时连接并做无差别广播。没有按房间的路由：
// 每个连接收到所有事件，由客户端按 roomId 自行过滤。
type Hub struct {
	register   chan *Conn
	unregister chan *Conn
	out        chan outbound
	conns      map[*Conn]bool
	online     int32
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Conn),
		unregister: make(chan *Conn),
		out:        make(chan outbound, 256),
		conns:      make(map[*Conn]bool),
	}
}

// Run 是 hub 的事件循环，conns 只在这个 goroutine 里被读写。
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.conns[c] = true
			atomic.StoreInt32(&h.online, int32(len(h.conns)))
			metrics.WsConnections.Inc()
			log.Debug().Int("online", len(h.conns)).Msg("ws connection admitted")
		case c := <-h.unregister:
			if _, ok := h.conns[c]; ok {
				delete(h.conns, c)
				close(c.send)
				atomic.StoreInt32(&h.online, int32(len(h.conns)))
				metrics.WsConnections.Dec()
			}
		case o := <-h.out:
			for c := range h.conns {
				if c == o.skip || !c.isOpen() {
					continue
				}
				select {
				case c.send <- o.data:
				default:
					// 单个连接写不进去不能拖垮整次广播：丢掉这个客户端继续
					close(c.send)
					delete(h.conns, c)
					atomic.StoreInt32(&h.online, int32(len(h.conns)))
					metrics.WsConnections.Dec()
				}
			}
		}
	}
}

// Broadcast 序列化一次事件并推给所有连接。
func (h *Hub) Broadcast(evt Event) {
	b, err := json.Marshal(evt)
	if err != nil {
		log.Error().Err(err).Str("type", evt.Type).Msg("marshal broadcast event")
		return
	}
	metrics.WsBroadcastsTotal.WithLabelValues(evt.Type).Inc()
	h.out <- outbound{data: b}
}

// relay 把一帧原始数据转发给除来源外的所有连接。
func (h *Hub) relay(raw []byte, from *Conn) {
	h.out <- outbound{data: raw, skip: from}
}

// relayEvent 同 relay，但先包装成 {type, data} 事件。
func (h *Hub) relayEvent(evt Event, from *Conn) {
	b, err := json.Marshal(evt)
	if err != nil {
		log.Error().Err(err).Str("type", evt.Type).Msg("marshal relay event")
		return
	}
	metrics.WsBroadcastsTotal.WithLabelValues(evt.Type).Inc()
	h.out <- outbound{data: b, skip: from}
}

// Online 返回当前连接数，供 REST 接口复用。
func (h *Hub) Online() int { return int(atomic.LoadInt32(&h.online)) }
