package presence

import (
	"time"

	"taskhub/internal/ws"

	"github.com/rs/zerolog/log"
)

// SnapshotFunc 计算一次“当前在岗”用户快照。
type SnapshotFunc func() (any, error)

// Broadcaster 是 ticker 对外推送的最小接口。
type Broadcaster interface {
	Broadcast(ws.Event)
}

// Ticker 按固定间隔推送 employee_status_update 快照。
// 无条件推送：不做变更检测，有没有变化都发全量。
type Ticker struct {
	interval time.Duration
	snapshot SnapshotFunc
	hub      Broadcaster
	stop     chan struct{}
}

func NewTicker(interval time.Duration, snapshot SnapshotFunc, hub Broadcaster) *Ticker {
	return &Ticker{interval: interval, snapshot: snapshot, hub: hub, stop: make(chan struct{})}
}

// Run 驱动定时循环。快照计算失败只跳过本次 tick，循环不会停。
func (t *Ticker) Run() {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			snap, err := t.snapshot()
			if err != nil {
				log.Warn().Err(err).Msg("presence snapshot failed, skip tick")
				continue
			}
			t.hub.Broadcast(ws.Event{Type: ws.EventEmployeeStatus, Data: snap})
		}
	}
}

// Stop 停止定时循环，用于优雅停服。
func (t *Ticker) Stop() {
	select {
	case <-t.stop:
	default:
		close(t.stop)
	}
}
