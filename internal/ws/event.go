package ws

// Event 是服务器推送给实时连接的事件封装，统一为 {type, data} 形状。
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// 出站事件类型。客户端收到后只把它当作刷新对应读查询的提示，
// 轮询通道仍然是最终一致性的来源。
const (
	EventNewMessage      = "new_message"
	EventMessageUpdated  = "message_updated"
	EventMessageDeleted  = "message_deleted"
	EventReactionAdded   = "reaction_added"
	EventReactionRemoved = "reaction_removed"
	EventNewNotification = "new_notification"
	EventNewMeeting      = "new_meeting"
	EventAuxStatusUpdate = "aux_status_update"
	EventEmployeeStatus  = "employee_status_update"
)

// 入站帧类型。call_* 帧会被原样转发给其他连接。
const (
	frameSubscribe  = "subscribe"
	frameAuxUpdate  = "aux_update"
	frameCallOffer  = "call_offer"
	frameCallAnswer = "call_answer"
	frameICE        = "ice_candidate"
	frameCallEnd    = "call_end"
)
