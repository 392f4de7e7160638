package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"taskhub/internal/auth"
	"taskhub/internal/service"
	"taskhub/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Handler 聚合所有 HTTP handler，依赖注入 service 层和广播 hub。
// 每个写操作都遵守同一个顺序：先落库，成功后才广播对应事件。
type Handler struct {
	userSvc  *service.UserService
	roomSvc  *service.RoomService
	msgSvc   *service.MessageService
	reactSvc *service.ReactionService
	notifSvc *service.NotificationService
	meetSvc  *service.MeetingService
	presSvc  *service.PresenceService
	hub      *ws.Hub
}

func NewHandler(
	userSvc *service.UserService,
	roomSvc *service.RoomService,
	msgSvc *service.MessageService,
	reactSvc *service.ReactionService,
	notifSvc *service.NotificationService,
	meetSvc *service.MeetingService,
	presSvc *service.PresenceService,
	hub *ws.Hub,
) *Handler {
	return &Handler{
		userSvc:  userSvc,
		roomSvc:  roomSvc,
		msgSvc:   msgSvc,
		reactSvc: reactSvc,
		notifSvc: notifSvc,
		meetSvc:  meetSvc,
		presSvc:  presSvc,
		hub:      hub,
	}
}

// Register 处理用户注册请求。
func (h *Handler) Register(c *gin.Context) {
	var req struct {
		Username   string `json:"username"`
		Password   string `json:"password"`
		FullName   string `json:"full_name"`
		Department string `json:"department"`
		Position   string `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if len(req.Username) < 2 || len(req.Username) > 64 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid username"})
		return
	}
	if len(req.Password) < 4 || len(req.Password) > 128 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid password"})
		return
	}
	result, err := h.userSvc.Register(req.Username, req.Password, req.FullName, req.Department, req.Position)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "username taken"})
			return
		}
		log.Error().Err(err).Str("username", req.Username).Msg("register")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Login 处理用户登录请求。
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	result, err := h.userSvc.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		log.Error().Err(err).Str("username", req.Username).Msg("login")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"user":          gin.H{"id": result.User.ID, "username": result.User.Username, "full_name": result.User.FullName},
	})
}

// RefreshToken 处理 token 刷新请求。
func (h *Handler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	result, err := h.userSvc.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("refresh token")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": result.AccessToken, "refresh_token": result.RefreshToken})
}

// Directory 返回公司通讯录。
func (h *Handler) Directory(c *gin.Context) {
	users, err := h.userSvc.Directory(200)
	if err != nil {
		log.Error().Err(err).Msg("directory")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// CreateRoom 创建群聊房间。
func (h *Handler) CreateRoom(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		MemberIDs []uint `json:"member_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len(req.Name) > 128 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room name"})
		return
	}
	room, err := h.roomSvc.Create(req.Name, auth.GetUserID(c), req.MemberIDs)
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("create room")
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to create room"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room})
}

// GetOrCreatePrivateRoom 取或建当前用户与目标用户的 1:1 房间。
func (h *Handler) GetOrCreatePrivateRoom(c *gin.Context) {
	var req struct {
		UserID uint `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	room, err := h.roomSvc.GetOrCreatePrivate(auth.GetUserID(c), req.UserID)
	if err != nil {
		log.Error().Err(err).Uint("peer_id", req.UserID).Msg("get or create private room")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open chat"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room})
}

// ListRooms 返回当前用户所在的房间列表。
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.roomSvc.ListForUser(auth.GetUserID(c), 100)
	if err != nil {
		log.Error().Err(err).Msg("list rooms")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms, "online": h.hub.Online()})
}

// UpdateRoom 修改房间名称或头像。
func (h *Handler) UpdateRoom(c *gin.Context) {
	roomID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Name     string `json:"name"`
		PhotoURL string `json:"photo_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	room, err := h.roomSvc.Update(roomID, strings.TrimSpace(req.Name), req.PhotoURL)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		log.Error().Err(err).Uint("room_id", roomID).Msg("update room")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update room"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room})
}

// DeleteRoom 删除房间。
func (h *Handler) DeleteRoom(c *gin.Context) {
	roomID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.roomSvc.Delete(roomID); err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		log.Error().Err(err).Uint("room_id", roomID).Msg("delete room")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete room"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// AddMember 把用户加入房间。
func (h *Handler) AddMember(c *gin.Context) {
	roomID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		UserID uint `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := h.roomSvc.AddMember(roomID, req.UserID); err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		log.Error().Err(err).Uint("room_id", roomID).Uint("user_id", req.UserID).Msg("add member")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add member"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": true})
}

// RemoveMember 把用户移出房间。
func (h *Handler) RemoveMember(c *gin.Context) {
	roomID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	if err := h.roomSvc.RemoveMember(roomID, uint(userID)); err != nil {
		if errors.Is(err, service.ErrNotMember) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not a member"})
			return
		}
		log.Error().Err(err).Uint("room_id", roomID).Msg("remove member")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove member"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

// ListMembers 返回房间成员列表。
func (h *Handler) ListMembers(c *gin.Context) {
	roomID, ok := paramID(c, "id")
	if !ok {
		return
	}
	members, err := h.roomSvc.Members(roomID)
	if err != nil {
		log.Error().Err(err).Uint("room_id", roomID).Msg("list members")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list members"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// ListMessages 处理获取房间消息列表请求。
func (h *Handler) ListMessages(c *gin.Context) {
	roomID, ok := paramID(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	var beforeID uint
	if bid := c.Query("before_id"); bid != "" {
		if v, err := strconv.Atoi(bid); err == nil && v > 0 {
			beforeID = uint(v)
		}
	}
	msgs, err := h.msgSvc.ListByRoom(roomID, limit, beforeID)
	if err != nil {
		log.Error().Err(err).Uint("room_id", roomID).Msg("list messages")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// SendMessage 落库新消息，成功后广播 new_message 并给其他成员发通知。
func (h *Handler) SendMessage(c *gin.Context) {
	roomID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Content     string               `json:"content"`
		Kind        string               `json:"kind"`
		Attachments []service.Attachment `json:"attachments"`
		ReplyToID   *uint                `json:"reply_to_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	senderID := auth.GetUserID(c)
	msg, err := h.msgSvc.Create(roomID, senderID, req.Content, req.Kind, req.Attachments, req.ReplyToID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "message needs content or attachments"})
		case errors.Is(err, service.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, service.ErrReplyNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "reply target not found"})
		default:
			log.Error().Err(err).Uint("room_id", roomID).Msg("send message")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		}
		return
	}
	h.hub.Broadcast(ws.Event{Type: ws.EventNewMessage, Data: msg})
	h.notifyRoomMembers(roomID, senderID, msg)
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// notifyRoomMembers 给房间内其他成员创建聊天通知并广播。
// 消息本身已经提交，这里失败只记日志不回滚。
func (h *Handler) notifyRoomMembers(roomID, senderID uint, msg *service.MessageDTO) {
	ids, err := h.roomSvc.MemberIDs(roomID)
	if err != nil {
		log.Warn().Err(err).Uint("room_id", roomID).Msg("notify members: list")
		return
	}
	meta := map[string]any{
		"type":         "chat_message",
		"room_id":      roomID,
		"message_id":   msg.ID,
		"redirect_url": fmt.Sprintf("/chat/%d", roomID),
	}
	for _, id := range ids {
		if id == senderID {
			continue
		}
		n, err := h.notifSvc.Create(id, "New message", msg.SenderName+" sent a message", "chat", meta)
		if err != nil {
			log.Warn().Err(err).Uint("user_id", id).Msg("notify members: create")
			continue
		}
		h.hub.Broadcast(ws.Event{Type: ws.EventNewNotification, Data: n})
	}
}

// EditMessage 替换消息正文，成功后广播 message_updated。
func (h *Handler) EditMessage(c *gin.Context) {
	msgID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	msg, err := h.msgSvc.Edit(msgID, auth.GetUserID(c), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMessageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		case errors.Is(err, service.ErrNotSender):
			c.JSON(http.StatusForbidden, gin.H{"error": "not the sender"})
		case errors.Is(err, service.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "message needs content or attachments"})
		default:
			log.Error().Err(err).Uint("message_id", msgID).Msg("edit message")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to edit message"})
		}
		return
	}
	h.hub.Broadcast(ws.Event{Type: ws.EventMessageUpdated, Data: msg})
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// DeleteMessage 硬删除消息，成功后广播 message_deleted。
func (h *Handler) DeleteMessage(c *gin.Context) {
	msgID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.msgSvc.Delete(msgID, auth.GetUserID(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrMessageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		case errors.Is(err, service.ErrNotSender):
			c.JSON(http.StatusForbidden, gin.H{"error": "not the sender"})
		default:
			log.Error().Err(err).Uint("message_id", msgID).Msg("delete message")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete message"})
		}
		return
	}
	h.hub.Broadcast(ws.Event{Type: ws.EventMessageDeleted, Data: gin.H{"messageId": msgID}})
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// AddReaction 添加表情回应，成功后广播 reaction_added。
func (h *Handler) AddReaction(c *gin.Context) {
	msgID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Emoji string `json:"emoji"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Emoji == "" || len(req.Emoji) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid emoji"})
		return
	}
	r, err := h.reactSvc.Add(msgID, auth.GetUserID(c), req.Emoji)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}
		log.Error().Err(err).Uint("message_id", msgID).Msg("add reaction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add reaction"})
		return
	}
	h.hub.Broadcast(ws.Event{Type: ws.EventReactionAdded, Data: r})
	c.JSON(http.StatusOK, gin.H{"reaction": r})
}

// RemoveReaction 删除表情回应，成功后广播 reaction_removed。
func (h *Handler) RemoveReaction(c *gin.Context) {
	msgID, ok := paramID(c, "id")
	if !ok {
		return
	}
	emoji := c.Query("emoji")
	if emoji == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid emoji"})
		return
	}
	userID := auth.GetUserID(c)
	if err := h.reactSvc.Remove(msgID, userID, emoji); err != nil {
		if errors.Is(err, service.ErrReactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reaction not found"})
			return
		}
		log.Error().Err(err).Uint("message_id", msgID).Msg("remove reaction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove reaction"})
		return
	}
	h.hub.Broadcast(ws.Event{Type: ws.EventReactionRemoved, Data: gin.H{"messageId": msgID, "userId": userID, "emoji": emoji}})
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

// ListReactions 返回消息的表情回应聚合。
func (h *Handler) ListReactions(c *gin.Context) {
	msgID, ok := paramID(c, "id")
	if !ok {
		return
	}
	groups, err := h.reactSvc.ListByMessage(msgID)
	if err != nil {
		log.Error().Err(err).Uint("message_id", msgID).Msg("list reactions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reactions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reactions": groups})
}

// ListNotifications 返回当前用户的通知。mark_type 参数同时把
// 该类别批量置已读（打开聊天页时清掉聊天通知用）。
func (h *Handler) ListNotifications(c *gin.Context) {
	userID := auth.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	unreadOnly := c.Query("unread") == "true"
	if mt := c.Query("mark_type"); mt != "" {
		if err := h.notifSvc.MarkTypeRead(userID, mt); err != nil {
			log.Warn().Err(err).Str("type", mt).Msg("mark type read")
		}
	}
	rows, err := h.notifSvc.ListByUser(userID, limit, unreadOnly)
	if err != nil {
		log.Error().Err(err).Msg("list notifications")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}
	count, err := h.notifSvc.UnreadCount(userID)
	if err != nil {
		log.Error().Err(err).Msg("unread count")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": rows, "unread": count})
}

// CreateNotification 给目标用户推送一条通知（任务指派、请假审批等
// 外围模块调用），成功后广播 new_notification。
func (h *Handler) CreateNotification(c *gin.Context) {
	var req struct {
		UserID   uint           `json:"user_id"`
		Title    string         `json:"title"`
		Message  string         `json:"message"`
		Type     string         `json:"type"`
		Metadata map[string]any `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	n, err := h.notifSvc.Create(req.UserID, req.Title, req.Message, req.Type, req.Metadata)
	if err != nil {
		log.Error().Err(err).Uint("user_id", req.UserID).Msg("create notification")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create notification"})
		return
	}
	h.hub.Broadcast(ws.Event{Type: ws.EventNewNotification, Data: n})
	c.JSON(http.StatusOK, gin.H{"notification": n})
}

// MarkNotificationRead 把单条通知置为已读。
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.notifSvc.MarkRead(id, auth.GetUserID(c)); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		log.Error().Err(err).Uint("notification_id", id).Msg("mark read")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}

// CreateMeeting 创建会议：广播 new_meeting，并往房间里发一条
// meeting_link 消息方便成员点击入会。
func (h *Handler) CreateMeeting(c *gin.Context) {
	roomID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Title    string    `json:"title"`
		StartsAt time.Time `json:"starts_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	creatorID := auth.GetUserID(c)
	meeting, err := h.meetSvc.Create(roomID, creatorID, req.Title, req.StartsAt)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		log.Error().Err(err).Uint("room_id", roomID).Msg("create meeting")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create meeting"})
		return
	}
	h.hub.Broadcast(ws.Event{Type: ws.EventNewMeeting, Data: meeting})
	msg, err := h.msgSvc.Create(roomID, creatorID, meeting.JoinURL, "meeting_link", nil, nil)
	if err != nil {
		log.Warn().Err(err).Uint("meeting_id", meeting.ID).Msg("post meeting link")
	} else {
		h.hub.Broadcast(ws.Event{Type: ws.EventNewMessage, Data: msg})
	}
	c.JSON(http.StatusOK, gin.H{"meeting": meeting})
}

// ListMeetings 返回房间的会议列表。
func (h *Handler) ListMeetings(c *gin.Context) {
	roomID, ok := paramID(c, "id")
	if !ok {
		return
	}
	meetings, err := h.meetSvc.ListByRoom(roomID, 50)
	if err != nil {
		log.Error().Err(err).Uint("room_id", roomID).Msg("list meetings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list meetings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meetings": meetings})
}

// ClockIn 开始工作会话。在岗状态由 presence ticker 周期性广播，
// 这里不直接推送。
func (h *Handler) ClockIn(c *gin.Context) {
	session, err := h.presSvc.ClockIn(auth.GetUserID(c))
	if err != nil {
		log.Error().Err(err).Msg("clock in")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clock in"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": session.ID, "clock_in": session.ClockIn})
}

// ClockOut 结束工作会话。
func (h *Handler) ClockOut(c *gin.Context) {
	session, err := h.presSvc.ClockOut(auth.GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrNotClockedIn) {
			c.JSON(http.StatusConflict, gin.H{"error": "not clocked in"})
			return
		}
		log.Error().Err(err).Msg("clock out")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clock out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": session.ID, "clock_out": session.ClockOut})
}

func paramID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(v), true
}
