package service

import (
	"encoding/json"
	"errors"
	"time"

	"taskhub/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MessageService 封装消息相关的业务逻辑。
type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// Attachment 是消息附件描述。
type Attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
}

// MessageDTO 是对外输出的消息数据。
type MessageDTO struct {
	ID          uint         `json:"id"`
	RoomID      uint         `json:"room_id"`
	SenderID    uint         `json:"sender_id"`
	SenderName  string       `json:"sender_name"`
	Content     string       `json:"content"`
	Kind        string       `json:"kind"`
	Attachments []Attachment `json:"attachments,omitempty"`
	ReplyToID   *uint        `json:"reply_to_id,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (s *MessageService) toDTO(m *models.Message, senderName string) *MessageDTO {
	dto := &MessageDTO{
		ID:         m.ID,
		RoomID:     m.RoomID,
		SenderID:   m.SenderID,
		SenderName: senderName,
		Content:    m.Content,
		Kind:       m.Kind,
		ReplyToID:  m.ReplyToID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if len(m.Attachments) > 0 {
		// 解不开的附件列表按空处理，消息本体照常返回
		_ = json.Unmarshal(m.Attachments, &dto.Attachments)
	}
	return dto
}

// Create 落库一条新消息。正文为空时必须带附件。
func (s *MessageService) Create(roomID, senderID uint, content, kind string, attachments []Attachment, replyToID *uint) (*MessageDTO, error) {
	if content == "" && len(attachments) == 0 {
		return nil, ErrEmptyMessage
	}
	if kind == "" {
		kind = models.MessageKindText
	}
	var room models.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		return nil, ErrRoomNotFound
	}
	if replyToID != nil {
		var target models.Message
		if err := s.db.Where("id = ? AND room_id = ?", *replyToID, roomID).First(&target).Error; err != nil {
			return nil, ErrReplyNotFound
		}
	}
	msg := models.Message{RoomID: roomID, SenderID: senderID, Content: content, Kind: kind, ReplyToID: replyToID}
	if len(attachments) > 0 {
		b, err := json.Marshal(attachments)
		if err != nil {
			return nil, err
		}
		msg.Attachments = datatypes.JSON(b)
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	name, err := s.username(senderID)
	if err != nil {
		return nil, err
	}
	return s.toDTO(&msg, name), nil
}

// ListByRoom 分页查询指定房间的消息，按 id 升序返回。
func (s *MessageService) ListByRoom(roomID uint, limit int, beforeID uint) ([]MessageDTO, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := s.db.Where("room_id = ?", roomID)
	if beforeID > 0 {
		q = q.Where("id < ?", beforeID)
	}
	var msgs []models.Message
	if err := q.Order("id desc").Limit(limit).Find(&msgs).Error; err != nil {
		return nil, err
	}
	// 反转为升序
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	usernames, err := s.resolveUsernames(msgs)
	if err != nil {
		return nil, err
	}
	out := make([]MessageDTO, 0, len(msgs))
	for i := range msgs {
		out = append(out, *s.toDTO(&msgs[i], usernames[msgs[i].SenderID]))
	}
	return out, nil
}

// Edit 替换消息正文，仅发送者本人可改。
func (s *MessageService) Edit(messageID, senderID uint, content string) (*MessageDTO, error) {
	var msg models.Message
	if err := s.db.First(&msg, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	if msg.SenderID != senderID {
		return nil, ErrNotSender
	}
	if content == "" && len(msg.Attachments) == 0 {
		return nil, ErrEmptyMessage
	}
	if err := s.db.Model(&msg).Update("content", content).Error; err != nil {
		return nil, err
	}
	name, err := s.username(msg.SenderID)
	if err != nil {
		return nil, err
	}
	return s.toDTO(&msg, name), nil
}

// Delete 硬删除消息及其表情回应，仅发送者本人可删。
func (s *MessageService) Delete(messageID, senderID uint) error {
	var msg models.Message
	if err := s.db.First(&msg, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return err
	}
	if msg.SenderID != senderID {
		return ErrNotSender
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", messageID).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&msg).Error
	})
}

func (s *MessageService) username(userID uint) (string, error) {
	var user models.User
	if err := s.db.Select("id", "username").First(&user, userID).Error; err != nil {
		return "", err
	}
	return user.Username, nil
}

// resolveUsernames 批量获取消息涉及的发送者用户名。
func (s *MessageService) resolveUsernames(msgs []models.Message) (map[uint]string, error) {
	seen := make(map[uint]struct{}, len(msgs))
	userIDs := make([]uint, 0, len(msgs))
	for _, m := range msgs {
		if _, ok := seen[m.SenderID]; ok {
			continue
		}
		seen[m.SenderID] = struct{}{}
		userIDs = append(userIDs, m.SenderID)
	}
	usernames := make(map[uint]string, len(userIDs))
	if len(userIDs) > 0 {
		var users []models.User
		if err := s.db.Select("id", "username").Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			usernames[u.ID] = u.Username
		}
	}
	return usernames, nil
}
