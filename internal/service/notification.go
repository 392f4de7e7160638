package service

import (
	"encoding/json"
	"errors"
	"time"

	"taskhub/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationService 封装用户通知的业务逻辑。
// 通知只会被创建和标记已读，不会被删除。
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// NotificationDTO 是对外输出的通知数据。
type NotificationDTO struct {
	ID        uint           `json:"id"`
	UserID    uint           `json:"user_id"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Type      string         `json:"type"`
	Read      bool           `json:"read"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func notificationDTO(n *models.Notification) *NotificationDTO {
	dto := &NotificationDTO{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
	if len(n.Metadata) > 0 {
		_ = json.Unmarshal(n.Metadata, &dto.Metadata)
	}
	return dto
}

// Create 创建一条通知。metadata 可携带跳转地址、关联实体 id 等。
func (s *NotificationService) Create(userID uint, title, message, typ string, metadata map[string]any) (*NotificationDTO, error) {
	n := models.Notification{UserID: userID, Title: title, Message: message, Type: typ}
	if len(metadata) > 0 {
		b, err := json.Marshal(metadata)
		if err != nil {
			return nil, err
		}
		n.Metadata = datatypes.JSON(b)
	}
	if err := s.db.Create(&n).Error; err != nil {
		return nil, err
	}
	return notificationDTO(&n), nil
}

// ListByUser 返回用户的通知，按时间倒序。
func (s *NotificationService) ListByUser(userID uint, limit int, unreadOnly bool) ([]NotificationDTO, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	var rows []models.Notification
	if err := q.Order("id desc").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]NotificationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *notificationDTO(&rows[i]))
	}
	return out, nil
}

// MarkRead 把单条通知置为已读，只能操作自己的通知。
func (s *NotificationService) MarkRead(id, userID uint) error {
	var n models.Notification
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return s.db.Model(&n).Update("read", true).Error
}

// MarkTypeRead 按类别批量置已读，用于打开聊天页时清掉聊天类通知。
func (s *NotificationService) MarkTypeRead(userID uint, typ string) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ? AND read = ?", userID, typ, false).
		Update("read", true).Error
}

// UnreadCount 返回未读通知数。
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).Where("user_id = ? AND read = ?", userID, false).Count(&count).Error
	return count, err
}
