package service

import (
	"time"

	"taskhub/internal/models"

	"gorm.io/gorm"
)

// ReactionService 封装表情回应的业务逻辑。
type ReactionService struct {
	db *gorm.DB
}

func NewReactionService(db *gorm.DB) *ReactionService {
	return &ReactionService{db: db}
}

// ReactionDTO 是对外输出的单条表情回应。
type ReactionDTO struct {
	ID        uint      `json:"id"`
	MessageID uint      `json:"message_id"`
	UserID    uint      `json:"user_id"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}

// ReactionGroup 是按 emoji 聚合后的视图，前端展示 emoji+计数。
type ReactionGroup struct {
	Emoji   string `json:"emoji"`
	Count   int    `json:"count"`
	UserIDs []uint `json:"user_ids"`
}

// Add 给消息添加表情回应。写入路径不做 (message, user, emoji) 去重，
// 同一用户重复添加会产生多行，这是沿用的现状行为。
func (s *ReactionService) Add(messageID, userID uint, emoji string) (*ReactionDTO, error) {
	var msg models.Message
	if err := s.db.First(&msg, messageID).Error; err != nil {
		return nil, ErrMessageNotFound
	}
	r := models.Reaction{MessageID: messageID, UserID: userID, Emoji: emoji}
	if err := s.db.Create(&r).Error; err != nil {
		return nil, err
	}
	return &ReactionDTO{ID: r.ID, MessageID: r.MessageID, UserID: r.UserID, Emoji: r.Emoji, CreatedAt: r.CreatedAt}, nil
}

// Remove 按 (message, user, emoji) 三元组删除表情回应。
func (s *ReactionService) Remove(messageID, userID uint, emoji string) error {
	res := s.db.Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, userID, emoji).Delete(&models.Reaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrReactionNotFound
	}
	return nil
}

// ListByMessage 返回消息的表情回应聚合视图。
func (s *ReactionService) ListByMessage(messageID uint) ([]ReactionGroup, error) {
	var rows []models.Reaction
	if err := s.db.Where("message_id = ?", messageID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	byEmoji := make(map[string]*ReactionGroup)
	order := make([]string, 0)
	for _, r := range rows {
		g, ok := byEmoji[r.Emoji]
		if !ok {
			g = &ReactionGroup{Emoji: r.Emoji}
			byEmoji[r.Emoji] = g
			order = append(order, r.Emoji)
		}
		g.Count++
		g.UserIDs = append(g.UserIDs, r.UserID)
	}
	out := make([]ReactionGroup, 0, len(order))
	for _, e := range order {
		out = append(out, *byEmoji[e])
	}
	return out, nil
}
