package service

import (
	"fmt"
	"time"

	"taskhub/internal/models"

	"gorm.io/gorm"
)

// MeetingService 封装会议邀请的业务逻辑。会议只是一条带链接的
// 记录，真正的音视频通话走 /ws 上的信令转发。
type MeetingService struct {
	db *gorm.DB
}

func NewMeetingService(db *gorm.DB) *MeetingService {
	return &MeetingService{db: db}
}

// MeetingDTO 是对外输出的会议数据。
type MeetingDTO struct {
	ID        uint      `json:"id"`
	RoomID    uint      `json:"room_id"`
	CreatorID uint      `json:"creator_id"`
	Title     string    `json:"title"`
	JoinURL   string    `json:"join_url"`
	StartsAt  time.Time `json:"starts_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Create 创建会议并生成入会链接。
func (s *MeetingService) Create(roomID, creatorID uint, title string, startsAt time.Time) (*MeetingDTO, error) {
	var room models.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		return nil, ErrRoomNotFound
	}
	if startsAt.IsZero() {
		startsAt = time.Now()
	}
	m := models.Meeting{RoomID: roomID, CreatorID: creatorID, Title: title, StartsAt: startsAt}
	if err := s.db.Create(&m).Error; err != nil {
		return nil, err
	}
	m.JoinURL = fmt.Sprintf("/meet/%d", m.ID)
	if err := s.db.Model(&m).Update("join_url", m.JoinURL).Error; err != nil {
		return nil, err
	}
	return &MeetingDTO{
		ID:        m.ID,
		RoomID:    m.RoomID,
		CreatorID: m.CreatorID,
		Title:     m.Title,
		JoinURL:   m.JoinURL,
		StartsAt:  m.StartsAt,
		CreatedAt: m.CreatedAt,
	}, nil
}

// ListByRoom 返回房间的会议列表，按开始时间倒序。
func (s *MeetingService) ListByRoom(roomID uint, limit int) ([]MeetingDTO, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var rows []models.Meeting
	if err := s.db.Where("room_id = ?", roomID).Order("starts_at desc").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]MeetingDTO, 0, len(rows))
	for _, m := range rows {
		out = append(out, MeetingDTO{
			ID:        m.ID,
			RoomID:    m.RoomID,
			CreatorID: m.CreatorID,
			Title:     m.Title,
			JoinURL:   m.JoinURL,
			StartsAt:  m.StartsAt,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}
