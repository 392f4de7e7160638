package service

import (
	"errors"
	"time"

	"taskhub/internal/models"

	"gorm.io/gorm"
)

// PresenceService 管理打卡会话，并为 presence ticker 提供
// “当前在岗”全量快照。
type PresenceService struct {
	db *gorm.DB
}

func NewPresenceService(db *gorm.DB) *PresenceService {
	return &PresenceService{db: db}
}

// ActiveUser 是快照里的一个在岗用户。
type ActiveUser struct {
	UserID     uint      `json:"user_id"`
	Username   string    `json:"username"`
	FullName   string    `json:"full_name"`
	Department string    `json:"department"`
	ClockIn    time.Time `json:"clock_in"`
}

// ClockIn 开始一次工作会话；已有未结束会话时直接复用。
func (s *PresenceService) ClockIn(userID uint) (*models.WorkSession, error) {
	var open models.WorkSession
	err := s.db.Where("user_id = ? AND clock_out IS NULL", userID).First(&open).Error
	if err == nil {
		return &open, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	ws := models.WorkSession{UserID: userID, ClockIn: time.Now()}
	if err := s.db.Create(&ws).Error; err != nil {
		return nil, err
	}
	return &ws, nil
}

// ClockOut 结束当前工作会话。
func (s *PresenceService) ClockOut(userID uint) (*models.WorkSession, error) {
	var open models.WorkSession
	err := s.db.Where("user_id = ? AND clock_out IS NULL", userID).First(&open).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotClockedIn
		}
		return nil, err
	}
	now := time.Now()
	if err := s.db.Model(&open).Update("clock_out", &now).Error; err != nil {
		return nil, err
	}
	open.ClockOut = &now
	return &open, nil
}

// ActiveSnapshot 计算当前在岗用户的全量快照：
// 未结束的工作会话关联在职用户。
func (s *PresenceService) ActiveSnapshot() ([]ActiveUser, error) {
	var out []ActiveUser
	err := s.db.Table("work_sessions").
		Select("work_sessions.user_id, users.username, users.full_name, users.department, work_sessions.clock_in").
		Joins("JOIN users ON users.id = work_sessions.user_id").
		Where("work_sessions.clock_out IS NULL AND users.active = ?", true).
		Order("work_sessions.user_id").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
