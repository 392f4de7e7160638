package models

import (
	"time"

	"gorm.io/datatypes"
)

// 房间类型与消息类型的取值集合，持久层只存字符串。
const (
	RoomKindPrivate = "private"
	RoomKindGroup   = "group"

	MessageKindText    = "text"
	MessageKindFile    = "file"
	MessageKindVoice   = "voice"
	MessageKindMeeting = "meeting_link"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string `gorm:"not null"`
	FullName     string `gorm:"size:128"`
	Department   string `gorm:"size:64"`
	Position     string `gorm:"size:64"`
	Active       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Room struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:128"`
	Kind      string  `gorm:"size:16;not null;default:group"`
	PhotoURL  string  `gorm:"size:512"`
	PairKey   *string `gorm:"uniqueIndex;size:64"` // 仅 private 房间，规范化的成员对
	CreatedAt time.Time
	UpdatedAt time.Time
}

type RoomMember struct {
	ID        uint `gorm:"primaryKey"`
	RoomID    uint `gorm:"uniqueIndex:idx_room_user;not null"`
	UserID    uint `gorm:"uniqueIndex:idx_room_user;index;not null"`
	CreatedAt time.Time
}

type Message struct {
	ID          uint   `gorm:"primaryKey"`
	RoomID      uint   `gorm:"index:idx_msg_room;not null"`
	SenderID    uint   `gorm:"index;not null"`
	Content     string `gorm:"type:text"`
	Kind        string `gorm:"size:16;not null;default:text"`
	Attachments datatypes.JSON
	ReplyToID   *uint `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Reaction 没有 (message_id, user_id, emoji) 唯一约束：
// 同一用户可以对同一条消息重复添加相同 emoji，这是现状行为而非保证。
type Reaction struct {
	ID        uint   `gorm:"primaryKey"`
	MessageID uint   `gorm:"index;not null"`
	UserID    uint   `gorm:"index;not null"`
	Emoji     string `gorm:"size:32;not null"`
	CreatedAt time.Time
}

type Notification struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Title     string `gorm:"size:255;not null"`
	Message   string `gorm:"type:text"`
	Type      string `gorm:"size:64"`
	Read      bool   `gorm:"not null;default:false"`
	Metadata  datatypes.JSON
	CreatedAt time.Time
}

type Meeting struct {
	ID        uint   `gorm:"primaryKey"`
	RoomID    uint   `gorm:"index;not null"`
	CreatorID uint   `gorm:"not null"`
	Title     string `gorm:"size:255"`
	JoinURL   string `gorm:"size:512"`
	StartsAt  time.Time
	CreatedAt time.Time
}

// WorkSession 记录一次打卡：ClockOut 为空表示仍在工作中。
type WorkSession struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"index;not null"`
	ClockIn   time.Time  `gorm:"not null"`
	ClockOut  *time.Time `gorm:"index"`
	CreatedAt time.Time
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Token     string    `gorm:"uniqueIndex;size:128;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	RevokedAt *time.Time
	CreatedAt time.Time
}
