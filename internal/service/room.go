package service

import (
	"errors"
	"fmt"

	"taskhub/internal/models"

	"gorm.io/gorm"
)

// RoomService 封装房间与成员关系的业务逻辑。
type RoomService struct {
	db *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{db: db}
}

// RoomDTO 是对外输出的房间数据。
type RoomDTO struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// MemberDTO 是对外输出的房间成员数据。
type MemberDTO struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
}

func roomDTO(r *models.Room) *RoomDTO {
	return &RoomDTO{ID: r.ID, Name: r.Name, Kind: r.Kind, PhotoURL: r.PhotoURL}
}

// pairKey 把无序的用户对规范化成唯一键，private 房间按它去重。
func pairKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("p:%d:%d", a, b)
}

// Create 创建群聊房间，创建者自动入群。
func (s *RoomService) Create(name string, creatorID uint, memberIDs []uint) (*RoomDTO, error) {
	room := models.Room{Name: name, Kind: models.RoomKindGroup}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		seen := map[uint]struct{}{creatorID: {}}
		members := []models.RoomMember{{RoomID: room.ID, UserID: creatorID}}
		for _, id := range memberIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			members = append(members, models.RoomMember{RoomID: room.ID, UserID: id})
		}
		return tx.Create(&members).Error
	})
	if err != nil {
		return nil, err
	}
	return roomDTO(&room), nil
}

// GetOrCreatePrivate 按无序用户对取或建 1:1 房间，幂等。
func (s *RoomService) GetOrCreatePrivate(a, b uint) (*RoomDTO, error) {
	key := pairKey(a, b)
	var room models.Room
	err := s.db.Where("pair_key = ?", key).First(&room).Error
	if err == nil {
		return roomDTO(&room), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	room = models.Room{Kind: models.RoomKindPrivate, PairKey: &key}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		members := []models.RoomMember{{RoomID: room.ID, UserID: a}}
		if a != b {
			members = append(members, models.RoomMember{RoomID: room.ID, UserID: b})
		}
		return tx.Create(&members).Error
	})
	if err != nil {
		// 并发创建时唯一索引兜底，再查一次
		var again models.Room
		if err2 := s.db.Where("pair_key = ?", key).First(&again).Error; err2 == nil {
			return roomDTO(&again), nil
		}
		return nil, err
	}
	return roomDTO(&room), nil
}

// ListForUser 返回用户所在的全部房间。
func (s *RoomService) ListForUser(userID uint, limit int) ([]RoomDTO, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	var rooms []models.Room
	err := s.db.
		Joins("JOIN room_members ON room_members.room_id = rooms.id").
		Where("room_members.user_id = ?", userID).
		Order("rooms.id desc").Limit(limit).
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	out := make([]RoomDTO, 0, len(rooms))
	for i := range rooms {
		out = append(out, *roomDTO(&rooms[i]))
	}
	return out, nil
}

// Update 修改房间名称或头像，空字段保持不变。
func (s *RoomService) Update(roomID uint, name, photoURL string) (*RoomDTO, error) {
	var room models.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		return nil, ErrRoomNotFound
	}
	updates := map[string]any{}
	if name != "" {
		updates["name"] = name
	}
	if photoURL != "" {
		updates["photo_url"] = photoURL
	}
	if len(updates) > 0 {
		if err := s.db.Model(&room).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return roomDTO(&room), nil
}

// Delete 删除房间及其成员关系与消息。
func (s *RoomService) Delete(roomID uint) error {
	var room models.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		return ErrRoomNotFound
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", roomID).Delete(&models.RoomMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", roomID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&room).Error
	})
}

// AddMember 把用户加入房间，已在群里时保持幂等。
func (s *RoomService) AddMember(roomID, userID uint) error {
	var room models.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		return ErrRoomNotFound
	}
	var count int64
	if err := s.db.Model(&models.RoomMember{}).Where("room_id = ? AND user_id = ?", roomID, userID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.db.Create(&models.RoomMember{RoomID: roomID, UserID: userID}).Error
}

// RemoveMember 把用户移出房间。
func (s *RoomService) RemoveMember(roomID, userID uint) error {
	res := s.db.Where("room_id = ? AND user_id = ?", roomID, userID).Delete(&models.RoomMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotMember
	}
	return nil
}

// Members 返回房间全部成员。
func (s *RoomService) Members(roomID uint) ([]MemberDTO, error) {
	var out []MemberDTO
	err := s.db.Table("room_members").
		Select("room_members.user_id, users.username, users.full_name").
		Joins("JOIN users ON users.id = room_members.user_id").
		Where("room_members.room_id = ?", roomID).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MemberIDs 返回房间成员的用户 ID 列表，供通知扇出使用。
func (s *RoomService) MemberIDs(roomID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.RoomMember{}).Where("room_id = ?", roomID).Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Exists 检查房间是否存在。
func (s *RoomService) Exists(roomID uint) (*models.Room, error) {
	var room models.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		return nil, ErrRoomNotFound
	}
	return &room, nil
}
