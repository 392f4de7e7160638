package service

import "errors"

// 业务层通用错误，handler 可根据错误类型映射到合适的 HTTP 状态码。
var (
	ErrUsernameTaken        = errors.New("username taken")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrRoomNotFound         = errors.New("room not found")
	ErrNotMember            = errors.New("not a room member")
	ErrMessageNotFound      = errors.New("message not found")
	ErrNotSender            = errors.New("not the message sender")
	ErrEmptyMessage         = errors.New("message needs content or attachments")
	ErrReplyNotFound        = errors.New("reply target not found in room")
	ErrReactionNotFound     = errors.New("reaction not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotClockedIn         = errors.New("no open work session")
)
