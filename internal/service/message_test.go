package service

import (
	"errors"
	"testing"
)

// 正文为空且无附件的消息在任何落库动作之前就被拒绝。
func TestMessageCreate_RequiresContentOrAttachments(t *testing.T) {
	svc := NewMessageService(nil) // 校验在访问数据库之前发生
	_, err := svc.Create(1, 1, "", "", nil, nil)
	if !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("Create with no content and no attachments = %v, want ErrEmptyMessage", err)
	}
}

func TestMessageLifecycle(t *testing.T) {
	gdb := openTestDB(t)
	u := createTestUser(t, gdb)
	other := createTestUser(t, gdb)
	roomSvc := NewRoomService(gdb)
	svc := NewMessageService(gdb)

	room, err := roomSvc.Create("lifecycle", u.ID, []uint{other.ID})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	msg, err := svc.Create(room.ID, u.ID, "first", "", nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if msg.Kind != "text" {
		t.Errorf("default kind = %q, want text", msg.Kind)
	}

	// 只带附件不带正文也合法
	att := []Attachment{{Name: "report.pdf", ContentType: "application/pdf", URL: "/files/report.pdf", Size: 1024}}
	fileMsg, err := svc.Create(room.ID, u.ID, "", "file", att, nil)
	if err != nil {
		t.Fatalf("Create attachment-only: %v", err)
	}
	if len(fileMsg.Attachments) != 1 || fileMsg.Attachments[0].Name != "report.pdf" {
		t.Errorf("attachments round-trip = %+v", fileMsg.Attachments)
	}

	// 回复指向同房间消息
	reply, err := svc.Create(room.ID, other.ID, "re: first", "", nil, &msg.ID)
	if err != nil {
		t.Fatalf("Create reply: %v", err)
	}
	if reply.ReplyToID == nil || *reply.ReplyToID != msg.ID {
		t.Errorf("reply target = %v, want %d", reply.ReplyToID, msg.ID)
	}

	// 回复不存在的消息被拒绝
	bogus := uint(999999999)
	if _, err := svc.Create(room.ID, u.ID, "re: ghost", "", nil, &bogus); !errors.Is(err, ErrReplyNotFound) {
		t.Errorf("reply to missing message = %v, want ErrReplyNotFound", err)
	}

	// 非发送者不能编辑或删除
	if _, err := svc.Edit(msg.ID, other.ID, "hijack"); !errors.Is(err, ErrNotSender) {
		t.Errorf("Edit by non-sender = %v, want ErrNotSender", err)
	}
	if err := svc.Delete(msg.ID, other.ID); !errors.Is(err, ErrNotSender) {
		t.Errorf("Delete by non-sender = %v, want ErrNotSender", err)
	}

	edited, err := svc.Edit(msg.ID, u.ID, "first (edited)")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if edited.Content != "first (edited)" {
		t.Errorf("edited content = %q", edited.Content)
	}

	if err := svc.Delete(msg.ID, u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Edit(msg.ID, u.ID, "gone"); !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("Edit deleted message = %v, want ErrMessageNotFound", err)
	}
}
