package service

import (
	"fmt"
	"testing"
	"time"

	"taskhub/internal/db"
	"taskhub/internal/models"

	"gorm.io/gorm"
)

// openTestDB 连接本地 Postgres，连不上就跳过（与 CI 环境解耦）。
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Connect("host=localhost user=postgres password=postgres dbname=taskhub port=5432 sslmode=disable TimeZone=UTC")
	if err != nil {
		t.Skipf("skip: db not available: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Skipf("skip: migrate failed: %v", err)
	}
	return gdb
}

func createTestUser(t *testing.T, gdb *gorm.DB) *models.User {
	t.Helper()
	u := models.User{
		Username:     fmt.Sprintf("u%d", time.Now().UnixNano()),
		PasswordHash: "x",
		Active:       true,
	}
	if err := gdb.Create(&u).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return &u
}
