package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/NathanontP/chatbot/internal/model"
)

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.ChatLog{},
		&model.ChunkEmbedding{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	return nil
}
