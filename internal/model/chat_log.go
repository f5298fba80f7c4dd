package model

import "time"

// ChatLog 对话记录模型
type ChatLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	RequestID  string    `json:"request_id" gorm:"size:36;index"`
	Question   string    `json:"question" gorm:"type:text"`
	Reply      string    `json:"reply" gorm:"type:text"`
	Language   string    `json:"language" gorm:"size:8"` // 识别出的提问语言
	Mode       string    `json:"mode" gorm:"size:16"`    // "strict" | "general" | "fallback"
	DurationMs int64     `json:"duration_ms"`
}

// TableName 指定表名
func (ChatLog) TableName() string {
	return "chat_logs"
}
