package model

import "time"

// ChunkEmbedding 分块向量缓存模型
// 以内容哈希 + 模型标识为唯一键, 知识库重载时只为新内容生成向量
type ChunkEmbedding struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ContentHash string    `json:"content_hash" gorm:"size:64;not null;uniqueIndex:idx_chunk_hash_model"`
	Model       string    `json:"model" gorm:"size:64;not null;uniqueIndex:idx_chunk_hash_model"`
	Vector      string    `json:"vector" gorm:"type:text"` // JSON 格式的向量
}

// TableName 指定表名
func (ChunkEmbedding) TableName() string {
	return "chunk_embeddings"
}
