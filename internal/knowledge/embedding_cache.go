package knowledge

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/NathanontP/chatbot/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmbeddingCache 分块向量的 sqlite 缓存
// 以内容哈希 + 模型标识为键, 知识库内容不变时重启也不用重新生成向量
type EmbeddingCache struct {
	db    *gorm.DB
	model string
}

// NewEmbeddingCache 创建向量缓存
func NewEmbeddingCache(db *gorm.DB, embeddingModel string) *EmbeddingCache {
	return &EmbeddingCache{db: db, model: embeddingModel}
}

// Get 查询缓存的向量, 未命中或数据损坏时返回 false
func (c *EmbeddingCache) Get(content string) ([]float64, bool) {
	var row model.ChunkEmbedding
	err := c.db.Where("content_hash = ? AND model = ?", hashContent(content), c.model).
		First(&row).Error
	if err != nil {
		return nil, false
	}

	var vec []float64
	if err := json.Unmarshal([]byte(row.Vector), &vec); err != nil || len(vec) == 0 {
		return nil, false
	}
	return vec, true
}

// Put 写入向量缓存, 同键覆盖
func (c *EmbeddingCache) Put(content string, vec []float64) error {
	data, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding: %w", err)
	}

	row := model.ChunkEmbedding{
		ContentHash: hashContent(content),
		Model:       c.model,
		Vector:      string(data),
	}

	return c.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_hash"}, {Name: "model"}},
		DoUpdates: clause.AssignmentColumns([]string{"vector", "updated_at"}),
	}).Create(&row).Error
}

// hashContent 内容哈希, 作为缓存键
func hashContent(content string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(content)))
}
