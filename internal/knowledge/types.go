package knowledge

import (
	"context"
	"time"
)

// Chunk 知识库分块, 以 markdown 标题为边界
type Chunk struct {
	Heading   string    `json:"heading"`             // 标题行 (去掉 # 前缀)
	Content   string    `json:"content"`             // 含标题行在内的完整文本
	Embedding []float64 `json:"embedding,omitempty"` // 向量, 生成失败时为 nil
}

// ShopMeta 从知识库中提取的店铺信息, 用于个性化提示词
type ShopMeta struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// Snapshot 知识库快照
// 重载时整体替换, 读取方看到的永远是完整的一份
type Snapshot struct {
	Content string    `json:"-"`
	ModTime time.Time `json:"mod_time"`
	Chunks  []Chunk   `json:"-"`
	Meta    ShopMeta  `json:"meta"`
}

// Empty 快照是否为空 (知识库文件缺失时的合法状态)
func (s *Snapshot) Empty() bool {
	return s == nil || s.Content == ""
}

// Embedder 向量服务接口 (避免依赖具体 LLM 客户端)
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// ScoredLine 行级打分结果, 词法检索的中间产物
type ScoredLine struct {
	Index int     `json:"index"` // 行号 (0 起始)
	Line  string  `json:"line"`
	Score float64 `json:"score"`
}

// ScoredChunk 分块打分结果, 向量检索的中间产物
type ScoredChunk struct {
	Index int     `json:"index"` // 文档内分块序号
	Score float64 `json:"score"`
}
