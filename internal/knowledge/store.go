package knowledge

import (
	"context"
	"os"
	"sync"
	"sync/atomic"

	"cnb.cool/zhiqiangwang/pkg/logx"
)

// Store 知识库加载器
// 快照整体替换, 读取方拿到的指针永远指向完整的一份数据;
// 重载用互斥锁串行化, 轮询和目录监听两条触发路径不会并发重载
type Store struct {
	path     string
	poll     bool // 每次访问时检查 mtime
	embedder Embedder
	embCache *EmbeddingCache // 可选, 向量检索时缓存分块向量

	snap          atomic.Pointer[Snapshot]
	reload        sync.Mutex
	missingLogged bool
}

// NewStore 创建知识库加载器
// reload 取 "poll" 或 "watch", 每个部署只启用一种触发方式
func NewStore(path, reload string, embedder Embedder, embCache *EmbeddingCache) *Store {
	s := &Store{
		path:     path,
		poll:     reload != "watch",
		embedder: embedder,
		embCache: embCache,
	}
	s.snap.Store(&Snapshot{})
	return s
}

// Current 获取当前快照
// 轮询模式下先检查文件是否有更新, 文件未变时不重新读取
func (s *Store) Current(ctx context.Context) *Snapshot {
	if s.poll {
		if err := s.Reload(ctx); err != nil {
			logx.Warn("Knowledge reload check failed: %v", err)
		}
	}
	return s.snap.Load()
}

// Reload 重载知识库
// 文件缺失不算错误, 降级为一份空快照; mtime 未变化时直接跳过,
// 既不重新读文件也不重新生成向量
func (s *Store) Reload(ctx context.Context) error {
	s.reload.Lock()
	defer s.reload.Unlock()

	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			if !s.missingLogged {
				logx.Warn("Knowledge file missing: %s, serving empty knowledge base", s.path)
				s.missingLogged = true
			}
			s.snap.Store(&Snapshot{})
			return nil
		}
		return err
	}
	s.missingLogged = false

	prev := s.snap.Load()
	if !prev.ModTime.IsZero() && prev.ModTime.Equal(info.ModTime()) {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	snap := &Snapshot{
		Content: string(data),
		ModTime: info.ModTime(),
		Chunks:  Split(string(data)),
		Meta:    ExtractMeta(string(data)),
	}

	// 向量检索模式下为新分块生成向量, 失败只降级不中断
	if s.embedder != nil {
		s.embedChunks(ctx, snap)
	}

	s.snap.Store(snap)
	logx.Info("✅ Knowledge base loaded: %s, %d chunks, shop=%q", s.path, len(snap.Chunks), snap.Meta.Name)
	return nil
}

// embedChunks 为快照中的分块生成向量
// 命中缓存的分块不重新计算, 上游失败的分块向量置 nil (检索时视为不匹配)
func (s *Store) embedChunks(ctx context.Context, snap *Snapshot) {
	var missing []int
	for i := range snap.Chunks {
		if s.embCache != nil {
			if vec, ok := s.embCache.Get(snap.Chunks[i].Content); ok {
				snap.Chunks[i].Embedding = vec
				continue
			}
		}
		missing = append(missing, i)
	}

	if len(missing) == 0 {
		return
	}

	texts := make([]string, 0, len(missing))
	for _, i := range missing {
		texts = append(texts, snap.Chunks[i].Content)
	}

	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil || len(vectors) != len(texts) {
		logx.Warn("Chunk embedding failed, %d chunks degrade to no-match: %v", len(missing), err)
		return
	}

	for j, i := range missing {
		snap.Chunks[i].Embedding = vectors[j]
		if s.embCache != nil {
			if err := s.embCache.Put(snap.Chunks[i].Content, vectors[j]); err != nil {
				logx.Warn("Failed to cache chunk embedding: %v", err)
			}
		}
	}
	logx.Info("Generated embeddings for %d/%d chunks", len(missing), len(snap.Chunks))
}
