package knowledge

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"cnb.cool/zhiqiangwang/pkg/logx"
)

// cosineEpsilon 加在分母上, 避免零向量除零
const cosineEpsilon = 1e-10

// RetrieveVector 向量检索
// 只有查询向量是每次请求临时生成的, 分块向量在重载时就算好了;
// 相似度严格高于阈值的分块按分数降序取前 topK 个,
// 各自带序号标记拼接; 没有分块过线时返回空摘录,
// 由调用方直接用固定话术回复, 完全不再调用上游模型
func RetrieveVector(ctx context.Context, query string, snap *Snapshot, embedder Embedder, threshold float64, topK int) string {
	if snap.Empty() || embedder == nil {
		return ""
	}
	if topK <= 0 {
		topK = 4
	}

	vectors, err := embedder.Embed(ctx, []string{query})
	if err != nil || len(vectors) == 0 || len(vectors[0]) == 0 {
		// 查询向量生成失败降级为无匹配, 不中断请求
		logx.Warn("Query embedding failed, degrading to no-match: %v", err)
		return ""
	}
	queryVec := vectors[0]

	scored := ScoreChunks(queryVec, snap.Chunks, threshold)
	if len(scored) == 0 {
		return ""
	}
	if len(scored) > topK {
		scored = scored[:topK]
	}

	parts := make([]string, 0, len(scored))
	for i, sc := range scored {
		parts = append(parts, fmt.Sprintf("%d) %s", i+1, snap.Chunks[sc.Index].Content))
	}

	logx.Debug("Vector search selected %d chunks, best score %.3f", len(scored), scored[0].Score)
	return strings.Join(parts, "\n\n")
}

// ScoreChunks 计算查询向量与每个分块的余弦相似度
// 向量缺失的分块视为不匹配; 结果只保留严格高于阈值的,
// 按分数降序, 同分保持文档顺序
func ScoreChunks(queryVec []float64, chunks []Chunk, threshold float64) []ScoredChunk {
	var scored []ScoredChunk
	for i := range chunks {
		if chunks[i].Embedding == nil {
			continue
		}
		score := CosineSimilarity(queryVec, chunks[i].Embedding)
		if score > threshold {
			scored = append(scored, ScoredChunk{Index: i, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// CosineSimilarity 余弦相似度: 点积除以模长之积
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + cosineEpsilon)
}
