package memory

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/redis/go-redis/v9"
)

// ReplyCache 回复缓存 (Redis)
// 以归一化问题的哈希为键缓存最终回复, 命中时跳过检索和上游调用;
// 缓存故障只降级为未命中, 不影响请求
type ReplyCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReplyCache 创建回复缓存
func NewReplyCache(addr, password string, db int, ttl time.Duration) (*ReplyCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &ReplyCache{
		client: client,
		ttl:    ttl,
	}, nil
}

// Get 查询缓存的回复
func (r *ReplyCache) Get(ctx context.Context, question string) (string, bool) {
	reply, err := r.client.Get(ctx, cacheKey(question)).Result()
	if err != nil {
		if err != redis.Nil {
			logx.Warn("Reply cache get failed: %v", err)
		}
		return "", false
	}
	return reply, true
}

// Set 写入回复缓存
func (r *ReplyCache) Set(ctx context.Context, question, reply string) {
	if err := r.client.Set(ctx, cacheKey(question), reply, r.ttl).Err(); err != nil {
		logx.Warn("Reply cache set failed: %v", err)
	}
}

// Close 关闭 Redis 连接
func (r *ReplyCache) Close() error {
	return r.client.Close()
}

// cacheKey 计算缓存键
func cacheKey(question string) string {
	hash := sha256.Sum256([]byte(NormalizeQuestion(question)))
	return fmt.Sprintf("reply:%x", hash[:16])
}

// NormalizeQuestion 问题归一化: 小写并压缩空白
// 让 "Menu?" 和 " menu ? " 命中同一条缓存
func NormalizeQuestion(question string) string {
	return strings.Join(strings.Fields(strings.ToLower(question)), " ")
}
