package knowledge

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKnowledgeFile(t *testing.T, dir, content string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, "knowledge.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestStoreLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeKnowledgeFile(t, dir, sampleDoc, time.Now())

	store := NewStore(path, "poll", nil, nil)
	snap := store.Current(context.Background())

	require.False(t, snap.Empty())
	assert.Equal(t, sampleDoc, snap.Content)
	assert.Len(t, snap.Chunks, 4)
	assert.Equal(t, "ร้านกาแฟบ้านสวน Cafe", snap.Meta.Name)
	assert.Equal(t, "@bansuan", snap.Meta.Contact)
}

// 文件缺失是合法状态: 空快照, 不返回错误
func TestStoreMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.md"), "poll", nil, nil)

	require.NoError(t, store.Reload(context.Background()))
	assert.True(t, store.Current(context.Background()).Empty())
}

// mtime 未变化时重载是幂等的: 不重读文件也不重新生成向量
func TestStoreReloadIdempotent(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	path := writeKnowledgeFile(t, dir, "# A\none\n# B\ntwo", base)

	emb := &fakeEmbedder{vectors: map[string][]float64{
		"# A\none": {1, 0},
		"# B\ntwo": {0, 1},
	}}
	store := NewStore(path, "poll", emb, nil)

	ctx := context.Background()
	require.NoError(t, store.Reload(ctx))
	first := store.Current(ctx)
	assert.Equal(t, 1, emb.calls)

	// 第二次重载: 文件没动, 快照指针原样, 向量不再计算
	require.NoError(t, store.Reload(ctx))
	second := store.Current(ctx)
	assert.Same(t, first, second)
	assert.Equal(t, 1, emb.calls)
}

// 文件变化后整体替换快照
func TestStoreReloadOnChange(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	path := writeKnowledgeFile(t, dir, "# Old\ncontent", base)

	store := NewStore(path, "poll", nil, nil)
	ctx := context.Background()

	old := store.Current(ctx)
	assert.Contains(t, old.Content, "Old")

	writeKnowledgeFile(t, dir, "# New\ncontent", base.Add(time.Minute))

	fresh := store.Current(ctx)
	assert.Contains(t, fresh.Content, "New")
	assert.NotSame(t, old, fresh)

	// 旧快照不受影响, 读到旧指针的请求看到的仍是完整数据
	assert.Contains(t, old.Content, "Old")
}

// 向量生成失败只降级不中断: 分块向量为 nil
func TestStoreEmbedFailureDegrades(t *testing.T) {
	dir := t.TempDir()
	path := writeKnowledgeFile(t, dir, "# A\none", time.Now())

	emb := &fakeEmbedder{err: assert.AnError}
	store := NewStore(path, "poll", emb, nil)

	require.NoError(t, store.Reload(context.Background()))
	snap := store.Current(context.Background())
	require.Len(t, snap.Chunks, 1)
	assert.Nil(t, snap.Chunks[0].Embedding)
}

// 目录监听: 写入事件去抖后触发一次重载
func TestWatcherReload(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	path := writeKnowledgeFile(t, dir, "# Old\ncontent", base)

	store := NewStore(path, "watch", nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, store.Reload(ctx))

	watcher, err := NewWatcher(store)
	require.NoError(t, err)
	go func() { _ = watcher.Run(ctx) }()

	// 等监听器就绪
	time.Sleep(200 * time.Millisecond)

	writeKnowledgeFile(t, dir, "# New\ncontent", base.Add(time.Minute))

	require.Eventually(t, func() bool {
		snap := store.Current(ctx)
		return snap != nil && len(snap.Content) > 0 &&
			snap.Content == "# New\ncontent"
	}, 3*time.Second, 50*time.Millisecond)
}
