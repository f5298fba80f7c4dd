package knowledge

import (
	"context"
	"path/filepath"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/fsnotify/fsnotify"
)

// debounceInterval 重载去抖间隔, 吸收编辑器保存时的连续写事件
const debounceInterval = 300 * time.Millisecond

// Watcher 目录监听重载器
// 监听知识库文件所在目录, 事件去抖后触发一次整体重载,
// 生命周期由传入的 context 控制
type Watcher struct {
	store   *Store
	watcher *fsnotify.Watcher
}

// NewWatcher 创建目录监听器
func NewWatcher(store *Store) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{store: store, watcher: w}, nil
}

// Run 启动监听, 阻塞直到 context 取消
func (w *Watcher) Run(ctx context.Context) error {
	dir := filepath.Dir(w.store.path)
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	defer func() { _ = w.watcher.Close() }()

	logx.Info("Watching knowledge directory: %s", dir)

	target := filepath.Clean(w.store.path)

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// 去抖: 静默期内的连续事件只触发一次重载
			if timer == nil {
				timer = time.NewTimer(debounceInterval)
				pending = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounceInterval)
			}

		case <-pending:
			timer = nil
			pending = nil
			if err := w.store.Reload(ctx); err != nil {
				logx.Error("Knowledge reload failed: %v", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logx.Warn("Knowledge watcher error: %v", err)
		}
	}
}
