package game

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// scriptDebounce 一串连续事件中最后一个事件之后的静默时间，到期才报告变更
// 编辑器保存时常连发多次事件，只在最后一次写入之后重载
const scriptDebounce = 100 * time.Millisecond

// ScriptWatcher 监听对话脚本文件变化（开发时热重载）
//
// 监听脚本所在目录而不是文件本身，这样编辑器"写临时文件再改名"的保存方式也能被捕获。
// Events 中只会出现被监听的脚本路径；帧循环通过 Drain 非阻塞地读取。
type ScriptWatcher struct {
	watcher  *fsnotify.Watcher
	targets  map[string]struct{}
	debounce time.Duration

	Events chan string
	Errors chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewScriptWatcher 创建脚本监听器
// paths 为需要监听的脚本文件，文件所在目录必须存在
func NewScriptWatcher(paths ...string) (*ScriptWatcher, error) {
	return newScriptWatcher(scriptDebounce, paths...)
}

func newScriptWatcher(debounce time.Duration, paths ...string) (*ScriptWatcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no script paths to watch")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		clean := filepath.Clean(p)
		targets[clean] = struct{}{}
		dirs[filepath.Dir(clean)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	watcher := &ScriptWatcher{
		watcher:  w,
		targets:  targets,
		debounce: debounce,
		Events:   make(chan string, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close 停止监听，可重复调用
func (w *ScriptWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

// Drain 非阻塞地取出所有待处理的变更路径（去重）
func (w *ScriptWatcher) Drain() []string {
	var changed []string
	seen := make(map[string]struct{})
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return changed
			}
			if _, dup := seen[path]; dup {
				continue
			}
			seen[path] = struct{}{}
			changed = append(changed, path)
		default:
			return changed
		}
	}
}

func (w *ScriptWatcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	// 每个新事件都会重置计时器，计时器到期时一次性报告这一串事件涉及的文件
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Clean(event.Name)
			if !w.isTarget(name) {
				continue
			}
			pending[name] = struct{}{}
			timer.Reset(w.debounce)
		case <-timer.C:
			if !w.flush(pending) {
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				// 上一个错误尚未被读取，丢弃
			}
		case <-w.closeCh:
			return
		}
	}
}

// flush 按路径顺序发送并清空 pending，监听器关闭时返回 false
func (w *ScriptWatcher) flush(pending map[string]struct{}) bool {
	names := make([]string, 0, len(pending))
	for name := range pending {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		delete(pending, name)
		select {
		case w.Events <- name:
		case <-w.closeCh:
			return false
		}
	}
	return true
}

func (w *ScriptWatcher) isTarget(path string) bool {
	if !isScriptFile(path) {
		return false
	}
	_, ok := w.targets[path]
	return ok
}

func isScriptFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
