// Package replay 提供快照录制与确定性回放
//
// 🎬 **录制 / 回放 (Record & Replay)**
//
// 录制时从进程级时钟读取当前时间，派生快照并追加到有序日志；
// 回放时安装测试时钟，按录制的时间戳逐一 Set 并重新捕获，
// 逐项比对以验证派生值完全一致。
package replay

import (
	"sync"

	"github.com/weisyn/taskrace/pkg/types"
	"github.com/weisyn/taskrace/pkg/utils/timeutil"
)

// CaptureHook 每次捕获后调用（事件广播、指标计数）
type CaptureHook func(types.Snapshot)

// Recorder 快照录制器，并发安全
type Recorder struct {
	mu    sync.Mutex
	log   []types.Snapshot
	hooks []CaptureHook
}

// NewRecorder 创建录制器
func NewRecorder(hooks ...CaptureHook) *Recorder {
	r := &Recorder{}
	for _, h := range hooks {
		if h != nil {
			r.hooks = append(r.hooks, h)
		}
	}
	return r
}

// Capture 读取一次进程级时钟，派生快照并追加到日志
// 未安装时钟时 panic（timeutil.ErrClockNotInstalled）
func (r *Recorder) Capture() types.Snapshot {
	s := types.NewSnapshot(timeutil.UtcNow())

	r.mu.Lock()
	r.log = append(r.log, s)
	r.mu.Unlock()

	for _, h := range r.hooks {
		h(s)
	}
	return s
}

// Snapshots 返回日志副本
func (r *Recorder) Snapshots() []types.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Snapshot, len(r.log))
	copy(out, r.log)
	return out
}

// Len 已捕获的快照数
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.log)
}

// Reset 清空日志
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.log = nil
	r.mu.Unlock()
}
