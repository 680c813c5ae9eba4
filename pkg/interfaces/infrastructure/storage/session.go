// Package storage 提供录制会话持久化接口定义
//
// 📦 **会话存储 (Session Store)**
//
// 录制得到的快照序列以会话为单位保存，回放时按 ID 取回：
// - memory: 进程内，测试与一次性命令使用
// - badger: 嵌入式持久化，单机多次运行之间共享
// - redis:  跨进程/跨主机共享
package storage

import (
	"context"
	"errors"

	"github.com/weisyn/taskrace/pkg/types"
)

// ErrSessionNotFound 会话不存在
var ErrSessionNotFound = errors.New("recording session not found")

// SessionStore 录制会话存储接口
type SessionStore interface {
	// Save 保存会话，同 ID 覆盖
	Save(ctx context.Context, session *types.RecordingSession) error
	// Load 读取会话，不存在时返回 ErrSessionNotFound
	Load(ctx context.Context, id string) (*types.RecordingSession, error)
	// List 按开始时间升序返回全部会话 ID
	List(ctx context.Context) ([]string, error)
	// Close 释放底层资源
	Close() error
}
