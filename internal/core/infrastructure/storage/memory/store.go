// Package memory 提供进程内的会话存储实现
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/weisyn/taskrace/internal/core/infrastructure/storage/codec"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/log"
	storage "github.com/weisyn/taskrace/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/taskrace/pkg/types"
)

type entry struct {
	startedUtc time.Time
	data       []byte
}

// Store 实现了SessionStore接口
// 以序列化后的字节保存，读写双方互不共享快照切片
type Store struct {
	mutex   sync.RWMutex
	logger  log.Logger
	entries map[string]entry
	closed  bool
}

var _ storage.SessionStore = (*Store)(nil)

// New 创建一个新的内存会话存储
func New(logger log.Logger) *Store {
	return &Store{
		logger:  logger,
		entries: make(map[string]entry),
	}
}

// Save 保存会话
func (s *Store) Save(ctx context.Context, session *types.RecordingSession) error {
	data, err := codec.EncodeSession(session)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.entries[session.ID] = entry{startedUtc: session.StartedUtc, data: data}
	if s.logger != nil {
		s.logger.Debugf("内存存储保存会话: id=%s snapshots=%d", session.ID, len(session.Snapshots))
	}
	return nil
}

// Load 读取会话
func (s *Store) Load(ctx context.Context, id string) (*types.RecordingSession, error) {
	s.mutex.RLock()
	e, ok := s.entries[id]
	s.mutex.RUnlock()
	if !ok {
		return nil, storage.ErrSessionNotFound
	}
	return codec.DecodeSession(e.data)
}

// List 按开始时间升序返回会话 ID
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.entries[ids[i]], s.entries[ids[j]]
		if a.startedUtc.Equal(b.startedUtc) {
			return ids[i] < ids[j]
		}
		return a.startedUtc.Before(b.startedUtc)
	})
	return ids, nil
}

// Close 清空存储
func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.entries = make(map[string]entry)
	return nil
}
