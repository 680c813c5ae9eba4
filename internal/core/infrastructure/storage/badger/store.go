// Package badger 提供基于BadgerDB的会话存储实现
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync/atomic"
	"time"

	badgerdb "github.com/dgraph-io/badger/v3"

	"github.com/weisyn/taskrace/internal/core/infrastructure/storage/codec"
	log "github.com/weisyn/taskrace/pkg/interfaces/infrastructure/log"
	storage "github.com/weisyn/taskrace/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/taskrace/pkg/types"
)

// sessionPrefix 会话键前缀
var sessionPrefix = []byte("session/")

// Options 存储选项
type Options struct {
	Path       string // 数据目录，为空时使用内存模式
	SyncWrites bool   // 每次写入是否 fsync
}

// Store 实现SessionStore接口
type Store struct {
	db     *badgerdb.DB
	logger log.Logger
	closed atomic.Bool
}

var _ storage.SessionStore = (*Store)(nil)

// New 打开BadgerDB并返回会话存储
func New(opts Options, logger log.Logger) (*Store, error) {
	if logger == nil {
		logger = nopLogger{}
	}

	var dbOpts badgerdb.Options
	if opts.Path == "" {
		logger.Infof("初始化内存BadgerDB会话存储")
		dbOpts = badgerdb.DefaultOptions("").WithInMemory(true)
	} else {
		logger.Infof("初始化BadgerDB会话存储，数据目录: %s", opts.Path)
		if err := os.MkdirAll(opts.Path, 0700); err != nil {
			return nil, fmt.Errorf("无法创建BadgerDB数据目录: %w", err)
		}
		dbOpts = badgerdb.DefaultOptions(opts.Path)
		dbOpts.SyncWrites = opts.SyncWrites
	}

	// 会话数据量很小，收紧缓存与 value log 占用
	dbOpts.ValueLogFileSize = 64 << 20
	dbOpts.BlockCacheSize = 16 << 20
	dbOpts.IndexCacheSize = 16 << 20
	dbOpts.NumMemtables = 2
	dbOpts.MemTableSize = 8 << 20
	dbOpts.NumCompactors = 2
	dbOpts.Logger = newBadgerLogger(logger)

	db, err := badgerdb.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("无法打开BadgerDB: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

func sessionKey(id string) []byte {
	return append(append([]byte{}, sessionPrefix...), id...)
}

// Save 保存会话
func (s *Store) Save(ctx context.Context, session *types.RecordingSession) error {
	if s.closed.Load() {
		return fmt.Errorf("badger存储已关闭")
	}
	data, err := codec.EncodeSession(session)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(sessionKey(session.ID), data)
	})
	if err != nil {
		return fmt.Errorf("badger保存会话失败: %w", err)
	}
	return nil
}

// Load 读取会话
func (s *Store) Load(ctx context.Context, id string) (*types.RecordingSession, error) {
	var valCopy []byte
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(sessionKey(id))
		if err != nil {
			return err
		}
		valCopy, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badgerdb.ErrKeyNotFound) {
		return nil, storage.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("badger读取会话失败: %w", err)
	}
	return codec.DecodeSession(valCopy)
}

// sessionHeader List 只需要的字段
type sessionHeader struct {
	ID         string    `json:"id"`
	StartedUtc time.Time `json:"started_utc"`
}

// List 按开始时间升序返回会话 ID
func (s *Store) List(ctx context.Context) ([]string, error) {
	var headers []sessionHeader

	err := s.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = sessionPrefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var h sessionHeader
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &h)
			}); err != nil {
				return err
			}
			headers = append(headers, h)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badger列出会话失败: %w", err)
	}

	sort.Slice(headers, func(i, j int) bool {
		if headers[i].StartedUtc.Equal(headers[j].StartedUtc) {
			return headers[i].ID < headers[j].ID
		}
		return headers[i].StartedUtc.Before(headers[j].StartedUtc)
	})

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.ID
	}
	return ids, nil
}

// Close 关闭数据库
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("关闭BadgerDB失败: %w", err)
	}
	s.logger.Info("BadgerDB会话存储已关闭")
	return nil
}

// badgerLogger 实现BadgerDB的日志接口
type badgerLogger struct {
	logger log.Logger
}

func newBadgerLogger(logger log.Logger) *badgerLogger {
	return &badgerLogger{logger: logger}
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Errorf("[BadgerDB] "+format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warnf("[BadgerDB] "+format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debugf("[BadgerDB] "+format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debugf("[BadgerDB] "+format, args...)
}
