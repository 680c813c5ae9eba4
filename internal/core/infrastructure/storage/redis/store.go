// Package redis 提供基于Redis的会话存储实现
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/weisyn/taskrace/internal/core/infrastructure/storage/codec"
	storage "github.com/weisyn/taskrace/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/taskrace/pkg/types"
)

// Options 存储选项
type Options struct {
	Addr      string // 服务地址 host:port
	Password  string
	DB        int
	KeyPrefix string // 键前缀，如 "taskrace:session:"
}

// Store 实现SessionStore接口
//
// 键布局：
//   - <prefix><id>    会话 JSON
//   - <prefix>index   有序集合，score 为开始时间（Unix 微秒）
type Store struct {
	rdb    *redis.Client
	prefix string
}

var _ storage.SessionStore = (*Store)(nil)

// New 连接 Redis 并返回会话存储
func New(opts Options) (*Store, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewWithClient(rdb, opts.KeyPrefix), nil
}

// NewWithClient 使用已有客户端
func NewWithClient(rdb *redis.Client, prefix string) *Store {
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) sessionKey(id string) string { return s.prefix + id }
func (s *Store) indexKey() string            { return s.prefix + "index" }

// Save 保存会话
func (s *Store) Save(ctx context.Context, session *types.RecordingSession) error {
	data, err := codec.EncodeSession(session)
	if err != nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, s.sessionKey(session.ID), data, 0)
	pipe.ZAdd(ctx, s.indexKey(), redis.Z{
		Score:  float64(session.StartedUtc.UnixMicro()),
		Member: session.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis保存会话失败: %w", err)
	}
	return nil
}

// Load 读取会话
func (s *Store) Load(ctx context.Context, id string) (*types.RecordingSession, error) {
	data, err := s.rdb.Get(ctx, s.sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis读取会话失败: %w", err)
	}
	return codec.DecodeSession(data)
}

// List 按开始时间升序返回会话 ID（同分按 ID 字典序）
func (s *Store) List(ctx context.Context) ([]string, error) {
	ids, err := s.rdb.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis列出会话失败: %w", err)
	}
	return ids, nil
}

// Purge 删除该前缀下的全部会话
func (s *Store) Purge(ctx context.Context) error {
	ids, err := s.List(ctx)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, s.sessionKey(id))
	}
	keys = append(keys, s.indexKey())
	return s.rdb.Del(ctx, keys...).Err()
}

// Close 关闭连接
func (s *Store) Close() error {
	return s.rdb.Close()
}
