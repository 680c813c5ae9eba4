// Package storage 提供会话存储的选择与装配
package storage

import (
	"fmt"

	recorderconfig "github.com/weisyn/taskrace/internal/config/recorder"
	"github.com/weisyn/taskrace/internal/core/infrastructure/storage/badger"
	"github.com/weisyn/taskrace/internal/core/infrastructure/storage/memory"
	"github.com/weisyn/taskrace/internal/core/infrastructure/storage/redis"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/log"
	storageInterface "github.com/weisyn/taskrace/pkg/interfaces/infrastructure/storage"
)

// New 按配置的存储类型创建会话存储
func New(opts *recorderconfig.RecorderOptions, logger log.Logger) (storageInterface.SessionStore, error) {
	if opts == nil {
		opts = recorderconfig.New(nil).GetOptions()
	}

	switch opts.Store {
	case recorderconfig.StoreMemory, "":
		return memory.New(logger), nil
	case recorderconfig.StoreBadger:
		store, err := badger.New(badger.Options{Path: opts.BadgerPath, SyncWrites: true}, logger)
		if err != nil {
			return nil, fmt.Errorf("创建badger会话存储失败: %w", err)
		}
		return store, nil
	case recorderconfig.StoreRedis:
		store, err := redis.New(redis.Options{
			Addr:      opts.RedisAddr,
			DB:        opts.RedisDB,
			KeyPrefix: opts.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("创建redis会话存储失败: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("未知的会话存储类型: %q", opts.Store)
	}
}
