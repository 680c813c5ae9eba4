// Package recorder 提供快照录制与存储的配置
package recorder

import (
	"time"

	"github.com/weisyn/taskrace/pkg/types"
)

// 存储类型
const (
	StoreMemory = "memory"
	StoreBadger = "badger"
	StoreRedis  = "redis"
)

// RecorderOptions 快照录制配置选项
type RecorderOptions struct {
	Duration time.Duration `json:"duration"` // 录制时长
	Interval time.Duration `json:"interval"` // 采样间隔

	Store      string `json:"store"`       // memory | badger | redis
	BadgerPath string `json:"badger_path"` // BadgerDB 数据目录
	RedisAddr  string `json:"redis_addr"`  // Redis 地址
	RedisDB    int    `json:"redis_db"`    // Redis 数据库编号
	KeyPrefix  string `json:"key_prefix"`  // Redis Key 前缀
}

// Config 录制配置实现
type Config struct {
	options *RecorderOptions
}

// New 创建录制配置
func New(userConfig *types.UserRecorderConfig) *Config {
	options := &RecorderOptions{
		Duration:   defaultDuration,
		Interval:   defaultInterval,
		Store:      defaultStore,
		BadgerPath: defaultBadgerPath,
		RedisAddr:  defaultRedisAddr,
		KeyPrefix:  defaultKeyPrefix,
	}
	if userConfig != nil {
		if userConfig.DurationMs != nil && *userConfig.DurationMs > 0 {
			options.Duration = time.Duration(*userConfig.DurationMs) * time.Millisecond
		}
		if userConfig.IntervalMs != nil && *userConfig.IntervalMs > 0 {
			options.Interval = time.Duration(*userConfig.IntervalMs) * time.Millisecond
		}
		if userConfig.Store != nil {
			options.Store = *userConfig.Store
		}
		if userConfig.BadgerPath != nil {
			options.BadgerPath = *userConfig.BadgerPath
		}
		if userConfig.RedisAddr != nil {
			options.RedisAddr = *userConfig.RedisAddr
		}
		if userConfig.RedisDB != nil {
			options.RedisDB = *userConfig.RedisDB
		}
		if userConfig.KeyPrefix != nil {
			options.KeyPrefix = *userConfig.KeyPrefix
		}
	}
	return &Config{options: options}
}

// GetOptions 获取录制配置选项
func (c *Config) GetOptions() *RecorderOptions { return c.options }
