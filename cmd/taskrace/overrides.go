package main

import (
	"context"
	"fmt"
	"time"

	"github.com/weisyn/taskrace/pkg/types"
)

// enableMetrics 开启 HTTP 指标端点
func enableMetrics(c *types.AppConfig) {
	if c.Metrics == nil {
		c.Metrics = &types.UserMetricsConfig{}
	}
	c.Metrics.Enabled = types.BoolPtr(true)
}

// recorderOverride 把子命令的标志写入录制配置
// 零值（redisDB 为负数）表示沿用配置文件
func recorderOverride(duration, interval time.Duration, store string, redisDB int) func(*types.AppConfig) {
	return func(c *types.AppConfig) {
		if c.Recorder == nil {
			c.Recorder = &types.UserRecorderConfig{}
		}
		if duration > 0 {
			c.Recorder.DurationMs = types.Int64Ptr(duration.Milliseconds())
		}
		if interval > 0 {
			c.Recorder.IntervalMs = types.Int64Ptr(interval.Milliseconds())
		}
		if store != "" {
			c.Recorder.Store = types.StringPtr(store)
		}
		if redisDB >= 0 {
			c.Recorder.RedisDB = types.IntPtr(redisDB)
		}
	}
}

// latestSession --session 的特殊取值，表示存储中最近一次录制的会话
const latestSession = "latest"

// resolveSessionID 把 --session 的取值解析为具体会话 ID
func resolveSessionID(ctx context.Context, id string, latest func(context.Context) (string, error)) (string, error) {
	if id != latestSession {
		return id, nil
	}
	resolved, err := latest(ctx)
	if err != nil {
		return "", fmt.Errorf("查找最近的会话失败: %w", err)
	}
	return resolved, nil
}
