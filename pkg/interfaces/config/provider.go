// Package config provides configuration provider interfaces.
package config

import (
	clockconfig "github.com/weisyn/taskrace/internal/config/clock"
	eventconfig "github.com/weisyn/taskrace/internal/config/event"
	logconfig "github.com/weisyn/taskrace/internal/config/log"
	lookupconfig "github.com/weisyn/taskrace/internal/config/lookup"
	metricsconfig "github.com/weisyn/taskrace/internal/config/metrics"
	raceconfig "github.com/weisyn/taskrace/internal/config/race"
	recorderconfig "github.com/weisyn/taskrace/internal/config/recorder"
)

// Provider 配置提供者接口
type Provider interface {
	// GetAppName 获取应用名称
	GetAppName() string

	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetClock 获取时钟配置
	GetClock() *clockconfig.ClockOptions

	// GetRace 获取条件竞速配置
	GetRace() *raceconfig.RaceOptions

	// GetLookup 获取公网IP查询配置
	GetLookup() *lookupconfig.LookupOptions

	// GetRecorder 获取快照录制配置
	GetRecorder() *recorderconfig.RecorderOptions

	// GetMetrics 获取指标配置
	GetMetrics() *metricsconfig.MetricsOptions

	// GetEvent 获取事件配置
	GetEvent() *eventconfig.EventOptions
}
