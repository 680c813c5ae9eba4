// Package log 定义日志接口
//
// 📝 **日志接口 (Logger)**
//
// 各模块通过 fx 注入 Logger，用 With("module", name) 派生模块日志器。
// 实现位于 internal/core/infrastructure/log（zap + lumberjack）。
package log

import "go.uber.org/zap"

// Logger 结构化日志接口
//
// 带 f 后缀的方法按 fmt 格式化；With 接收交替的 key/value。
type Logger interface {
	Debug(msg string)
	Debugf(format string, args ...interface{})
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})

	With(args ...interface{}) Logger

	// Sync 刷新缓冲区，进程退出前调用
	Sync() error

	// GetZapLogger 需要 zap.Field 等原生能力时使用
	GetZapLogger() *zap.Logger
}
