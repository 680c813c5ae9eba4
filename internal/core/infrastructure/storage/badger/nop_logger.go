package badger

import (
	log "github.com/weisyn/taskrace/pkg/interfaces/infrastructure/log"
	"go.uber.org/zap"
)

// nopLogger 未注入日志时使用
type nopLogger struct{}

func (nopLogger) Debug(string)                     {}
func (nopLogger) Debugf(string, ...interface{})    {}
func (nopLogger) Info(string)                      {}
func (nopLogger) Infof(string, ...interface{})     {}
func (nopLogger) Warn(string)                      {}
func (nopLogger) Warnf(string, ...interface{})     {}
func (nopLogger) Error(string)                     {}
func (nopLogger) Errorf(string, ...interface{})    {}
func (n nopLogger) With(...interface{}) log.Logger { return n }
func (nopLogger) Sync() error                      { return nil }
func (nopLogger) GetZapLogger() *zap.Logger        { return zap.NewNop() }
