package log

import (
	"context"
	"errors"

	logInterface "github.com/weisyn/taskrace/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/taskrace/pkg/utils/race"
	"go.uber.org/zap"
)

// ErrorSink 把竞速中单个操作的失败写入日志
// 取消/超时属于预期结果，只记 debug；其余失败记 warn
type ErrorSink struct {
	logger *zap.Logger
}

var _ race.ErrorSink = (*ErrorSink)(nil)

// NewErrorSink 创建日志错误接收者
func NewErrorSink(logger logInterface.Logger) *ErrorSink {
	var zapLogger *zap.Logger
	if logger != nil {
		zapLogger = logger.GetZapLogger()
	}
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}
	return &ErrorSink{logger: zapLogger}
}

// ReportError 实现 race.ErrorSink
func (s *ErrorSink) ReportError(err error, label string) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		s.logger.Debug("操作已取消", zap.String("label", label), zap.Error(err))
		return
	}
	s.logger.Warn("操作失败", zap.String("label", label), zap.Error(err))
}
