package log

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weisyn/taskrace/internal/config"
	logconfig "github.com/weisyn/taskrace/internal/config/log"
	"github.com/weisyn/taskrace/pkg/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// newBufferLogger 创建输出到内存缓冲区的控制台日志记录器
func newBufferLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	options := &logconfig.LogOptions{Level: level, ToConsole: true}
	logger, err := newWithConsole(logconfig.NewFromOptions(options), zapcore.AddSync(buf))
	require.NoError(t, err)
	return logger.(*Logger), buf
}

// TestConsoleLog 测试控制台日志输出
func TestConsoleLog(t *testing.T) {
	logger, buf := newBufferLogger(t, InfoLevel)

	logger.Info("测试控制台日志")
	logger.Debug("不应出现的调试日志")
	require.NoError(t, logger.Sync())

	output := buf.String()
	assert.Contains(t, output, "测试控制台日志")
	assert.Contains(t, output, "INFO")
	assert.NotContains(t, output, "不应出现的调试日志")
}

// TestStructuredLogging 测试结构化字段
func TestStructuredLogging(t *testing.T) {
	logger, buf := newBufferLogger(t, DebugLevel)

	logger.With("key1", "value1", "key2", 42).Info("结构化日志测试")

	output := buf.String()
	assert.Contains(t, output, "结构化日志测试")
	assert.Contains(t, output, `"key1": "value1"`)
	assert.Contains(t, output, `"key2": 42`)
}

// TestWithOddArgs 奇数个参数时丢弃最后一个
func TestWithOddArgs(t *testing.T) {
	logger, buf := newBufferLogger(t, InfoLevel)

	logger.With("key1", "value1", "dangling").Info("奇数参数")

	output := buf.String()
	assert.Contains(t, output, `"key1": "value1"`)
	assert.NotContains(t, output, "dangling")
}

// TestFileLog 测试 JSON 文件输出
func TestFileLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "test.log")

	logger, err := New(logconfig.New(&types.UserLogConfig{
		Level:    types.StringPtr(DebugLevel),
		FilePath: types.StringPtr(logPath),
	}))
	require.NoError(t, err)

	logger.Debug("调试日志")
	logger.Info("信息日志")
	logger.Warn("警告日志")
	logger.Error("错误日志")
	require.NoError(t, logger.Sync())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], `"level":"debug"`)
	assert.Contains(t, lines[3], `"message":"错误日志"`)
}

// TestSetLogger 测试设置和切换全局日志记录器
func TestSetLogger(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	logger1, _ := newBufferLogger(t, InfoLevel)
	logger2, _ := newBufferLogger(t, WarnLevel)

	SetLogger(logger1)
	assert.Same(t, logger1, GetLogger())

	SetLogger(logger2)
	assert.Same(t, logger2, GetLogger())

	// nil 不会覆盖已有记录器
	SetLogger(nil)
	assert.Same(t, logger2, GetLogger())
}

// TestResetDefault 测试重置默认日志记录器
func TestResetDefault(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	custom, _ := newBufferLogger(t, WarnLevel)
	SetLogger(custom)

	ResetDefault()
	assert.NotSame(t, custom, GetLogger())
}

// TestProvideServices 测试 fx 提供函数
func TestProvideServices(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	provider := config.NewProvider(&types.AppConfig{
		Log: &types.UserLogConfig{Level: types.StringPtr(WarnLevel)},
	})

	out, err := ProvideServices(ModuleParams{Provider: provider})
	require.NoError(t, err)
	require.NotNil(t, out.Logger)
	assert.Same(t, out.ZapLogger, out.Logger.GetZapLogger())
	assert.Same(t, out.Logger, GetLogger())
	assert.NotNil(t, out.ErrorSink)
	assert.False(t, out.ZapLogger.Core().Enabled(zapcore.InfoLevel))
}

// TestNewModuleLogger 测试模块日志记录器
func TestNewModuleLogger(t *testing.T) {
	assert.Nil(t, NewModuleLogger(nil, "race"))

	core, logs := observer.New(zapcore.DebugLevel)
	moduleLogger := NewModuleLogger(FromZap(zap.New(core)), "race")
	moduleLogger.Info("hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "race", logs.All()[0].ContextMap()["module"])
}

// TestErrorSink 测试竞速失败日志
func TestErrorSink(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := NewErrorSink(FromZap(zap.New(core)))

	sink.ReportError(errors.New("connection refused"), "whatsmyip[2]")
	sink.ReportError(context.Canceled, "whatsmyip[3]")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "whatsmyip[2]", entries[0].ContextMap()["label"])
	assert.Equal(t, "connection refused", entries[0].ContextMap()["error"])

	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, "whatsmyip[3]", entries[1].ContextMap()["label"])
}

// TestErrorSinkNilLogger nil 记录器时不会 panic
func TestErrorSinkNilLogger(t *testing.T) {
	sink := NewErrorSink(nil)
	assert.NotPanics(t, func() {
		sink.ReportError(errors.New("boom"), "race[0]")
	})
}
