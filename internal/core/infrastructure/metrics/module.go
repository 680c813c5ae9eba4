// Package metrics 提供统一的指标收集机制
//
// 📋 **指标基础设施模块 (Metrics Infrastructure Module)**
//
// 本模块提供：
// - *prometheus.Registry: 进程级注册表（含 Go 运行时与进程指标）
// - RaceMetrics: 竞速结果、耗时、失败数以及录制快照计数
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module 返回 metrics 模块的 fx.Option
//
// 提供：
// - *prometheus.Registry: 指标注册表
// - *RaceMetrics: 竞速指标
//
// 依赖：
// - *zap.Logger: 日志记录器（可选）
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(
			NewRegistry,
			NewRaceMetricsProvider,
		),
	)
}

// NewRegistry 创建带运行时采集器的注册表
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// RaceMetricsProviderInput 定义 RaceMetrics 的输入依赖
type RaceMetricsProviderInput struct {
	fx.In

	Registry *prometheus.Registry
	Logger   *zap.Logger `optional:"true"`
}

// NewRaceMetricsProvider 创建 RaceMetrics 实例
func NewRaceMetricsProvider(input RaceMetricsProviderInput) *RaceMetrics {
	m := NewRaceMetrics(input.Registry)
	if input.Logger != nil {
		input.Logger.With(zap.String("module", "metrics")).Debug("竞速指标已注册")
	}
	return m
}
