// Package event 提供事件管理功能
package event

import (
	"go.uber.org/fx"

	eventconfig "github.com/weisyn/taskrace/internal/config/event"
	"github.com/weisyn/taskrace/pkg/interfaces/config"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/clock"
	eventInterface "github.com/weisyn/taskrace/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/log"
)

// ModuleInput 事件模块输入依赖
type ModuleInput struct {
	fx.In

	Provider  config.Provider // 配置提供者
	Clock     clock.Clock     // 事件时间戳来源
	Logger    log.Logger      `optional:"true"` // 日志记录器（可选）
	Lifecycle fx.Lifecycle    // 生命周期管理
}

// ModuleOutput 事件模块输出服务
type ModuleOutput struct {
	fx.Out

	EventBus      eventInterface.EventBus // 基础事件总线
	RacePublisher *RacePublisher          // 竞速事件发布者
}

// Module 返回事件模块
func Module() fx.Option {
	return fx.Module("event",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 创建事件总线，并在停止时等待异步处理器完成
func ProvideServices(input ModuleInput) ModuleOutput {
	cfg := eventconfig.New(nil)
	if opts := input.Provider.GetEvent(); opts != nil {
		cfg = eventconfig.NewFromOptions(opts)
	}
	bus := New(cfg)

	if input.Logger != nil && !cfg.IsEnabled() {
		input.Logger.Info("事件系统已禁用")
	}

	if input.Lifecycle != nil {
		input.Lifecycle.Append(fx.StopHook(func() {
			bus.WaitAsync()
		}))
	}

	return ModuleOutput{
		EventBus:      bus,
		RacePublisher: NewRacePublisher(bus, input.Clock),
	}
}
