// Package clock 提供时钟实现与进程级时钟的安装
package clock

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/weisyn/taskrace/pkg/interfaces/config"
	infraClock "github.com/weisyn/taskrace/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/taskrace/pkg/types"
	"github.com/weisyn/taskrace/pkg/utils/timeutil"
)

// ModuleParams 时钟模块依赖
type ModuleParams struct {
	fx.In

	Provider config.Provider
	Logger   log.Logger           `optional:"true"`
	Registry *prometheus.Registry `optional:"true"`
}

// Module 返回时钟模块
func Module() fx.Option {
	return fx.Module("clock",
		fx.Provide(ProvideClock),
		// 启动时安装为进程级时钟
		fx.Invoke(InstallClock),
	)
}

// InstallParams 安装时钟所需依赖
type InstallParams struct {
	fx.In

	Clock    infraClock.Clock
	Provider config.Provider
	EventBus event.EventBus `optional:"true"`
}

// InstallClock 把时钟安装为进程级时钟，并广播替换事件
func InstallClock(params InstallParams) {
	timeutil.Install(params.Clock)
	if params.EventBus != nil {
		params.EventBus.Publish(types.EventTypeClockInstalled, types.ClockInstalled{
			Kind:        params.Provider.GetClock().Type,
			InstalledAt: timeutil.UtcNow(),
		})
	}
}

// ProvideClock 根据配置创建时钟，并为 NTP 时钟注册健康指标
func ProvideClock(params ModuleParams) (infraClock.Clock, error) {
	opts := params.Provider.GetClock()
	c, err := New(opts)
	if err != nil {
		return nil, fmt.Errorf("创建时钟失败: %w", err)
	}

	if ntpClock, ok := c.(*NTPClock); ok && params.Registry != nil {
		if err := RegisterClockMetrics(params.Registry, opts.NTPServer, ntpClock.Health); err != nil {
			return nil, fmt.Errorf("注册时钟指标失败: %w", err)
		}
	}

	if params.Logger != nil {
		params.Logger.With("module", "clock").Infof("时钟已就绪: type=%s", opts.Type)
	}
	return c, nil
}
