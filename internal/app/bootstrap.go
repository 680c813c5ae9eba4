package app

import (
	"go.uber.org/fx"

	"github.com/weisyn/taskrace/internal/api"
	"github.com/weisyn/taskrace/internal/config"
	"github.com/weisyn/taskrace/internal/core/infrastructure/clock"
	"github.com/weisyn/taskrace/internal/core/infrastructure/event"
	"github.com/weisyn/taskrace/internal/core/infrastructure/log"
	"github.com/weisyn/taskrace/internal/core/infrastructure/metrics"
	"github.com/weisyn/taskrace/internal/core/infrastructure/storage"
	"github.com/weisyn/taskrace/internal/core/ipresolver"
	"github.com/weisyn/taskrace/internal/core/replay"
	configintf "github.com/weisyn/taskrace/pkg/interfaces/config"
)

// Bootstrap 按层次组织 fx 模块
//
// 加载顺序：基础设施层 → 数据层 → 业务层 → 应用层
type Bootstrap struct {
	opts *options
}

// newBootstrap 创建引导器
func newBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{opts: opts}
}

// SetupInfrastructureLayer 设置基础设施层模块
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		// 应用配置选项，供config模块使用
		fx.Provide(func() configintf.AppOptions { return b.opts }),

		config.Module(),  // 1. 配置（最基础）
		log.Module(),     // 2. 日志（依赖配置）
		metrics.Module(), // 3. 指标注册表
		event.Module(),   // 4. 事件总线（依赖时钟，由 fx 按需构造）
		clock.Module(),   // 5. 时钟（启动时安装为进程级时钟）
	}
}

// SetupDataLayer 设置数据层模块
func (b *Bootstrap) SetupDataLayer() []fx.Option {
	return []fx.Option{
		storage.Module(), // 会话存储 memory | badger | redis
	}
}

// SetupBusinessLayer 设置业务逻辑层模块
func (b *Bootstrap) SetupBusinessLayer() []fx.Option {
	return []fx.Option{
		replay.Module(),     // 录制与回放
		ipresolver.Module(), // 公网IP竞速查询
	}
}

// SetupApplicationLayer 设置应用层模块
func (b *Bootstrap) SetupApplicationLayer() []fx.Option {
	if !b.opts.enableAPI {
		return nil
	}
	return []fx.Option{
		api.Module(), // /metrics 与 /health
	}
}

// SetupModules 设置所有应用模块
func (b *Bootstrap) SetupModules() []fx.Option {
	var allModules []fx.Option
	allModules = append(allModules, b.SetupInfrastructureLayer()...)
	allModules = append(allModules, b.SetupDataLayer()...)
	allModules = append(allModules, b.SetupBusinessLayer()...)
	allModules = append(allModules, b.SetupApplicationLayer()...)
	return allModules
}
