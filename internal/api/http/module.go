package http

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/weisyn/taskrace/pkg/interfaces/config"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/storage"
)

// ServerParams 服务器依赖
type ServerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Provider  config.Provider
	Registry  *prometheus.Registry
	Clock     clock.Clock
	Store     storage.SessionStore `optional:"true"`
	Logger    log.Logger           `optional:"true"`
}

// Module 返回HTTP模块
func Module() fx.Option {
	return fx.Module("http",
		fx.Provide(ProvideServer),
		// 未启用时 ProvideServer 返回 nil，这里只负责触发构造
		fx.Invoke(func(*Server) {}),
	)
}

// ProvideServer 按配置创建服务器；未启用时返回 nil
func ProvideServer(params ServerParams) *Server {
	opts := params.Provider.GetMetrics()
	if opts == nil || !opts.Enabled {
		return nil
	}

	var logger log.Logger
	if params.Logger != nil {
		logger = params.Logger.With("module", "http")
	}
	server := NewServer(opts.Addr, params.Registry, params.Clock, params.Store, logger)

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error { return server.Start() },
		OnStop:  func(ctx context.Context) error { return server.Stop(ctx) },
	})
	return server
}
