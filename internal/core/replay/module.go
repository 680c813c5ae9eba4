package replay

import (
	"go.uber.org/fx"

	"github.com/weisyn/taskrace/internal/core/infrastructure/metrics"
	"github.com/weisyn/taskrace/pkg/interfaces/config"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/storage"
)

// ServiceParams 录制服务依赖
type ServiceParams struct {
	fx.In

	Provider config.Provider
	Store    storage.SessionStore
	Logger   log.Logger           `optional:"true"`
	EventBus event.EventBus       `optional:"true"`
	Metrics  *metrics.RaceMetrics `optional:"true"`
}

// Module 返回录制/回放模块
func Module() fx.Option {
	return fx.Module("replay",
		fx.Provide(ProvideService),
	)
}

// ProvideService 装配录制服务
func ProvideService(params ServiceParams) *Service {
	var logger log.Logger
	if params.Logger != nil {
		logger = params.Logger.With("module", "replay")
	}
	return NewService(params.Store, params.Provider.GetRecorder(), logger, params.EventBus, params.Metrics)
}
