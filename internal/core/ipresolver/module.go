package ipresolver

import (
	"net/http"

	"go.uber.org/fx"

	eventimpl "github.com/weisyn/taskrace/internal/core/infrastructure/event"
	logimpl "github.com/weisyn/taskrace/internal/core/infrastructure/log"
	"github.com/weisyn/taskrace/internal/core/infrastructure/metrics"
	"github.com/weisyn/taskrace/pkg/interfaces/config"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/taskrace/pkg/utils/race"
)

// ModuleParams 解析器依赖
type ModuleParams struct {
	fx.In

	Provider   config.Provider
	Client     *http.Client             `optional:"true"`
	Logger     log.Logger               `optional:"true"`
	LogSink    *logimpl.ErrorSink       `optional:"true"`
	Publisher  *eventimpl.RacePublisher `optional:"true"`
	RaceMetric *metrics.RaceMetrics     `optional:"true"`
}

// Module 返回公网IP解析模块
func Module() fx.Option {
	return fx.Module("ipresolver",
		fx.Provide(ProvideResolver),
	)
}

// ProvideResolver 装配解析器，把日志/事件/指标挂到每次竞速上
func ProvideResolver(params ModuleParams) *Resolver {
	var sinks []race.ErrorSink
	var observers []race.Observer
	if params.LogSink != nil {
		sinks = append(sinks, params.LogSink)
	}
	if params.Publisher != nil {
		sinks = append(sinks, params.Publisher)
		observers = append(observers, params.Publisher)
	}
	if params.RaceMetric != nil {
		observers = append(observers, params.RaceMetric)
	}

	var logger log.Logger
	if params.Logger != nil {
		logger = params.Logger.With("module", "ipresolver")
	}

	timeout := params.Provider.GetRace().Timeout
	return New(params.Client, params.Provider.GetLookup(), timeout, logger,
		race.WithErrorSink(race.ErrorSinks(sinks...)),
		race.WithObserver(race.Observers(observers...)),
	)
}
