package config

import (
	"github.com/weisyn/taskrace/internal/config/clock"
	"github.com/weisyn/taskrace/internal/config/event"
	"github.com/weisyn/taskrace/internal/config/log"
	"github.com/weisyn/taskrace/internal/config/lookup"
	"github.com/weisyn/taskrace/internal/config/metrics"
	"github.com/weisyn/taskrace/internal/config/race"
	"github.com/weisyn/taskrace/internal/config/recorder"
	"github.com/weisyn/taskrace/pkg/interfaces/config"
	"github.com/weisyn/taskrace/pkg/types"
)

const defaultAppName = "taskrace"

// Provider 实现配置提供者接口
//
// 各 Get 方法把用户配置交给对应分区的 New，由分区负责默认值与覆盖逻辑。
// 结果在构造时一次性计算，之后只读。
type Provider struct {
	appConfig *types.AppConfig

	log      *log.LogOptions
	clock    *clock.ClockOptions
	race     *race.RaceOptions
	lookup   *lookup.LookupOptions
	recorder *recorder.RecorderOptions
	metrics  *metrics.MetricsOptions
	event    *event.EventOptions
}

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	if appConfig == nil {
		appConfig = &types.AppConfig{}
	}
	return &Provider{
		appConfig: appConfig,
		log:       log.New(appConfig.Log).GetOptions(),
		clock:     clock.New(appConfig.Clock).GetOptions(),
		race:      race.New(appConfig.Race).GetOptions(),
		lookup:    lookup.New(appConfig.Lookup).GetOptions(),
		recorder:  recorder.New(appConfig.Recorder).GetOptions(),
		metrics:   metrics.New(appConfig.Metrics).GetOptions(),
		event:     event.New(appConfig.Event).GetOptions(),
	}
}

// GetAppName 获取应用名称
func (p *Provider) GetAppName() string {
	if p.appConfig.AppName != nil && *p.appConfig.AppName != "" {
		return *p.appConfig.AppName
	}
	return defaultAppName
}

func (p *Provider) GetLog() *log.LogOptions                { return p.log }
func (p *Provider) GetClock() *clock.ClockOptions          { return p.clock }
func (p *Provider) GetRace() *race.RaceOptions             { return p.race }
func (p *Provider) GetLookup() *lookup.LookupOptions       { return p.lookup }
func (p *Provider) GetRecorder() *recorder.RecorderOptions { return p.recorder }
func (p *Provider) GetMetrics() *metrics.MetricsOptions    { return p.metrics }
func (p *Provider) GetEvent() *event.EventOptions          { return p.event }
