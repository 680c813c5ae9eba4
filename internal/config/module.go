// Package config 把 JSON 应用配置转换为各分区的运行时选项
package config

import (
	"go.uber.org/fx"

	"github.com/weisyn/taskrace/pkg/interfaces/config"
	"github.com/weisyn/taskrace/pkg/types"
)

// ProviderParams 配置模块依赖
type ProviderParams struct {
	fx.In

	// 未提供时全部使用默认值
	AppOptions config.AppOptions `optional:"true"`
}

// Module 返回配置模块，提供 config.Provider
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(ProvideProvider),
	)
}

// ProvideProvider 从应用选项构建配置提供者
func ProvideProvider(params ProviderParams) config.Provider {
	var appConfig *types.AppConfig
	if params.AppOptions != nil {
		appConfig = params.AppOptions.GetAppConfig()
	}
	return NewProvider(appConfig)
}
