package app

import (
	"github.com/weisyn/taskrace/pkg/interfaces/config"
	"github.com/weisyn/taskrace/pkg/types"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
// 实现config.AppOptions接口
type options struct {
	// 配置文件路径（为空时按环境变量与默认路径查找）
	configFilePath string

	// 直接传入的配置（优先级高于配置文件）
	appConfig *types.AppConfig

	// 配置加载完成后依次应用的覆盖项（命令行参数）
	overrides []func(*types.AppConfig)

	// API支持开关 (默认跟随 metrics.enabled)
	enableAPI bool
}

// 编译时校验options是否实现了config.AppOptions接口
var _ config.AppOptions = (*options)(nil)

// WithConfigFile 设置配置文件路径
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithAppConfig 直接使用给定配置，不再读取配置文件
func WithAppConfig(appConfig *types.AppConfig) Option {
	return func(o *options) {
		o.appConfig = appConfig
	}
}

// WithOverride 在配置加载后修改配置
func WithOverride(fn func(*types.AppConfig)) Option {
	return func(o *options) {
		if fn != nil {
			o.overrides = append(o.overrides, fn)
		}
	}
}

// WithoutAPI 禁用API模块
func WithoutAPI() Option {
	return func(o *options) {
		o.enableAPI = false
	}
}

// newOptions 创建选项
func newOptions(opts ...Option) *options {
	o := &options{
		enableAPI: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GetAppConfig 获取应用配置
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}
