// Package metrics 提供指标端点的配置
package metrics

import "github.com/weisyn/taskrace/pkg/types"

// MetricsOptions 指标配置选项
type MetricsOptions struct {
	Enabled bool   `json:"enabled"` // 是否启用 /metrics 端点
	Addr    string `json:"addr"`    // 监听地址
}

// Config 指标配置实现
type Config struct {
	options *MetricsOptions
}

// New 创建指标配置
func New(userConfig *types.UserMetricsConfig) *Config {
	options := &MetricsOptions{Enabled: defaultEnabled, Addr: defaultAddr}
	if userConfig != nil {
		if userConfig.Enabled != nil {
			options.Enabled = *userConfig.Enabled
		}
		if userConfig.Addr != nil {
			options.Addr = *userConfig.Addr
		}
	}
	return &Config{options: options}
}

// GetOptions 获取指标配置选项
func (c *Config) GetOptions() *MetricsOptions { return c.options }
