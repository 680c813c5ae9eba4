// Package race 提供条件竞速的配置
package race

import (
	"time"

	"github.com/weisyn/taskrace/pkg/types"
)

// RaceOptions 条件竞速配置选项
type RaceOptions struct {
	Timeout time.Duration `json:"timeout"` // 整体截止时间
}

// Config 竞速配置实现
type Config struct {
	options *RaceOptions
}

// New 创建竞速配置
func New(userConfig *types.UserRaceConfig) *Config {
	options := &RaceOptions{Timeout: defaultTimeout}
	if userConfig != nil && userConfig.TimeoutMs != nil && *userConfig.TimeoutMs > 0 {
		options.Timeout = time.Duration(*userConfig.TimeoutMs) * time.Millisecond
	}
	return &Config{options: options}
}

// GetOptions 获取竞速配置选项
func (c *Config) GetOptions() *RaceOptions { return c.options }
