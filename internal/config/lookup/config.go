// Package lookup 提供公网IP查询的配置
package lookup

import (
	"time"

	"github.com/weisyn/taskrace/pkg/types"
)

// LookupOptions 公网IP查询配置选项
type LookupOptions struct {
	URLs         []string      `json:"urls"`           // 候选查询端点
	StartDelay   time.Duration `json:"start_delay"`    // 每个请求启动前的延迟
	MaxBodyBytes int64         `json:"max_body_bytes"` // 响应体读取上限
}

// Config 查询配置实现
type Config struct {
	options *LookupOptions
}

// New 创建查询配置
func New(userConfig *types.UserLookupConfig) *Config {
	options := &LookupOptions{
		URLs:         append([]string(nil), defaultURLs...),
		StartDelay:   defaultStartDelay,
		MaxBodyBytes: defaultMaxBodyBytes,
	}
	if userConfig != nil {
		if len(userConfig.URLs) > 0 {
			options.URLs = append([]string(nil), userConfig.URLs...)
		}
		if userConfig.StartDelayMs != nil {
			options.StartDelay = time.Duration(*userConfig.StartDelayMs) * time.Millisecond
		}
		if userConfig.MaxBodyBytes != nil && *userConfig.MaxBodyBytes > 0 {
			options.MaxBodyBytes = *userConfig.MaxBodyBytes
		}
	}
	return &Config{options: options}
}

// GetOptions 获取查询配置选项
func (c *Config) GetOptions() *LookupOptions { return c.options }
